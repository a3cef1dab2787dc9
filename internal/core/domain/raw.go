package domain

// RawDocument represents opaque bytes read by the loader.
// It is the loader's output before normalisation.
type RawDocument struct {
	// URI is the file path.
	URI string

	// Extension is the lower-cased file extension including the dot.
	Extension string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains loader-assigned key-value pairs (doc_type, source_name).
	Metadata map[string]any
}

// ChangeType represents the type of file change seen by a watcher.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange represents a change event in one of the input directories.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string
}
