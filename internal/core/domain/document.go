package domain

import "time"

// Document represents a loaded file after normalisation.
// It is immutable once the loader hands it to the chunker.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the path the document was loaded from.
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content after normalisation.
	// This is the complete document text before chunking.
	Content string

	// Metadata carries doc_type, source_name and normaliser extras.
	Metadata map[string]any

	// CreatedAt is when the document was loaded.
	CreatedAt time.Time
}

// DocType returns the document's doc_type label.
func (d *Document) DocType() DocType {
	return DocTypeOf(d.Metadata)
}

// SourceName returns the document's display name.
func (d *Document) SourceName() string {
	return SourceNameOf(d.Metadata)
}

// Chunk represents a retrieval unit within a document.
// Documents are split into overlapping chunks before embedding.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32

	// Metadata is a copy of the parent document's metadata.
	Metadata map[string]any
}

// DocType returns the chunk's doc_type label.
func (c *Chunk) DocType() DocType {
	return DocTypeOf(c.Metadata)
}

// SourceName returns the chunk's display name.
func (c *Chunk) SourceName() string {
	return SourceNameOf(c.Metadata)
}

// CopyMetadata returns a shallow copy of a metadata map.
// A nil map yields an empty, non-nil map.
func CopyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
