package domain

// DocType labels what a loaded document is. It is stored in the
// doc_type metadata key of every document, chunk and persisted record.
type DocType string

const (
	// DocTypeJob marks a job description scraped from the market.
	DocTypeJob DocType = "job_description"

	// DocTypeCV marks a student CV.
	DocTypeCV DocType = "student_cv"
)

// Metadata keys shared by documents, chunks and vector records.
const (
	// MetaDocType holds the DocType as a string.
	MetaDocType = "doc_type"

	// MetaSourceName holds the file basename shown to users.
	MetaSourceName = "source_name"

	// MetaSource holds the full path the document was loaded from.
	MetaSource = "source"

	// MetaFormat holds the normaliser format (txt, pdf, docx, html).
	MetaFormat = "format"
)

// IsValid returns true if the doc type is one of the two known labels.
func (d DocType) IsValid() bool {
	switch d {
	case DocTypeJob, DocTypeCV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d DocType) String() string {
	return string(d)
}

// Description returns a human-readable description of the doc type.
func (d DocType) Description() string {
	switch d {
	case DocTypeJob:
		return "Job Descriptions"
	case DocTypeCV:
		return "Student CVs"
	default:
		return unknownDescription
	}
}

// DocTypeOf reads the doc type stored in a metadata map.
// Returns the empty DocType when the key is missing or not a string.
func DocTypeOf(meta map[string]any) DocType {
	switch v := meta[MetaDocType].(type) {
	case DocType:
		return v
	case string:
		return DocType(v)
	default:
		return ""
	}
}

// SourceNameOf reads the display name stored in a metadata map.
func SourceNameOf(meta map[string]any) string {
	if v, ok := meta[MetaSourceName].(string); ok {
		return v
	}
	return ""
}
