package domain

// SearchFilter restricts a vector search by metadata.
// The zero value matches every record.
type SearchFilter struct {
	// DocType restricts results to one document type when set.
	DocType DocType
}

// JobsOnly returns the filter used for retrieving job context.
func JobsOnly() SearchFilter {
	return SearchFilter{DocType: DocTypeJob}
}

// Matches reports whether a record's metadata satisfies the filter.
func (f SearchFilter) Matches(meta map[string]any) bool {
	if f.DocType == "" {
		return true
	}
	return DocTypeOf(meta) == f.DocType
}

// SearchResult represents a single nearest-neighbour hit.
type SearchResult struct {
	// Chunk is the matched chunk, without its embedding.
	Chunk Chunk

	// Score is the cosine similarity to the query.
	Score float64
}
