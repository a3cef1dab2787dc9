package domain

// IngestionSummary reports what a full rebuild indexed.
type IngestionSummary struct {
	// JobDocuments is the number of job descriptions loaded.
	JobDocuments int

	// CVDocuments is the number of CVs loaded.
	CVDocuments int

	// Chunks is the number of records written to the vector store.
	Chunks int

	// StoreLocation describes where the collection lives.
	StoreLocation string
}

// TotalDocuments returns the number of documents of both types.
func (s IngestionSummary) TotalDocuments() int {
	return s.JobDocuments + s.CVDocuments
}
