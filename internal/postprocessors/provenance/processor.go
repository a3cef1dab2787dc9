// Package provenance stamps every chunk with its document's identity
// metadata so retrieval filters and source labels never drift from the
// file the chunk came from.
package provenance

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// stamped are the metadata keys copied from the document onto each chunk.
var stamped = []string{domain.MetaDocType, domain.MetaSourceName, domain.MetaSource}

// Processor overwrites identity metadata on chunks. It implements the
// PostProcessor interface and must run after the chunker.
type Processor struct{}

// New creates a provenance processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "provenance"
}

// Process copies doc_type, source_name and source from doc onto chunks.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		if chunks[i].Metadata == nil {
			chunks[i].Metadata = make(map[string]any)
		}
		for _, key := range stamped {
			if v, ok := doc.Metadata[key]; ok {
				chunks[i].Metadata[key] = v
			}
		}
		chunks[i].DocumentID = doc.ID
	}
	return chunks, nil
}
