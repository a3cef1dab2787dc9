package provenance

import (
	"context"
	"testing"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

func TestProcessor_StampsMetadata(t *testing.T) {
	doc := &domain.Document{
		ID: "doc-1",
		Metadata: map[string]any{
			domain.MetaDocType:    "job_description",
			domain.MetaSourceName: "backend.txt",
			domain.MetaSource:     "/data/market_jobs/backend.txt",
			"pages":               3,
		},
	}
	chunks := []domain.Chunk{
		{ID: "a"},
		{ID: "b", Metadata: map[string]any{domain.MetaDocType: "student_cv", "keep": 1}},
	}

	out, err := New().Process(context.Background(), doc, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range out {
		if c.DocType() != domain.DocTypeJob {
			t.Errorf("chunk %s: doc_type %q", c.ID, c.DocType())
		}
		if c.SourceName() != "backend.txt" {
			t.Errorf("chunk %s: source_name %q", c.ID, c.SourceName())
		}
		if c.DocumentID != "doc-1" {
			t.Errorf("chunk %s: document id %q", c.ID, c.DocumentID)
		}
		if _, ok := c.Metadata["pages"]; ok {
			t.Errorf("chunk %s: unexpected non-identity key copied", c.ID)
		}
	}
	if out[1].Metadata["keep"] != 1 {
		t.Error("existing chunk metadata was dropped")
	}
}

func TestProcessor_Name(t *testing.T) {
	if New().Name() != "provenance" {
		t.Errorf("unexpected name %q", New().Name())
	}
}
