// Package storetest holds behaviour tests shared by every driven.VectorStore.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

// Record builds a chunk ready for Write.
func Record(id string, docType domain.DocType, source, content string, vec ...float32) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		DocumentID: "doc-" + id,
		Content:    content,
		Embedding:  vec,
		Metadata: map[string]any{
			domain.MetaDocType:    string(docType),
			domain.MetaSourceName: source,
		},
	}
}

// Run exercises the VectorStore contract against stores built by newStore.
// Each subtest gets a fresh, unbuilt store.
func Run(t *testing.T, newStore func(t *testing.T) driven.VectorStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("search before write is missing store", func(t *testing.T) {
		s := newStore(t)

		exists, err := s.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = s.Search(ctx, []float32{1, 0}, 5, domain.JobsOnly())
		assert.ErrorIs(t, err, domain.ErrMissingVectorStore)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("orders by descending similarity", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("a", domain.DocTypeJob, "a.txt", "far", 0, 1),
			Record("b", domain.DocTypeJob, "b.txt", "near", 1, 0),
			Record("c", domain.DocTypeJob, "c.txt", "middle", 0.6, 0.8),
		}))

		results, err := s.Search(ctx, []float32{1, 0}, 3, domain.SearchFilter{})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "b", results[0].Chunk.ID)
		assert.Equal(t, "c", results[1].Chunk.ID)
		assert.Equal(t, "a", results[2].Chunk.ID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-5)
		assert.InDelta(t, 0.6, results[1].Score, 1e-5)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	})

	t.Run("ties broken by insertion order", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("first", domain.DocTypeJob, "1.txt", "one", 1, 0),
			Record("second", domain.DocTypeJob, "2.txt", "two", 1, 0),
			Record("third", domain.DocTypeJob, "3.txt", "three", 1, 0),
		}))

		for i := 0; i < 3; i++ {
			results, err := s.Search(ctx, []float32{1, 0}, 2, domain.JobsOnly())
			require.NoError(t, err)
			require.Len(t, results, 2)
			assert.Equal(t, "first", results[0].Chunk.ID)
			assert.Equal(t, "second", results[1].Chunk.ID)
		}
	})

	t.Run("filter never crosses doc types", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("job1", domain.DocTypeJob, "job1.txt", "job one", 1, 0),
			Record("cv1", domain.DocTypeCV, "cv1.txt", "cv one", 1, 0),
			Record("job2", domain.DocTypeJob, "job2.txt", "job two", 0, 1),
			Record("cv2", domain.DocTypeCV, "cv2.txt", "cv two", 0.7, 0.7),
		}))

		jobs, err := s.Search(ctx, []float32{1, 0}, 10, domain.JobsOnly())
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		for _, r := range jobs {
			assert.Equal(t, domain.DocTypeJob, r.Chunk.DocType())
		}

		cvs, err := s.Search(ctx, []float32{1, 0}, 10, domain.SearchFilter{DocType: domain.DocTypeCV})
		require.NoError(t, err)
		require.Len(t, cvs, 2)
		for _, r := range cvs {
			assert.Equal(t, domain.DocTypeCV, r.Chunk.DocType())
		}
	})

	t.Run("k larger than matches returns all", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("job1", domain.DocTypeJob, "job1.txt", "job one", 1, 0),
			Record("job2", domain.DocTypeJob, "job2.txt", "job two", 0, 1),
			Record("cv1", domain.DocTypeCV, "cv1.txt", "cv", 1, 1),
		}))

		results, err := s.Search(ctx, []float32{1, 0}, 5, domain.JobsOnly())
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("round trips content and metadata", func(t *testing.T) {
		s := newStore(t)
		content := "JOB TITLE: Backend Developer\nRequires: Python, SQL"
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("only", domain.DocTypeJob, "backend.txt", content, 0.6, 0.8),
		}))

		results, err := s.Search(ctx, []float32{0.6, 0.8}, 5, domain.JobsOnly())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, content, results[0].Chunk.Content)
		assert.Equal(t, "backend.txt", results[0].Chunk.SourceName())
		assert.Equal(t, domain.DocTypeJob, results[0].Chunk.DocType())
	})

	t.Run("write replaces the collection", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("old1", domain.DocTypeJob, "old.txt", "old", 1, 0),
			Record("old2", domain.DocTypeJob, "old.txt", "old", 0, 1),
		}))
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("new", domain.DocTypeJob, "new.txt", "new", 1, 0),
		}))

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		results, err := s.Search(ctx, []float32{1, 0}, 5, domain.SearchFilter{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "new", results[0].Chunk.ID)
	})

	t.Run("empty write creates an empty collection", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, nil))

		exists, err := s.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		results, err := s.Search(ctx, []float32{1, 0}, 5, domain.JobsOnly())
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("j1", domain.DocTypeJob, "j1.txt", "JOB TITLE: Backend Developer", 1, 0),
			Record("c1", domain.DocTypeCV, "c1.txt", "SKILLS: Python", 1, 0),
			Record("j2", domain.DocTypeJob, "j2.txt", "JOB TITLE: Data Scientist", 0, 1),
		}))

		jobs, err := s.List(ctx, domain.JobsOnly())
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "j1", jobs[0].ID)
		assert.Equal(t, "j2", jobs[1].ID)
	})

	t.Run("rejects query of wrong dimension", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, []domain.Chunk{
			Record("a", domain.DocTypeJob, "a.txt", "a", 1, 0),
		}))

		_, err := s.Search(ctx, []float32{1, 0, 0}, 5, domain.JobsOnly())
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("rejects record without doc type", func(t *testing.T) {
		s := newStore(t)
		err := s.Write(ctx, []domain.Chunk{Record("bad", "other", "x.txt", "x", 1, 0)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
