package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilter_Matches(t *testing.T) {
	job := map[string]any{MetaDocType: "job_description"}
	cv := map[string]any{MetaDocType: "student_cv"}

	t.Run("zero filter matches everything", func(t *testing.T) {
		var f SearchFilter
		assert.True(t, f.Matches(job))
		assert.True(t, f.Matches(cv))
		assert.True(t, f.Matches(nil))
	})

	t.Run("jobs only", func(t *testing.T) {
		f := JobsOnly()
		assert.True(t, f.Matches(job))
		assert.False(t, f.Matches(cv))
		assert.False(t, f.Matches(nil))
	})

	t.Run("cv only", func(t *testing.T) {
		f := SearchFilter{DocType: DocTypeCV}
		assert.False(t, f.Matches(job))
		assert.True(t, f.Matches(cv))
	})
}

func TestIngestionSummary_TotalDocuments(t *testing.T) {
	s := IngestionSummary{JobDocuments: 3, CVDocuments: 2, Chunks: 11}
	assert.Equal(t, 5, s.TotalDocuments())
}
