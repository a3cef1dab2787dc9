package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "skill_gap_report_junior_ml_engineer.md", ReportFilename("Junior ML Engineer"))
	assert.Equal(t, "skill_gap_report_devops.md", ReportFilename("DevOps"))
}

func TestExtractJobTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"marker on first line", "JOB TITLE: Backend Developer\nRequires: Python, SQL", "Backend Developer", true},
		{"lower case marker", "job title:  Data Scientist ", "Data Scientist", true},
		{"marker on second line", "Company: Swvl\nJOB TITLE: Mobile Developer", "", false},
		{"no marker", "Requires: Go", "", false},
		{"empty title", "JOB TITLE:", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := ExtractJobTitle(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, title)
		})
	}
}

func TestUniqueSortedTitles(t *testing.T) {
	chunks := []Chunk{
		{Content: "JOB TITLE: Frontend Developer\n..."},
		{Content: "JOB TITLE: Backend Developer\n..."},
		{Content: "Requirements continue here"},
		{Content: "JOB TITLE: Backend Developer\nAnother posting"},
	}

	assert.Equal(t, []string{"Backend Developer", "Frontend Developer"}, UniqueSortedTitles(chunks))
	assert.Empty(t, UniqueSortedTitles(nil))
}

func TestRolePresets(t *testing.T) {
	assert.Len(t, RolePresets, 8)
	assert.Contains(t, RolePresets, "Junior ML Engineer")
	assert.Contains(t, RolePresets, "Backend Developer")
}
