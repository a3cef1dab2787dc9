package normalise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("Python\nSQL"), "Python\nSQL"},
		{"bom and crlf", append([]byte{0xEF, 0xBB, 0xBF}, "SKILLS\r\nGo\r\n"...), "SKILLS\nGo\n"},
		{"arabic", []byte("مهندس برمجيات"), "مهندس برمجيات"},
		{"invalid", []byte{'o', 'k', 0xff}, "ok�"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestFileTitle(t *testing.T) {
	assert.Equal(t, "my cv", FileTitle("/path/to/my_cv.txt"))
	assert.Equal(t, "data scientist", FileTitle("jobs/data-scientist.pdf"))
	assert.Equal(t, "README", FileTitle("README"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Data Analyst", FirstLine("\n  \n  Data Analyst  \nSQL", 200))
	assert.Equal(t, "short", FirstLine("this line is too long\nshort", 10))
	assert.Empty(t, FirstLine(" \n\t", 200))
}

func TestResult(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/data/cvs/jane_doe.docx",
		Metadata: map[string]any{domain.MetaDocType: "student_cv"},
	}

	res := Result(raw, "", "Python", "docx")
	require.NotNil(t, res)
	doc := res.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "jane doe", doc.Title)
	assert.Equal(t, "Python", doc.Content)
	assert.Equal(t, "docx", doc.Metadata[domain.MetaFormat])
	assert.Equal(t, domain.DocTypeCV, doc.DocType())
	assert.False(t, doc.CreatedAt.IsZero())

	_, leaked := raw.Metadata[domain.MetaFormat]
	assert.False(t, leaked)

	assert.Equal(t, "Jane Doe", Result(raw, "Jane Doe", "x", "docx").Document.Title)
	assert.NotEqual(t, doc.ID, Result(raw, "", "x", "docx").Document.ID)
}
