package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/vecmath"
)

// skillVocabulary spans the keyword embedding space used by tests.
var skillVocabulary = []string{
	"python", "sql", "docker", "kubernetes", "react", "javascript",
	"pytorch", "statistics", "linux", "swift",
}

// keywordEmbedder maps text onto skill keyword counts, unit normalised.
// Similar skill sets give similar vectors, which is all retrieval tests need.
type keywordEmbedder struct {
	mu       sync.Mutex
	calls    int
	batches  [][]string
	embedErr error
}

func (e *keywordEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	vec := make([]float32, len(skillVocabulary))
	for i, word := range skillVocabulary {
		vec[i] = float32(strings.Count(lower, word))
	}
	if vecmath.Norm(vec) == 0 {
		vec[len(vec)-1] = 0.01
	}
	return vecmath.Normalize(vec)
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	return e.vector(text), nil
}

func (e *keywordEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.calls++
	e.batches = append(e.batches, texts)
	e.mu.Unlock()
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int            { return len(skillVocabulary) }
func (e *keywordEmbedder) ModelName() string          { return "keywords" }
func (e *keywordEmbedder) Ping(context.Context) error { return nil }
func (e *keywordEmbedder) Close() error               { return nil }

// scriptedLLM records the conversation and returns a fixed reply.
type scriptedLLM struct {
	reply    string
	err      error
	calls    int
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (l *scriptedLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return l.Chat(ctx, []driven.ChatMessage{{Role: driven.RoleUser, Content: prompt}}, driven.ChatOptions(opts))
}

func (l *scriptedLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	l.calls++
	l.messages = messages
	l.opts = opts
	if l.err != nil {
		return "", l.err
	}
	return l.reply, nil
}

func (l *scriptedLLM) ModelName() string          { return "scripted" }
func (l *scriptedLLM) Ping(context.Context) error { return nil }
func (l *scriptedLLM) Close() error               { return nil }

// staticPrompts serves in-memory prompt templates.
type staticPrompts map[string]string

func (p staticPrompts) Load(name string) (string, error) {
	t, ok := p[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}

func (p staticPrompts) Reload() {}

func testPrompts() staticPrompts {
	return staticPrompts{
		driven.PromptGapSystem: "You are a career advisor.",
		driven.PromptGapHuman:  "ROLE={role}\nJOBS={job_context}\nCV={cv_text}",
	}
}

// dirLoader returns canned documents per directory.
type dirLoader struct {
	docs  map[string][]domain.Document
	errs  map[string]error
	calls []string
}

func (l *dirLoader) Load(_ context.Context, dir string, docType domain.DocType) ([]domain.Document, error) {
	l.calls = append(l.calls, dir)
	if err := l.errs[dir]; err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(l.docs[dir]))
	for _, d := range l.docs[dir] {
		d.Metadata = domain.CopyMetadata(d.Metadata)
		d.Metadata[domain.MetaDocType] = string(docType)
		out = append(out, d)
	}
	return out, nil
}

func (l *dirLoader) LoadFile(context.Context, string, domain.DocType) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

// jobChunk builds a stored job chunk for retrieval tests.
func jobChunk(id, source, content string) domain.Chunk {
	return domain.Chunk{
		ID:      id,
		Content: content,
		Metadata: map[string]any{
			domain.MetaDocType:    string(domain.DocTypeJob),
			domain.MetaSourceName: source,
		},
	}
}

// cvChunk builds a stored CV chunk for retrieval tests.
func cvChunk(id, source, content string) domain.Chunk {
	return domain.Chunk{
		ID:      id,
		Content: content,
		Metadata: map[string]any{
			domain.MetaDocType:    string(domain.DocTypeCV),
			domain.MetaSourceName: source,
		},
	}
}
