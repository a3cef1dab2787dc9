package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// fakeGemini answers embedding calls with one vector per request entry.
func fakeGemini(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, DefaultModel), "path %s", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
			return
		}

		var req struct {
			Requests []json.RawMessage `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		n := max(len(req.Requests), 1)

		parts := make([]string, n)
		for i := range parts {
			parts[i] = fmt.Sprintf(`{"values":[%d,1]}`, i)
		}
		_, _ = fmt.Fprintf(w, `{"embeddings":[%s]}`, strings.Join(parts, ","))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewEmbeddingService_RequiresKey(t *testing.T) {
	_, err := NewEmbeddingService(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(context.Background(), Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestEmbedBatch(t *testing.T) {
	server := fakeGemini(t, http.StatusOK)
	svc, err := NewEmbeddingService(context.Background(), Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"Python", "SQL"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1}, {1, 1}}, vectors)
}

func TestEmbed_ServerError(t *testing.T) {
	server := fakeGemini(t, http.StatusInternalServerError)
	svc, err := NewEmbeddingService(context.Background(), Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "Python")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
