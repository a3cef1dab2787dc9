package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

type countingEmbedder struct {
	calls atomic.Int32
	err   error
}

func (c *countingEmbedder) Embed(context.Context, string) ([]float32, error) {
	c.calls.Add(1)
	return []float32{1}, c.err
}

func (c *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	c.calls.Add(1)
	return make([][]float32, len(texts)), c.err
}

func (c *countingEmbedder) Dimensions() int            { return 1 }
func (c *countingEmbedder) ModelName() string          { return "counting" }
func (c *countingEmbedder) Ping(context.Context) error { return nil }
func (c *countingEmbedder) Close() error               { return nil }

func TestWrap_DisabledReturnsInner(t *testing.T) {
	inner := &countingEmbedder{}
	assert.Same(t, inner, Wrap(inner, Config{}))
}

func TestWrap_Defaults(t *testing.T) {
	svc, ok := Wrap(&countingEmbedder{}, Config{RequestsPerSecond: 2}).(*EmbeddingService)
	require.True(t, ok)
	assert.Equal(t, 1, svc.limiter.Burst())
	assert.Equal(t, DefaultBackoff, svc.backoff)
	assert.Equal(t, "counting", svc.ModelName())
}

func TestEmbed_Throttles(t *testing.T) {
	inner := &countingEmbedder{}
	svc := Wrap(inner, Config{RequestsPerSecond: 20, BurstSize: 1})

	start := time.Now()
	for range 3 {
		_, err := svc.Embed(context.Background(), "x")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), inner.calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestEmbedBatch_CancelledWhileWaiting(t *testing.T) {
	inner := &countingEmbedder{}
	svc := Wrap(inner, Config{RequestsPerSecond: 0.001, BurstSize: 1})

	_, err := svc.EmbedBatch(context.Background(), []string{"a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.EmbedBatch(ctx, []string{"b"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestEmbed_BacksOffAfterRateLimit(t *testing.T) {
	inner := &countingEmbedder{err: fmt.Errorf("openai: %w", domain.ErrRateLimited)}
	svc := Wrap(inner, Config{RequestsPerSecond: 1000, BurstSize: 10, Backoff: time.Hour})

	_, err := svc.Embed(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrRateLimited)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.Embed(ctx, "y")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), inner.calls.Load())
}
