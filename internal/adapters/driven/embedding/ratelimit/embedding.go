// Package ratelimit throttles calls to hosted embedding APIs.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultBackoff is how long calls pause after the provider reports a rate limit.
const DefaultBackoff = 5 * time.Second

// Config holds the token bucket settings.
type Config struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64

	// BurstSize is the maximum burst. Defaults to 1.
	BurstSize int

	// Backoff is the pause after a rate-limit error (default: 5s).
	Backoff time.Duration
}

// EmbeddingService wraps another embedder with a token bucket.
type EmbeddingService struct {
	driven.EmbeddingService

	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// Wrap returns inner throttled to cfg. A non-positive rate returns inner unchanged.
func Wrap(inner driven.EmbeddingService, cfg Config) driven.EmbeddingService {
	if cfg.RequestsPerSecond <= 0 {
		return inner
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	return &EmbeddingService{
		EmbeddingService: inner,
		limiter:          rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		backoff:          cfg.Backoff,
	}
}

// Embed waits for a token, then embeds text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	vec, err := s.EmbeddingService.Embed(ctx, text)
	s.record(err)
	return vec, err
}

// EmbedBatch waits for a token, then embeds texts in one call.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	vectors, err := s.EmbeddingService.EmbedBatch(ctx, texts)
	s.record(err)
	return vectors, err
}

// wait honours any pending backoff, then the token bucket.
func (s *EmbeddingService) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		logger.Debug("Embedding rate limited, waiting %s", d.Round(time.Millisecond))
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return s.limiter.Wait(ctx)
}

// record starts a backoff window when the provider reported a rate limit.
func (s *EmbeddingService) record(err error) {
	if !errors.Is(err, domain.ErrRateLimited) {
		return
	}
	s.mu.Lock()
	s.retryAt = time.Now().Add(s.backoff)
	s.mu.Unlock()
}
