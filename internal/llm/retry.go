package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/logging"
)

// RetryProvider retries transient provider errors with exponential backoff
// and jitter. A malformed completion is not an error at this layer, so it is
// never retried here; only transport-level failures are.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *logging.Logger
}

// WithRetry wraps p with retry logic. A MaxAttempts of one or less returns
// p unchanged, which is the default: one generation, one call.
func WithRetry(p Provider, cfg RetryConfig, logger *logging.Logger) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

// Reasons reported by classify.
const (
	reasonCancelled   = "cancelled"
	reasonAuth        = "authentication"
	reasonInvalid     = "invalid response"
	reasonRateLimit   = "rate limited"
	reasonUnavailable = "provider unavailable"
	reasonTransport   = "transport error"
)

// classify reports whether err is worth another attempt and why.
func classify(err error) (retry bool, reason string) {
	var (
		auth    *ErrAuthentication
		invalid *ErrInvalidResponse
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false, reasonCancelled
	case errors.As(err, &auth):
		return false, reasonAuth
	case errors.As(err, &invalid):
		return true, reasonInvalid
	case errors.As(err, &rl):
		return true, reasonRateLimit
	case errors.As(err, &unavail):
		return true, reasonUnavailable
	default:
		return true, reasonTransport
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	log := r.logger.With("request_id", RequestIDFrom(ctx), "purpose", PurposeFrom(ctx))
	invalidSeen := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		retry, reason := classify(err)
		if reason == reasonInvalid {
			// An unusable reply gets one more try, not the full budget.
			retry = !invalidSeen
			invalidSeen = true
		}
		if !retry || attempt >= r.config.MaxAttempts {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			log.Warn("giving up LLM retry: backoff exceeds deadline",
				"attempt", attempt, "reason", reason, "wait", wait)
			return nil, err
		}
		log.Warn("retrying LLM request",
			"attempt", attempt, "max_attempts", r.config.MaxAttempts,
			"reason", reason, "wait", wait, "error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff returns the wait before attempt+1. A rate limit's RetryAfter wins
// over the exponential schedule; both are capped at MaxWait.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return r.capWait(rl.RetryAfter)
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	wait += wait * 0.2 * (2*rand.Float64() - 1) // ±20%
	if wait < 0 {
		wait = 0
	}
	return r.capWait(time.Duration(wait))
}

func (r *RetryProvider) capWait(d time.Duration) time.Duration {
	if r.config.MaxWait > 0 && d > r.config.MaxWait {
		return r.config.MaxWait
	}
	return d
}
