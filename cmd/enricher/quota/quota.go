package quota

import (
	"context"
	"sync"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
)

// EmbeddingQuotaLimiter enforces the per-minute/per-day limits on
// embedding model calls. It is in-memory under the assumption of a
// single enricher instance; a restart resets the counters.
type EmbeddingQuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time
}

// NewEmbeddingQuotaLimiterFromConfig builds a limiter from the
// embedding_quota section of config.yaml. Values of 0 or below disable
// the corresponding limit.
func NewEmbeddingQuotaLimiterFromConfig(cfg config.AppConfig) *EmbeddingQuotaLimiter {
	q := cfg.EmbeddingQuota

	requestsPerDay := q.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	requestsPerMinute := q.RequestsPerMinute
	if requestsPerMinute < 0 {
		requestsPerMinute = 0
	}

	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &EmbeddingQuotaLimiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
	}
}

// WaitAndReserve applies the limits before an embedding call.
// - Daily limit exhausted: returns (false, nil) and the caller skips
//   the embedding for this post.
// - Context cancelled while waiting: returns (false, error) so the
//   caller can decide between retry and abort.
func (l *EmbeddingQuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := time.Now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			nextAllowed := l.lastCall.Add(l.interval)
			delay = time.Until(nextAllowed)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		// Release the lock while waiting, then re-evaluate.
		l.mu.Unlock()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
