// Package ratelimit spaces out requests to the same host.
package ratelimit

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/aleister1102/pagemirror/internal/urlhandler"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// HostLimiter keeps one token bucket per host:port, shared by every caller.
type HostLimiter struct {
	limiters map[string]*rate.Limiter
	mapLock  sync.RWMutex
	limit    rate.Limit
	burst    int
	logger   zerolog.Logger
}

// NewHostLimiter allows one request per interval to each host, with the given
// burst. interval <= 0 disables limiting.
func NewHostLimiter(interval time.Duration, burst int, logger zerolog.Logger) *HostLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}

	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
		logger:   logger.With().Str("component", "HostLimiter").Logger(),
	}
}

// Wait blocks until a request to u's host is allowed or ctx is done.
func (hl *HostLimiter) Wait(ctx context.Context, u *url.URL) error {
	key := urlhandler.HostKey(u)
	limiter := hl.limiterFor(key)

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	if waited := time.Since(start); waited > time.Millisecond {
		hl.logger.Debug().Str("host", key).Dur("waited", waited).Msg("Politeness delay applied")
	}
	return nil
}

// Hosts returns how many distinct hosts have been seen
func (hl *HostLimiter) Hosts() int {
	hl.mapLock.RLock()
	defer hl.mapLock.RUnlock()
	return len(hl.limiters)
}

func (hl *HostLimiter) limiterFor(key string) *rate.Limiter {
	hl.mapLock.RLock()
	limiter, exists := hl.limiters[key]
	hl.mapLock.RUnlock()

	if exists {
		return limiter
	}

	hl.mapLock.Lock()
	defer hl.mapLock.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := hl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(hl.limit, hl.burst)
	hl.limiters[key] = limiter
	return limiter
}
