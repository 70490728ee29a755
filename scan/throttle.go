package scan

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/inlink"
	"golang.org/x/time/rate"
)

var (
	_ inlink.Throttle      = (*RandomDelay)(nil)
	_ inlink.DomainLimiter = (*DomainLimiter)(nil)
)

// RandomDelay sleeps for a random duration drawn from its Politeness
// delay range on every Wait.
type RandomDelay struct {
	Politeness inlink.Politeness
}

// NewRandomDelay returns a throttle that waits between p.MinDelay and
// p.MaxDelay before each request.
func NewRandomDelay(p inlink.Politeness) *RandomDelay {
	return &RandomDelay{Politeness: p}
}

// Wait blocks for a random delay or until ctx is canceled.
func (d *RandomDelay) Wait(ctx context.Context) error {
	delay := d.Politeness.Delay()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, so concurrent workers
// hitting the same host are held to a shared rate.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
