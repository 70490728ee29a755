package inlink

import (
	"context"
	"math/rand/v2"
	"time"
)

// DefaultUserAgents is the identity pool used when none is configured.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
}

// Default delay bounds between page requests.
const (
	DefaultMinDelay = 1 * time.Second
	DefaultMaxDelay = 3 * time.Second
)

// Politeness configures how requests identify themselves and how they are
// paced. It is passed to fetchers and throttles rather than held globally,
// so tests can use a single user agent and zero delay.
type Politeness struct {
	// UserAgents is the pool a User-Agent header is drawn from,
	// independently for every request.
	UserAgents []string

	// MinDelay and MaxDelay bound the random wait before each page request.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultPoliteness returns the built-in identity pool and a 1-3s delay.
func DefaultPoliteness() Politeness {
	return Politeness{
		UserAgents: append([]string(nil), DefaultUserAgents...),
		MinDelay:   DefaultMinDelay,
		MaxDelay:   DefaultMaxDelay,
	}
}

// Validate returns EINVALID for an empty pool or inverted delay bounds.
func (p Politeness) Validate() error {
	if len(p.UserAgents) == 0 {
		return Errorf(EINVALID, "at least one user agent required")
	}
	if p.MinDelay < 0 {
		return Errorf(EINVALID, "min delay must be non-negative")
	}
	if p.MaxDelay < p.MinDelay {
		return Errorf(EINVALID, "max delay %s is less than min delay %s", p.MaxDelay, p.MinDelay)
	}
	return nil
}

// UserAgent returns a user agent picked uniformly from the pool.
// An empty pool falls back to DefaultUserAgents.
func (p Politeness) UserAgent() string {
	pool := p.UserAgents
	if len(pool) == 0 {
		pool = DefaultUserAgents
	}
	if len(pool) == 1 {
		return pool[0]
	}
	return pool[rand.IntN(len(pool))]
}

// Delay returns a duration drawn uniformly from [MinDelay, MaxDelay].
func (p Politeness) Delay() time.Duration {
	if p.MaxDelay <= p.MinDelay {
		return max(p.MinDelay, 0)
	}
	return p.MinDelay + rand.N(p.MaxDelay-p.MinDelay+1)
}

// Throttle paces outgoing page requests.
type Throttle interface {
	// Wait blocks until the next request may be sent.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
