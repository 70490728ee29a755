package mock

import (
	"context"

	"github.com/fwojciec/inlink"
)

var (
	_ inlink.Throttle      = (*Throttle)(nil)
	_ inlink.DomainLimiter = (*DomainLimiter)(nil)
)

// Throttle is a mock implementation of inlink.Throttle.
type Throttle struct {
	WaitFn func(ctx context.Context) error
}

func (t *Throttle) Wait(ctx context.Context) error {
	return t.WaitFn(ctx)
}

// DomainLimiter is a mock implementation of inlink.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
