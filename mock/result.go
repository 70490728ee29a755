package mock

import (
	"context"

	"github.com/fwojciec/inlink"
)

var _ inlink.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of inlink.ResultStore.
type ResultStore struct {
	SaveFn   func(ctx context.Context, result *inlink.Result) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ResultStore) Save(ctx context.Context, result *inlink.Result) error {
	return s.SaveFn(ctx, result)
}

func (s *ResultStore) Commit() error {
	return s.CommitFn()
}

func (s *ResultStore) Abort() error {
	return s.AbortFn()
}
