package mock

import "github.com/fwojciec/inlink"

var _ inlink.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of inlink.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*inlink.PageText, error)
}

func (e *Extractor) Extract(html string) (*inlink.PageText, error) {
	return e.ExtractFn(html)
}
