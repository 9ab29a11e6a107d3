package mock

import "github.com/fwojciec/camseed"

var _ camseed.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of camseed.Extractor.
type Extractor struct {
	ExtractFn func(block camseed.TextBlock) (*camseed.CamshaftSpec, camseed.Reject)
}

func (e *Extractor) Extract(block camseed.TextBlock) (*camseed.CamshaftSpec, camseed.Reject) {
	return e.ExtractFn(block)
}
