package mock

import (
	"context"

	"github.com/fwojciec/camseed"
)

var _ camseed.BlockSource = (*BlockSource)(nil)

// BlockSource is a mock implementation of camseed.BlockSource.
type BlockSource struct {
	PageFn func(ctx context.Context, n int) ([]camseed.TextBlock, error)
}

func (s *BlockSource) Page(ctx context.Context, n int) ([]camseed.TextBlock, error) {
	return s.PageFn(ctx, n)
}

var _ camseed.PartSet = (*PartSet)(nil)

// PartSet is a mock implementation of camseed.PartSet.
type PartSet struct {
	ContainsFn func(partNumber string) bool
	AddFn      func(partNumber string)
	LenFn      func() int
}

func (s *PartSet) Contains(partNumber string) bool {
	return s.ContainsFn(partNumber)
}

func (s *PartSet) Add(partNumber string) {
	s.AddFn(partNumber)
}

func (s *PartSet) Len() int {
	return s.LenFn()
}
