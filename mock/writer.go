package mock

import (
	"context"

	"github.com/fwojciec/camseed"
)

var _ camseed.SpecWriter = (*SpecWriter)(nil)

// SpecWriter is a mock implementation of camseed.SpecWriter.
type SpecWriter struct {
	WriteSpecsFn func(ctx context.Context, specs []*camseed.CamshaftSpec) error
}

func (w *SpecWriter) WriteSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) error {
	return w.WriteSpecsFn(ctx, specs)
}

var _ camseed.SpecService = (*SpecService)(nil)

// SpecService is a mock implementation of camseed.SpecService.
type SpecService struct {
	CreateSpecFn           func(ctx context.Context, spec *camseed.CamshaftSpec) error
	FindSpecByPartNumberFn func(ctx context.Context, partNumber string) (*camseed.CamshaftSpec, error)
	FindSpecsFn            func(ctx context.Context, filter camseed.SpecFilter) ([]*camseed.CamshaftSpec, error)
	PartNumbersFn          func(ctx context.Context) ([]string, error)
}

func (s *SpecService) CreateSpec(ctx context.Context, spec *camseed.CamshaftSpec) error {
	return s.CreateSpecFn(ctx, spec)
}

func (s *SpecService) FindSpecByPartNumber(ctx context.Context, partNumber string) (*camseed.CamshaftSpec, error) {
	return s.FindSpecByPartNumberFn(ctx, partNumber)
}

func (s *SpecService) FindSpecs(ctx context.Context, filter camseed.SpecFilter) ([]*camseed.CamshaftSpec, error) {
	return s.FindSpecsFn(ctx, filter)
}

func (s *SpecService) PartNumbers(ctx context.Context) ([]string, error) {
	return s.PartNumbersFn(ctx)
}
