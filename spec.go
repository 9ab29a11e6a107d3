package camseed

import (
	"context"
	"regexp"
)

// DurationBasis tags the measurement convention of a duration pair.
type DurationBasis string

// DurationBasis constants, in decreasing order of precision.
const (
	BasisFifty       DurationBasis = "@.050"
	BasisAdvertised  DurationBasis = "advertised"
	BasisUnspecified DurationBasis = "unspecified"
)

// Duration is an intake/exhaust valve-open duration pair in crank degrees.
type Duration struct {
	Intake  int
	Exhaust int
	Basis   DurationBasis
}

// Lift is an intake/exhaust maximum valve lift pair in decimal inches.
type Lift struct {
	Intake  float64
	Exhaust float64
}

// CamshaftSpec is a structured camshaft record extracted from catalog text.
// Duration, Lift and LSA are nil when the text does not state them.
type CamshaftSpec struct {
	Brand      string
	PartNumber string
	Name       string
	Duration   *Duration
	Lift       *Lift
	LSA        *float64
	SourceURL  string
}

// UnknownBrand marks a spec whose brand could not be resolved.
const UnknownBrand = "Unknown"

var partNumberRe = regexp.MustCompile(`^[A-Z0-9-]*[A-Z0-9][A-Z0-9-]*$`)

// ValidPartNumber reports whether pn is a normalized part number.
func ValidPartNumber(pn string) bool {
	return partNumberRe.MatchString(pn)
}

// Validate returns an error if the spec contains invalid fields.
func (s *CamshaftSpec) Validate() error {
	if s.PartNumber == "" {
		return Errorf(EINVALID, "spec part number required")
	}
	if !ValidPartNumber(s.PartNumber) {
		return Errorf(EINVALID, "spec part number %q is malformed", s.PartNumber)
	}
	if s.Brand == "" || s.Brand == UnknownBrand {
		return Errorf(EINVALID, "spec brand required")
	}
	if s.Name == "" {
		return Errorf(EINVALID, "spec name required")
	}
	return nil
}

// SpecFilter represents a filter for FindSpecs.
type SpecFilter struct {
	Brand *string `json:"brand"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SpecWriter writes accepted specs to an output surface.
type SpecWriter interface {
	WriteSpecs(ctx context.Context, specs []*CamshaftSpec) error
}

// SpecService represents a service for managing previously harvested specs.
type SpecService interface {
	// CreateSpec stores a spec.
	// Returns ECONFLICT if the part number is already stored.
	CreateSpec(ctx context.Context, spec *CamshaftSpec) error

	// FindSpecByPartNumber retrieves a spec by part number.
	// Returns ENOTFOUND if the spec does not exist.
	FindSpecByPartNumber(ctx context.Context, partNumber string) (*CamshaftSpec, error)

	// FindSpecs retrieves specs matching the filter.
	FindSpecs(ctx context.Context, filter SpecFilter) ([]*CamshaftSpec, error)

	// PartNumbers returns every stored part number.
	PartNumbers(ctx context.Context) ([]string, error)
}
