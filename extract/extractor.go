// Package extract implements the camshaft specification extractor: ordered
// regular-expression tables that turn vendor copy into structured fields.
package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/camseed"
)

// Ensure Extractor implements camseed.Extractor at compile time.
var _ camseed.Extractor = (*Extractor)(nil)

// Extractor extracts camshaft specs from free-form product text.
// Extractor holds no per-call state and returns identical records for
// identical input.
type Extractor struct {
	limits             camseed.Limits
	brands             []Brand
	prefixes           map[string]string
	requireBrand       bool
	titleBrandFallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLimits sets the plausibility windows.
// Defaults to camseed.DefaultLimits() if not specified.
func WithLimits(l camseed.Limits) Option {
	return func(e *Extractor) {
		e.limits = l
	}
}

// WithBrands replaces the brand table. Order is resolution order.
func WithBrands(brands []Brand) Option {
	return func(e *Extractor) {
		e.brands = brands
	}
}

// WithPrefixes replaces the part-number prefix table.
func WithPrefixes(prefixes map[string]string) Option {
	return func(e *Extractor) {
		e.prefixes = prefixes
	}
}

// WithRequireBrand controls whether blocks with an unresolved brand are
// rejected. Defaults to true.
func WithRequireBrand(require bool) Option {
	return func(e *Extractor) {
		e.requireBrand = require
	}
}

// WithTitleBrandFallback controls whether the first word of the title is
// used as the brand when neither table resolves it. Defaults to true.
func WithTitleBrandFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.titleBrandFallback = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		limits:             camseed.DefaultLimits(),
		brands:             DefaultBrands(),
		prefixes:           DefaultPrefixes(),
		requireBrand:       true,
		titleBrandFallback: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements camseed.Extractor.
func (e *Extractor) Extract(block camseed.TextBlock) (*camseed.CamshaftSpec, camseed.Reject) {
	title := collapse(block.Title)
	if title == "" {
		return nil, camseed.RejectNoTitle
	}
	if isNoise(title) {
		return nil, camseed.RejectNoise
	}

	text := collapse(block.Text)
	if text == "" {
		text = title
	}

	pn := partNumber(block.PartNumber, text)
	if pn == "" {
		return nil, camseed.RejectNoPartNumber
	}

	brand := e.resolveBrand(title, pn)
	if e.requireBrand && brand == camseed.UnknownBrand {
		return nil, camseed.RejectNoBrand
	}

	return &camseed.CamshaftSpec{
		Brand:      brand,
		PartNumber: pn,
		Name:       title,
		Duration:   e.duration(text),
		Lift:       e.lift(text),
		LSA:        e.lsa(text),
		SourceURL:  block.URL,
	}, ""
}

// duration returns the first in-range pair from the highest-priority
// pattern that yields one.
func (e *Extractor) duration(text string) *camseed.Duration {
	for _, p := range durationPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			in, ok1 := ParseDuration(m[p.a])
			ex, ok2 := ParseDuration(m[p.b])
			if !ok1 || !ok2 {
				continue
			}
			if e.limits.Duration.Contains(float64(in)) && e.limits.Duration.Contains(float64(ex)) {
				return &camseed.Duration{Intake: in, Exhaust: ex, Basis: p.basis}
			}
		}
	}
	return nil
}

// lift returns the in-range pair that appears last in text. Vendor copy
// often quotes unrelated figures such as peak valve lift before the real
// pair. On equal positions the earlier pattern wins.
func (e *Extractor) lift(text string) *camseed.Lift {
	var found *camseed.Lift
	pos := -1
	for _, p := range liftPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			ia, ib := 2*p.a, 2*p.b
			if loc[ia] < 0 || loc[ib] < 0 || loc[ia] <= pos {
				continue
			}
			in, ok1 := ParseLift(text[loc[ia]:loc[ia+1]])
			ex, ok2 := ParseLift(text[loc[ib]:loc[ib+1]])
			if !ok1 || !ok2 {
				continue
			}
			if e.limits.Lift.Contains(in) && e.limits.Lift.Contains(ex) {
				found = &camseed.Lift{Intake: in, Exhaust: ex}
				pos = loc[ia]
			}
		}
	}
	return found
}

// lsa returns the first in-range lobe separation angle.
func (e *Extractor) lsa(text string) *float64 {
	for _, p := range lsaPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			v, ok := ParseAngle(m[p.group])
			if ok && e.limits.LSA.Contains(v) {
				return &v
			}
		}
	}
	return nil
}

var noisePattern = regexp.MustCompile(`^\(\s*\d+\s*\)$`)

// isNoise reports whether a title is a pagination or numbering marker
// such as "( 2 )".
func isNoise(title string) bool {
	if noisePattern.MatchString(title) {
		return true
	}
	return strings.HasPrefix(title, "(") && strings.HasSuffix(title, ")") && len(title) < 10
}

// partNumber returns the normalized part number from the structural hint or
// the first "Part Number:" callout in text, or "" if none is valid.
func partNumber(hint, text string) string {
	pn := strings.ToUpper(strings.TrimSpace(hint))
	if pn == "" {
		if m := partNumberPattern.FindStringSubmatch(text); m != nil {
			pn = strings.ToUpper(m[1])
		}
	}
	if !camseed.ValidPartNumber(pn) {
		return ""
	}
	return pn
}

// collapse trims s and folds all whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
