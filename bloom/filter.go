// Package bloom provides part-number deduplication backed by a Bloom filter.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/camseed"
)

var _ camseed.PartSet = (*PartSet)(nil)

// PartSet is a case-insensitive set of part numbers.
//
// Membership is checked against a Bloom filter first so that the common
// miss path skips the map lookup. Positive filter hits are confirmed against
// the exact set, so Contains never reports a false positive.
type PartSet struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewPartSet creates a PartSet sized for n expected part numbers with the
// given Bloom filter false positive rate.
func NewPartSet(n uint, fpRate float64) *PartSet {
	if n == 0 {
		n = 1
	}
	return &PartSet{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}, n),
	}
}

// NewPartSetFrom creates a PartSet pre-populated with partNumbers.
func NewPartSetFrom(partNumbers []string, fpRate float64) *PartSet {
	s := NewPartSet(uint(len(partNumbers)), fpRate)
	for _, pn := range partNumbers {
		s.Add(pn)
	}
	return s
}

// Add adds a part number. Empty values are ignored.
func (s *PartSet) Add(partNumber string) {
	key := normalize(partNumber)
	if key == "" {
		return
	}
	s.f.AddString(key)
	s.exact[key] = struct{}{}
}

// Contains reports whether the part number was added.
func (s *PartSet) Contains(partNumber string) bool {
	key := normalize(partNumber)
	if key == "" || !s.f.TestString(key) {
		return false
	}
	_, ok := s.exact[key]
	return ok
}

// Len returns the number of distinct part numbers in the set.
func (s *PartSet) Len() int {
	return len(s.exact)
}

// EstimatedCount returns the Bloom filter's approximation of the set size.
func (s *PartSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}

func normalize(partNumber string) string {
	return strings.ToUpper(strings.TrimSpace(partNumber))
}
