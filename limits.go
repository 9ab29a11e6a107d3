package camseed

// Range is an inclusive plausibility window for an extracted value.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Limits holds the plausibility windows used to reject false-positive
// matches. Values outside a window are discarded, never clamped.
type Limits struct {
	Duration Range
	Lift     Range
	LSA      Range
}

// DefaultLimits returns the windows tuned for street and race camshafts.
// Duration starts at 180 because mild cams quote .050 figures in the 190s.
func DefaultLimits() Limits {
	return Limits{
		Duration: Range{Min: 180, Max: 340},
		Lift:     Range{Min: 0.2, Max: 0.8},
		LSA:      Range{Min: 100, Max: 120},
	}
}
