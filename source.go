package camseed

import "context"

// BlockSource yields candidate text blocks one page at a time.
// Static sources (files, transcripts) have a single page.
type BlockSource interface {
	// Page returns the blocks on the given 1-based page.
	// It returns an empty slice once n is past the last page.
	Page(ctx context.Context, n int) ([]TextBlock, error)
}

// PartSet is a set of case-normalized part numbers.
type PartSet interface {
	Contains(partNumber string) bool
	Add(partNumber string)
	Len() int
}

// Harvest is the outcome of one run over a BlockSource.
type Harvest struct {
	Specs      []*CamshaftSpec
	Pages      int
	Blocks     int
	Duplicates int
	Rejected   map[Reject]int
}

// RejectedTotal returns the number of rejected blocks across all reasons.
func (h *Harvest) RejectedTotal() int {
	var n int
	for _, c := range h.Rejected {
		n += c
	}
	return n
}

// HarvestProgress reports progress after each page.
type HarvestProgress struct {
	Page       int
	Blocks     int
	Accepted   int
	Rejected   int
	Duplicates int
}

// HarvestProgressFunc is called after each page is processed.
type HarvestProgressFunc func(HarvestProgress)
