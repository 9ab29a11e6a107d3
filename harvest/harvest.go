// Package harvest runs the extraction loop over a paged block source.
// It feeds every block through an Extractor, drops part numbers that are
// excluded or already seen in the run, and tallies what was skipped.
package harvest

import (
	"context"
	"fmt"

	"github.com/fwojciec/camseed"
)

// DefaultMaxPages is the page ceiling applied when MaxPages is zero.
const DefaultMaxPages = 20

// Harvester orchestrates one extraction run.
type Harvester struct {
	Source    camseed.BlockSource
	Extractor camseed.Extractor

	// Excluded holds part numbers that must never be emitted, typically
	// loaded from prior runs or the destination table. May be nil.
	Excluded camseed.PartSet

	// Seen accumulates part numbers emitted during this run. Required.
	Seen camseed.PartSet

	MaxPages int
	Progress camseed.HarvestProgressFunc
}

// Run pages through Source until it runs dry, a page past the first yields
// nothing new, or MaxPages is reached.
//
// A source error on the first page is returned as-is with a nil Harvest.
// Errors on later pages stop the run; the partial Harvest is returned
// together with the wrapped error so callers can still write what they have.
func (h *Harvester) Run(ctx context.Context) (*camseed.Harvest, error) {
	if h.Source == nil || h.Extractor == nil || h.Seen == nil {
		return nil, camseed.Errorf(camseed.EINVALID, "harvester requires a source, an extractor and a seen set")
	}

	maxPages := h.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	result := &camseed.Harvest{
		Specs:    []*camseed.CamshaftSpec{},
		Rejected: make(map[camseed.Reject]int),
	}

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			if page == 1 {
				return nil, err
			}
			return result, fmt.Errorf("page %d: %w", page, err)
		}

		blocks, err := h.Source.Page(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			return result, fmt.Errorf("page %d: %w", page, err)
		}
		if len(blocks) == 0 {
			break
		}

		result.Pages++
		progress := h.processPage(page, blocks, result)

		if h.Progress != nil {
			h.Progress(progress)
		}

		if page > 1 && progress.Accepted == 0 {
			break
		}
	}

	return result, nil
}

func (h *Harvester) processPage(page int, blocks []camseed.TextBlock, result *camseed.Harvest) camseed.HarvestProgress {
	progress := camseed.HarvestProgress{Page: page, Blocks: len(blocks)}

	for _, block := range blocks {
		result.Blocks++

		spec, reject := h.Extractor.Extract(block)
		if spec == nil {
			if reject == "" {
				reject = camseed.RejectNoise
			}
			result.Rejected[reject]++
			progress.Rejected++
			continue
		}

		if h.isDuplicate(spec.PartNumber) {
			result.Duplicates++
			progress.Duplicates++
			continue
		}

		h.Seen.Add(spec.PartNumber)
		result.Specs = append(result.Specs, spec)
		progress.Accepted++
	}

	return progress
}

func (h *Harvester) isDuplicate(partNumber string) bool {
	if h.Excluded != nil && h.Excluded.Contains(partNumber) {
		return true
	}
	return h.Seen.Contains(partNumber)
}
