package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/extract"
	"github.com/fwojciec/camseed/sqlite"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Output.DB == "" {
		return camseed.Errorf(camseed.EINVALID, "history requires --db or CAMSEED_DB")
	}

	db := sqlite.NewDB(deps.Output.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", deps.Output.DB, err)
	}
	defer db.Close()
	specs := sqlite.NewSpecService(db)

	if c.PartNumber != "" {
		return ShowSpec(deps.Ctx, deps.Stdout, specs, c.PartNumber)
	}

	filter := camseed.SpecFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Brand != "" {
		filter.Brand = &c.Brand
	}
	return ListSpecs(deps.Ctx, deps.Stdout, specs, filter)
}

// ListSpecs prints one line per stored spec matching filter.
func ListSpecs(ctx context.Context, w io.Writer, specs camseed.SpecService, filter camseed.SpecFilter) error {
	found, err := specs.FindSpecs(ctx, filter)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(w, "No specs stored.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PART NUMBER\tBRAND\tDURATION\tLIFT\tLSA")
	for _, s := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.PartNumber, s.Brand, duration(s), lift(s), lsa(s))
	}
	return tw.Flush()
}

// ShowSpec prints every field of one stored spec.
func ShowSpec(ctx context.Context, w io.Writer, specs camseed.SpecService, partNumber string) error {
	s, err := specs.FindSpecByPartNumber(ctx, partNumber)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Part number:\t%s\n", s.PartNumber)
	fmt.Fprintf(tw, "Brand:\t%s\n", s.Brand)
	fmt.Fprintf(tw, "Name:\t%s\n", s.Name)
	fmt.Fprintf(tw, "Duration:\t%s\n", duration(s))
	fmt.Fprintf(tw, "Lift:\t%s\n", lift(s))
	fmt.Fprintf(tw, "LSA:\t%s\n", lsa(s))
	if s.SourceURL != "" {
		fmt.Fprintf(tw, "URL:\t%s\n", s.SourceURL)
	}
	return tw.Flush()
}

func duration(s *camseed.CamshaftSpec) string {
	if s.Duration == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d %s", s.Duration.Intake, s.Duration.Exhaust, s.Duration.Basis)
}

func lift(s *camseed.CamshaftSpec) string {
	if s.Lift == nil {
		return "-"
	}
	return extract.FormatLift(s.Lift.Intake) + "/" + extract.FormatLift(s.Lift.Exhaust)
}

func lsa(s *camseed.CamshaftSpec) string {
	if s.LSA == nil {
		return "-"
	}
	return extract.FormatAngle(*s.LSA)
}
