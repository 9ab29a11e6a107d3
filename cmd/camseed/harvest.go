package main

import (
	"fmt"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/bloom"
	"github.com/fwojciec/camseed/extract"
	"github.com/fwojciec/camseed/fs"
	"github.com/fwojciec/camseed/harvest"
	"github.com/fwojciec/camseed/postgres"
	camslog "github.com/fwojciec/camseed/slog"
	"github.com/fwojciec/camseed/sqlite"
)

// falsePositiveRate is the Bloom prefilter target for part number sets.
const falsePositiveRate = 0.001

// output is a destination for accepted specs.
type output struct {
	name   string
	writer camseed.SpecWriter
}

// harvest runs the extraction loop over source, then writes the result to
// every configured output and prints the summary line.
func (d *Dependencies) harvest(source camseed.BlockSource, sourceName string, maxPages int) error {
	o := d.Output

	var excluded []string
	for _, path := range o.Exclude {
		pns, err := fs.ReadPartNumbers(path)
		if err != nil {
			return err
		}
		d.Logger.Debug("exclusion list", "path", path, "parts", len(pns))
		excluded = append(excluded, pns...)
	}

	var outputs []output
	if o.JSON != "" {
		outputs = append(outputs, output{"json", fs.NewJSONWriter(o.JSON)})
	}
	if o.CSV != "" {
		outputs = append(outputs, output{"csv", fs.NewCSVWriter(o.CSV)})
	}
	if o.SQL != "" {
		outputs = append(outputs, output{"sql", fs.NewSQLWriter(o.SQL, o.sqlConfig())})
	}

	if o.DB != "" {
		db := sqlite.NewDB(o.DB)
		if err := db.Open(); err != nil {
			fmt.Fprintln(d.Stderr, "Hint: Set CAMSEED_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", o.DB, err)
		}
		defer db.Close()

		specs := sqlite.NewSpecService(db)
		pns, err := specs.PartNumbers(d.Ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		d.Logger.Debug("history", "path", o.DB, "parts", len(pns))
		excluded = append(excluded, pns...)
		outputs = append(outputs, output{"db", specs})
	}

	if o.Seed {
		db := postgres.NewDB(o.DatabaseURL)
		if err := db.Open(d.Ctx); err != nil {
			fmt.Fprintln(d.Stderr, "Hint: Check DATABASE_URL points at a reachable Postgres server")
			return err
		}
		defer db.Close()

		seeder := postgres.NewSeeder(db, o.seedConfig(sourceName))
		pns, err := seeder.PartNumbers(d.Ctx)
		if err != nil {
			return fmt.Errorf("load seeded parts: %w", err)
		}
		d.Logger.Debug("seeded", "table", o.SeedTable, "parts", len(pns))
		excluded = append(excluded, pns...)
		outputs = append(outputs, output{"seed", seeder})
	}

	h := &harvest.Harvester{
		Source:    camslog.NewLoggingSource(source, d.Logger),
		Extractor: camslog.NewLoggingExtractor(extract.NewExtractor(extract.WithRequireBrand(o.RequireBrand)), d.Logger),
		Excluded:  bloom.NewPartSetFrom(excluded, falsePositiveRate),
		Seen:      bloom.NewPartSet(1024, falsePositiveRate),
		MaxPages:  maxPages,
		Progress: func(p camseed.HarvestProgress) {
			d.Logger.Info("progress",
				"page", p.Page,
				"blocks", p.Blocks,
				"accepted", p.Accepted,
				"rejected", p.Rejected,
				"duplicates", p.Duplicates,
			)
		},
	}

	res, runErr := h.Run(d.Ctx)
	if res == nil {
		return runErr
	}
	if runErr != nil {
		d.Logger.Warn("harvest stopped early, writing partial results", "pages", res.Pages, "err", runErr)
	}

	for _, out := range outputs {
		if err := out.writer.WriteSpecs(d.Ctx, res.Specs); err != nil {
			return fmt.Errorf("write %s: %w", out.name, err)
		}
	}

	for reason, n := range res.Rejected {
		d.Logger.Debug("rejected", "reason", reason, "count", n)
	}
	fmt.Fprintf(d.Stdout, "%d specs, %d rejected, %d duplicates\n", len(res.Specs), res.RejectedTotal(), res.Duplicates)

	return runErr
}
