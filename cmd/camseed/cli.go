package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/fs"
	"github.com/fwojciec/camseed/postgres"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Output OutputFlags
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" help:"Harvest specs from a live catalog listing"`
	Parse   ParseCmd   `cmd:"" help:"Harvest specs from a saved listing page"`
	Text    TextCmd    `cmd:"" help:"Harvest specs from transcribed listing text"`
	History HistoryCmd `cmd:"" help:"List specs recorded in the SQLite history"`

	Output  OutputFlags `embed:""`
	Verbose bool        `short:"v" help:"Log every fetch, page and rejected block"`
}

// OutputFlags are shared by every command.
type OutputFlags struct {
	JSON string `name:"json" type:"path" help:"Write records as a JSON array to this file"`
	CSV  string `name:"csv" type:"path" help:"Write records as CSV to this file"`
	SQL  string `name:"sql" type:"path" help:"Write INSERT statements to this file"`

	Exclude []string `short:"x" sep:"none" help:"Part numbers to skip, one file per flag (text or JSON output)"`

	DB          string `name:"db" type:"path" env:"CAMSEED_DB" help:"SQLite history: skips known parts and stores new ones"`
	Seed        bool   `help:"Skip parts already in Postgres and insert new ones"`
	DatabaseURL string `name:"database-url" env:"DATABASE_URL" help:"Postgres connection string used by --seed"`
	SeedTable   string `default:"${seed_table}" help:"Postgres submissions table used by --seed"`

	Table        string `default:"${sql_table}" help:"Table named in generated INSERT statements"`
	Make         string `default:"Ford" help:"Engine make stamped on every row"`
	EngineFamily string `default:"Windsor" help:"Engine family stamped on every row"`
	Notes        string `help:"Notes stamped on every row"`

	RequireBrand bool `default:"true" negatable:"" help:"Reject products whose brand cannot be determined"`
}

func (o OutputFlags) validate() error {
	if o.JSON == "" && o.CSV == "" && o.SQL == "" && o.DB == "" && !o.Seed {
		return camseed.Errorf(camseed.EINVALID, "no output: pass at least one of --json, --csv, --sql, --db or --seed")
	}
	if o.Seed && o.DatabaseURL == "" {
		return camseed.Errorf(camseed.EINVALID, "--seed requires --database-url or DATABASE_URL")
	}
	if err := o.sqlConfig().Validate(); err != nil {
		return err
	}
	return o.seedConfig("").Validate()
}

func (o OutputFlags) sqlConfig() fs.SQLConfig {
	return fs.SQLConfig{
		Table:        o.Table,
		Make:         o.Make,
		EngineFamily: o.EngineFamily,
		Notes:        o.Notes,
	}
}

func (o OutputFlags) seedConfig(source string) postgres.SeedConfig {
	return postgres.SeedConfig{
		Table:        o.SeedTable,
		Make:         o.Make,
		EngineFamily: o.EngineFamily,
		Notes:        o.Notes,
		Source:       source,
	}
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL       string        `arg:"" help:"Listing URL (first page)"`
	MaxPages  int           `short:"p" default:"20" help:"Maximum number of listing pages"`
	Rate      float64       `default:"1" help:"Requests per second per domain (0 disables limiting)"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Browser   bool          `short:"b" help:"Render pages with a headless browser"`
	UserAgent string        `name:"user-agent" help:"User-Agent header sent with every request"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File    string `arg:"" type:"existingfile" help:"Saved listing HTML"`
	BaseURL string `name:"base-url" help:"URL the page was saved from, used to resolve product links"`
}

// TextCmd is the "text" subcommand.
type TextCmd struct {
	File string `arg:"" help:"Transcript file, or - for stdin"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	PartNumber string `arg:"" optional:"" help:"Show one stored part instead of listing"`
	Brand      string `help:"Only list specs of this brand"`
	Limit      int    `default:"50" help:"Maximum number of specs to list (0 for all)"`
	Offset     int    `help:"Skip this many specs"`
}
