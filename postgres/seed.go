package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/camseed"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Seeding defaults.
const (
	DefaultTable     = "public.cse_cam_submissions_table"
	DefaultUserID    = "seed-bot"
	DefaultChunkSize = 50
	StatusApproved   = "approved"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SeedConfig holds the constant values stamped on every seeded row.
type SeedConfig struct {
	Table        string
	UserID       string
	Make         string
	EngineFamily string
	Notes        string
	Source       string
}

func (c SeedConfig) withDefaults() SeedConfig {
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.UserID == "" {
		c.UserID = DefaultUserID
	}
	return c
}

// Validate returns EINVALID for an unusable table name.
func (c SeedConfig) Validate() error {
	if c.Table != "" && !tableName.MatchString(c.Table) {
		return camseed.Errorf(camseed.EINVALID, "invalid table name %q", c.Table)
	}
	return nil
}

// rowColumns lists the inserted columns in Row.Values order.
var rowColumns = []string{
	"id", "user_id", "cam_name", "brand", "part_number", "engine_make", "engine_family",
	"lsa", "duration_int_050", "duration_exh_050", "lift_int", "lift_exh",
	"advertised_int", "advertised_exh", "notes", "cam_card_path", "dyno_paths", "spec", "status",
}

// Row is one submissions table row.
type Row struct {
	ID             string
	UserID         string
	CamName        string
	Brand          string
	PartNumber     string
	EngineMake     *string
	EngineFamily   *string
	LSA            *float64
	DurationInt050 *int
	DurationExh050 *int
	LiftInt        *float64
	LiftExh        *float64
	AdvertisedInt  *int
	AdvertisedExh  *int
	Notes          *string
	CamCardPath    string
	DynoPaths      []string
	Spec           map[string]any
	Status         string
}

// Values returns the row's column values in insert order.
func (r Row) Values() []any {
	return []any{
		r.ID, r.UserID, r.CamName, r.Brand, r.PartNumber, r.EngineMake, r.EngineFamily,
		r.LSA, r.DurationInt050, r.DurationExh050, r.LiftInt, r.LiftExh,
		r.AdvertisedInt, r.AdvertisedExh, r.Notes, r.CamCardPath, r.DynoPaths, r.Spec, r.Status,
	}
}

// BuildRow maps a spec to a submissions row. Durations measured at 0.050"
// fill the duration_*_050 columns; any other basis fills advertised_*.
func BuildRow(spec *camseed.CamshaftSpec, cfg SeedConfig, id string, now time.Time) Row {
	cfg = cfg.withDefaults()

	row := Row{
		ID:           id,
		UserID:       cfg.UserID,
		CamName:      strings.TrimSpace(spec.Brand + " " + spec.PartNumber),
		Brand:        spec.Brand,
		PartNumber:   spec.PartNumber,
		EngineMake:   optional(cfg.Make),
		EngineFamily: optional(cfg.EngineFamily),
		LSA:          spec.LSA,
		Notes:        optional(cfg.Notes),
		CamCardPath:  "seed-data/" + spec.PartNumber + ".txt",
		DynoPaths:    []string{},
		Status:       StatusApproved,
	}

	payload := map[string]any{
		"name": spec.Name,
		"url":  spec.SourceURL,
	}
	var durationType any
	if d := spec.Duration; d != nil {
		intake, exhaust := d.Intake, d.Exhaust
		if d.Basis == camseed.BasisFifty {
			row.DurationInt050, row.DurationExh050 = &intake, &exhaust
		} else {
			row.AdvertisedInt, row.AdvertisedExh = &intake, &exhaust
		}
		durationType = string(d.Basis)
		payload["duration"] = fmt.Sprintf("%d/%d", d.Intake, d.Exhaust)
	}
	if l := spec.Lift; l != nil {
		intake, exhaust := l.Intake, l.Exhaust
		row.LiftInt, row.LiftExh = &intake, &exhaust
	}

	row.Spec = map[string]any{
		"source":        cfg.Source,
		"duration_type": durationType,
		"scraped_at":    now.UTC().Format(time.RFC3339),
		"payload":       payload,
	}
	return row
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ camseed.SpecWriter = (*Seeder)(nil)

// Seeder inserts specs into the submissions table.
type Seeder struct {
	db        *DB
	cfg       SeedConfig
	chunkSize int
	now       func() time.Time
}

// NewSeeder creates a Seeder.
func NewSeeder(db *DB, cfg SeedConfig) *Seeder {
	return &Seeder{
		db:        db,
		cfg:       cfg.withDefaults(),
		chunkSize: DefaultChunkSize,
		now:       time.Now,
	}
}

// PartNumbers returns every part number already in the table.
func (s *Seeder) PartNumbers(ctx context.Context) ([]string, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.pool.Query(ctx,
		"SELECT DISTINCT part_number FROM "+s.cfg.Table+" WHERE part_number IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("query part numbers: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// WriteSpecs inserts specs. It satisfies camseed.SpecWriter.
func (s *Seeder) WriteSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) error {
	_, err := s.InsertSpecs(ctx, specs)
	return err
}

// InsertSpecs inserts specs in chunks, one batch per chunk, and returns the
// number of rows inserted. Chunks already sent stay inserted when a later
// chunk fails.
func (s *Seeder) InsertSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) (int, error) {
	if err := s.cfg.Validate(); err != nil {
		return 0, err
	}

	query := InsertQuery(s.cfg.Table)
	now := s.now()

	var inserted int
	for _, chunk := range Chunk(specs, s.chunkSize) {
		b := &pgx.Batch{}
		for _, spec := range chunk {
			b.Queue(query, BuildRow(spec, s.cfg, uuid.New().String(), now).Values()...)
		}

		br := s.db.pool.SendBatch(ctx, b)
		for range chunk {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return inserted, fmt.Errorf("insert specs: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		if err := br.Close(); err != nil {
			return inserted, fmt.Errorf("insert specs: %w", err)
		}
	}
	return inserted, nil
}

// InsertQuery returns the parameterized INSERT for table.
func InsertQuery(table string) string {
	placeholders := make([]string, len(rowColumns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(rowColumns, ", "), strings.Join(placeholders, ", "))
}

// Chunk splits specs into consecutive slices of at most size elements.
func Chunk(specs []*camseed.CamshaftSpec, size int) [][]*camseed.CamshaftSpec {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out [][]*camseed.CamshaftSpec
	for i := 0; i < len(specs); i += size {
		out = append(out, specs[i:min(i+size, len(specs))])
	}
	return out
}
