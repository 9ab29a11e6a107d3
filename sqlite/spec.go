package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/camseed"
	"github.com/google/uuid"
)

var (
	_ camseed.SpecService = (*SpecService)(nil)
	_ camseed.SpecWriter  = (*SpecService)(nil)
)

const specSelect = `SELECT part_number, brand, name, duration_type, duration_int, duration_exh,
	lift_int, lift_exh, lsa, source_url FROM specs`

// SpecService implements camseed.SpecService using SQLite.
type SpecService struct {
	db *DB
}

// NewSpecService creates a new SpecService.
func NewSpecService(db *DB) *SpecService {
	return &SpecService{db: db}
}

// CreateSpec stores a spec. Returns ECONFLICT if the part number exists.
func (s *SpecService) CreateSpec(ctx context.Context, spec *camseed.CamshaftSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM specs WHERE part_number = ?", spec.PartNumber).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return camseed.Errorf(camseed.ECONFLICT, "spec %s already exists", spec.PartNumber)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	c := columnsOf(spec)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO specs (id, part_number, brand, name, duration_type, duration_int, duration_exh,
			lift_int, lift_exh, lsa, source_url, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), spec.PartNumber, spec.Brand, spec.Name, c.durationType, c.durationInt, c.durationExh,
		c.liftInt, c.liftExh, c.lsa, spec.SourceURL, hashSpec(spec), now, now)

	return err
}

// WriteSpecs records specs in one transaction. Existing part numbers are
// refreshed only when their content changed.
func (s *SpecService) WriteSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) error {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO specs (id, part_number, brand, name, duration_type, duration_int, duration_exh,
			lift_int, lift_exh, lsa, source_url, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(part_number) DO UPDATE SET
			brand = excluded.brand,
			name = excluded.name,
			duration_type = excluded.duration_type,
			duration_int = excluded.duration_int,
			duration_exh = excluded.duration_exh,
			lift_int = excluded.lift_int,
			lift_exh = excluded.lift_exh,
			lsa = excluded.lsa,
			source_url = excluded.source_url,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
		WHERE specs.content_hash != excluded.content_hash
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, spec := range specs {
		c := columnsOf(spec)
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), spec.PartNumber, spec.Brand, spec.Name,
			c.durationType, c.durationInt, c.durationExh, c.liftInt, c.liftExh, c.lsa,
			spec.SourceURL, hashSpec(spec), now, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSpecByPartNumber retrieves a spec by part number.
func (s *SpecService) FindSpecByPartNumber(ctx context.Context, partNumber string) (*camseed.CamshaftSpec, error) {
	row := s.db.QueryRowContext(ctx, specSelect+" WHERE part_number = ?", strings.ToUpper(strings.TrimSpace(partNumber)))

	spec, err := scanSpec(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, camseed.Errorf(camseed.ENOTFOUND, "spec not found")
	}
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// FindSpecs retrieves specs matching the filter, ordered by part number.
func (s *SpecService) FindSpecs(ctx context.Context, filter camseed.SpecFilter) ([]*camseed.CamshaftSpec, error) {
	var query strings.Builder
	var args []any

	query.WriteString(specSelect + " WHERE 1=1")
	if filter.Brand != nil {
		query.WriteString(" AND brand = ?")
		args = append(args, *filter.Brand)
	}
	query.WriteString(" ORDER BY part_number ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := []*camseed.CamshaftSpec{}
	for rows.Next() {
		spec, err := scanSpec(rows)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

// PartNumbers returns every stored part number.
func (s *SpecService) PartNumbers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT part_number FROM specs ORDER BY part_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var pn string
		if err := rows.Scan(&pn); err != nil {
			return nil, err
		}
		out = append(out, pn)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSpec(row scanner) (*camseed.CamshaftSpec, error) {
	var spec camseed.CamshaftSpec
	var c specColumns
	if err := row.Scan(&spec.PartNumber, &spec.Brand, &spec.Name, &c.durationType, &c.durationInt, &c.durationExh,
		&c.liftInt, &c.liftExh, &c.lsa, &spec.SourceURL); err != nil {
		return nil, err
	}
	c.apply(&spec)
	return &spec, nil
}
