package fs

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/extract"
)

// DefaultTable is the destination table for generated INSERT statements.
const DefaultTable = "public.cse_generic_cams"

// DefaultIntakeExhaust marks a cam as usable with either intake or exhaust
// port configurations.
const DefaultIntakeExhaust = "either"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLColumns lists the columns populated by each INSERT, in order.
var SQLColumns = []string{
	"make", "engine_family", "brand", "part_number", "name",
	"advertised_duration_intake", "advertised_duration_exhaust",
	"duration_050_intake", "duration_050_exhaust",
	"lobe_separation_angle", "lift_intake", "lift_exhaust",
	"rpm_peak", "intake_exhaust", "notes", "product_url", "created_at",
}

// SQLConfig holds the constant columns stamped on every row.
type SQLConfig struct {
	Table        string
	Make         string
	EngineFamily string
	Notes        string

	// RPMPeak is written as-is; listings never state one, so it is 0.
	RPMPeak int
	// IntakeExhaust defaults to DefaultIntakeExhaust.
	IntakeExhaust string
}

// Validate returns EINVALID for an unusable table name.
func (c SQLConfig) Validate() error {
	if c.Table != "" && !tableName.MatchString(c.Table) {
		return camseed.Errorf(camseed.EINVALID, "invalid table name %q", c.Table)
	}
	return nil
}

func (c SQLConfig) table() string {
	if c.Table == "" {
		return DefaultTable
	}
	return c.Table
}

func (c SQLConfig) intakeExhaust() string {
	if c.IntakeExhaust == "" {
		return DefaultIntakeExhaust
	}
	return c.IntakeExhaust
}

var _ camseed.SpecWriter = (*SQLWriter)(nil)

// SQLWriter writes one INSERT statement per spec.
type SQLWriter struct {
	path string
	cfg  SQLConfig
}

// NewSQLWriter creates a SQLWriter targeting path.
func NewSQLWriter(path string, cfg SQLConfig) *SQLWriter {
	return &SQLWriter{path: path, cfg: cfg}
}

// WriteSpecs replaces the file with a header comment and the statements.
func (w *SQLWriter) WriteSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.cfg.Validate(); err != nil {
		return err
	}

	return writeAtomic(w.path, func(out io.Writer) error {
		if _, err := fmt.Fprintf(out, "-- %d camshaft specs for %s\n", len(specs), w.cfg.table()); err != nil {
			return err
		}
		if w.cfg.Make != "" || w.cfg.EngineFamily != "" {
			if _, err := fmt.Fprintf(out, "-- %s\n", strings.TrimSpace(w.cfg.Make+" "+w.cfg.EngineFamily)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
		for _, s := range specs {
			if _, err := io.WriteString(out, InsertStatement(s, w.cfg)+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertStatement renders the INSERT for spec. Durations measured at
// 0.050" go to the duration_050 columns; any other basis is treated as
// advertised.
func InsertStatement(spec *camseed.CamshaftSpec, cfg SQLConfig) string {
	advInt, advExh, fiftyInt, fiftyExh := "NULL", "NULL", "NULL", "NULL"
	if d := spec.Duration; d != nil {
		if d.Basis == camseed.BasisFifty {
			fiftyInt, fiftyExh = strconv.Itoa(d.Intake), strconv.Itoa(d.Exhaust)
		} else {
			advInt, advExh = strconv.Itoa(d.Intake), strconv.Itoa(d.Exhaust)
		}
	}

	liftInt, liftExh := "NULL", "NULL"
	if l := spec.Lift; l != nil {
		liftInt, liftExh = extract.FormatLift(l.Intake), extract.FormatLift(l.Exhaust)
	}

	lsa := "NULL"
	if spec.LSA != nil {
		lsa = extract.FormatAngle(*spec.LSA)
	}

	values := []string{
		quote(cfg.Make),
		quote(cfg.EngineFamily),
		quote(spec.Brand),
		quote(spec.PartNumber),
		quote(spec.Name),
		advInt, advExh,
		fiftyInt, fiftyExh,
		lsa, liftInt, liftExh,
		strconv.Itoa(cfg.RPMPeak),
		quote(cfg.intakeExhaust()),
		quote(cfg.Notes),
		quote(spec.SourceURL),
		"now()",
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		cfg.table(), strings.Join(SQLColumns, ", "), strings.Join(values, ", "))
}

// quote renders s as a SQL string literal, or NULL when empty.
func quote(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
