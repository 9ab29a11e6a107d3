package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/extract"
)

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// hashSpec computes an xxHash over the spec's exported fields so rewrites
// of an unchanged spec can be skipped.
func hashSpec(s *camseed.CamshaftSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\x00%s\x00%s\x00", s.Brand, s.PartNumber, s.Name)
	if d := s.Duration; d != nil {
		fmt.Fprintf(&b, "%d/%d/%s", d.Intake, d.Exhaust, d.Basis)
	}
	b.WriteByte(0)
	if l := s.Lift; l != nil {
		b.WriteString(extract.FormatLift(l.Intake) + "/" + extract.FormatLift(l.Exhaust))
	}
	b.WriteByte(0)
	if s.LSA != nil {
		b.WriteString(extract.FormatAngle(*s.LSA))
	}
	b.WriteByte(0)
	b.WriteString(s.SourceURL)

	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

// specColumns holds the nullable column values of a spec.
type specColumns struct {
	durationType sql.NullString
	durationInt  sql.NullInt64
	durationExh  sql.NullInt64
	liftInt      sql.NullFloat64
	liftExh      sql.NullFloat64
	lsa          sql.NullFloat64
}

func columnsOf(s *camseed.CamshaftSpec) specColumns {
	var c specColumns
	if d := s.Duration; d != nil {
		c.durationType = sql.NullString{String: string(d.Basis), Valid: true}
		c.durationInt = sql.NullInt64{Int64: int64(d.Intake), Valid: true}
		c.durationExh = sql.NullInt64{Int64: int64(d.Exhaust), Valid: true}
	}
	if l := s.Lift; l != nil {
		c.liftInt = sql.NullFloat64{Float64: l.Intake, Valid: true}
		c.liftExh = sql.NullFloat64{Float64: l.Exhaust, Valid: true}
	}
	if s.LSA != nil {
		c.lsa = sql.NullFloat64{Float64: *s.LSA, Valid: true}
	}
	return c
}

func (c specColumns) apply(s *camseed.CamshaftSpec) {
	if c.durationType.Valid && c.durationInt.Valid && c.durationExh.Valid {
		s.Duration = &camseed.Duration{
			Intake:  int(c.durationInt.Int64),
			Exhaust: int(c.durationExh.Int64),
			Basis:   camseed.DurationBasis(c.durationType.String),
		}
	}
	if c.liftInt.Valid && c.liftExh.Valid {
		s.Lift = &camseed.Lift{Intake: c.liftInt.Float64, Exhaust: c.liftExh.Float64}
	}
	if c.lsa.Valid {
		v := c.lsa.Float64
		s.LSA = &v
	}
}
