package fs

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/extract"
)

var _ camseed.SpecWriter = (*CSVWriter)(nil)

// CSVWriter writes specs as CSV with a header row of record keys.
// Absent values are empty cells.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter targeting path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteSpecs replaces the file with specs.
func (w *CSVWriter) WriteSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeAtomic(w.path, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(RecordColumns); err != nil {
			return err
		}
		for _, s := range specs {
			if err := cw.Write(csvRow(NewRecord(s))); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func csvRow(r Record) []string {
	return []string{
		r.Brand,
		r.PartNumber,
		r.Name,
		derefString(r.DurationType),
		formatInt(r.DurationInt),
		formatInt(r.DurationExh),
		formatFloat(r.LiftInt, extract.FormatLift),
		formatFloat(r.LiftExh, extract.FormatLift),
		formatFloat(r.LSA, extract.FormatAngle),
		derefString(r.URL),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64, format func(float64) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}
