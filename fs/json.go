package fs

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fwojciec/camseed"
)

var _ camseed.SpecWriter = (*JSONWriter)(nil)

// JSONWriter writes specs as an indented JSON array of records.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// WriteSpecs replaces the file with specs.
func (w *JSONWriter) WriteSpecs(ctx context.Context, specs []*camseed.CamshaftSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([]Record, len(specs))
	for i, s := range specs {
		records[i] = NewRecord(s)
	}

	return writeAtomic(w.path, func(out io.Writer) error {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)
	})
}
