package fs

import (
	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/extract"
)

// Record is the flat export shape shared by the JSON and CSV writers.
// Absent values are nil.
type Record struct {
	Brand        string   `json:"brand"`
	PartNumber   string   `json:"part_number"`
	Name         string   `json:"name"`
	DurationType *string  `json:"duration_type"`
	DurationInt  *int     `json:"duration_int"`
	DurationExh  *int     `json:"duration_exh"`
	LiftInt      *float64 `json:"lift_int"`
	LiftExh      *float64 `json:"lift_exh"`
	LSA          *float64 `json:"lsa"`
	URL          *string  `json:"url"`
}

// RecordColumns lists the export keys in output order.
var RecordColumns = []string{
	"brand", "part_number", "name",
	"duration_type", "duration_int", "duration_exh",
	"lift_int", "lift_exh", "lsa", "url",
}

// NewRecord flattens a spec.
func NewRecord(spec *camseed.CamshaftSpec) Record {
	r := Record{
		Brand:      spec.Brand,
		PartNumber: spec.PartNumber,
		Name:       spec.Name,
	}
	if spec.LSA != nil {
		// Match the precision of the CSV and SQL surfaces.
		lsa := extract.TruncateAngle(*spec.LSA)
		r.LSA = &lsa
	}
	if d := spec.Duration; d != nil {
		basis := string(d.Basis)
		intake, exhaust := d.Intake, d.Exhaust
		r.DurationType = &basis
		r.DurationInt = &intake
		r.DurationExh = &exhaust
	}
	if l := spec.Lift; l != nil {
		intake, exhaust := l.Intake, l.Exhaust
		r.LiftInt = &intake
		r.LiftExh = &exhaust
	}
	if spec.SourceURL != "" {
		u := spec.SourceURL
		r.URL = &u
	}
	return r
}
