package extract

import (
	"strings"

	"github.com/fwojciec/camseed"
)

// Brand maps a canonical brand name to the case-insensitive aliases that
// identify it in a product title.
type Brand struct {
	Name    string
	Aliases []string
}

// DefaultBrands returns the brand table in resolution order.
// The first brand with an alias contained in the title wins, so the order
// matters for titles mentioning several names ("COMP Cams Magnum ...").
func DefaultBrands() []Brand {
	return []Brand{
		{Name: "COMP Cams", Aliases: []string{"COMP Cams", "Xtreme Energy", "Thumpr", "Magnum"}},
		{Name: "Melling", Aliases: []string{"Melling"}},
		{Name: "Howards Cams", Aliases: []string{"Howards Cams", "Howards"}},
		{Name: "Trick Flow Specialties", Aliases: []string{"Trick Flow", "TFS"}},
		{Name: "Ford Performance Parts", Aliases: []string{"Ford Performance"}},
		{Name: "Summit Racing", Aliases: []string{"Summit Racing", "SUM-"}},
		{Name: "Edelbrock", Aliases: []string{"Edelbrock", "EDL-"}},
	}
}

// DefaultPrefixes returns the retailer part-number prefix table.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"CCA": "COMP Cams",
		"EDL": "Edelbrock",
		"FMS": "Ford Performance Parts",
		"HRS": "Howards Cams",
		"MEL": "Melling",
		"SUM": "Summit Racing",
		"TFS": "Trick Flow Specialties",
	}
}

// resolveBrand returns the brand for a title, falling back to the part number
// prefix and then, if enabled, the first word of the title.
func (e *Extractor) resolveBrand(title, partNumber string) string {
	lower := strings.ToLower(title)
	for _, b := range e.brands {
		for _, alias := range b.Aliases {
			if strings.Contains(lower, strings.ToLower(alias)) {
				return b.Name
			}
		}
	}

	prefix, _, _ := strings.Cut(partNumber, "-")
	if name, ok := e.prefixes[prefix]; ok {
		return name
	}

	if e.titleBrandFallback {
		if fields := strings.Fields(title); len(fields) > 0 && !strings.HasPrefix(fields[0], "(") {
			return fields[0]
		}
	}
	return camseed.UnknownBrand
}
