package extract

import (
	"regexp"

	"github.com/fwojciec/camseed"
)

// Pattern fragments. All patterns run against whitespace-collapsed text.
const (
	// num is a duration or angle value.
	num = `(\d+(?:\.\d+)?)`

	// dec is a decimal lift value, with or without the leading zero.
	dec = `(\d*\.\d+)`

	// sep joins the members of an intake/exhaust pair: "/" or "," after an
	// optional short unit token ("277 Int./290", ".442 in./.442"), or a bare
	// intake token ("288 Int. 300").
	sep = `(?:[^\d/,]{0,12}[/,]|\s+Int(?:ake)?\.?)\s*`

	fifty = `(?:@|at)\s*0?\.050(?:\s*in\.?|")?`

	// bareFifty also accepts a leading ".050" with no "@".
	bareFifty = `(?:(?:@|at)\s*)?0?\.050(?:\s*in\.?|")?`

	// gap spans a callout such as " Lift: " or " (Int./Exh.): " between a
	// keyword and its pair.
	gap = `[^\d]{0,20}`

	adv = `Adver(?:tised|\.)\s*Dur(?:ation|\.)`
	dur = `\bDur(?:ation|\.)`
	exh = `(?:Exh(?:aust)?\.?\s*)?`

	// compact is the oval-track catalog shorthand
	// "advInt/advExh-050Int/050Exh-liftInt/liftExh-lsa", e.g.
	// "280/284-250/254-.592/.608-106".
	compact = `(\d{3})\s*/\s*(\d{3})\s*-\s*(\d{3})\s*/\s*(\d{3})\s*-\s*(\d*\.\d+)\s*/\s*(\d*\.\d+)\s*-\s*(\d{2,3}(?:\.\d+)?)`
)

var (
	partNumberPattern = regexp.MustCompile(`(?i:part\s+number)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9-]*)`)
	compactPattern    = mustCompile(compact)
)

func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// pairPattern locates an intake/exhaust pair in the capture groups a and b.
type pairPattern struct {
	re   *regexp.Regexp
	a, b int
}

type durationPattern struct {
	pairPattern
	basis camseed.DurationBasis
}

// durationPatterns are tried in order. The .050 phrasing is the most
// comparable across vendors and wins over advertised figures.
var durationPatterns = []durationPattern{
	{pairPattern{mustCompile(num + sep + num + `\s*` + exh + `(?:` + dur + `\s*)?` + fifty), 1, 2}, camseed.BasisFifty},
	{pairPattern{mustCompile(dur + `\s*` + fifty + gap + num + sep + num), 1, 2}, camseed.BasisFifty},
	{pairPattern{mustCompile(bareFifty + `\s*` + dur + gap + num + sep + num), 1, 2}, camseed.BasisFifty},
	{pairPattern{compactPattern, 3, 4}, camseed.BasisFifty},
	{pairPattern{mustCompile(num + sep + num + `\s*` + exh + adv), 1, 2}, camseed.BasisAdvertised},
	{pairPattern{mustCompile(adv + `[^\d]{0,6}` + num + sep + num), 1, 2}, camseed.BasisAdvertised},
	{pairPattern{compactPattern, 1, 2}, camseed.BasisAdvertised},
	{pairPattern{mustCompile(num + sep + num + `\s*` + exh + dur), 1, 2}, camseed.BasisUnspecified},
	{pairPattern{mustCompile(dur + `[^\d]{0,6}` + num + sep + num), 1, 2}, camseed.BasisUnspecified},
}

// liftPatterns are tried in order. Within one pattern the last in-range pair
// wins, since vendor copy often mentions unrelated figures earlier.
var liftPatterns = []pairPattern{
	{mustCompile(`\bLift\s*[:=]?\s*` + dec + sep + dec), 1, 2},
	{mustCompile(`\bLift\s*[:=]?\s*(\d{1,3})\s*Int(?:ake)?\.?\s*/\s*(\d{1,3})\s*Exh`), 1, 2},
	{mustCompile(dec + sep + dec + `\s*(?:in\.?|")?\s*(?:Valve\s+|Gross\s+)?Lift\b`), 1, 2},
	{compactPattern, 5, 6},
	{mustCompile(dec + `\s*/\s*` + dec), 1, 2},
}

type anglePattern struct {
	re    *regexp.Regexp
	group int
}

// lsaPatterns are tried in order; the first in-range value wins.
var lsaPatterns = []anglePattern{
	{mustCompile(`\bLobe\s+Separation(?:\s+Angle)?\s*[:=]?\s*` + num), 1},
	{mustCompile(`\bLobe\s+Sep\.?\s*[:=]?\s*` + num), 1},
	{mustCompile(`\bLSA\s*[:=]?\s*` + num), 1},
	{mustCompile(num + `\s*(?:°|deg\.?)?\s*(?:LSA\b|Lobe\s+Sep)`), 1},
	{compactPattern, 7},
}
