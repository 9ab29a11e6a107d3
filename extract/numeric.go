package extract

import (
	"math"
	"strconv"
	"strings"
)

// ParseDuration parses a duration value and rounds it to the nearest degree.
func ParseDuration(s string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(v)), true
}

// ParseLift normalizes a lift value to decimal inches rounded to three places.
// A leading "." is read as "0.", and a bare integer of at most three digits
// is read as thousandths ("228" is 0.228).
func ParseLift(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ".") {
		if strings.HasPrefix(s, ".") {
			s = "0" + s
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return roundLift(v), true
	}
	if len(s) > 3 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return roundLift(float64(n) / 1000), true
}

func roundLift(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ParseAngle parses an angle in degrees.
func ParseAngle(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatLift formats a lift value in inches with three decimals.
func FormatLift(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// TruncateAngle truncates an angle to two decimals.
func TruncateAngle(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	// The epsilon keeps values like 110.29 from truncating to 110.28.
	return math.Trunc(v*100+1e-9) / 100
}

// FormatAngle formats an angle as an integer when whole, otherwise truncated
// to two decimals with trailing zeros stripped.
func FormatAngle(v float64) string {
	t := TruncateAngle(v)
	if t == math.Trunc(t) {
		return strconv.FormatInt(int64(t), 10)
	}
	s := strconv.FormatFloat(t, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
