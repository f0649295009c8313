package charts

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Formatter turns an axis or tooltip value into display text
type Formatter func(float64) string

var magnitudeSuffixes = []string{"", "k", "M", "B", "T"}

// Fixed formats with a fixed number of decimals
func Fixed(decimals int) Formatter {
	return func(v float64) string {
		return fixed(v, decimals)
	}
}

// Percent formats with a fixed number of decimals and a trailing %
func Percent(decimals int) Formatter {
	return func(v float64) string {
		return fixed(v, decimals) + "%"
	}
}

// RoundedPercent rounds to a whole number and appends %
func RoundedPercent() Formatter {
	return func(v float64) string {
		return strconv.FormatFloat(roundHalfUp(v), 'f', 0, 64) + "%"
	}
}

// Millions divides by one million and appends M
func Millions(decimals int) Formatter {
	return func(v float64) string {
		return fixed(v/1e6, decimals) + "M"
	}
}

// Abbreviated formats with a k/M/B/T suffix keeping three significant digits
// above one thousand, e.g. 1234567 -> "1.23M", 248130 -> "248k", 100 -> "100"
func Abbreviated() Formatter {
	return AbbreviateNumber
}

// Prefixed puts prefix in front of every label, e.g. a currency sign
func Prefixed(prefix string, f Formatter) Formatter {
	return func(v float64) string {
		return prefix + f(v)
	}
}

// AbbreviateNumber is the function behind Abbreviated
func AbbreviateNumber(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "0"
	}

	abs := math.Abs(v)
	idx := int(math.Floor(math.Log10(abs) / 3))
	if idx < 0 {
		idx = 0
	}
	if idx > len(magnitudeSuffixes)-1 {
		idx = len(magnitudeSuffixes) - 1
	}

	scaled := v / math.Pow(1000, float64(idx))
	if idx == 0 {
		return strconv.FormatFloat(roundHalfUp(scaled), 'f', 0, 64)
	}

	digits := int(math.Floor(math.Log10(math.Abs(scaled)))) + 1
	decimals := 3 - digits
	if decimals < 0 {
		decimals = 0
	}
	return fixed(scaled, decimals) + magnitudeSuffixes[idx]
}

// FormatTimestamp formats Unix seconds as "MM/DD HH:MM" in UTC, "-" for zero
func FormatTimestamp(ts int64) string {
	if ts <= 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("01/02 15:04")
}

// FormatDate formats Unix seconds as "MM/DD/YYYY" in UTC, "-" for zero
func FormatDate(ts int64) string {
	if ts <= 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("01/02/2006")
}

// tooltipDate formats the hovered point's day as "M/D/YYYY" in UTC
func tooltipDate(ts int64) string {
	t := time.Unix(ts, 0).UTC()
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func fixed(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	// "-0.00" reads as noise on an axis
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 && s[0] == '-' {
		s = s[1:]
	}
	return s
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}
