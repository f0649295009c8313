package fetchers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"resupplycharts/internal/models"
)

// timestampFields are tried in order when reading a record's time
var timestampFields = []string{"timestamp", "ts", "time", "block_timestamp", "date"}

// millisecondsThreshold marks timestamps published in milliseconds
const millisecondsThreshold = 1e10

// FieldMapping says which record fields feed a series
type FieldMapping struct {
	Value          string  // Primary value field, e.g. "apr"
	ValueScale     float64 // Multiplier for the primary value, 0 means 1
	Secondary      string  // Optional secondary field, e.g. "total_assets"
	SecondaryScale float64 // Multiplier for the secondary value, 0 means 1
}

// NormalizeSeries converts raw JSON records into a series. Records without a
// usable timestamp are dropped; a missing or non-numeric value becomes 0; a
// missing secondary value leaves the point without one.
func NormalizeSeries(records []interface{}, mapping FieldMapping) models.Series {
	valueScale := scaleOrOne(mapping.ValueScale)
	secondaryScale := scaleOrOne(mapping.SecondaryScale)

	series := make(models.Series, 0, len(records))
	for _, r := range records {
		rec, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		ts, ok := recordTimestamp(rec)
		if !ok {
			continue
		}

		p := models.DataPoint{Timestamp: ts}
		if v, ok := toFloat(rec[mapping.Value]); ok {
			p.Value = v * valueScale
		}
		if mapping.Secondary != "" {
			if v, ok := toFloat(rec[mapping.Secondary]); ok {
				p.SecondaryValue = models.Float(v * secondaryScale)
			}
		}
		series = append(series, p)
	}
	return series
}

func scaleOrOne(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

// recordTimestamp reads Unix seconds from the first timestamp field present
func recordTimestamp(rec map[string]interface{}) (int64, bool) {
	for _, field := range timestampFields {
		raw, present := rec[field]
		if !present {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			return parseDate(raw)
		}
		if v <= 0 {
			return 0, false
		}
		if v > millisecondsThreshold {
			v /= 1000
		}
		if v >= maxUnixSeconds {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates
func parseDate(raw interface{}) (int64, bool) {
	str, ok := raw.(string)
	if !ok {
		return 0, false
	}
	str = strings.TrimSpace(str)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}

// toFloat coerces JSON numbers and numeric strings. NaN and infinities are rejected.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
