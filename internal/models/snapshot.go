package models

import (
	"strings"
	"time"
)

// Snapshot is one decoded copy of the pre-aggregated market data document.
// The document is kept generic; typed readers pick out the parts they need.
type Snapshot struct {
	Raw        map[string]interface{} // Decoded JSON document
	LastUpdate string                 // last_update as published, empty if absent
	UpdatedAt  *time.Time             // Parsed last_update, nil when not a plausible Unix time
	FetchedAt  time.Time              // When this copy was obtained
	Source     string                 // URL or file path it came from
}

// Lookup walks a dotted path such as "data.loan_repayment.bad_debt_history".
// It returns nil when any segment is missing or not an object.
func (s *Snapshot) Lookup(path string) interface{} {
	if s == nil || s.Raw == nil {
		return nil
	}
	var current interface{} = s.Raw
	if path == "" {
		return current
	}
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return current
}

// Records returns the array at path, or nil if the path does not hold an array
func (s *Snapshot) Records(path string) []interface{} {
	arr, _ := s.Lookup(path).([]interface{})
	return arr
}
