package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Legacy documents stored excludedDates as a bare array of date strings.
// MigrateAppData upgrades such payloads to the current object form in one
// pass at load time, leaving current-schema payloads untouched.
func MigrateAppData(data []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	excluded, ok := raw["excludedDates"]
	if !ok {
		return data, nil
	}

	var legacy []string
	if err := json.Unmarshal(excluded, &legacy); err != nil {
		// Already the object form
		return data, nil
	}

	upgraded := make([]ExcludedDate, 0, len(legacy))
	for _, s := range legacy {
		date, err := parseDate(s)
		if err != nil {
			continue
		}
		upgraded = append(upgraded, ExcludedDate{Date: date})
	}

	encoded, err := json.Marshal(upgraded)
	if err != nil {
		return nil, err
	}
	raw["excludedDates"] = encoded

	return json.Marshal(raw)
}

// parseDate accepts both RFC3339 date-times and bare YYYY-MM-DD dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
