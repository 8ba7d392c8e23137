package request

import (
	"encoding/json"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the zone-less timestamp form accepted alongside RFC 3339.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Timestamp is a JSON time that accepts RFC 3339 or LocalDateTimeLayout.
// Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses RFC 3339 (with or without fractional seconds) or LocalDateTimeLayout.
func ParseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.ParseInLocation(LocalDateTimeLayout, raw, time.UTC); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation("2006-01-02T15:04", raw, time.UTC); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}
