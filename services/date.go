package services

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day format used for date inputs and bucket keys
const DateLayout = "2006-01-02"

// ParseDate parses a date string in YYYY-MM-DD format
func ParseDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// ParseExpiryDate parses a raw license expiry as YYYY-MM-DD or RFC 3339.
// Blank or unparseable values yield nil, which classifies as "no expiry".
func ParseExpiryDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := ParseDate(raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t
	}
	return nil
}

// DayKey returns the bucket key for the day containing t
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
