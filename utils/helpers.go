package utils

import (
	"fmt"
	"time"
)

// DefaultLookback is the stats window used when no start time is given.
const DefaultLookback = 7 * 24 * time.Hour

// IsValidInterval reports whether interval names a ClickHouse toStartOf*
// function. The value is interpolated into SQL, so only these are accepted.
func IsValidInterval(interval string) bool {
	switch interval {
	case "Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year":
		return true
	default:
		return false
	}
}

// ParseTimeRange parses optional RFC3339 start and end values. A missing end
// is now, a missing start is DefaultLookback before now.
func ParseTimeRange(startParam, endParam string, now time.Time) (start, end time.Time, err error) {
	now = now.UTC()
	if startParam != "" {
		start, err = time.Parse(time.RFC3339, startParam)
		if err != nil {
			return start, end, fmt.Errorf("invalid 'start' timestamp format, use RFC3339 (e.g., 2006-01-02T15:04:05Z): %w", err)
		}
	} else {
		start = now.Add(-DefaultLookback)
	}

	if endParam != "" {
		end, err = time.Parse(time.RFC3339, endParam)
		if err != nil {
			return start, end, fmt.Errorf("invalid 'end' timestamp format, use RFC3339 (e.g., 2006-01-02T15:04:05Z): %w", err)
		}
	} else {
		end = now
	}

	if end.Before(start) {
		return start, end, fmt.Errorf("'end' must not be before 'start'")
	}
	return start, end, nil
}
