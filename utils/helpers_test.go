package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInterval(t *testing.T) {
	for _, interval := range []string{"Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year"} {
		assert.True(t, IsValidInterval(interval), interval)
	}
	for _, interval := range []string{"", "day", "Second", "Day; DROP"} {
		assert.False(t, IsValidInterval(interval), interval)
	}
}

func TestParseTimeRange(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	start, end, err := ParseTimeRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-DefaultLookback), start)
	assert.Equal(t, now, end)

	start, end, err = ParseTimeRange("2024-05-01T00:00:00Z", "2024-05-02T00:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), end.UTC())
}

func TestParseTimeRangeErrors(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		start, end string
	}{
		{"bad start", "yesterday", ""},
		{"bad end", "", "2024-05-02"},
		{"end before start", "2024-05-02T00:00:00Z", "2024-05-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseTimeRange(tt.start, tt.end, now)
			assert.Error(t, err)
		})
	}
}
