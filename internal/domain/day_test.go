package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDay(t *testing.T) {
	now := time.Date(2024, 6, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "today",
			date:     time.Date(2024, 6, 17, 0, 5, 0, 0, time.UTC),
			expected: "Today",
		},
		{
			name:     "yesterday",
			date:     time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC),
			expected: "Yesterday",
		},
		{
			name:     "two days ago",
			date:     time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			expected: "15 Jun 2024",
		},
		{
			name:     "across a year boundary",
			date:     time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
			expected: "31 Dec 2023",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelativeDay(tt.date, now))
		})
	}
}

func TestRelativeDay_YesterdayAcrossMonth(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", RelativeDay(time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), now))
}
