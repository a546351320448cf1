package dateutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{"iso date", "2025-01-05", "2025-01"},
		{"month only", "2025-12", "2025-12"},
		{"surrounding spaces", " 2024-07-31 ", "2024-07"},
		{"empty", "", UnknownMonthKey},
		{"too short", "2025-1", UnknownMonthKey},
		{"month out of range", "2025-13-01", UnknownMonthKey},
		{"european layout", "05.01.2025", UnknownMonthKey},
		{"slashes", "2025/01/05", UnknownMonthKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthKey(tt.date))
		})
	}
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, "2025", YearOf("2025-01-05"))
	assert.Equal(t, "", YearOf("25-1"))
	assert.Equal(t, "", YearOf("abcd-01-01"))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan 2025", MonthLabel("2025-01"))
	assert.Equal(t, "Unknown date", MonthLabel(UnknownMonthKey))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		hasError bool
	}{
		{"2024-01-15", "2024-01-15", false},
		{"15/01/2024", "2024-01-15", false},
		{"2024/01/15", "2024-01-15", false},
		{"15-01-2024", "2024-01-15", false},
		{"15 Jan 2024", "2024-01-15", false},
		{"Jan 15, 2024", "2024-01-15", false},
		{"20240115", "2024-01-15", false},
		{"", "", true},
		{"yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2025-02-28"))
	assert.False(t, IsISODate("2025-02-30"))
	assert.False(t, IsISODate("28/02/2025"))
}
