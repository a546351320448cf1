package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Statistics and export periods understood by the backend.
const (
	PeriodMonth        = "month"
	PeriodLast3Months  = "last3months"
	PeriodLast12Months = "last12months"
	PeriodYear         = "year"
	PeriodAll          = "all"

	customPrefix = "custom-"
	rangePrefix  = "range-"
)

// CustomMonthPeriod builds the "custom-YYYY-MM" period for a single month.
func CustomMonthPeriod(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", customPrefix, year, int(month))
}

// RangePeriod builds the "range-START_END" period used by the PDF export.
func RangePeriod(start, end time.Time) string {
	return rangePrefix + start.Format(DateLayoutISO) + "_" + end.Format(DateLayoutISO)
}

// ValidatePeriod checks that period is one of the named periods or a well-formed custom/range period.
func ValidatePeriod(period string) error {
	switch period {
	case PeriodMonth, PeriodLast3Months, PeriodLast12Months, PeriodYear, PeriodAll:
		return nil
	}

	if strings.HasPrefix(period, customPrefix) {
		key := strings.TrimPrefix(period, customPrefix)
		if !IsValidMonthKey(key) {
			return fmt.Errorf("invalid custom period %q: expected custom-YYYY-MM", period)
		}
		return nil
	}

	if strings.HasPrefix(period, rangePrefix) {
		start, end, err := parseRange(strings.TrimPrefix(period, rangePrefix))
		if err != nil {
			return fmt.Errorf("invalid range period %q: %w", period, err)
		}
		if end.Before(start) {
			return fmt.Errorf("invalid range period %q: end before start", period)
		}
		return nil
	}

	return fmt.Errorf("unknown period %q", period)
}

// PeriodLabel returns the human label the reports use for a period.
func PeriodLabel(period string, today time.Time) string {
	switch {
	case strings.HasPrefix(period, rangePrefix):
		raw := strings.TrimPrefix(period, rangePrefix)
		if _, _, err := parseRange(raw); err != nil {
			return "Custom Range"
		}
		parts := strings.SplitN(raw, "_", 2)
		return parts[0] + " to " + parts[1]
	case strings.HasPrefix(period, customPrefix):
		t, err := time.Parse(MonthKeyLayout, strings.TrimPrefix(period, customPrefix))
		if err != nil {
			return "Selected Month"
		}
		return t.Format(MonthLabelLong)
	}

	switch period {
	case PeriodMonth:
		return today.Format(MonthLabelLong)
	case PeriodLast3Months:
		return "Last 3 Months"
	case PeriodLast12Months:
		return "Last 12 Months"
	case PeriodYear:
		return fmt.Sprintf("Year to Date (%d)", today.Year())
	case PeriodAll:
		return "All Time"
	}
	return "Selected Period"
}

func parseRange(raw string) (time.Time, time.Time, error) {
	parts := strings.Split(raw, "_")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("expected START_END")
	}
	start, err := time.Parse(DateLayoutISO, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad start date: %w", err)
	}
	end, err := time.Parse(DateLayoutISO, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad end date: %w", err)
	}
	return start, end, nil
}
