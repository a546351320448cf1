// Package dateutils provides the date handling shared by the view engine and the CLI.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts used throughout the application.
const (
	DateLayoutISO   = "2006-01-02"
	MonthKeyLayout  = "2006-01"
	MonthLabelShort = "Jan 2006"
	MonthLabelLong  = "January 2006"
)

// UnknownMonthKey groups transactions whose date has no valid YYYY-MM prefix.
const UnknownMonthKey = "unknown"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])`)

// inputFormats are accepted for dates typed by the user; output is always ISO.
var inputFormats = []string{
	DateLayoutISO,
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"02.01.2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"20060102",
}

// MonthKey returns the YYYY-MM prefix of an ISO-like date, or UnknownMonthKey
// when the date does not start with a valid year and month.
func MonthKey(date string) string {
	date = strings.TrimSpace(date)
	if !monthKeyPattern.MatchString(date) {
		return UnknownMonthKey
	}
	return date[:7]
}

// IsValidMonthKey reports whether key is a YYYY-MM month key.
func IsValidMonthKey(key string) bool {
	return len(key) == 7 && monthKeyPattern.MatchString(key)
}

// YearOf returns the 4-digit year prefix of a date, or "" if there is none.
func YearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return date[:4]
}

// MonthLabel renders a month key as "Jan 2025".
func MonthLabel(key string) string {
	if !IsValidMonthKey(key) {
		return "Unknown date"
	}
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format(MonthLabelShort)
}

// NormalizeDate parses a user-entered date in any supported layout and returns it as YYYY-MM-DD.
func NormalizeDate(input string) (string, error) {
	cleaned := strings.Join(strings.Fields(input), " ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return "", fmt.Errorf("date is empty")
	}
	for _, layout := range inputFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(DateLayoutISO), nil
		}
	}
	return "", fmt.Errorf("unable to parse date: %s", input)
}

// IsISODate reports whether s is a valid YYYY-MM-DD date.
func IsISODate(s string) bool {
	_, err := time.Parse(DateLayoutISO, s)
	return err == nil
}
