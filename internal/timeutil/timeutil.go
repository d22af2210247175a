package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// naiveLayout is the date+time shape produced by the extractor.
	naiveLayout = "2006-01-02 15:04"
	// startedLayout is the Jira worklog "started" wire format: milliseconds
	// fixed at .000, offset with sign and no colon. Any deviation is
	// rejected by the API.
	startedLayout = "2006-01-02T15:04:05.000-0700"
)

// ParseNaive interprets a naive "YYYY-MM-DD HH:MM" value in the given location.
func ParseNaive(value string, location *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(naiveLayout, strings.TrimSpace(value), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start time %q: %w", value, err)
	}
	return parsed, nil
}

// FormatStarted renders a localized timestamp in the Jira worklog wire format.
func FormatStarted(value time.Time) string {
	return value.Format(startedLayout)
}

// Started localizes a naive start time and formats it for submission.
func Started(value string, location *time.Location) (string, error) {
	parsed, err := ParseNaive(value, location)
	if err != nil {
		return "", err
	}
	return FormatStarted(parsed), nil
}
