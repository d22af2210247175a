package importer

import (
	"fmt"
	"regexp"
	"strconv"

	"kimaijira/config"
	"kimaijira/worklog"
)

// KimaiMapper extracts worklog records from Kimai timesheet rows. The task
// pattern must expose at least three capture groups: group 1 is the task
// id, group 2 a separator that is discarded, group 3 the description.
type KimaiMapper struct {
	pattern *regexp.Regexp
	columns config.ColumnMap
}

func NewKimaiMapper(cfg config.Config) (*KimaiMapper, error) {
	pattern, err := cfg.TaskPattern()
	if err != nil {
		return nil, err
	}
	return &KimaiMapper{pattern: pattern, columns: cfg.Columns}, nil
}

func (m *KimaiMapper) Name() string {
	return "kimai"
}

func (m *KimaiMapper) Map(record Record, sourceFile string) (*worklog.Record, bool, error) {
	description := record.Get(m.columns.Description)
	match := m.pattern.FindStringSubmatch(description)
	if match == nil {
		return nil, false, nil
	}

	rawDuration := record.Get(m.columns.Duration)
	seconds, err := strconv.Atoi(rawDuration)
	if err != nil {
		return nil, false, fmt.Errorf("row %d: parse duration %q as seconds: %w", record.RowNumber, rawDuration, err)
	}
	if seconds < 0 {
		return nil, false, fmt.Errorf("row %d: duration must not be negative, got %d", record.RowNumber, seconds)
	}

	// The start time stays a naive string; it is localized at submission.
	startTime := record.Get(m.columns.Date) + " " + record.Get(m.columns.Time)

	entry := &worklog.Record{
		RowNumber:        record.RowNumber,
		TaskID:           match[1],
		TaskDescription:  match[3],
		TimeSpentSeconds: seconds,
		StartTime:        startTime,
		SourceFile:       sourceFile,
	}

	return entry, true, nil
}
