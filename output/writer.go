package output

import (
	"fmt"
	"strings"

	"kimaijira/worklog"
)

type Writer interface {
	Write(path string, records []worklog.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func headerRow() []string {
	return []string{"RowNumber", "TaskID", "TaskDescription", "TimeSpentSeconds", "StartTime", "SourceFile"}
}
