package importer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"kimaijira/config"
	"kimaijira/worklog"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMatched    int
	RowsSkipped    int
	Records        []worklog.Record
}

// Run extracts worklog records from the given input files in file and row
// order. Rows whose description does not match the task pattern are
// skipped silently; a missing required column or an unparsable duration
// fails the whole run. An empty mapper name selects the Kimai mapper.
func Run(paths []string, format string, mapperName string, cfg config.Config) (*Result, error) {
	if strings.TrimSpace(mapperName) == "" {
		mapperName = "kimai"
	}
	mapper, err := MapperByName(mapperName, cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{Records: make([]worklog.Record, 0, 64)}
	for _, path := range paths {
		sourceFormat, err := inferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		table, err := reader.Read(path)
		if err != nil {
			return nil, err
		}
		if err := requireColumns(path, table, cfg.Columns); err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(table.Records)
		for _, record := range table.Records {
			entry, ok, mapErr := mapper.Map(record, path)
			if mapErr != nil {
				return nil, mapErr
			}
			if !ok || entry == nil {
				result.RowsSkipped++
				continue
			}

			result.RowsMatched++
			result.Records = append(result.Records, *entry)
		}
	}

	return result, nil
}

func requireColumns(path string, table *Table, columns config.ColumnMap) error {
	required := map[string]string{
		"description": columns.Description,
		"duration":    columns.Duration,
		"date":        columns.Date,
		"time":        columns.Time,
	}

	missing := make([]string, 0, len(required))
	for role, name := range required {
		if !table.HasColumn(name) {
			missing = append(missing, fmt.Sprintf("%s (%q)", role, name))
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return fmt.Errorf("input file %s is missing required columns: %s", path, strings.Join(missing, ", "))
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
