package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"kimaijira/worklog"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, records []worklog.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headerRow()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.RowNumber),
			record.TaskID,
			record.TaskDescription,
			strconv.Itoa(record.TimeSpentSeconds),
			record.StartTime,
			record.SourceFile,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
