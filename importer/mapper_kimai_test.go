package importer

import (
	"strings"
	"testing"

	"kimaijira/config"
)

func kimaiTestConfig() config.Config {
	return config.Config{
		Timezone: "GMT",
		Columns: config.ColumnMap{
			Description: "Popis",
			Duration:    "Doba trvání",
			Date:        "Datum",
			Time:        "Od",
		},
		TaskRegex: config.DefaultTaskRegex,
	}
}

func kimaiTestRecord(description, duration, date, timeOfDay string) Record {
	return Record{
		RowNumber: 2,
		Values: map[string]string{
			normalizeHeader("Popis"):       description,
			normalizeHeader("Doba trvání"): duration,
			normalizeHeader("Datum"):       date,
			normalizeHeader("Od"):          timeOfDay,
		},
	}
}

func TestKimaiMapper_ExtractsTaskIDAndDescription(t *testing.T) {
	t.Parallel()

	mapper, err := NewKimaiMapper(kimaiTestConfig())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	entry, ok, err := mapper.Map(kimaiTestRecord("PROJ-42: Fixed bug", "3600", "2024-01-15", "09:30"), "timesheet.csv")
	if err != nil {
		t.Fatalf("map record: %v", err)
	}
	if !ok {
		t.Fatalf("expected matched record")
	}

	if entry.TaskID != "PROJ-42" {
		t.Fatalf("unexpected task id: %q", entry.TaskID)
	}
	if entry.TaskDescription != "Fixed bug" {
		t.Fatalf("unexpected task description: %q", entry.TaskDescription)
	}
	if entry.TimeSpentSeconds != 3600 {
		t.Fatalf("unexpected seconds: %d", entry.TimeSpentSeconds)
	}
	if entry.StartTime != "2024-01-15 09:30" {
		t.Fatalf("unexpected start time: %q", entry.StartTime)
	}
	if entry.SourceFile != "timesheet.csv" {
		t.Fatalf("unexpected source file: %q", entry.SourceFile)
	}
}

func TestKimaiMapper_SkipsNonMatchingDescription(t *testing.T) {
	t.Parallel()

	mapper, err := NewKimaiMapper(kimaiTestConfig())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	entry, ok, err := mapper.Map(kimaiTestRecord("lunch break", "1800", "2024-01-15", "12:00"), "timesheet.csv")
	if err != nil {
		t.Fatalf("expected silent skip, got error: %v", err)
	}
	if ok || entry != nil {
		t.Fatalf("expected skipped row, got %+v", entry)
	}
}

func TestKimaiMapper_NonNumericDurationFailsRun(t *testing.T) {
	t.Parallel()

	mapper, err := NewKimaiMapper(kimaiTestConfig())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	_, _, err = mapper.Map(kimaiTestRecord("PROJ-1 work", "one hour", "2024-01-15", "09:00"), "timesheet.csv")
	if err == nil {
		t.Fatalf("expected duration parse error")
	}
	if !strings.Contains(err.Error(), "parse duration") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKimaiMapper_NegativeDurationFailsRun(t *testing.T) {
	t.Parallel()

	mapper, err := NewKimaiMapper(kimaiTestConfig())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	_, _, err = mapper.Map(kimaiTestRecord("PROJ-1 work", "-60", "2024-01-15", "09:00"), "timesheet.csv")
	if err == nil {
		t.Fatalf("expected negative duration error")
	}
	if !strings.Contains(err.Error(), "negative") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKimaiMapper_SeparatorWithoutColon(t *testing.T) {
	t.Parallel()

	mapper, err := NewKimaiMapper(kimaiTestConfig())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}

	entry, ok, err := mapper.Map(kimaiTestRecord("ABC-7 review comments", "900", "2024-02-01", "14:15"), "timesheet.csv")
	if err != nil {
		t.Fatalf("map record: %v", err)
	}
	if !ok {
		t.Fatalf("expected matched record")
	}
	if entry.TaskID != "ABC-7" || entry.TaskDescription != "review comments" {
		t.Fatalf("unexpected extraction: %+v", entry)
	}
}
