package worklog

// Record is the normalized worklog row extracted from a time-tracking export.
// StartTime stays a naive "YYYY-MM-DD HH:MM" string until submission, where
// it is localized to the configured timezone.
type Record struct {
	RowNumber        int
	TaskID           string
	TaskDescription  string
	TimeSpentSeconds int
	StartTime        string
	SourceFile       string
}
