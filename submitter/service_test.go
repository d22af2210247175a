package submitter

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"kimaijira/jira"
	"kimaijira/worklog"
)

type fakeClient struct {
	calls    []call
	outcomes map[string]jira.Outcome
}

type call struct {
	taskID  string
	payload jira.WorklogPayload
}

func (f *fakeClient) AddWorklog(_ context.Context, taskID string, payload jira.WorklogPayload) jira.Outcome {
	f.calls = append(f.calls, call{taskID: taskID, payload: payload})
	if outcome, ok := f.outcomes[taskID]; ok {
		return outcome
	}
	return jira.Outcome{Kind: jira.OutcomeSuccess, StatusCode: http.StatusCreated}
}

func testRecords() []worklog.Record {
	return []worklog.Record{
		{RowNumber: 2, TaskID: "PROJ-42", TaskDescription: "Fixed bug", TimeSpentSeconds: 3600, StartTime: "2024-01-15 09:30"},
		{RowNumber: 3, TaskID: "OPS-7", TaskDescription: "Incident response", TimeSpentSeconds: 1800, StartTime: "2024-01-15 11:00"},
	}
}

func prague(t *testing.T) *time.Location {
	t.Helper()

	location, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return location
}

func TestRun_SubmitsRecordsInOrder(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	summary, err := Run(context.Background(), client, testRecords(), prague(t), Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("run submit: %v", err)
	}

	if summary.Total != 2 || summary.Submitted != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(client.calls))
	}
	if client.calls[0].taskID != "PROJ-42" || client.calls[1].taskID != "OPS-7" {
		t.Fatalf("unexpected call order: %+v", client.calls)
	}
	if client.calls[0].payload.Started != "2024-01-15T09:30:00.000+0100" {
		t.Fatalf("unexpected started value: %q", client.calls[0].payload.Started)
	}
	if client.calls[0].payload.TimeSpentSeconds != 3600 {
		t.Fatalf("unexpected seconds: %d", client.calls[0].payload.TimeSpentSeconds)
	}
	if client.calls[0].payload.Visibility != nil {
		t.Fatalf("expected visibility to be omitted")
	}
}

func TestRun_DryRunPerformsNoNetworkCalls(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	summary, err := Run(context.Background(), client, testRecords(), prague(t), Options{DryRun: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("run submit: %v", err)
	}

	if len(client.calls) != 0 {
		t.Fatalf("dry run must not call the API, got %d calls", len(client.calls))
	}
	if summary.Submitted != 2 || summary.Failed != 0 || !summary.DryRun {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRun_NotFoundIsReportedAndBatchContinues(t *testing.T) {
	t.Parallel()

	client := &fakeClient{outcomes: map[string]jira.Outcome{
		"PROJ-42": {Kind: jira.OutcomeNotFound, StatusCode: http.StatusNotFound, Message: "issue not found or insufficient permissions"},
	}}

	summary, err := Run(context.Background(), client, testRecords(), prague(t), Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("run submit: %v", err)
	}

	if summary.Failed != 1 || summary.Submitted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected batch to continue after failure, got %d calls", len(client.calls))
	}
}

func TestRun_VisibilityGroupPassedThrough(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	_, err := Run(context.Background(), client, testRecords()[:1], prague(t), Options{VisibilityGroup: "dev-team"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("run submit: %v", err)
	}

	visibility := client.calls[0].payload.Visibility
	if visibility == nil || visibility.Type != "group" || visibility.Identifier != "dev-team" {
		t.Fatalf("unexpected visibility: %+v", visibility)
	}
}

func TestRun_BadStartTimeFailsRun(t *testing.T) {
	t.Parallel()

	records := []worklog.Record{
		{RowNumber: 2, TaskID: "PROJ-42", TaskDescription: "Fixed bug", TimeSpentSeconds: 3600, StartTime: "15.01.2024 09:30"},
	}

	client := &fakeClient{}
	_, err := Run(context.Background(), client, records, prague(t), Options{}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected start time parse error")
	}
	if !strings.Contains(err.Error(), "parse start time") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected no calls after parse failure, got %d", len(client.calls))
	}
}
