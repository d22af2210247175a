package submitter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kimaijira/internal/timeutil"
	"kimaijira/jira"
	"kimaijira/worklog"
)

type Options struct {
	DryRun          bool
	VisibilityGroup string
}

// Summary aggregates per-record outcomes for the whole run. Partial
// success is an accepted end state; callers decide exit-code policy.
type Summary struct {
	Total     int
	Submitted int
	Failed    int
	DryRun    bool
}

// Run submits records strictly in sequence: one record is fully processed
// before the next begins. Submission failures are logged and counted, not
// raised; a start time that does not parse fails the run, since the
// remaining records cannot be trusted.
func Run(
	ctx context.Context,
	client jira.Client,
	records []worklog.Record,
	location *time.Location,
	options Options,
	log zerolog.Logger,
) (*Summary, error) {
	log = log.With().Str("run_id", uuid.NewString()).Logger()
	summary := &Summary{Total: len(records), DryRun: options.DryRun}

	for _, record := range records {
		started, err := timeutil.Started(record.StartTime, location)
		if err != nil {
			return summary, err
		}

		payload := jira.NewWorklogPayload(record.TaskDescription, started, record.TimeSpentSeconds, options.VisibilityGroup)

		if options.DryRun {
			log.Info().
				Str("task_id", record.TaskID).
				Int("seconds", record.TimeSpentSeconds).
				Str("started", started).
				Str("description", record.TaskDescription).
				Msg("dry run: would add worklog")
			summary.Submitted++
			continue
		}

		outcome := client.AddWorklog(ctx, record.TaskID, payload)
		if outcome.Success() {
			log.Info().
				Str("task_id", record.TaskID).
				Int("seconds", record.TimeSpentSeconds).
				Str("started", started).
				Msg("worklog added")
			summary.Submitted++
			continue
		}

		log.Error().
			Str("task_id", record.TaskID).
			Str("kind", outcome.Kind.String()).
			Int("status", outcome.StatusCode).
			Str("message", outcome.Message).
			Msg("failed to add worklog")
		summary.Failed++
	}

	return summary, nil
}
