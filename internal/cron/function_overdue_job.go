package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type overdueRepo interface {
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}

// FunctionOverdueJobParams configure the overdue transition job.
type FunctionOverdueJobParams struct {
	Logger     *logger.Logger
	Repository overdueRepo
}

// NewFunctionOverdueJob flips stored statuses of pending functions whose date
// has passed. Timelines derive overdue at read time; this pass keeps the rows
// themselves in sync.
func NewFunctionOverdueJob(params FunctionOverdueJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("functions repository required")
	}
	return &functionOverdueJob{
		logg: params.Logger,
		repo: params.Repository,
		now:  time.Now,
	}, nil
}

type functionOverdueJob struct {
	logg *logger.Logger
	repo overdueRepo
	now  func() time.Time
}

func (j *functionOverdueJob) Name() string { return "function-overdue" }

func (j *functionOverdueJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	// Functions dated today are not overdue until the day ends.
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	updated, err := j.repo.MarkOverdue(ctx, startOfDay)
	if err != nil {
		return fmt.Errorf("function overdue pass: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       startOfDay,
		"rows_updated": updated,
	})
	j.logg.Info(logCtx, "function overdue pass complete")
	return nil
}
