package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

const archivalGraceDays = 7

type archivalRepo interface {
	ArchivePastWeddings(ctx context.Context, olderThan time.Time) (int64, error)
}

// WeddingArchivalJobParams configure the post-wedding archival job.
type WeddingArchivalJobParams struct {
	Logger     *logger.Logger
	Repository archivalRepo
	GraceDays  int
}

// NewWeddingArchivalJob archives weddings whose date passed more than the
// grace period ago. Archived weddings stay readable but drop out of active
// listings.
func NewWeddingArchivalJob(params WeddingArchivalJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("weddings repository required")
	}
	grace := params.GraceDays
	if grace <= 0 {
		grace = archivalGraceDays
	}
	return &weddingArchivalJob{
		logg:  params.Logger,
		repo:  params.Repository,
		grace: grace,
		now:   time.Now,
	}, nil
}

type weddingArchivalJob struct {
	logg  *logger.Logger
	repo  archivalRepo
	grace int
	now   func() time.Time
}

func (j *weddingArchivalJob) Name() string { return "post-wedding-archival" }

func (j *weddingArchivalJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.grace) * 24 * time.Hour)
	archived, err := j.repo.ArchivePastWeddings(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("wedding archival: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":        cutoff,
		"grace_days":    j.grace,
		"rows_archived": archived,
	})
	j.logg.Info(logCtx, "wedding archival complete")
	return nil
}
