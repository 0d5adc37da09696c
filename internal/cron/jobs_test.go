package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type fakeRetentionRepo struct {
	lastCutoff time.Time
	rows       int64
	err        error
	called     int
}

func (f *fakeRetentionRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	return f.rows, f.err
}

func (f *fakeRetentionRepo) ArchivePastWeddings(_ context.Context, olderThan time.Time) (int64, error) {
	f.called++
	f.lastCutoff = olderThan
	return f.rows, f.err
}

func (f *fakeRetentionRepo) MarkOverdue(_ context.Context, before time.Time) (int64, error) {
	f.called++
	f.lastCutoff = before
	return f.rows, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func TestWeddingArchivalJobUsesGracePeriod(t *testing.T) {
	now := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	repo := &fakeRetentionRepo{rows: 3}
	jobIface, err := NewWeddingArchivalJob(WeddingArchivalJobParams{Logger: testLogger(), Repository: repo})
	if err != nil {
		t.Fatalf("NewWeddingArchivalJob: %v", err)
	}
	job := jobIface.(*weddingArchivalJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := now.Add(-archivalGraceDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected repo called once, got %d", repo.called)
	}
}

func TestNotificationCleanupJobUsesRetention(t *testing.T) {
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	repo := &fakeRetentionRepo{rows: 42}
	jobIface, err := NewNotificationCleanupJob(NotificationCleanupJobParams{Logger: testLogger(), Repository: repo})
	if err != nil {
		t.Fatalf("NewNotificationCleanupJob: %v", err)
	}
	job := jobIface.(*notificationCleanupJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := now.Add(-notificationRetentionDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
}

func TestAuditCleanupJobUsesRetention(t *testing.T) {
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	repo := &fakeRetentionRepo{rows: 7}
	jobIface, err := NewAuditCleanupJob(AuditCleanupJobParams{Logger: testLogger(), Repository: repo, Retention: 10})
	if err != nil {
		t.Fatalf("NewAuditCleanupJob: %v", err)
	}
	job := jobIface.(*auditCleanupJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := now.Add(-10 * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
}

func TestFunctionOverdueJobCutsAtStartOfDay(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)
	repo := &fakeRetentionRepo{rows: 2}
	jobIface, err := NewFunctionOverdueJob(FunctionOverdueJobParams{Logger: testLogger(), Repository: repo})
	if err != nil {
		t.Fatalf("NewFunctionOverdueJob: %v", err)
	}
	job := jobIface.(*functionOverdueJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
}

func TestJobsPropagateErrors(t *testing.T) {
	repo := &fakeRetentionRepo{err: errors.New("boom")}
	jobIface, err := NewWeddingArchivalJob(WeddingArchivalJobParams{Logger: testLogger(), Repository: repo})
	if err != nil {
		t.Fatalf("NewWeddingArchivalJob: %v", err)
	}
	if err := jobIface.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
