// Package editor realizes schedule mutations against the store. It is
// the only layer the dialog flows call on their terminal transitions.
package editor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/store"
)

var (
	ErrEmptyFrequency = errors.New("activity frequency is empty")
	ErrBadDuration    = errors.New("activity duration must be positive")
)

type Editor struct {
	repo store.Repo
	log  *zap.Logger
}

func New(repo store.Repo, log *zap.Logger) *Editor {
	return &Editor{repo: repo, log: log}
}

// CommitImport replaces the user's whole schedule with the imported
// batch: delete everything, then insert row by row. The insert loop is
// deliberately not transactional; a failure partway leaves a partially
// populated schedule, matching the system this replaces.
func (e *Editor) CommitImport(ctx context.Context, userID int64, entries []domain.Entry) error {
	if err := e.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	for i := range entries {
		if err := e.repo.InsertEntry(ctx, &entries[i]); err != nil {
			e.log.Error("import insert failed",
				zap.Int64("userID", userID),
				zap.Int("row", i),
				zap.Error(err),
			)
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}

// AddActivity persists one manually built entry after validating it.
func (e *Editor) AddActivity(ctx context.Context, entry *domain.Entry) error {
	if entry.Frequency == "" {
		return ErrEmptyFrequency
	}
	if entry.DurationMin <= 0 {
		return ErrBadDuration
	}
	return e.repo.InsertEntry(ctx, entry)
}

// EditField updates exactly one column of an existing entry. A missing
// id surfaces as store.ErrNotFound; the caller reports it and moves on.
func (e *Editor) EditField(ctx context.Context, id int64, f store.Field, value any) error {
	return e.repo.UpdateEntryField(ctx, id, f, value)
}

// DeleteEntry removes one entry; a missing id is a silent success.
func (e *Editor) DeleteEntry(ctx context.Context, id int64) error {
	return e.repo.DeleteEntry(ctx, id)
}

// DeleteAll removes the user's entire schedule.
func (e *Editor) DeleteAll(ctx context.Context, userID int64) error {
	return e.repo.DeleteByUser(ctx, userID)
}

// List reads the user's entries, optionally ordered by the time column.
func (e *Editor) List(ctx context.Context, userID int64, orderedByTime bool) ([]domain.Entry, error) {
	return e.repo.ListByUser(ctx, userID, orderedByTime)
}

// Get fetches one entry by id.
func (e *Editor) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	return e.repo.GetEntry(ctx, id)
}
