package store

import (
	"context"
	"errors"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// ErrNotFound is returned when a point lookup or targeted update
// resolves to no row.
var ErrNotFound = errors.New("not found")

// Field names an Entry column the edit flow may change. Exactly one
// field is updated per call.
type Field string

const (
	FieldTime      Field = "time"
	FieldActivity  Field = "activity"
	FieldDuration  Field = "duration"
	FieldFrequency Field = "frequency"
)

// Repo defines storage operations for users and schedule entries.
// It carries no business logic; callers own validation and ordering.
type Repo interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, chatID int64) (*domain.User, error)

	InsertEntry(ctx context.Context, e *domain.Entry) error
	GetEntry(ctx context.Context, id int64) (*domain.Entry, error)
	ListByUser(ctx context.Context, userID int64, orderedByTime bool) ([]domain.Entry, error)
	UpdateEntryField(ctx context.Context, id int64, f Field, value any) error
	DeleteEntry(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error

	Close() error
}
