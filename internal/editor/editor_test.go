package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/store"
)

// recorderRepo is an in-memory store.Repo that records the order of
// mutating calls.
type recorderRepo struct {
	calls   []string
	nextID  int64
	entries map[int64]domain.Entry
	users   map[int64]domain.User

	failInsertAt int // fail the nth insert when > 0
	inserts      int
}

func newRecorderRepo() *recorderRepo {
	return &recorderRepo{
		entries: make(map[int64]domain.Entry),
		users:   make(map[int64]domain.User),
	}
}

func (r *recorderRepo) CreateUser(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ChatID]; !ok {
		r.users[u.ChatID] = *u
	}
	return nil
}

func (r *recorderRepo) GetUser(_ context.Context, chatID int64) (*domain.User, error) {
	u, ok := r.users[chatID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (r *recorderRepo) InsertEntry(_ context.Context, e *domain.Entry) error {
	r.calls = append(r.calls, "insert")
	r.inserts++
	if r.failInsertAt > 0 && r.inserts == r.failInsertAt {
		return errors.New("disk full")
	}
	r.nextID++
	e.ID = r.nextID
	r.entries[e.ID] = *e
	return nil
}

func (r *recorderRepo) GetEntry(_ context.Context, id int64) (*domain.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (r *recorderRepo) ListByUser(_ context.Context, userID int64, _ bool) ([]domain.Entry, error) {
	var out []domain.Entry
	for id := int64(1); id <= r.nextID; id++ {
		if e, ok := r.entries[id]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *recorderRepo) UpdateEntryField(_ context.Context, id int64, f store.Field, value any) error {
	e, ok := r.entries[id]
	if !ok {
		return store.ErrNotFound
	}
	switch f {
	case store.FieldTime:
		e.Time = value.(string)
	case store.FieldActivity:
		e.Activity = value.(string)
	case store.FieldDuration:
		e.DurationMin = value.(int)
	case store.FieldFrequency:
		e.Frequency = value.(string)
	}
	r.entries[id] = e
	return nil
}

func (r *recorderRepo) DeleteEntry(_ context.Context, id int64) error {
	r.calls = append(r.calls, "delete")
	delete(r.entries, id)
	return nil
}

func (r *recorderRepo) DeleteByUser(_ context.Context, userID int64) error {
	r.calls = append(r.calls, "deleteAll")
	for id, e := range r.entries {
		if e.UserID == userID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *recorderRepo) Close() error { return nil }

func testEntries(userID int64, n int) []domain.Entry {
	out := make([]domain.Entry, n)
	for i := range out {
		out[i] = domain.Entry{
			UserID: userID, Date: "1/12/2024", DayOfWeek: "Sunday",
			Time: "05:00", Activity: "a", DurationMin: 30, Frequency: "Daily",
		}
	}
	return out
}

func TestCommitImportDeletesBeforeInserting(t *testing.T) {
	repo := newRecorderRepo()
	ed := New(repo, zap.NewNop())

	require.NoError(t, ed.CommitImport(context.Background(), 1, testEntries(1, 12)))

	require.NotEmpty(t, repo.calls)
	assert.Equal(t, "deleteAll", repo.calls[0])
	assert.Len(t, repo.calls, 1+12)

	got, err := ed.List(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestCommitImportPartialFailure(t *testing.T) {
	repo := newRecorderRepo()
	repo.failInsertAt = 4
	ed := New(repo, zap.NewNop())

	err := ed.CommitImport(context.Background(), 1, testEntries(1, 6))
	require.Error(t, err)

	// No rollback: the rows inserted before the failure stay.
	got, listErr := ed.List(context.Background(), 1, false)
	require.NoError(t, listErr)
	assert.Len(t, got, 3)
}

func TestAddActivityValidation(t *testing.T) {
	repo := newRecorderRepo()
	ed := New(repo, zap.NewNop())
	ctx := context.Background()

	err := ed.AddActivity(ctx, &domain.Entry{UserID: 1, Time: "14:00", DurationMin: 60})
	assert.ErrorIs(t, err, ErrEmptyFrequency)

	err = ed.AddActivity(ctx, &domain.Entry{UserID: 1, Time: "14:00", Frequency: "Monday"})
	assert.ErrorIs(t, err, ErrBadDuration)

	e := &domain.Entry{UserID: 1, Date: "TBD", DayOfWeek: "TBD", Time: "14:00",
		Activity: "Study", DurationMin: 60, Frequency: "Monday, Wednesday"}
	require.NoError(t, ed.AddActivity(ctx, e))
	assert.NotZero(t, e.ID)
}

func TestEditFieldNotFound(t *testing.T) {
	repo := newRecorderRepo()
	ed := New(repo, zap.NewNop())

	err := ed.EditField(context.Background(), 404, store.FieldDuration, 90)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteEntryIdempotent(t *testing.T) {
	repo := newRecorderRepo()
	ed := New(repo, zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, ed.DeleteEntry(ctx, 404))
	assert.NoError(t, ed.DeleteEntry(ctx, 404))
}
