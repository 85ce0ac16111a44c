package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestUserLifecycle(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetUser(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	created := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 1, IsEligible: true, CreatedAt: created}))

	u, err := repo.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, u.IsEligible)
	assert.Equal(t, created, u.CreatedAt)

	// The first answer sticks; a second create does not overwrite it.
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 1, IsEligible: false}))
	u, err = repo.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, u.IsEligible)
}

func TestEntryCRUD(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 5, IsEligible: true}))

	e := &domain.Entry{
		UserID: 5, Date: "1/12/2024", DayOfWeek: "Sunday",
		Time: "05:00", Activity: "Bomdod (Starts at 05:00)",
		DurationMin: 30, Frequency: "Daily",
	}
	require.NoError(t, repo.InsertEntry(ctx, e))
	require.NotZero(t, e.ID)

	got, err := repo.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, *e, *got)

	require.NoError(t, repo.DeleteEntry(ctx, e.ID))
	_, err = repo.GetEntry(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByUserOrdering(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 5, IsEligible: true}))

	times := []string{"14:00", "05:00", "09:30"}
	for _, tm := range times {
		require.NoError(t, repo.InsertEntry(ctx, &domain.Entry{
			UserID: 5, Date: "TBD", DayOfWeek: "TBD", Time: tm,
			Activity: "a", DurationMin: 30, Frequency: "Monday",
		}))
	}

	byInsert, err := repo.ListByUser(ctx, 5, false)
	require.NoError(t, err)
	require.Len(t, byInsert, 3)
	assert.Equal(t, "14:00", byInsert[0].Time)

	byTime, err := repo.ListByUser(ctx, 5, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"05:00", "09:30", "14:00"},
		[]string{byTime[0].Time, byTime[1].Time, byTime[2].Time})

	// Other users see nothing.
	other, err := repo.ListByUser(ctx, 6, false)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdateEntryFieldTouchesOneColumn(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 5, IsEligible: true}))

	e := &domain.Entry{
		UserID: 5, Date: "TBD", DayOfWeek: "TBD", Time: "14:00",
		Activity: "Study", DurationMin: 60, Frequency: "Monday, Wednesday",
	}
	require.NoError(t, repo.InsertEntry(ctx, e))

	require.NoError(t, repo.UpdateEntryField(ctx, e.ID, FieldDuration, 90))

	got, err := repo.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMin)
	// Everything else is byte-identical.
	assert.Equal(t, e.Time, got.Time)
	assert.Equal(t, e.Activity, got.Activity)
	assert.Equal(t, e.Frequency, got.Frequency)
	assert.Equal(t, e.Date, got.Date)
	assert.Equal(t, e.DayOfWeek, got.DayOfWeek)
}

func TestUpdateEntryFieldMissingID(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	err := repo.UpdateEntryField(ctx, 9999, FieldTime, "10:00")
	assert.ErrorIs(t, err, ErrNotFound)

	// And no row was conjured up by the attempt.
	_, err = repo.GetEntry(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEntryFieldRejectsUnknownColumn(t *testing.T) {
	repo := openTestRepo(t)
	err := repo.UpdateEntryField(context.Background(), 1, Field("user_id"), 2)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteIdempotence(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	// Deleting an id that never existed succeeds quietly.
	assert.NoError(t, repo.DeleteEntry(ctx, 12345))
	assert.NoError(t, repo.DeleteEntry(ctx, 12345))
}

func TestDeleteByUser(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 5, IsEligible: true}))
	require.NoError(t, repo.CreateUser(ctx, &domain.User{ChatID: 6, IsEligible: true}))

	for _, uid := range []int64{5, 5, 6} {
		require.NoError(t, repo.InsertEntry(ctx, &domain.Entry{
			UserID: uid, Date: "TBD", DayOfWeek: "TBD", Time: "10:00",
			Activity: "a", DurationMin: 30, Frequency: "Daily",
		}))
	}

	require.NoError(t, repo.DeleteByUser(ctx, 5))

	mine, err := repo.ListByUser(ctx, 5, false)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := repo.ListByUser(ctx, 6, false)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
