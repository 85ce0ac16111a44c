package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies PRAGMAs, runs migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; keep the pool at one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// CreateUser inserts a user row. An existing row is left untouched:
// the eligibility answer is recorded once and never mutated.
func (r *SQLiteRepo) CreateUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	created := u.CreatedAt.UTC().Unix()
	if u.CreatedAt.IsZero() {
		created = time.Now().UTC().Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (chat_id, is_eligible, created_at)
		VALUES (?, ?, ?)`,
		u.ChatID, boolToInt(u.IsEligible), created,
	)
	return err
}

// GetUser returns a user by chat id, or ErrNotFound.
func (r *SQLiteRepo) GetUser(ctx context.Context, chatID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, is_eligible, created_at
		FROM users
		WHERE chat_id = ?`,
		chatID,
	)

	var (
		id          int64
		eligibleInt int
		createdAt   int64
	)
	if err := row.Scan(&id, &eligibleInt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &domain.User{
		ChatID:     id,
		IsEligible: eligibleInt != 0,
		CreatedAt:  time.Unix(createdAt, 0).UTC(),
	}, nil
}

// InsertEntry inserts a single schedule row and fills in its assigned id.
func (r *SQLiteRepo) InsertEntry(ctx context.Context, e *domain.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO schedules (user_id, date, day_of_week, time, activity, duration, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Date, e.DayOfWeek, e.Time, e.Activity, e.DurationMin, e.Frequency,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// GetEntry returns one schedule row by id, or ErrNotFound.
func (r *SQLiteRepo) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT schedule_id, user_id, date, day_of_week, time, activity, duration, frequency
		FROM schedules
		WHERE schedule_id = ?`,
		id,
	)
	e, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListByUser returns all of a user's rows, either in insertion order or
// ordered by the time column ascending.
func (r *SQLiteRepo) ListByUser(ctx context.Context, userID int64, orderedByTime bool) ([]domain.Entry, error) {
	q := `
		SELECT schedule_id, user_id, date, day_of_week, time, activity, duration, frequency
		FROM schedules
		WHERE user_id = ?
		ORDER BY schedule_id ASC`
	if orderedByTime {
		q = `
		SELECT schedule_id, user_id, date, day_of_week, time, activity, duration, frequency
		FROM schedules
		WHERE user_id = ?
		ORDER BY time ASC, schedule_id ASC`
	}

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateEntryField updates exactly one column of one row. A missing id
// is reported as ErrNotFound; no row is ever inserted.
func (r *SQLiteRepo) UpdateEntryField(ctx context.Context, id int64, f Field, value any) error {
	var column string
	switch f {
	case FieldTime, FieldActivity, FieldDuration, FieldFrequency:
		column = string(f)
	default:
		return fmt.Errorf("unknown field %q", f)
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE schedules SET "+column+" = ? WHERE schedule_id = ?",
		value, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntry removes one row. Deleting an id that no longer exists is
// a no-op success.
func (r *SQLiteRepo) DeleteEntry(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE schedule_id = ?`, id)
	return err
}

// DeleteByUser removes every row owned by the user.
func (r *SQLiteRepo) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE user_id = ?`, userID)
	return err
}

func scanEntry(scan func(dest ...any) error) (*domain.Entry, error) {
	var e domain.Entry
	if err := scan(&e.ID, &e.UserID, &e.Date, &e.DayOfWeek, &e.Time, &e.Activity, &e.DurationMin, &e.Frequency); err != nil {
		return nil, err
	}
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
