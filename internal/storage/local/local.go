// Package local is the guest-mode persistence backend: a single-file SQLite
// database storing domain objects as JSON documents.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
	"github.com/meltforce/betterfit/internal/storage"
	_ "modernc.org/sqlite"
)

// Store implements storage.Store over SQLite.
type Store struct {
	db *sql.DB
}

// Compile-time check: *Store satisfies the persistence contract.
var _ storage.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS workouts (
	id         TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	data       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS templates (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS plans (
	id        TEXT PRIMARY KEY,
	is_active INTEGER NOT NULL DEFAULT 0,
	data      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS singletons (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`

// Open opens (or creates) the database at dir/betterfit.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "betterfit.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveWorkout(ctx context.Context, w models.Workout) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding workout: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO workouts (id, started_at, data) VALUES (?, ?, ?)`,
		w.ID.String(), w.StartedAt.UTC(), string(data))
	if err != nil {
		return fmt.Errorf("saving workout: %w", err)
	}
	return nil
}

func (s *Store) Workouts(ctx context.Context) ([]models.Workout, error) {
	return s.queryWorkouts(ctx, `SELECT data FROM workouts ORDER BY started_at`)
}

func (s *Store) WorkoutsBetween(ctx context.Context, start, end time.Time) ([]models.Workout, error) {
	return s.queryWorkouts(ctx,
		`SELECT data FROM workouts WHERE started_at >= ? AND started_at <= ? ORDER BY started_at`,
		start.UTC(), end.UTC())
}

func (s *Store) queryWorkouts(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var out []models.Workout
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		var w models.Workout
		if err := json.Unmarshal([]byte(data), &w); err != nil {
			return nil, fmt.Errorf("decoding workout: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

func (s *Store) SaveTemplate(ctx context.Context, t models.WorkoutTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO templates (id, data) VALUES (?, ?)`,
		t.ID.String(), string(data))
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

func (s *Store) Templates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM templates`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var out []models.WorkoutTemplate
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		var t models.WorkoutTemplate
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, fmt.Errorf("decoding template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

func (s *Store) SavePlan(ctx context.Context, p models.TrainingPlan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, is_active, data) VALUES (?, 0, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		p.ID.String(), string(data))
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

func (s *Store) Plans(ctx context.Context) ([]models.TrainingPlan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM plans`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var out []models.TrainingPlan
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		var p models.TrainingPlan
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("decoding plan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) DeletePlan(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

// SetActivePlan moves the single active flag to the given plan.
func (s *Store) SetActivePlan(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE plans SET is_active = 0`); err != nil {
		return fmt.Errorf("clearing active plan: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE plans SET is_active = 1 WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("setting active plan: %w", err)
	}
	return tx.Commit()
}

func (s *Store) ActivePlan(ctx context.Context) (*models.TrainingPlan, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM plans WHERE is_active = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active plan: %w", err)
	}
	var p models.TrainingPlan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decoding active plan: %w", err)
	}
	return &p, nil
}

func (s *Store) SaveUserProfile(ctx context.Context, p models.UserProfile) error {
	return s.saveSingleton(ctx, "profile", p)
}

func (s *Store) UserProfile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	ok, err := s.loadSingleton(ctx, "profile", &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveRecovery(ctx context.Context, r models.BodyMapRecovery) error {
	return s.saveSingleton(ctx, "recovery", r)
}

func (s *Store) Recovery(ctx context.Context) (*models.BodyMapRecovery, error) {
	var r models.BodyMapRecovery
	ok, err := s.loadSingleton(ctx, "recovery", &r)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (s *Store) SaveStreak(ctx context.Context, st models.Streak) error {
	return s.saveSingleton(ctx, "streak", st)
}

func (s *Store) Streak(ctx context.Context) (*models.Streak, error) {
	var st models.Streak
	ok, err := s.loadSingleton(ctx, "streak", &st)
	if err != nil || !ok {
		return nil, err
	}
	return &st, nil
}

func (s *Store) saveSingleton(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO singletons (name, data) VALUES (?, ?)`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// loadSingleton returns false with no error when nothing has been saved.
func (s *Store) loadSingleton(ctx context.Context, name string, v any) (bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM singletons WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}

// ClearAll erases every stored object. Used after migrating guest data to an
// authenticated account.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, table := range []string{"workouts", "templates", "plans", "singletons"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
