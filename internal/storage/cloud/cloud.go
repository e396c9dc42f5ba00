// Package cloud is the cloud persistence backend: a Postgres document store
// with the same shape as the local one, so the coach can switch between them
// without caring which is active.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meltforce/betterfit/internal/models"
	"github.com/meltforce/betterfit/internal/storage"
)

// Store implements storage.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time check: *Store satisfies the persistence contract.
var _ storage.Store = (*Store)(nil)

// Open creates a Store with a connection pool.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (s *Store) SaveWorkout(ctx context.Context, w models.Workout) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding workout: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO workouts (id, started_at, data) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET started_at = excluded.started_at, data = excluded.data`,
		w.ID, w.StartedAt, data)
	if err != nil {
		return fmt.Errorf("saving workout: %w", err)
	}
	return nil
}

func (s *Store) Workouts(ctx context.Context) ([]models.Workout, error) {
	return queryDocs[models.Workout](ctx, s.pool,
		`SELECT data FROM workouts ORDER BY started_at`)
}

func (s *Store) WorkoutsBetween(ctx context.Context, start, end time.Time) ([]models.Workout, error) {
	return queryDocs[models.Workout](ctx, s.pool,
		`SELECT data FROM workouts WHERE started_at >= $1 AND started_at <= $2 ORDER BY started_at`,
		start, end)
}

func (s *Store) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

func (s *Store) SaveTemplate(ctx context.Context, t models.WorkoutTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO templates (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		t.ID, data)
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

func (s *Store) Templates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	return queryDocs[models.WorkoutTemplate](ctx, s.pool, `SELECT data FROM templates`)
}

func (s *Store) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

func (s *Store) SavePlan(ctx context.Context, p models.TrainingPlan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO plans (id, is_active, data) VALUES ($1, false, $2)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		p.ID, data)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

func (s *Store) Plans(ctx context.Context) ([]models.TrainingPlan, error) {
	return queryDocs[models.TrainingPlan](ctx, s.pool, `SELECT data FROM plans`)
}

func (s *Store) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

// SetActivePlan moves the single active flag to the given plan.
func (s *Store) SetActivePlan(ctx context.Context, id uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE plans SET is_active = false`); err != nil {
		return fmt.Errorf("clearing active plan: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE plans SET is_active = true WHERE id = $1`, id); err != nil {
		return fmt.Errorf("setting active plan: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *Store) ActivePlan(ctx context.Context) (*models.TrainingPlan, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM plans WHERE is_active = true`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active plan: %w", err)
	}
	var p models.TrainingPlan
	if err := json.Unmarshal(data, &p); err != nil {
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
	_, err = s.pool.Exec(ctx,
		`INSERT INTO singletons (name, data) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET data = excluded.data`,
		name, data)
	if err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

func (s *Store) loadSingleton(ctx context.Context, name string, v any) (bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM singletons WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}

// ClearAll erases every stored object.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, table := range []string{"workouts", "templates", "plans", "singletons"} {
		if _, err := s.pool.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func queryDocs[T any](ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]T, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
