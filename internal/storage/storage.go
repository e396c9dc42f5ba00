// Package storage defines the persistence contract the coach writes through.
// Exactly one implementation is active at a time: the local sqlite store
// (guest mode) or the cloud Postgres store. The coach is indifferent to
// which.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

// Store persists the coach's durable state. Singleton reads (profile,
// recovery, streak, active plan) return nil when nothing has been saved;
// absence is not an error.
type Store interface {
	SaveWorkout(ctx context.Context, w models.Workout) error
	Workouts(ctx context.Context) ([]models.Workout, error)
	WorkoutsBetween(ctx context.Context, start, end time.Time) ([]models.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error

	SaveTemplate(ctx context.Context, t models.WorkoutTemplate) error
	Templates(ctx context.Context) ([]models.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	SavePlan(ctx context.Context, p models.TrainingPlan) error
	Plans(ctx context.Context) ([]models.TrainingPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	SetActivePlan(ctx context.Context, id uuid.UUID) error
	ActivePlan(ctx context.Context) (*models.TrainingPlan, error)

	SaveUserProfile(ctx context.Context, p models.UserProfile) error
	UserProfile(ctx context.Context) (*models.UserProfile, error)

	SaveRecovery(ctx context.Context, r models.BodyMapRecovery) error
	Recovery(ctx context.Context) (*models.BodyMapRecovery, error)

	SaveStreak(ctx context.Context, s models.Streak) error
	Streak(ctx context.Context) (*models.Streak, error)

	ClearAll(ctx context.Context) error

	Close() error
}
