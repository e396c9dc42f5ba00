package models

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseSet is a single set within a workout exercise. Mutated as the
// session progresses, frozen once the workout completes.
type ExerciseSet struct {
	ID          uuid.UUID  `json:"id"`
	Reps        int        `json:"reps"`
	Weight      *float64   `json:"weight,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AutoTracked bool       `json:"auto_tracked"`
}

// NewSet creates an incomplete set with the given target.
func NewSet(reps int, weight *float64) ExerciseSet {
	return ExerciseSet{ID: uuid.New(), Reps: reps, Weight: weight}
}

// WorkoutExercise is an exercise within a workout together with its sets.
type WorkoutExercise struct {
	ID       uuid.UUID     `json:"id"`
	Exercise Exercise      `json:"exercise"`
	Sets     []ExerciseSet `json:"sets"`
	Notes    string        `json:"notes,omitempty"`
}

// Workout is a training session. Created when a session starts; becomes
// immutable history once IsCompleted is recorded.
type Workout struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Exercises   []WorkoutExercise `json:"exercises"`
	StartedAt   time.Time         `json:"started_at"`
	Duration    *time.Duration    `json:"duration,omitempty"`
	IsCompleted bool              `json:"is_completed"`
	TemplateID  *uuid.UUID        `json:"template_id,omitempty"`
}

// Volume is the workout's total tonnage: Σ reps×weight across all sets.
// Sets without a weight contribute zero.
func (w Workout) Volume() float64 {
	var total float64
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Weight != nil {
				total += float64(set.Reps) * *set.Weight
			}
		}
	}
	return total
}

// SetCounts returns (completed, total) set counts for the workout.
func (w Workout) SetCounts() (completed, total int) {
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			total++
			if set.IsCompleted {
				completed++
			}
		}
	}
	return completed, total
}
