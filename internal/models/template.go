package models

import (
	"time"

	"github.com/google/uuid"
)

// TargetSet is a prescribed rep/weight target within a template.
type TargetSet struct {
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
}

// TemplateExercise is an exercise prescription within a template.
type TemplateExercise struct {
	ID         uuid.UUID      `json:"id"`
	Exercise   Exercise       `json:"exercise"`
	TargetSets []TargetSet    `json:"target_sets"`
	RestTime   *time.Duration `json:"rest_time,omitempty"`
}

// WorkoutTemplate is a reusable workout prescription. Never mutated by
// workout execution, only by explicit edit.
type WorkoutTemplate struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Notes     string             `json:"notes,omitempty"`
	Exercises []TemplateExercise `json:"exercises"`
	Tags      []string           `json:"tags,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	LastUsed  *time.Time         `json:"last_used,omitempty"`
}

// Instantiate creates a fresh workout from the template. Target sets become
// incomplete ExerciseSets with new identities; the result shares no mutable
// state with the template.
func (t WorkoutTemplate) Instantiate(now time.Time) Workout {
	exercises := make([]WorkoutExercise, 0, len(t.Exercises))
	for _, te := range t.Exercises {
		sets := make([]ExerciseSet, 0, len(te.TargetSets))
		for _, target := range te.TargetSets {
			sets = append(sets, NewSet(target.Reps, copyWeight(target.Weight)))
		}
		exercises = append(exercises, WorkoutExercise{
			ID:       uuid.New(),
			Exercise: te.Exercise,
			Sets:     sets,
		})
	}

	templateID := t.ID
	return Workout{
		ID:         uuid.New(),
		Name:       t.Name,
		Exercises:  exercises,
		StartedAt:  now,
		TemplateID: &templateID,
	}
}

// TemplateFromWorkout captures a workout back into a reusable template:
// each performed set becomes a target with the same reps and weight.
func TemplateFromWorkout(w Workout, name string, tags []string, now time.Time) WorkoutTemplate {
	exercises := make([]TemplateExercise, 0, len(w.Exercises))
	for _, we := range w.Exercises {
		targets := make([]TargetSet, 0, len(we.Sets))
		for _, set := range we.Sets {
			targets = append(targets, TargetSet{Reps: set.Reps, Weight: copyWeight(set.Weight)})
		}
		exercises = append(exercises, TemplateExercise{
			ID:         uuid.New(),
			Exercise:   we.Exercise,
			TargetSets: targets,
		})
	}

	return WorkoutTemplate{
		ID:        uuid.New(),
		Name:      name,
		Exercises: exercises,
		Tags:      tags,
		CreatedAt: now,
	}
}

func copyWeight(w *float64) *float64 {
	if w == nil {
		return nil
	}
	v := *w
	return &v
}
