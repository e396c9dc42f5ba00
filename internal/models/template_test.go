package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func benchTemplate(now time.Time) WorkoutTemplate {
	weight := 60.0
	bench := NewExercise("Bench Press", EquipmentBarbell, MuscleChest, MuscleTriceps)
	return WorkoutTemplate{
		ID:   uuid.New(),
		Name: "Push Day",
		Exercises: []TemplateExercise{{
			ID:         uuid.New(),
			Exercise:   bench,
			TargetSets: []TargetSet{{Reps: 8, Weight: &weight}},
		}},
		CreatedAt: now,
	}
}

// TestInstantiateCopiesTargets verifies template instantiation copies target
// sets into fresh, incomplete ExerciseSets.
func TestInstantiateCopiesTargets(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tmpl := benchTemplate(now)

	w := tmpl.Instantiate(now)

	if w.Name != "Push Day" {
		t.Errorf("name = %q, want %q", w.Name, "Push Day")
	}
	if w.TemplateID == nil || *w.TemplateID != tmpl.ID {
		t.Errorf("template id = %v, want %v", w.TemplateID, tmpl.ID)
	}
	if len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 1 {
		t.Fatalf("exercises/sets = %d/%d, want 1/1", len(w.Exercises), len(w.Exercises[0].Sets))
	}

	set := w.Exercises[0].Sets[0]
	if set.Reps != 8 {
		t.Errorf("reps = %d, want 8", set.Reps)
	}
	if set.Weight == nil || *set.Weight != 60 {
		t.Errorf("weight = %v, want 60", set.Weight)
	}
	if set.IsCompleted {
		t.Error("new set should not be completed")
	}
}

// TestInstantiateSharesNothing verifies mutating the instantiated workout
// does not leak back into the template.
func TestInstantiateSharesNothing(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tmpl := benchTemplate(now)

	w := tmpl.Instantiate(now)
	*w.Exercises[0].Sets[0].Weight = 999
	w.Exercises[0].Sets[0].Reps = 1

	if got := *tmpl.Exercises[0].TargetSets[0].Weight; got != 60 {
		t.Errorf("template weight mutated to %v", got)
	}
	if got := tmpl.Exercises[0].TargetSets[0].Reps; got != 8 {
		t.Errorf("template reps mutated to %v", got)
	}
}

// TestTemplateRoundTrip verifies instantiating a template and capturing the
// resulting workout back preserves exercise identity and rep/weight targets.
func TestTemplateRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tmpl := benchTemplate(now)

	w := tmpl.Instantiate(now)
	captured := TemplateFromWorkout(w, "Push Day Copy", nil, now)

	if captured.Name != "Push Day Copy" {
		t.Errorf("name = %q, want %q", captured.Name, "Push Day Copy")
	}
	if len(captured.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(captured.Exercises))
	}

	orig := tmpl.Exercises[0]
	got := captured.Exercises[0]
	if got.Exercise.ID != orig.Exercise.ID {
		t.Errorf("exercise id changed: %v != %v", got.Exercise.ID, orig.Exercise.ID)
	}
	if len(got.TargetSets) != 1 {
		t.Fatalf("target sets = %d, want 1", len(got.TargetSets))
	}
	if got.TargetSets[0].Reps != 8 {
		t.Errorf("reps = %d, want 8", got.TargetSets[0].Reps)
	}
	if got.TargetSets[0].Weight == nil || *got.TargetSets[0].Weight != 60 {
		t.Errorf("weight = %v, want 60", got.TargetSets[0].Weight)
	}
}

// TestWorkoutVolume verifies volume sums reps×weight, treating weightless
// sets as zero.
func TestWorkoutVolume(t *testing.T) {
	weight := 100.0
	w := Workout{Exercises: []WorkoutExercise{{
		Sets: []ExerciseSet{
			{Reps: 5, Weight: &weight},
			{Reps: 10},
		},
	}}}
	if got := w.Volume(); got != 500 {
		t.Errorf("volume = %v, want 500", got)
	}
}

// TestSetCounts verifies completed/total set counting across exercises.
func TestSetCounts(t *testing.T) {
	w := Workout{Exercises: []WorkoutExercise{
		{Sets: []ExerciseSet{{IsCompleted: true}, {}}},
		{Sets: []ExerciseSet{{IsCompleted: true}}},
	}}
	completed, total := w.SetCounts()
	if completed != 2 || total != 3 {
		t.Errorf("counts = %d/%d, want 2/3", completed, total)
	}
}
