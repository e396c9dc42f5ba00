package recovery

import (
	"testing"
	"time"

	"github.com/meltforce/betterfit/internal/models"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func benchWorkout() models.Workout {
	bench := models.NewExercise("Bench Press", models.EquipmentBarbell, models.MuscleChest)
	return models.Workout{
		Name:      "Push",
		Exercises: []models.WorkoutExercise{{Exercise: bench}},
		StartedAt: t0,
	}
}

// TestFreshMapFullyRecovered verifies a body map with no regions recorded
// reads as exactly 100% recovered.
func TestFreshMapFullyRecovered(t *testing.T) {
	b := New(t0)
	if got := b.OverallPercentage(t0); got != 100 {
		t.Errorf("overall = %v, want 100", got)
	}
	if got := b.Status(models.RegionChest, t0); got != models.StatusRecovered {
		t.Errorf("status = %s, want recovered", got)
	}
}

// TestRecordWorkoutFatigues verifies one workout pushes a touched region to
// fatigued and leaves untouched regions recovered.
func TestRecordWorkoutFatigues(t *testing.T) {
	b := New(t0)
	b.RecordWorkout(benchWorkout(), t0)

	if got := b.Status(models.RegionChest, t0); got != models.StatusFatigued {
		t.Errorf("chest = %s, want fatigued", got)
	}
	if got := b.Status(models.RegionLegs, t0); got != models.StatusRecovered {
		t.Errorf("legs = %s, want recovered", got)
	}
}

// TestCompoundExerciseDoubleAdvance verifies the work transition applies
// once per muscle-group occurrence: an exercise with two groups mapping to
// the same region pushes it straight to sore in one workout.
func TestCompoundExerciseDoubleAdvance(t *testing.T) {
	curl := models.NewExercise("Curl Superset", models.EquipmentDumbbell,
		models.MuscleBiceps, models.MuscleTriceps)
	w := models.Workout{Exercises: []models.WorkoutExercise{{Exercise: curl}}, StartedAt: t0}

	b := New(t0)
	b.RecordWorkout(w, t0)

	if got := b.Status(models.RegionArms, t0); got != models.StatusSore {
		t.Errorf("arms = %s, want sore", got)
	}
}

// TestDecayTimeline verifies lazy decay across the 24/48 hour boundaries for
// a fatigued region. Each check uses a fresh map because reads write back the
// decay timestamp.
func TestDecayTimeline(t *testing.T) {
	cases := []struct {
		hours time.Duration
		want  models.RecoveryStatus
	}{
		{12 * time.Hour, models.StatusFatigued},
		{30 * time.Hour, models.StatusSlightlyFatigued},
		{60 * time.Hour, models.StatusRecovered},
	}
	for _, tc := range cases {
		b := New(t0)
		b.RecordWorkout(benchWorkout(), t0)
		if got := b.Status(models.RegionChest, t0.Add(tc.hours)); got != tc.want {
			t.Errorf("after %v: %s, want %s", tc.hours, got, tc.want)
		}
	}
}

// TestDecayIdempotentAtSameInstant verifies reading twice at the same "now"
// does not double-decay: the delta is measured from the written-back
// timestamp, so a second read at the same instant sees zero elapsed hours.
func TestDecayIdempotentAtSameInstant(t *testing.T) {
	b := New(t0)
	b.RecordWorkout(benchWorkout(), t0)

	now := t0.Add(25 * time.Hour)
	first := b.Status(models.RegionChest, now)
	second := b.Status(models.RegionChest, now)
	if first != second {
		t.Errorf("repeated read changed status: %s then %s", first, second)
	}
	if second != models.StatusSlightlyFatigued {
		t.Errorf("status = %s, want slightly_fatigued", second)
	}
}

// TestIncrementalDecayMatchesSpread verifies decay applied in two steps is
// never more aggressive than the per-step thresholds allow: 24h then another
// 24h leaves a sore region sore, because each decay step restarts the clock.
func TestIncrementalDecayMatchesSpread(t *testing.T) {
	curl := models.NewExercise("Curl Superset", models.EquipmentDumbbell,
		models.MuscleBiceps, models.MuscleTriceps)
	w := models.Workout{Exercises: []models.WorkoutExercise{{Exercise: curl}}, StartedAt: t0}

	b := New(t0)
	b.RecordWorkout(w, t0) // arms → sore

	if got := b.Status(models.RegionArms, t0.Add(24*time.Hour)); got != models.StatusSore {
		t.Fatalf("after 24h: %s, want sore", got)
	}
	if got := b.Status(models.RegionArms, t0.Add(48*time.Hour)); got != models.StatusSore {
		t.Errorf("after another 24h: %s, want sore (clock restarted by read)", got)
	}
}

// TestOverallPercentageMean verifies the overall percentage is the mean of
// per-region scores scaled to 100.
func TestOverallPercentageMean(t *testing.T) {
	legs := models.NewExercise("Squat", models.EquipmentBarbell, models.MuscleQuads)
	w := models.Workout{Exercises: []models.WorkoutExercise{{Exercise: legs}}, StartedAt: t0}

	b := New(t0)
	b.RecordWorkout(w, t0) // one region at fatigued (0.5)

	if got := b.OverallPercentage(t0); got != 50 {
		t.Errorf("overall = %v, want 50", got)
	}
}

// TestIsReadyForTraining verifies readiness covers recovered and
// slightly-fatigued only.
func TestIsReadyForTraining(t *testing.T) {
	b := New(t0)
	b.RecordWorkout(benchWorkout(), t0)

	if !b.IsReadyForTraining(models.RegionLegs, t0) {
		t.Error("untouched legs should be ready")
	}
	if b.IsReadyForTraining(models.RegionChest, t0) {
		t.Error("fatigued chest should not be ready")
	}
	if !b.IsReadyForTraining(models.RegionChest, t0.Add(30*time.Hour)) {
		t.Error("slightly-fatigued chest should be ready")
	}
}

// TestRecommendedExercisesAvoidsSore verifies exercises touching a sore
// region are filtered out unless avoidSore is disabled.
func TestRecommendedExercisesAvoidsSore(t *testing.T) {
	curl := models.NewExercise("Curl Superset", models.EquipmentDumbbell,
		models.MuscleBiceps, models.MuscleTriceps)
	squat := models.NewExercise("Squat", models.EquipmentBarbell, models.MuscleQuads)
	w := models.Workout{Exercises: []models.WorkoutExercise{{Exercise: curl}}, StartedAt: t0}

	b := New(t0)
	b.RecordWorkout(w, t0) // arms → sore

	available := []models.Exercise{curl, squat}
	got := b.RecommendedExercises(available, true, t0)
	if len(got) != 1 || got[0].Name != "Squat" {
		t.Errorf("recommended = %v, want only Squat", got)
	}

	all := b.RecommendedExercises(available, false, t0)
	if len(all) != 2 {
		t.Errorf("unfiltered = %d exercises, want 2", len(all))
	}
}

// TestRestoreSnapshot verifies a persisted snapshot round-trips through
// Restore and keeps decaying from its stored timestamp.
func TestRestoreSnapshot(t *testing.T) {
	b := New(t0)
	b.RecordWorkout(benchWorkout(), t0)
	snap := b.Snapshot(t0)

	restored := Restore(snap)
	if got := restored.Status(models.RegionChest, t0.Add(60*time.Hour)); got != models.StatusRecovered {
		t.Errorf("restored chest after 60h = %s, want recovered", got)
	}
}
