package plans

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

var t0 = time.Date(2026, 4, 1, 7, 0, 0, 0, time.UTC)

func samplePlan(name string) models.TrainingPlan {
	return models.TrainingPlan{
		ID:        uuid.New(),
		Name:      name,
		Goal:      models.GoalStrength,
		CreatedAt: t0,
	}
}

func sampleTemplate(name string, tags ...string) models.WorkoutTemplate {
	bench := models.NewExercise("Bench Press", models.EquipmentBarbell, models.MuscleChest)
	rest := 90 * time.Second
	return models.WorkoutTemplate{
		ID:   uuid.New(),
		Name: name,
		Exercises: []models.TemplateExercise{{
			ID:         uuid.New(),
			Exercise:   bench,
			TargetSets: []models.TargetSet{{Reps: 8}},
			RestTime:   &rest,
		}},
		Tags:      tags,
		CreatedAt: t0,
	}
}

// TestSingleActivePlan verifies activating a second plan replaces the first
// as the single active pointer.
func TestSingleActivePlan(t *testing.T) {
	s := NewPlanStore()
	a := samplePlan("Block A")
	b := samplePlan("Block B")
	s.Add(a)
	s.Add(b)

	s.SetActive(a.ID)
	s.SetActive(b.ID)

	active := s.Active()
	if active == nil || active.ID != b.ID {
		t.Fatalf("active = %v, want Block B", active)
	}
}

// TestSetActiveUnknownIgnored verifies activating an id that was never added
// leaves the active pointer untouched.
func TestSetActiveUnknownIgnored(t *testing.T) {
	s := NewPlanStore()
	a := samplePlan("Block A")
	s.Add(a)
	s.SetActive(a.ID)

	s.SetActive(uuid.New())

	if active := s.Active(); active == nil || active.ID != a.ID {
		t.Errorf("active = %v, want Block A", active)
	}
}

// TestRemoveClearsActive verifies removing the active plan clears the
// active pointer.
func TestRemoveClearsActive(t *testing.T) {
	s := NewPlanStore()
	a := samplePlan("Block A")
	s.Add(a)
	s.SetActive(a.ID)

	s.Remove(a.ID)

	if s.Active() != nil {
		t.Error("active plan survived removal")
	}
	if len(s.All()) != 0 {
		t.Errorf("plans = %d, want 0", len(s.All()))
	}
}

// TestPlanUpdate verifies Update replaces the stored plan in place.
func TestPlanUpdate(t *testing.T) {
	s := NewPlanStore()
	a := samplePlan("Block A")
	s.Add(a)

	a.Name = "Block A v2"
	s.Update(a)

	if got := s.Get(a.ID); got == nil || got.Name != "Block A v2" {
		t.Errorf("plan = %v, want renamed copy", got)
	}
}

// TestTemplateSearches verifies tag and case-insensitive name search.
func TestTemplateSearches(t *testing.T) {
	s := NewTemplateStore()
	push := sampleTemplate("Push Day", "push", "upper")
	legs := sampleTemplate("Leg Day", "lower")
	s.Add(push)
	s.Add(legs)

	if got := s.SearchByTag("upper"); len(got) != 1 || got[0].ID != push.ID {
		t.Errorf("SearchByTag(upper) = %v, want Push Day", got)
	}
	if got := s.SearchByName("leg"); len(got) != 1 || got[0].ID != legs.ID {
		t.Errorf("SearchByName(leg) = %v, want Leg Day", got)
	}
	if got := s.SearchByName("DAY"); len(got) != 2 {
		t.Errorf("SearchByName(DAY) = %d templates, want 2", len(got))
	}
}

// TestInstantiateStampsLastUsed verifies instantiating marks the stored
// template as used and the workout carries the template id.
func TestInstantiateStampsLastUsed(t *testing.T) {
	s := NewTemplateStore()
	push := sampleTemplate("Push Day")
	s.Add(push)

	w := s.Instantiate(push.ID, t0)
	if w == nil {
		t.Fatal("Instantiate returned nil for a stored template")
	}
	if w.TemplateID == nil || *w.TemplateID != push.ID {
		t.Errorf("workout template id = %v, want %s", w.TemplateID, push.ID)
	}

	stored := s.Get(push.ID)
	if stored.LastUsed == nil || !stored.LastUsed.Equal(t0) {
		t.Errorf("last used = %v, want %v", stored.LastUsed, t0)
	}
}

// TestInstantiateUnknownTemplate verifies a missing id yields nil.
func TestInstantiateUnknownTemplate(t *testing.T) {
	s := NewTemplateStore()
	if w := s.Instantiate(uuid.New(), t0); w != nil {
		t.Errorf("workout = %v, want nil", w)
	}
}

// TestRecentOrdersByUse verifies Recent sorts by last use descending, skips
// never-used templates, and honors the limit.
func TestRecentOrdersByUse(t *testing.T) {
	s := NewTemplateStore()
	a := sampleTemplate("A")
	b := sampleTemplate("B")
	c := sampleTemplate("C")
	s.Add(a)
	s.Add(b)
	s.Add(c)

	s.Instantiate(a.ID, t0)
	s.Instantiate(b.ID, t0.Add(time.Hour))

	recent := s.Recent(5)
	if len(recent) != 2 {
		t.Fatalf("recent = %d templates, want 2 (C never used)", len(recent))
	}
	if recent[0].ID != b.ID || recent[1].ID != a.ID {
		t.Errorf("recent order = [%s %s], want [B A]", recent[0].Name, recent[1].Name)
	}

	if got := s.Recent(1); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("Recent(1) = %v, want just B", got)
	}
}

// TestCaptureFromWorkout verifies a completed workout becomes a stored
// template with its set targets carried over.
func TestCaptureFromWorkout(t *testing.T) {
	s := NewTemplateStore()
	bench := models.NewExercise("Bench Press", models.EquipmentBarbell, models.MuscleChest)
	weight := 60.0
	w := models.Workout{
		ID:   uuid.New(),
		Name: "Morning Push",
		Exercises: []models.WorkoutExercise{{
			ID:       uuid.New(),
			Exercise: bench,
			Sets:     []models.ExerciseSet{models.NewSet(8, &weight)},
		}},
		StartedAt:   t0,
		IsCompleted: true,
	}

	captured := s.Capture(w, "Push Template", []string{"push"}, t0)

	stored := s.Get(captured.ID)
	if stored == nil {
		t.Fatal("captured template not stored")
	}
	if len(stored.Exercises) != 1 || len(stored.Exercises[0].TargetSets) != 1 {
		t.Fatalf("template shape = %+v", stored.Exercises)
	}
	ts := stored.Exercises[0].TargetSets[0]
	if ts.Reps != 8 || ts.Weight == nil || *ts.Weight != 60 {
		t.Errorf("target set = %+v, want 8 reps at 60", ts)
	}
}
