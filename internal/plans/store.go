// Package plans holds the in-memory plan and template stores. Both are plain
// CRUD; missing ids yield nil results rather than errors.
package plans

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

// PlanStore manages training plans. At most one plan is active at a time,
// tracked by a single pointer; activating a plan implicitly deactivates any
// previous one.
type PlanStore struct {
	plans    []models.TrainingPlan
	activeID *uuid.UUID
}

// NewPlanStore creates an empty plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{}
}

// Add registers a new plan.
func (s *PlanStore) Add(plan models.TrainingPlan) {
	s.plans = append(s.plans, plan)
}

// Update replaces an existing plan by id. Unknown ids are ignored.
func (s *PlanStore) Update(plan models.TrainingPlan) {
	for i := range s.plans {
		if s.plans[i].ID == plan.ID {
			s.plans[i] = plan
			return
		}
	}
}

// Remove deletes a plan, clearing the active pointer if it pointed there.
func (s *PlanStore) Remove(id uuid.UUID) {
	out := s.plans[:0]
	for _, p := range s.plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.plans = out
	if s.activeID != nil && *s.activeID == id {
		s.activeID = nil
	}
}

// Get returns a plan by id, or nil.
func (s *PlanStore) Get(id uuid.UUID) *models.TrainingPlan {
	for i := range s.plans {
		if s.plans[i].ID == id {
			plan := s.plans[i]
			return &plan
		}
	}
	return nil
}

// All returns every stored plan.
func (s *PlanStore) All() []models.TrainingPlan {
	return append([]models.TrainingPlan(nil), s.plans...)
}

// SetActive marks a plan as the active one. Unknown ids are ignored.
func (s *PlanStore) SetActive(id uuid.UUID) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			s.activeID = &id
			return
		}
	}
}

// Active returns the active plan, or nil when none is set.
func (s *PlanStore) Active() *models.TrainingPlan {
	if s.activeID == nil {
		return nil
	}
	return s.Get(*s.activeID)
}

// TemplateStore manages reusable workout templates.
type TemplateStore struct {
	templates []models.WorkoutTemplate
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{}
}

// Add registers a template.
func (s *TemplateStore) Add(t models.WorkoutTemplate) {
	s.templates = append(s.templates, t)
}

// Update replaces an existing template by id. Unknown ids are ignored.
func (s *TemplateStore) Update(t models.WorkoutTemplate) {
	for i := range s.templates {
		if s.templates[i].ID == t.ID {
			s.templates[i] = t
			return
		}
	}
}

// Remove deletes a template.
func (s *TemplateStore) Remove(id uuid.UUID) {
	out := s.templates[:0]
	for _, t := range s.templates {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.templates = out
}

// Get returns a template by id, or nil.
func (s *TemplateStore) Get(id uuid.UUID) *models.WorkoutTemplate {
	for i := range s.templates {
		if s.templates[i].ID == id {
			t := s.templates[i]
			return &t
		}
	}
	return nil
}

// All returns every stored template.
func (s *TemplateStore) All() []models.WorkoutTemplate {
	return append([]models.WorkoutTemplate(nil), s.templates...)
}

// SearchByTag returns templates carrying the given tag.
func (s *TemplateStore) SearchByTag(tag string) []models.WorkoutTemplate {
	var out []models.WorkoutTemplate
	for _, t := range s.templates {
		for _, have := range t.Tags {
			if have == tag {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// SearchByName returns templates whose name contains the query,
// case-insensitively.
func (s *TemplateStore) SearchByName(query string) []models.WorkoutTemplate {
	query = strings.ToLower(query)
	var out []models.WorkoutTemplate
	for _, t := range s.templates {
		if strings.Contains(strings.ToLower(t.Name), query) {
			out = append(out, t)
		}
	}
	return out
}

// Recent returns up to limit templates ordered by most recent use.
func (s *TemplateStore) Recent(limit int) []models.WorkoutTemplate {
	var used []models.WorkoutTemplate
	for _, t := range s.templates {
		if t.LastUsed != nil {
			used = append(used, t)
		}
	}
	sort.Slice(used, func(i, j int) bool {
		return used[i].LastUsed.After(*used[j].LastUsed)
	})
	if len(used) > limit {
		used = used[:limit]
	}
	return used
}

// Instantiate creates a workout from a template and stamps the template's
// last-used time. Returns nil when the template does not exist.
func (s *TemplateStore) Instantiate(id uuid.UUID, now time.Time) *models.Workout {
	for i := range s.templates {
		if s.templates[i].ID == id {
			used := now
			s.templates[i].LastUsed = &used
			w := s.templates[i].Instantiate(now)
			return &w
		}
	}
	return nil
}

// Capture builds and stores a template from a completed workout.
func (s *TemplateStore) Capture(w models.Workout, name string, tags []string, now time.Time) models.WorkoutTemplate {
	t := models.TemplateFromWorkout(w, name, tags, now)
	s.templates = append(s.templates, t)
	return t
}
