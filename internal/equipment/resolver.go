// Package equipment resolves exercises whose required equipment is not
// available into substitutes that hit the same muscle groups.
package equipment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

// Resolver suggests equipment substitutions against a configured set of
// available equipment. Availability is injected at construction rather than
// read from ambient state.
type Resolver struct {
	available map[models.Equipment]bool
}

// NewResolver creates a resolver. With no equipment given, everything is
// treated as available.
func NewResolver(available ...models.Equipment) *Resolver {
	if len(available) == 0 {
		available = models.AllEquipment
	}
	r := &Resolver{available: make(map[models.Equipment]bool, len(available))}
	for _, e := range available {
		r.available[e] = true
	}
	return r
}

// SetAvailable replaces the available equipment set.
func (r *Resolver) SetAvailable(available []models.Equipment) {
	r.available = make(map[models.Equipment]bool, len(available))
	for _, e := range available {
		r.available[e] = true
	}
}

// IsAvailable reports whether the equipment can be used.
func (r *Resolver) IsAvailable(e models.Equipment) bool {
	return r.available[e]
}

// FindAlternatives returns substitute exercises for one whose equipment is
// unavailable, preserving the muscle groups and deriving a display name from
// the alternative equipment. Returns nil when the equipment is available.
func (r *Resolver) FindAlternatives(ex models.Exercise) []models.Exercise {
	if r.IsAvailable(ex.Equipment) {
		return nil
	}

	var out []models.Exercise
	for _, alt := range ex.Equipment.Alternatives() {
		if !r.IsAvailable(alt) {
			continue
		}
		sub := models.NewExercise(fmt.Sprintf("%s (%s)", ex.Name, alt), alt, ex.MuscleGroups...)
		sub.ImageURL = ex.ImageURL
		out = append(out, sub)
	}
	return out
}

// Swap pairs an original exercise with its available alternatives.
type Swap struct {
	Original     models.Exercise   `json:"original"`
	Alternatives []models.Exercise `json:"alternatives"`
}

// SuggestSwaps returns a swap suggestion for every exercise in the workout
// whose equipment is unavailable and has at least one alternative.
func (r *Resolver) SuggestSwaps(w models.Workout) []Swap {
	var swaps []Swap
	for _, we := range w.Exercises {
		alts := r.FindAlternatives(we.Exercise)
		if len(alts) > 0 {
			swaps = append(swaps, Swap{Original: we.Exercise, Alternatives: alts})
		}
	}
	return swaps
}

// ApplySwap replaces a single exercise slot in the workout, keeping its
// existing sets. Returns false when the original exercise is not present.
func (r *Resolver) ApplySwap(w *models.Workout, originalID uuid.UUID, replacement models.Exercise) bool {
	for i := range w.Exercises {
		if w.Exercises[i].Exercise.ID == originalID {
			w.Exercises[i].Exercise = replacement
			return true
		}
	}
	return false
}
