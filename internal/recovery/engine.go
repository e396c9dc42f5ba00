// Package recovery tracks per-region muscle fatigue. Work regresses a
// region's status, elapsed time relaxes it back toward recovered. Decay is
// lazy: every entry point first applies the pure decay transition against a
// single "now" snapshot, so repeated reads at the same instant are idempotent.
package recovery

import (
	"time"

	"github.com/meltforce/betterfit/internal/models"
)

// BodyMap is the recovery engine. Not safe for concurrent use; callers
// serialize access through a single owner.
type BodyMap struct {
	state models.BodyMapRecovery
}

// New creates a body map with no regions touched.
func New(now time.Time) *BodyMap {
	return &BodyMap{state: models.BodyMapRecovery{
		Regions:     make(map[models.BodyRegion]models.RecoveryStatus),
		LastUpdated: now,
	}}
}

// Restore creates a body map from a persisted snapshot.
func Restore(snap models.BodyMapRecovery) *BodyMap {
	if snap.Regions == nil {
		snap.Regions = make(map[models.BodyRegion]models.RecoveryStatus)
	}
	return &BodyMap{state: snap}
}

// decay returns the state with every region relaxed by the time elapsed
// between state.LastUpdated and now, and LastUpdated advanced to now.
func decay(state models.BodyMapRecovery, now time.Time) models.BodyMapRecovery {
	hours := now.Sub(state.LastUpdated).Hours()
	regions := make(map[models.BodyRegion]models.RecoveryStatus, len(state.Regions))
	for region, status := range state.Regions {
		regions[region] = status.AfterRecovery(hours)
	}
	return models.BodyMapRecovery{Regions: regions, LastUpdated: now}
}

// RecordWorkout applies the work transition once per muscle-group occurrence
// in the workout. A compound exercise whose groups map to the same region
// advances that region more than once.
func (b *BodyMap) RecordWorkout(w models.Workout, now time.Time) {
	b.state = decay(b.state, now)
	for _, ex := range w.Exercises {
		for _, group := range ex.Exercise.MuscleGroups {
			region := group.Region()
			current, ok := b.state.Regions[region]
			if !ok {
				current = models.StatusRecovered
			}
			b.state.Regions[region] = current.AfterWorkout()
		}
	}
}

// Status returns the region's status after decay. Untouched regions read as
// recovered.
func (b *BodyMap) Status(region models.BodyRegion, now time.Time) models.RecoveryStatus {
	b.state = decay(b.state, now)
	if status, ok := b.state.Regions[region]; ok {
		return status
	}
	return models.StatusRecovered
}

// Snapshot returns the decayed state, suitable for persistence.
func (b *BodyMap) Snapshot(now time.Time) models.BodyMapRecovery {
	b.state = decay(b.state, now)
	regions := make(map[models.BodyRegion]models.RecoveryStatus, len(b.state.Regions))
	for region, status := range b.state.Regions {
		regions[region] = status
	}
	return models.BodyMapRecovery{Regions: regions, LastUpdated: b.state.LastUpdated}
}

// OverallPercentage returns the mean region score scaled to 0–100. A map
// with no regions touched reads as fully recovered.
func (b *BodyMap) OverallPercentage(now time.Time) float64 {
	b.state = decay(b.state, now)
	if len(b.state.Regions) == 0 {
		return 100
	}
	var total float64
	for _, status := range b.state.Regions {
		total += status.Score()
	}
	return total / float64(len(b.state.Regions)) * 100
}

// IsReadyForTraining reports whether the region is recovered enough to train.
func (b *BodyMap) IsReadyForTraining(region models.BodyRegion, now time.Time) bool {
	status := b.Status(region, now)
	return status == models.StatusRecovered || status == models.StatusSlightlyFatigued
}

// RecommendedExercises filters the given exercises to those not touching a
// sore region. With avoidSore false the list passes through unchanged.
func (b *BodyMap) RecommendedExercises(available []models.Exercise, avoidSore bool, now time.Time) []models.Exercise {
	if !avoidSore {
		return available
	}
	b.state = decay(b.state, now)

	out := make([]models.Exercise, 0, len(available))
	for _, ex := range available {
		sore := false
		for _, group := range ex.MuscleGroups {
			if b.state.Regions[group.Region()] == models.StatusSore {
				sore = true
				break
			}
		}
		if !sore {
			out = append(out, ex)
		}
	}
	return out
}

// Reset clears all tracked regions.
func (b *BodyMap) Reset(now time.Time) {
	b.state = models.BodyMapRecovery{
		Regions:     make(map[models.BodyRegion]models.RecoveryStatus),
		LastUpdated: now,
	}
}
