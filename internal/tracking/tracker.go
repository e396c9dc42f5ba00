// Package tracking consumes device motion events during a workout to count
// repetitions and detect set completion. Sample classification uses fixed
// acceleration-magnitude thresholds; anything fancier belongs to the device
// integration, not here.
package tracking

import (
	"math"
	"time"

	"github.com/meltforce/betterfit/internal/models"
)

// Magnitude thresholds for classifying a motion sample.
const (
	repThreshold  = 1.5
	restThreshold = 0.2
)

// MotionSample is one reading from the device sensors.
type MotionSample struct {
	Acceleration []float64 `json:"acceleration"`
	HeartRate    *float64  `json:"heart_rate,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Magnitude returns the acceleration vector magnitude, or 0 for a vector
// with fewer than three components.
func (m MotionSample) Magnitude() float64 {
	if len(m.Acceleration) < 3 {
		return 0
	}
	a := m.Acceleration
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// EventKind tags a tracking event.
type EventKind string

const (
	EventRepDetected  EventKind = "rep_detected"
	EventSetCompleted EventKind = "set_completed"
)

// Event is a discrete outcome of processing a motion sample.
type Event struct {
	Kind EventKind `json:"kind"`
	Reps int       `json:"reps"`
}

// Status is a read-only view of the tracker.
type Status struct {
	IsTracking      bool `json:"is_tracking"`
	CurrentExercise int  `json:"current_exercise"`
	DetectedReps    int  `json:"detected_reps"`
}

// Tracker counts reps for the workout currently in progress.
type Tracker struct {
	tracking        bool
	current         *models.Workout
	currentExercise int
	detectedReps    int
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Start begins tracking the given workout.
func (t *Tracker) Start(w models.Workout) {
	t.current = &w
	t.tracking = true
	t.currentExercise = 0
	t.detectedReps = 0
}

// Stop ends tracking and discards session state.
func (t *Tracker) Stop() {
	t.tracking = false
	t.current = nil
	t.currentExercise = 0
	t.detectedReps = 0
}

// Process classifies a motion sample. A rep-magnitude sample increments the
// counter; a rest-magnitude sample closes the current set and resets the
// counter. Samples between the thresholds, or while idle, yield nil.
func (t *Tracker) Process(sample MotionSample) *Event {
	if !t.tracking {
		return nil
	}

	mag := sample.Magnitude()
	if mag > repThreshold {
		t.detectedReps++
		return &Event{Kind: EventRepDetected, Reps: t.detectedReps}
	}
	if mag < restThreshold {
		ev := &Event{Kind: EventSetCompleted, Reps: t.detectedReps}
		t.detectedReps = 0
		return ev
	}
	return nil
}

// CompleteCurrentSet emits a completed, auto-tracked set from the detected
// reps and resets the counter. Returns nil when nothing is being tracked or
// the exercise index has run past the workout.
func (t *Tracker) CompleteCurrentSet(now time.Time) *models.ExerciseSet {
	if t.current == nil || t.currentExercise >= len(t.current.Exercises) {
		return nil
	}

	set := models.NewSet(t.detectedReps, nil)
	set.IsCompleted = true
	set.CompletedAt = &now
	set.AutoTracked = true

	t.detectedReps = 0
	return &set
}

// NextExercise advances to the next exercise and resets the rep counter.
func (t *Tracker) NextExercise() {
	t.currentExercise++
	t.detectedReps = 0
}

// Status returns the current tracking state.
func (t *Tracker) Status() Status {
	return Status{
		IsTracking:      t.tracking,
		CurrentExercise: t.currentExercise,
		DetectedReps:    t.detectedReps,
	}
}

// Current returns the workout being tracked, or nil.
func (t *Tracker) Current() *models.Workout {
	return t.current
}
