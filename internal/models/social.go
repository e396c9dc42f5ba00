package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the stable identity and counters for one user.
type UserProfile struct {
	ID               uuid.UUID   `json:"id"`
	Username         string      `json:"username"`
	CurrentStreak    int         `json:"current_streak"`
	LongestStreak    int         `json:"longest_streak"`
	TotalWorkouts    int         `json:"total_workouts"`
	ActiveChallenges []uuid.UUID `json:"active_challenges,omitempty"`
}

// NewUserProfile creates a profile with a fresh identity.
func NewUserProfile(username string) UserProfile {
	return UserProfile{ID: uuid.New(), Username: username}
}

// Streak tracks consecutive calendar days with at least one workout.
type Streak struct {
	Current     int        `json:"current"`
	Longest     int        `json:"longest"`
	LastWorkout *time.Time `json:"last_workout,omitempty"`
}

// RecordWorkout folds a workout date into the streak. An exact 1-day gap
// extends the streak, a longer gap resets it to 1, and a second workout on
// the same day leaves it unchanged. The last-workout date always advances.
func (s Streak) RecordWorkout(date time.Time) Streak {
	if s.LastWorkout == nil {
		s.Current = 1
		if s.Longest < 1 {
			s.Longest = 1
		}
		s.LastWorkout = &date
		return s
	}

	switch days := daysBetween(*s.LastWorkout, date); {
	case days == 1:
		s.Current++
		if s.Current > s.Longest {
			s.Longest = s.Current
		}
	case days > 1:
		s.Current = 1
	}

	s.LastWorkout = &date
	return s
}

// daysBetween counts whole calendar days from a to b, using local midnight
// boundaries so a late-night workout followed by an early-morning one still
// counts as consecutive days.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.Local)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.Local)
	return int(end.Sub(start).Hours() / 24)
}

// ChallengeGoalKind selects what a challenge measures.
type ChallengeGoalKind string

const (
	GoalWorkoutCount     ChallengeGoalKind = "workout_count"
	GoalTotalVolume      ChallengeGoalKind = "total_volume"
	GoalConsecutiveDays  ChallengeGoalKind = "consecutive_days"
	GoalSpecificExercise ChallengeGoalKind = "specific_exercise"
)

// ChallengeGoal is a typed target for a challenge. ExerciseID is only set
// for specific-exercise goals.
type ChallengeGoal struct {
	Kind       ChallengeGoalKind `json:"kind"`
	Target     float64           `json:"target"`
	ExerciseID *uuid.UUID        `json:"exercise_id,omitempty"`
}

// Challenge is a time-boxed goal shared between participants, with progress
// tracked per participant.
type Challenge struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Notes        string                `json:"notes,omitempty"`
	Goal         ChallengeGoal         `json:"goal"`
	StartDate    time.Time             `json:"start_date"`
	EndDate      time.Time             `json:"end_date"`
	Participants []uuid.UUID           `json:"participants"`
	Progress     map[uuid.UUID]float64 `json:"progress"`
}

// HasParticipant reports whether the user has joined the challenge.
func (c Challenge) HasParticipant(userID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
