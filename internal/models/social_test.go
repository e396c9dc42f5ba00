package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 10, 0, 0, 0, time.Local)
}

// TestStreakConsecutiveDays verifies workouts on three consecutive days
// produce a current and longest streak of 3.
func TestStreakConsecutiveDays(t *testing.T) {
	var s Streak
	for d := 1; d <= 3; d++ {
		s = s.RecordWorkout(day(d))
	}
	if s.Current != 3 {
		t.Errorf("current = %d, want 3", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("longest = %d, want 3", s.Longest)
	}
}

// TestStreakGapResets verifies a gap of more than one day resets the current
// streak to 1 while the longest streak survives.
func TestStreakGapResets(t *testing.T) {
	var s Streak
	s = s.RecordWorkout(day(1))
	s = s.RecordWorkout(day(2))
	s = s.RecordWorkout(day(7))
	if s.Current != 1 {
		t.Errorf("current = %d, want 1", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("longest = %d, want 2", s.Longest)
	}
}

// TestStreakSameDayUnchanged verifies a second workout on the same day does
// not change the streak but still advances the last-workout date.
func TestStreakSameDayUnchanged(t *testing.T) {
	var s Streak
	s = s.RecordWorkout(day(1))
	later := day(1).Add(6 * time.Hour)
	s = s.RecordWorkout(later)
	if s.Current != 1 {
		t.Errorf("current = %d, want 1", s.Current)
	}
	if s.LastWorkout == nil || !s.LastWorkout.Equal(later) {
		t.Errorf("last workout = %v, want %v", s.LastWorkout, later)
	}
}

// TestStreakFirstWorkout verifies the very first workout starts the streak
// at 1.
func TestStreakFirstWorkout(t *testing.T) {
	var s Streak
	s = s.RecordWorkout(day(1))
	if s.Current != 1 || s.Longest != 1 {
		t.Errorf("current/longest = %d/%d, want 1/1", s.Current, s.Longest)
	}
}

// TestStreakMidnightBoundary verifies day counting uses calendar-day
// boundaries: 23:30 followed by 00:30 the next day is consecutive.
func TestStreakMidnightBoundary(t *testing.T) {
	var s Streak
	s = s.RecordWorkout(time.Date(2026, 3, 1, 23, 30, 0, 0, time.Local))
	s = s.RecordWorkout(time.Date(2026, 3, 2, 0, 30, 0, 0, time.Local))
	if s.Current != 2 {
		t.Errorf("current = %d, want 2", s.Current)
	}
}

// TestChallengeHasParticipant verifies participant membership checks.
func TestChallengeHasParticipant(t *testing.T) {
	alice := NewUserProfile("alice")
	bob := NewUserProfile("bob")
	c := Challenge{Participants: []uuid.UUID{alice.ID}}

	if !c.HasParticipant(alice.ID) {
		t.Error("expected alice to be a participant")
	}
	if c.HasParticipant(bob.ID) {
		t.Error("did not expect bob to be a participant")
	}
}
