// Package social tracks workout streaks and shared challenges for a single
// user profile.
package social

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

// Tracker owns the user profile, streak, and challenge bookkeeping.
type Tracker struct {
	profile    models.UserProfile
	streak     models.Streak
	challenges []models.Challenge
}

// NewTracker creates a tracker for the given profile.
func NewTracker(profile models.UserProfile) *Tracker {
	return &Tracker{profile: profile}
}

// Restore creates a tracker from persisted profile and streak state.
func Restore(profile models.UserProfile, streak models.Streak) *Tracker {
	return &Tracker{profile: profile, streak: streak}
}

// RecordWorkout folds a completed workout's date into the streak and bumps
// the profile counters.
func (t *Tracker) RecordWorkout(date time.Time) {
	t.streak = t.streak.RecordWorkout(date)
	t.profile.CurrentStreak = t.streak.Current
	if t.streak.Longest > t.profile.LongestStreak {
		t.profile.LongestStreak = t.streak.Longest
	}
	t.profile.TotalWorkouts++
}

// Streak returns the current streak state.
func (t *Tracker) Streak() models.Streak {
	return t.streak
}

// Profile returns the user profile.
func (t *Tracker) Profile() models.UserProfile {
	return t.profile
}

// SetProfile replaces the user profile.
func (t *Tracker) SetProfile(profile models.UserProfile) {
	t.profile = profile
}

// CreateChallenge registers a new challenge.
func (t *Tracker) CreateChallenge(c models.Challenge) {
	if c.Progress == nil {
		c.Progress = make(map[uuid.UUID]float64)
	}
	t.challenges = append(t.challenges, c)
}

// Challenges returns every known challenge.
func (t *Tracker) Challenges() []models.Challenge {
	return append([]models.Challenge(nil), t.challenges...)
}

// ActiveChallenges returns challenges currently running that the user has
// joined.
func (t *Tracker) ActiveChallenges(now time.Time) []models.Challenge {
	var out []models.Challenge
	for _, c := range t.challenges {
		if !c.StartDate.After(now) && !c.EndDate.Before(now) && c.HasParticipant(t.profile.ID) {
			out = append(out, c)
		}
	}
	return out
}

// JoinChallenge adds the user to a challenge. Returns false for unknown ids;
// joining twice is a no-op.
func (t *Tracker) JoinChallenge(id uuid.UUID) bool {
	for i := range t.challenges {
		if t.challenges[i].ID != id {
			continue
		}
		if !t.challenges[i].HasParticipant(t.profile.ID) {
			t.challenges[i].Participants = append(t.challenges[i].Participants, t.profile.ID)
			t.profile.ActiveChallenges = append(t.profile.ActiveChallenges, id)
		}
		return true
	}
	return false
}

// LeaveChallenge removes the user from a challenge. Returns false for
// unknown ids.
func (t *Tracker) LeaveChallenge(id uuid.UUID) bool {
	for i := range t.challenges {
		if t.challenges[i].ID != id {
			continue
		}
		participants := t.challenges[i].Participants[:0]
		for _, p := range t.challenges[i].Participants {
			if p != t.profile.ID {
				participants = append(participants, p)
			}
		}
		t.challenges[i].Participants = participants

		active := t.profile.ActiveChallenges[:0]
		for _, c := range t.profile.ActiveChallenges {
			if c != id {
				active = append(active, c)
			}
		}
		t.profile.ActiveChallenges = active
		return true
	}
	return false
}

// UpdateProgress records a participant's progress toward a challenge goal.
// Returns false for unknown ids.
func (t *Tracker) UpdateProgress(challengeID, userID uuid.UUID, progress float64) bool {
	for i := range t.challenges {
		if t.challenges[i].ID == challengeID {
			if t.challenges[i].Progress == nil {
				t.challenges[i].Progress = make(map[uuid.UUID]float64)
			}
			t.challenges[i].Progress[userID] = progress
			return true
		}
	}
	return false
}

// LeaderboardEntry is one participant's standing in a challenge.
type LeaderboardEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Progress float64   `json:"progress"`
}

// Leaderboard returns challenge participants ordered by progress descending.
func (t *Tracker) Leaderboard(challengeID uuid.UUID) []LeaderboardEntry {
	for _, c := range t.challenges {
		if c.ID != challengeID {
			continue
		}
		entries := make([]LeaderboardEntry, 0, len(c.Progress))
		for userID, progress := range c.Progress {
			entries = append(entries, LeaderboardEntry{UserID: userID, Progress: progress})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Progress > entries[j].Progress
		})
		return entries
	}
	return nil
}

// GoalReached reports whether the participant's stored progress meets the
// challenge's typed goal threshold.
func (t *Tracker) GoalReached(challengeID, userID uuid.UUID) bool {
	for _, c := range t.challenges {
		if c.ID != challengeID {
			continue
		}
		progress, ok := c.Progress[userID]
		if !ok {
			return false
		}
		return progress >= c.Goal.Target
	}
	return false
}
