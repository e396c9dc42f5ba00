// Package notify derives reminder timing from historical workout timestamps
// and training load. The schedule is transient: every recompute replaces it
// wholesale, so notifications carry no identity across passes.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

// Type tags a scheduled notification.
type Type string

const (
	TypeWorkoutReminder   Type = "workout_reminder"
	TypeRestDayReminder   Type = "rest_day_reminder"
	TypePlanProgress      Type = "plan_progress"
	TypeStreakMaintenance Type = "streak_maintenance"
)

// Notification is a single scheduled reminder.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Type        Type      `json:"type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Message     string    `json:"message"`
}

// Scheduler recomputes the pending notification list on demand.
type Scheduler struct {
	scheduled []Notification
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Reschedule replaces the pending notifications based on the user's history,
// streak, and active plan.
func (s *Scheduler) Reschedule(profile models.UserProfile, history []models.Workout, activePlan *models.TrainingPlan, now time.Time) {
	s.scheduled = s.scheduled[:0]

	if at, ok := optimalWorkoutTime(history, now); ok {
		s.add(TypeWorkoutReminder, at, fmt.Sprintf(
			"Time for your workout! Let's maintain that %d-day streak.", profile.CurrentStreak))
	}

	if overtraining(history, now) {
		s.add(TypeRestDayReminder, now.Add(time.Hour),
			"Your body needs recovery. Consider taking a rest day.")
	}

	if activePlan != nil {
		if week := activePlan.Week(); week != nil {
			s.add(TypePlanProgress, now.Add(24*time.Hour), fmt.Sprintf(
				"Week %d complete! Ready for the next challenge?", week.WeekNumber))
		}
	}

	if profile.CurrentStreak > 0 {
		s.add(TypeStreakMaintenance, now.Add(18*time.Hour), fmt.Sprintf(
			"Don't break your %d-day streak! Quick workout?", profile.CurrentStreak))
	}
}

// Scheduled returns pending notifications, filtered to future entries.
func (s *Scheduler) Scheduled(now time.Time) []Notification {
	var out []Notification
	for _, n := range s.scheduled {
		if n.ScheduledAt.After(now) {
			out = append(out, n)
		}
	}
	return out
}

// Cancel removes a single pending notification.
func (s *Scheduler) Cancel(id uuid.UUID) {
	out := s.scheduled[:0]
	for _, n := range s.scheduled {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.scheduled = out
}

// CancelAll clears the schedule.
func (s *Scheduler) CancelAll() {
	s.scheduled = s.scheduled[:0]
}

func (s *Scheduler) add(typ Type, at time.Time, message string) {
	s.scheduled = append(s.scheduled, Notification{
		ID:          uuid.New(),
		Type:        typ,
		ScheduledAt: at,
		Message:     message,
	})
}

// optimalWorkoutTime buckets history by hour of day and schedules the most
// frequent hour, either later today or tomorrow if it has already passed.
func optimalWorkoutTime(history []models.Workout, now time.Time) (time.Time, bool) {
	if len(history) == 0 {
		return time.Time{}, false
	}

	counts := make(map[int]int)
	for _, w := range history {
		counts[w.StartedAt.Hour()]++
	}

	bestHour, bestCount := 0, 0
	for hour, count := range counts {
		if count > bestCount || (count == bestCount && hour < bestHour) {
			bestHour, bestCount = hour, count
		}
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), bestHour, 0, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at, true
}

// overtraining reports more than six workouts in the trailing seven days.
func overtraining(history []models.Workout, now time.Time) bool {
	cutoff := now.AddDate(0, 0, -7)
	count := 0
	for _, w := range history {
		if w.StartedAt.After(cutoff) {
			count++
		}
	}
	return count > 6
}
