package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingGoal fixes a canonical rep range and rest time for a plan.
type TrainingGoal string

const (
	GoalStrength     TrainingGoal = "strength"
	GoalHypertrophy  TrainingGoal = "hypertrophy"
	GoalEndurance    TrainingGoal = "endurance"
	GoalPowerlifting TrainingGoal = "powerlifting"
	GoalGeneral      TrainingGoal = "general_fitness"
	GoalWeightLoss   TrainingGoal = "weight_loss"
)

// RepRange returns the recommended (min, max) reps per set for the goal.
func (g TrainingGoal) RepRange() (int, int) {
	switch g {
	case GoalStrength, GoalPowerlifting:
		return 1, 5
	case GoalHypertrophy:
		return 6, 12
	case GoalEndurance:
		return 12, 20
	case GoalWeightLoss:
		return 10, 20
	default:
		return 8, 15
	}
}

// RestTime returns the recommended rest between sets for the goal.
func (g TrainingGoal) RestTime() time.Duration {
	switch g {
	case GoalStrength:
		return 180 * time.Second
	case GoalPowerlifting:
		return 240 * time.Second
	case GoalEndurance:
		return 60 * time.Second
	case GoalWeightLoss:
		return 45 * time.Second
	default:
		return 90 * time.Second
	}
}

// TrainingWeek is one week of a plan, referencing template identities.
type TrainingWeek struct {
	ID         uuid.UUID   `json:"id"`
	WeekNumber int         `json:"week_number"`
	Templates  []uuid.UUID `json:"templates"`
	Notes      string      `json:"notes,omitempty"`
}

// TrainingPlan is an ordered sequence of weeks with a progress cursor.
type TrainingPlan struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Notes       string         `json:"notes,omitempty"`
	Weeks       []TrainingWeek `json:"weeks"`
	CurrentWeek int            `json:"current_week"`
	Goal        TrainingGoal   `json:"goal"`
	CreatedAt   time.Time      `json:"created_at"`
	AIAdapted   bool           `json:"ai_adapted"`
	Adaptations []string       `json:"adaptations,omitempty"`
}

// Week returns the current week, or nil when the cursor has run past the end.
func (p *TrainingPlan) Week() *TrainingWeek {
	if p.CurrentWeek < 0 || p.CurrentWeek >= len(p.Weeks) {
		return nil
	}
	return &p.Weeks[p.CurrentWeek]
}

// AdvanceWeek moves the cursor forward. Advancing past the last week is a
// no-op rather than an error.
func (p *TrainingPlan) AdvanceWeek() {
	if p.CurrentWeek < len(p.Weeks)-1 {
		p.CurrentWeek++
	}
}
