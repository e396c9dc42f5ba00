// Package adapt turns recent workout history into deterministic plan
// adaptation directives. The rules are independent heuristics; several may
// fire on the same analysis pass.
package adapt

import (
	"fmt"

	"github.com/meltforce/betterfit/internal/models"
)

// Kind selects the adaptation directive.
type Kind string

const (
	ReduceVolume    Kind = "reduce_volume"
	IncreaseVolume  Kind = "increase_volume"
	AdjustIntensity Kind = "adjust_intensity"
	DeloadWeek      Kind = "deload_week"
)

// Adaptation is a single directive with its percentage magnitude. Percent is
// zero for deload weeks.
type Adaptation struct {
	Kind    Kind `json:"kind"`
	Percent int  `json:"percent,omitempty"`
}

// String renders the directive for notes and logs.
func (a Adaptation) String() string {
	switch a.Kind {
	case ReduceVolume:
		return fmt.Sprintf("reduce training volume by %d%%", a.Percent)
	case IncreaseVolume:
		return fmt.Sprintf("increase training volume by %d%%", a.Percent)
	case AdjustIntensity:
		return fmt.Sprintf("adjust intensity by %+d%%", a.Percent)
	default:
		return "schedule a deload week"
	}
}

// Analyzer evaluates workout history against a plan.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze inspects the given workouts and emits zero or more directives:
//
//   - completion rate below 70% → reduce volume 15%; above 95% → increase 10%
//   - most recent volume not strictly above the oldest of the last four
//     workouts → adjust intensity +5%
//   - volume spread of the last four workouts under 5% of the max → deload
func (a *Analyzer) Analyze(workouts []models.Workout, plan models.TrainingPlan) []Adaptation {
	var out []Adaptation

	rate := completionRate(workouts)
	if rate < 0.70 {
		out = append(out, Adaptation{Kind: ReduceVolume, Percent: 15})
	} else if rate > 0.95 {
		out = append(out, Adaptation{Kind: IncreaseVolume, Percent: 10})
	}

	if !progressiveOverload(workouts) {
		out = append(out, Adaptation{Kind: AdjustIntensity, Percent: 5})
	}

	if plateaued(workouts) {
		out = append(out, Adaptation{Kind: DeloadWeek})
	}

	return out
}

// Apply marks the plan as AI-adapted and records the directives on it. The
// concrete numeric mutation of sets and weights is left to the adopting
// layer.
func (a *Analyzer) Apply(adaptations []Adaptation, plan *models.TrainingPlan) {
	if len(adaptations) == 0 {
		return
	}
	for _, ad := range adaptations {
		plan.Adaptations = append(plan.Adaptations, ad.String())
	}
	plan.AIAdapted = true
}

func completionRate(workouts []models.Workout) float64 {
	var completed, total int
	for _, w := range workouts {
		c, t := w.SetCounts()
		completed += c
		total += t
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// progressiveOverload compares the most recent workout's volume against the
// oldest of the last four. Fewer than two workouts trivially passes.
func progressiveOverload(workouts []models.Workout) bool {
	if len(workouts) < 2 {
		return true
	}
	recent := lastN(workouts, 4)
	return recent[len(recent)-1].Volume() > recent[0].Volume()
}

// plateaued reports whether the last four workouts' volumes are stagnant:
// spread under 5% of the max. Fewer than four workouts never plateaus.
func plateaued(workouts []models.Workout) bool {
	if len(workouts) < 4 {
		return false
	}
	recent := lastN(workouts, 4)

	min, max := recent[0].Volume(), recent[0].Volume()
	for _, w := range recent[1:] {
		v := w.Volume()
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max-min < max*0.05
}

func lastN(workouts []models.Workout, n int) []models.Workout {
	if len(workouts) <= n {
		return workouts
	}
	return workouts[len(workouts)-n:]
}
