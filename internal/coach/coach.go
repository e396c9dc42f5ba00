// Package coach is the orchestrator over the training engines. It owns one
// instance of each engine plus the in-memory workout history, and is the
// only component that touches more than one engine per operation. Engines
// never call each other directly.
//
// The coach is single-owner: callers needing concurrent access must
// serialize through one writer.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/meltforce/betterfit/internal/adapt"
	"github.com/meltforce/betterfit/internal/equipment"
	"github.com/meltforce/betterfit/internal/models"
	"github.com/meltforce/betterfit/internal/notify"
	"github.com/meltforce/betterfit/internal/plans"
	"github.com/meltforce/betterfit/internal/recovery"
	"github.com/meltforce/betterfit/internal/social"
	"github.com/meltforce/betterfit/internal/storage"
	"github.com/meltforce/betterfit/internal/tracking"
)

// Coach sequences the engines on workout lifecycle events.
type Coach struct {
	store storage.Store
	log   *slog.Logger

	plans     *plans.PlanStore
	templates *plans.TemplateStore
	resolver  *equipment.Resolver
	bodyMap   *recovery.BodyMap
	social    *social.Tracker
	notify    *notify.Scheduler
	analyzer  *adapt.Analyzer
	tracker   *tracking.Tracker

	history []models.Workout
	health  []models.HealthSummary
	clock   func() time.Time
}

// Options configures coach construction.
type Options struct {
	// Username seeds the profile when no persisted profile exists.
	Username string
	// AvailableEquipment restricts the substitution resolver. Empty means
	// everything is available.
	AvailableEquipment []models.Equipment
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// New creates a coach writing through the given store.
func New(store storage.Store, log *slog.Logger, opts Options) *Coach {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	username := opts.Username
	if username == "" {
		username = "user"
	}

	return &Coach{
		store:     store,
		log:       log,
		plans:     plans.NewPlanStore(),
		templates: plans.NewTemplateStore(),
		resolver:  equipment.NewResolver(opts.AvailableEquipment...),
		bodyMap:   recovery.New(clock()),
		social:    social.NewTracker(models.NewUserProfile(username)),
		notify:    notify.NewScheduler(),
		analyzer:  adapt.NewAnalyzer(),
		tracker:   tracking.NewTracker(),
		clock:     clock,
	}
}

// LoadPersisted restores history, profile, streak, recovery, templates, and
// plans from the store.
func (c *Coach) LoadPersisted(ctx context.Context) error {
	workouts, err := c.store.Workouts(ctx)
	if err != nil {
		return fmt.Errorf("loading workouts: %w", err)
	}
	c.history = workouts

	profile, err := c.store.UserProfile(ctx)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	streak, err := c.store.Streak(ctx)
	if err != nil {
		return fmt.Errorf("loading streak: %w", err)
	}
	if profile != nil {
		s := models.Streak{}
		if streak != nil {
			s = *streak
		}
		c.social = social.Restore(*profile, s)
	}

	snap, err := c.store.Recovery(ctx)
	if err != nil {
		return fmt.Errorf("loading recovery: %w", err)
	}
	if snap != nil {
		c.bodyMap = recovery.Restore(*snap)
	}

	templates, err := c.store.Templates(ctx)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	for _, t := range templates {
		c.templates.Add(t)
	}

	planList, err := c.store.Plans(ctx)
	if err != nil {
		return fmt.Errorf("loading plans: %w", err)
	}
	for _, p := range planList {
		c.plans.Add(p)
	}
	active, err := c.store.ActivePlan(ctx)
	if err != nil {
		return fmt.Errorf("loading active plan: %w", err)
	}
	if active != nil {
		c.plans.SetActive(active.ID)
	}

	c.log.Info("persisted state loaded",
		"workouts", len(workouts),
		"templates", len(templates),
		"plans", len(planList),
	)
	return nil
}

// StartWorkout begins auto-tracking the workout and recomputes the
// notification schedule.
func (c *Coach) StartWorkout(w models.Workout) {
	c.tracker.Start(w)
	c.rescheduleNotifications()
	c.log.Info("workout started", "workout", w.ID, "name", w.Name)
}

// CompleteWorkout records the workout into history, feeds the recovery and
// streak engines, persists the updated state, and — when a plan is active —
// runs the adaptation analyzer against it. Persistence failures propagate;
// retry policy belongs to the caller.
func (c *Coach) CompleteWorkout(ctx context.Context, w models.Workout) error {
	now := c.clock()
	c.tracker.Stop()

	w.IsCompleted = true
	c.history = append(c.history, w)
	if err := c.store.SaveWorkout(ctx, w); err != nil {
		return fmt.Errorf("saving workout: %w", err)
	}

	c.bodyMap.RecordWorkout(w, now)
	c.social.RecordWorkout(w.StartedAt)

	if err := c.store.SaveUserProfile(ctx, c.social.Profile()); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	if err := c.store.SaveStreak(ctx, c.social.Streak()); err != nil {
		return fmt.Errorf("saving streak: %w", err)
	}
	if err := c.store.SaveRecovery(ctx, c.bodyMap.Snapshot(now)); err != nil {
		return fmt.Errorf("saving recovery: %w", err)
	}

	if active := c.plans.Active(); active != nil {
		adaptations := c.analyzer.Analyze(c.history, *active)
		if len(adaptations) > 0 {
			c.analyzer.Apply(adaptations, active)
			c.plans.Update(*active)
			if err := c.store.SavePlan(ctx, *active); err != nil {
				return fmt.Errorf("saving adapted plan: %w", err)
			}
			c.log.Info("plan adapted", "plan", active.ID, "directives", len(adaptations))
		}
	}

	c.log.Info("workout completed", "workout", w.ID, "streak", c.social.Streak().Current)
	return nil
}

// RecommendedWorkout instantiates the first template of the active plan's
// current week and applies the first available equipment substitute for each
// incompatible exercise. Returns nil when there is no active plan, current
// week, or template — a benign empty result, not an error.
func (c *Coach) RecommendedWorkout() *models.Workout {
	active := c.plans.Active()
	if active == nil {
		return nil
	}
	week := active.Week()
	if week == nil || len(week.Templates) == 0 {
		return nil
	}

	workout := c.templates.Instantiate(week.Templates[0], c.clock())
	if workout == nil {
		return nil
	}

	for _, swap := range c.resolver.SuggestSwaps(*workout) {
		c.resolver.ApplySwap(workout, swap.Original.ID, swap.Alternatives[0])
	}
	return workout
}

// History returns the in-memory workout history.
func (c *Coach) History() []models.Workout {
	return append([]models.Workout(nil), c.history...)
}

// RecordHealthSummary stores an externally computed daily summary. A summary
// for an already-seen date replaces the earlier one.
func (c *Coach) RecordHealthSummary(s models.HealthSummary) {
	day := s.Date.Format("2006-01-02")
	for i := range c.health {
		if c.health[i].Date.Format("2006-01-02") == day {
			c.health[i] = s
			return
		}
	}
	c.health = append(c.health, s)
	sort.Slice(c.health, func(i, j int) bool {
		return c.health[i].Date.Before(c.health[j].Date)
	})
}

// HealthSummaries returns the stored daily summaries, oldest first.
func (c *Coach) HealthSummaries() []models.HealthSummary {
	return append([]models.HealthSummary(nil), c.health...)
}

// ProcessMotionSample feeds one device sample through the auto-tracker.
func (c *Coach) ProcessMotionSample(sample tracking.MotionSample) *tracking.Event {
	return c.tracker.Process(sample)
}

func (c *Coach) rescheduleNotifications() {
	c.notify.Reschedule(c.social.Profile(), c.history, c.plans.Active(), c.clock())
}

// RescheduleNotifications recomputes the notification schedule. Exposed for
// the periodic cron recompute.
func (c *Coach) RescheduleNotifications() {
	c.rescheduleNotifications()
}

// Engine accessors. Callers must respect the single-owner discipline.

func (c *Coach) Plans() *plans.PlanStore          { return c.plans }
func (c *Coach) Templates() *plans.TemplateStore  { return c.templates }
func (c *Coach) Equipment() *equipment.Resolver   { return c.resolver }
func (c *Coach) Recovery() *recovery.BodyMap      { return c.bodyMap }
func (c *Coach) Social() *social.Tracker          { return c.social }
func (c *Coach) Notifications() *notify.Scheduler { return c.notify }
func (c *Coach) Tracking() *tracking.Tracker      { return c.tracker }
func (c *Coach) Analyzer() *adapt.Analyzer        { return c.analyzer }

// Now returns the coach's clock reading.
func (c *Coach) Now() time.Time { return c.clock() }

// Store returns the active persistence backend.
func (c *Coach) Store() storage.Store { return c.store }
