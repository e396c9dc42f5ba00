package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
	"github.com/meltforce/betterfit/internal/tracking"
)

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}

	s.mu.Lock()
	if workout.StartedAt.IsZero() {
		workout.StartedAt = s.coach.Now()
	}
	s.coach.StartWorkout(workout)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	err := s.coach.CompleteWorkout(r.Context(), workout)
	s.mu.Unlock()
	if err != nil {
		s.log.Error("complete workout failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleWorkoutHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	history := s.coach.History()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleRecommendedWorkout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	workout := s.coach.RecommendedWorkout()
	s.mu.Unlock()
	if workout == nil {
		writeError(w, http.StatusNotFound, "no recommendation available")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	now := s.coach.Now()
	snapshot := s.coach.Recovery().Snapshot(now)
	overall := s.coach.Recovery().OverallPercentage(now)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"regions":      snapshot.Regions,
		"last_updated": snapshot.LastUpdated,
		"overall_pct":  overall,
	})
}

func (s *Server) handleRegionRecovery(w http.ResponseWriter, r *http.Request) {
	region := models.BodyRegion(chi.URLParam(r, "region"))

	s.mu.Lock()
	now := s.coach.Now()
	status := s.coach.Recovery().Status(region, now)
	ready := s.coach.Recovery().IsReadyForTraining(region, now)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"region": region,
		"status": status,
		"ready":  ready,
	})
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.TrainingPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}

	s.mu.Lock()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = s.coach.Now()
	}
	s.coach.Plans().Add(plan)
	err := s.coach.Store().SavePlan(r.Context(), plan)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleActivatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	s.mu.Lock()
	s.coach.Plans().SetActive(id)
	serr := s.coach.Store().SetActivePlan(r.Context(), id)
	s.mu.Unlock()
	if serr != nil {
		writeError(w, http.StatusInternalServerError, serr.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	s.mu.Lock()
	s.coach.Plans().Remove(id)
	serr := s.coach.Store().DeletePlan(r.Context(), id)
	s.mu.Unlock()
	if serr != nil {
		writeError(w, http.StatusInternalServerError, serr.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	plans := s.coach.Plans().All()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleActivePlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	plan := s.coach.Plans().Active()
	s.mu.Unlock()
	if plan == nil {
		writeError(w, http.StatusNotFound, "no active plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.WorkoutTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	s.mu.Lock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.coach.Now()
	}
	s.coach.Templates().Add(t)
	err := s.coach.Store().SaveTemplate(r.Context(), t)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// handleCaptureTemplate builds a template out of a performed workout.
func (s *Server) handleCaptureTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Workout models.Workout `json:"workout"`
		Name    string         `json:"name"`
		Tags    []string       `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	s.mu.Lock()
	t := s.coach.Templates().Capture(req.Workout, req.Name, req.Tags, s.coach.Now())
	err := s.coach.Store().SaveTemplate(r.Context(), t)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template ID")
		return
	}

	s.mu.Lock()
	s.coach.Templates().Remove(id)
	serr := s.coach.Store().DeleteTemplate(r.Context(), id)
	s.mu.Unlock()
	if serr != nil {
		writeError(w, http.StatusInternalServerError, serr.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var templates []models.WorkoutTemplate
	if tag := r.URL.Query().Get("tag"); tag != "" {
		templates = s.coach.Templates().SearchByTag(tag)
	} else if q := r.URL.Query().Get("q"); q != "" {
		templates = s.coach.Templates().SearchByName(q)
	} else {
		templates = s.coach.Templates().All()
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	var c models.Challenge
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	s.mu.Lock()
	s.coach.Social().CreateChallenge(c)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleJoinChallenge(w http.ResponseWriter, r *http.Request) {
	s.challengeMembership(w, r, func(id uuid.UUID) bool {
		return s.coach.Social().JoinChallenge(id)
	})
}

func (s *Server) handleLeaveChallenge(w http.ResponseWriter, r *http.Request) {
	s.challengeMembership(w, r, func(id uuid.UUID) bool {
		return s.coach.Social().LeaveChallenge(id)
	})
}

func (s *Server) challengeMembership(w http.ResponseWriter, r *http.Request, op func(uuid.UUID) bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challenge ID")
		return
	}

	s.mu.Lock()
	ok := op(id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "challenge not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChallengeProgress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challenge ID")
		return
	}

	var req struct {
		UserID   uuid.UUID `json:"user_id"`
		Progress float64   `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	ok := s.coach.Social().UpdateProgress(id, req.UserID, req.Progress)
	reached := ok && s.coach.Social().GoalReached(id, req.UserID)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "challenge not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "goal_reached": reached})
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var challenges []models.Challenge
	if r.URL.Query().Get("active") == "true" {
		challenges = s.coach.Social().ActiveChallenges(s.coach.Now())
	} else {
		challenges = s.coach.Social().Challenges()
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, challenges)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challenge ID")
		return
	}

	s.mu.Lock()
	entries := s.coach.Social().Leaderboard(id)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	streak := s.coach.Social().Streak()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	profile := s.coach.Social().Profile()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pending := s.coach.Notifications().Scheduled(s.coach.Now())
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleMotionSample(w http.ResponseWriter, r *http.Request) {
	var sample tracking.MotionSample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	event := s.coach.ProcessMotionSample(sample)
	s.mu.Unlock()
	if event == nil {
		writeJSON(w, http.StatusOK, map[string]any{"event": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

// handleIngestHealth accepts a batch of externally computed daily summaries.
// The core only stores and displays them.
func (s *Server) handleIngestHealth(w http.ResponseWriter, r *http.Request) {
	var summaries []models.HealthSummary
	if err := json.NewDecoder(r.Body).Decode(&summaries); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	for _, sum := range summaries {
		s.coach.RecordHealthSummary(sum)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"ingested": len(summaries)})
}

func (s *Server) handleHealthSummaries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summaries := s.coach.HealthSummaries()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleConfigWarnings(w http.ResponseWriter, r *http.Request) {
	warnings := s.warnings
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}
