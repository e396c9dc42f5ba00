package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/betterfit/internal/coach"
)

// Server holds dependencies for HTTP handlers. The coach is not safe for
// concurrent mutation, so every handler serializes through mu: the
// single-writer discipline lives in the calling layer, not in the engines.
// The mutex is shared with every other coach caller (MCP, cron).
type Server struct {
	mu       *sync.Mutex
	coach    *coach.Coach
	log      *slog.Logger
	apiKey   string
	warnings []string
	router   chi.Router
}

// New creates a Server with all routes configured. mu must be the process's
// single coach mutex.
func New(c *coach.Coach, mu *sync.Mutex, apiKey string, warnings []string, log *slog.Logger) *Server {
	s := &Server{
		mu:       mu,
		coach:    c,
		log:      log,
		apiKey:   apiKey,
		warnings: warnings,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/workouts/start", s.handleStartWorkout)
		r.Post("/api/v1/workouts/complete", s.handleCompleteWorkout)
		r.Post("/api/v1/plans", s.handleCreatePlan)
		r.Post("/api/v1/plans/{id}/activate", s.handleActivatePlan)
		r.Delete("/api/v1/plans/{id}", s.handleDeletePlan)
		r.Post("/api/v1/templates", s.handleCreateTemplate)
		r.Post("/api/v1/templates/capture", s.handleCaptureTemplate)
		r.Delete("/api/v1/templates/{id}", s.handleDeleteTemplate)
		r.Post("/api/v1/challenges", s.handleCreateChallenge)
		r.Post("/api/v1/challenges/{id}/join", s.handleJoinChallenge)
		r.Post("/api/v1/challenges/{id}/leave", s.handleLeaveChallenge)
		r.Post("/api/v1/challenges/{id}/progress", s.handleChallengeProgress)
		r.Post("/api/v1/tracking/samples", s.handleMotionSample)
		r.Post("/api/v1/health/summaries", s.handleIngestHealth)
	})

	// Read endpoints
	s.router.Get("/api/v1/workouts", s.handleWorkoutHistory)
	s.router.Get("/api/v1/workouts/recommended", s.handleRecommendedWorkout)
	s.router.Get("/api/v1/recovery", s.handleRecovery)
	s.router.Get("/api/v1/recovery/{region}", s.handleRegionRecovery)
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/plans/active", s.handleActivePlan)
	s.router.Get("/api/v1/templates", s.handleListTemplates)
	s.router.Get("/api/v1/challenges", s.handleListChallenges)
	s.router.Get("/api/v1/challenges/{id}/leaderboard", s.handleLeaderboard)
	s.router.Get("/api/v1/streak", s.handleStreak)
	s.router.Get("/api/v1/profile", s.handleProfile)
	s.router.Get("/api/v1/notifications", s.handleNotifications)
	s.router.Get("/api/v1/health/summaries", s.handleHealthSummaries)
	s.router.Get("/api/v1/config/warnings", s.handleConfigWarnings)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
