// Package mcp exposes the coach over the Model Context Protocol so an
// assistant can query recovery, history, and plan state and pull workout
// recommendations.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/betterfit/internal/coach"
	"github.com/meltforce/betterfit/internal/models"
)

// New creates an MCP server with all tools and resources registered. mu must
// be the process's single coach mutex.
func New(c *coach.Coach, mu *sync.Mutex, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("BetterFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("BetterFit training coach. Query muscle recovery, workout history, streaks, and training plans, and ask for the next recommended workout."),
	)

	h := &handlers{coach: c, mu: mu, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetRecoveryStatus, Handler: h.getRecoveryStatus},
		server.ServerTool{Tool: toolGetRecommendedWorkout, Handler: h.getRecommendedWorkout},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetStreak, Handler: h.getStreak},
		server.ServerTool{Tool: toolAnalyzePlan, Handler: h.analyzePlan},
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
	)

	s.AddResources(
		server.ServerResource{Resource: resTrainingSummary, Handler: h.trainingSummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	coach *coach.Coach
	mu    *sync.Mutex
	log   *slog.Logger
}

// --- Resource definitions ---

var resTrainingSummary = mcp.NewResource(
	"betterfit://training_summary",
	"Training Summary",
	mcp.WithResourceDescription("Current streak, overall recovery percentage, active plan, and recent workouts"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) trainingSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	h.mu.Lock()
	now := h.coach.Now()
	summary := map[string]any{
		"date":         now.Format("2006-01-02"),
		"streak":       h.coach.Social().Streak(),
		"recovery_pct": h.coach.Recovery().OverallPercentage(now),
		"active_plan":  h.coach.Plans().Active(),
		"workouts":     recentWorkouts(h.coach.History(), now, 14),
	}
	h.mu.Unlock()

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func recentWorkouts(history []models.Workout, now time.Time, days int) []any {
	cutoff := now.AddDate(0, 0, -days)
	var out []any
	for _, w := range history {
		if w.StartedAt.After(cutoff) {
			out = append(out, map[string]any{
				"id":         w.ID,
				"name":       w.Name,
				"started_at": w.StartedAt,
				"volume":     w.Volume(),
			})
		}
	}
	return out
}
