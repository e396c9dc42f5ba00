package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/betterfit/internal/models"
)

// --- Tool definitions ---

var toolGetRecoveryStatus = mcp.NewTool("get_recovery_status",
	mcp.WithDescription("Per-region muscle recovery status (recovered, slightly_fatigued, fatigued, sore) and the overall recovery percentage."),
	mcp.WithString("region", mcp.Description("Limit to a single body region"), mcp.Enum("chest", "back", "shoulders", "arms", "core", "legs", "other")),
)

var toolGetRecommendedWorkout = mcp.NewTool("get_recommended_workout",
	mcp.WithDescription("The next workout from the active plan's current week, with equipment substitutions already applied. Empty when no plan is active."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Completed workouts with set counts and total volume, most recent last."),
)

var toolGetStreak = mcp.NewTool("get_streak",
	mcp.WithDescription("Current and longest consecutive-day workout streaks."),
)

var toolAnalyzePlan = mcp.NewTool("analyze_plan",
	mcp.WithDescription("Run the adaptation analyzer against the active plan and workout history. Returns the directives that would fire (reduce/increase volume, adjust intensity, deload) without applying them."),
)

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("Reusable workout templates with their exercises and target sets."),
	mcp.WithString("tag", mcp.Description("Filter templates by tag")),
)

// --- Tool handlers ---

func (h *handlers) getRecoveryStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	now := h.coach.Now()
	var payload any
	if region := req.GetString("region", ""); region != "" {
		r := models.BodyRegion(region)
		payload = map[string]any{
			"region": r,
			"status": h.coach.Recovery().Status(r, now),
			"ready":  h.coach.Recovery().IsReadyForTraining(r, now),
		}
	} else {
		snap := h.coach.Recovery().Snapshot(now)
		payload = map[string]any{
			"regions":     snap.Regions,
			"overall_pct": h.coach.Recovery().OverallPercentage(now),
		}
	}
	h.mu.Unlock()

	return toolJSON(payload)
}

func (h *handlers) getRecommendedWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	workout := h.coach.RecommendedWorkout()
	h.mu.Unlock()

	if workout == nil {
		return mcp.NewToolResultText("no recommendation: no active plan, current week, or template"), nil
	}
	return toolJSON(workout)
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	history := h.coach.History()
	h.mu.Unlock()

	out := make([]map[string]any, 0, len(history))
	for _, w := range history {
		completed, total := w.SetCounts()
		out = append(out, map[string]any{
			"id":             w.ID,
			"name":           w.Name,
			"started_at":     w.StartedAt,
			"volume":         w.Volume(),
			"completed_sets": completed,
			"total_sets":     total,
		})
	}
	return toolJSON(out)
}

func (h *handlers) getStreak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	streak := h.coach.Social().Streak()
	h.mu.Unlock()
	return toolJSON(streak)
}

func (h *handlers) analyzePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	active := h.coach.Plans().Active()
	if active == nil {
		h.mu.Unlock()
		return mcp.NewToolResultText("no active plan"), nil
	}
	adaptations := h.coach.Analyzer().Analyze(h.coach.History(), *active)
	h.mu.Unlock()

	out := make([]map[string]any, 0, len(adaptations))
	for _, a := range adaptations {
		out = append(out, map[string]any{
			"kind":        a.Kind,
			"percent":     a.Percent,
			"description": a.String(),
		})
	}
	return toolJSON(out)
}

func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	var templates []models.WorkoutTemplate
	if tag := req.GetString("tag", ""); tag != "" {
		templates = h.coach.Templates().SearchByTag(tag)
	} else {
		templates = h.coach.Templates().All()
	}
	h.mu.Unlock()
	return toolJSON(templates)
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
