package social

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/betterfit/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, 5, d, 18, 0, 0, 0, time.Local)
}

func sampleChallenge(name string, target float64) models.Challenge {
	return models.Challenge{
		ID:        uuid.New(),
		Name:      name,
		Goal:      models.ChallengeGoal{Kind: models.GoalWorkoutCount, Target: target},
		StartDate: day(1),
		EndDate:   day(30),
	}
}

// TestRecordWorkoutBumpsCounters verifies completed workouts advance the
// profile's streak and total counters.
func TestRecordWorkoutBumpsCounters(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))

	tr.RecordWorkout(day(1))
	tr.RecordWorkout(day(2))
	tr.RecordWorkout(day(3))

	p := tr.Profile()
	if p.TotalWorkouts != 3 {
		t.Errorf("total workouts = %d, want 3", p.TotalWorkouts)
	}
	if p.CurrentStreak != 3 || p.LongestStreak != 3 {
		t.Errorf("streak = %d/%d, want 3/3", p.CurrentStreak, p.LongestStreak)
	}
}

// TestLongestStreakSurvivesReset verifies a gap resets the current streak
// but the profile keeps the longest one.
func TestLongestStreakSurvivesReset(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))

	tr.RecordWorkout(day(1))
	tr.RecordWorkout(day(2))
	tr.RecordWorkout(day(5))

	p := tr.Profile()
	if p.CurrentStreak != 1 {
		t.Errorf("current = %d, want 1", p.CurrentStreak)
	}
	if p.LongestStreak != 2 {
		t.Errorf("longest = %d, want 2", p.LongestStreak)
	}
}

// TestJoinAndLeaveChallenge verifies joining registers the participant once
// and leaving removes them from both sides.
func TestJoinAndLeaveChallenge(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))
	c := sampleChallenge("May Madness", 20)
	tr.CreateChallenge(c)

	if !tr.JoinChallenge(c.ID) {
		t.Fatal("join failed for a known challenge")
	}
	if !tr.JoinChallenge(c.ID) {
		t.Fatal("second join should still report success")
	}

	stored := tr.Challenges()[0]
	if len(stored.Participants) != 1 {
		t.Errorf("participants = %d, want 1 after double join", len(stored.Participants))
	}
	if len(tr.Profile().ActiveChallenges) != 1 {
		t.Errorf("profile challenges = %v, want one entry", tr.Profile().ActiveChallenges)
	}

	if !tr.LeaveChallenge(c.ID) {
		t.Fatal("leave failed for a joined challenge")
	}
	if got := tr.Challenges()[0]; got.HasParticipant(tr.Profile().ID) {
		t.Error("participant survived leave")
	}
	if len(tr.Profile().ActiveChallenges) != 0 {
		t.Errorf("profile challenges = %v, want empty", tr.Profile().ActiveChallenges)
	}
}

// TestJoinUnknownChallenge verifies joining an id that was never created
// reports failure.
func TestJoinUnknownChallenge(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))
	if tr.JoinChallenge(uuid.New()) {
		t.Error("join succeeded for an unknown challenge")
	}
}

// TestActiveChallengesWindow verifies only running, joined challenges are
// listed as active.
func TestActiveChallengesWindow(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))

	running := sampleChallenge("Running", 10)
	ended := sampleChallenge("Ended", 10)
	ended.EndDate = day(3)
	notJoined := sampleChallenge("Not Joined", 10)
	tr.CreateChallenge(running)
	tr.CreateChallenge(ended)
	tr.CreateChallenge(notJoined)
	tr.JoinChallenge(running.ID)
	tr.JoinChallenge(ended.ID)

	active := tr.ActiveChallenges(day(10))
	if len(active) != 1 || active[0].ID != running.ID {
		t.Errorf("active = %v, want only Running", active)
	}
}

// TestLeaderboardOrdering verifies the leaderboard sorts progress descending.
func TestLeaderboardOrdering(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))
	c := sampleChallenge("Volume Race", 10000)
	tr.CreateChallenge(c)

	alice := uuid.New()
	bob := uuid.New()
	tr.UpdateProgress(c.ID, alice, 4200)
	tr.UpdateProgress(c.ID, bob, 9100)

	board := tr.Leaderboard(c.ID)
	if len(board) != 2 {
		t.Fatalf("leaderboard = %d entries, want 2", len(board))
	}
	if board[0].UserID != bob || board[1].UserID != alice {
		t.Errorf("order = %v, want bob first", board)
	}
}

// TestGoalReached verifies the typed goal threshold against stored progress.
func TestGoalReached(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))
	c := sampleChallenge("Twenty Workouts", 20)
	tr.CreateChallenge(c)

	user := uuid.New()
	tr.UpdateProgress(c.ID, user, 19)
	if tr.GoalReached(c.ID, user) {
		t.Error("goal reported reached below target")
	}
	tr.UpdateProgress(c.ID, user, 20)
	if !tr.GoalReached(c.ID, user) {
		t.Error("goal not reached at target")
	}
	if tr.GoalReached(c.ID, uuid.New()) {
		t.Error("goal reached for a user with no progress")
	}
}

// TestUpdateProgressUnknownChallenge verifies progress updates against an
// unknown challenge report failure.
func TestUpdateProgressUnknownChallenge(t *testing.T) {
	tr := NewTracker(models.NewUserProfile("lena"))
	if tr.UpdateProgress(uuid.New(), uuid.New(), 1) {
		t.Error("update succeeded for an unknown challenge")
	}
}
