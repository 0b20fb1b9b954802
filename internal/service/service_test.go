package service

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
	"github.com/omarshaarawi/statbot/internal/repository/memory"
)

func score(n int) *int { return &n }

// testSnapshot is a small U16 YPL1 world. The fake clock in newTestService
// sits on Wednesday 2026-08-19 Melbourne time, so the reporting day is
// Sunday 2026-08-16 and the previous reporting Sunday is 2026-08-09.
//
// Results so far: Avondale 4pts, Heidelberg 3pts (GD +1), Bulleen 3pts
// (GD 0), Box Hill 1pt. The Round 19 Heidelberg v Avondale match was
// played but never got a score entered.
func testSnapshot() *models.Snapshot {
	matches := []models.Match{
		{ID: "m6", Date: "2026-08-02 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
			HomeTeam: "Avondale FC U16", AwayTeam: "Heidelberg United FC U16",
			HomeScore: score(2), AwayScore: score(1), Round: "Round 18"},
		{ID: "m3", Date: "2026-08-09 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
			HomeTeam: "FC Bulleen Lions U16", AwayTeam: "Box Hill United SC U16",
			HomeScore: score(2), AwayScore: score(0), Round: "Round 19"},
		{ID: "m4", Date: "2026-08-09 06:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusScheduled,
			HomeTeam: "Heidelberg United FC U16", AwayTeam: "Avondale FC U16",
			Round: "Round 19", Venue: "Somers Street"},
		{ID: "m1", Date: "2026-08-16 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
			HomeTeam: "Heidelberg United FC U16", AwayTeam: "FC Bulleen Lions U16",
			HomeScore: score(3), AwayScore: score(1), Round: "Round 20", Venue: "Olympic Village"},
		{ID: "m2", Date: "2026-08-16 06:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
			HomeTeam: "Box Hill United SC U16", AwayTeam: "Avondale FC U16",
			HomeScore: score(0), AwayScore: score(0), Round: "Round 20", Venue: "City Oval"},
		{ID: "m5", Date: "2026-08-30 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusScheduled,
			HomeTeam: "Heidelberg United FC U16", AwayTeam: "Box Hill United SC U16",
			Round: "Round 21"},
	}
	var results []models.Match
	for _, m := range matches {
		if m.IsComplete() && m.HasScore() {
			results = append(results, m)
		}
	}

	players := []models.Person{
		{ID: "p1", FirstName: "Alex", LastName: "Mori",
			Registrations: []models.Registration{{TeamName: "Heidelberg United FC U16", League: "U16 Boys YPL1", Jersey: "10"}},
			Stats:         models.SeasonStats{MatchesPlayed: 12, MatchesStarted: 11, BenchAppearances: 1, Goals: 7, YellowCards: 1},
			Matches: []models.Participation{
				{MatchID: "m1", Date: "2026-08-16 04:00:00", Opponent: "FC Bulleen Lions U16", HomeOrAway: "home", Started: true,
					Events: []models.MatchEvent{{Type: models.EventGoal, Minute: 12}, {Type: models.EventGoal, Minute: 45}}},
				{MatchID: "m6", Date: "2026-08-02 04:00:00", Opponent: "Avondale FC U16", HomeOrAway: "away", Started: true,
					Events: []models.MatchEvent{{Type: models.EventGoal, Minute: 30}}},
			}},
		{ID: "p2", FirstName: "Ben", LastName: "Okafor",
			Registrations: []models.Registration{{TeamName: "FC Bulleen Lions U16", League: "U16 Boys YPL1", Jersey: "9"}},
			Stats:         models.SeasonStats{MatchesPlayed: 11, MatchesStarted: 10, BenchAppearances: 1, Goals: 5, YellowCards: 2},
			Matches: []models.Participation{
				{MatchID: "m1", Date: "2026-08-16 04:00:00", Opponent: "Heidelberg United FC U16", HomeOrAway: "away", Started: true,
					Events: []models.MatchEvent{{Type: models.EventGoal, Minute: 60}, {Type: models.EventYellowCard, Minute: 70}}},
			}},
		{ID: "p3", FirstName: "Caleb", LastName: "Reed",
			Registrations: []models.Registration{{TeamName: "Box Hill United SC U16", League: "U16 Boys YPL1"}},
			Stats:         models.SeasonStats{MatchesPlayed: 12, MatchesStarted: 12, Goals: 9}},
		{ID: "p4", FirstName: "Dylan", LastName: "Sousa",
			Registrations: []models.Registration{
				{TeamName: "Heidelberg United FC U16", League: "U16 Boys YPL1"},
				{TeamName: "Heidelberg United FC U15", League: "U15 Boys YPL1"},
			},
			Stats: models.SeasonStats{MatchesPlayed: 14, MatchesStarted: 9, BenchAppearances: 5, Goals: 2}},
		{ID: "p5", FirstName: "Evan", LastName: "Tran",
			Registrations: []models.Registration{{TeamName: "Avondale FC U16", League: "U16 Boys YPL1"}},
			Stats:         models.SeasonStats{MatchesPlayed: 10, MatchesStarted: 10, YellowCards: 3, RedCards: 1}},
	}

	staff := []models.Person{
		{ID: "s1", FirstName: "Pat", LastName: "Keane", Role: "coach",
			Registrations: []models.Registration{{TeamName: "Heidelberg United FC U16", League: "U16 Boys YPL1"}},
			Stats:         models.SeasonStats{YellowCards: 2}},
		{ID: "s2", FirstName: "Morgan", LastName: "Lee", Role: "team manager",
			Registrations: []models.Registration{{TeamName: "Avondale FC U16", League: "U16 Boys YPL1"}}},
	}

	return &models.Snapshot{
		Version:  "test",
		LoadedAt: time.Now(),
		Players:  players,
		Staff:    staff,
		Results:  results,
		Matches:  matches,
		Lineups: []models.Lineup{
			{MatchID: "m1",
				Home: []models.LineupPlayer{
					{FirstName: "Alex", LastName: "Mori", Number: "10", Position: "Forward", Starting: true},
					{FirstName: "Dylan", LastName: "Sousa", Number: "14", Starting: false},
				},
				Away: []models.LineupPlayer{
					{FirstName: "Ben", LastName: "Okafor", Number: "9", Starting: true},
				}},
		},
		TeamNames: []string{
			"Avondale FC U16", "Box Hill United SC U16", "FC Bulleen Lions U16",
			"Heidelberg United FC U15", "Heidelberg United FC U16",
		},
	}
}

func newTestService(t *testing.T, snap *models.Snapshot) *StatsService {
	t.Helper()
	// 2026-08-19 00:00 UTC is 10:00 Wednesday in Melbourne.
	fake := clockwork.NewFakeClockAt(time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC))
	clock, err := league.NewClock("Australia/Melbourne", fake)
	require.NoError(t, err)

	repo := memory.NewRepository()
	if snap != nil {
		repo.Publish(snap)
	}
	return NewStatsService(repo, clock, Identity{
		Team:     "Heidelberg United FC U16",
		Club:     "Heidelberg United",
		AgeGroup: "U16",
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLadder(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Ladder("u16 ypl1 ladder")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Equal(t, "📊 U16 YPL1 Ladder", a.Title)

	require.Len(t, a.Table.Rows, 4)
	assert.Equal(t, []string{"1", "Avondale FC U16", "2", "1", "1", "0", "2", "1", "+1", "4"}, a.Table.Rows[0])
	// Heidelberg and Bulleen are level on points; goal difference separates them.
	assert.Equal(t, []string{"2", "Heidelberg United FC U16", "2", "1", "0", "1", "4", "3", "+1", "3"}, a.Table.Rows[1])
	assert.Equal(t, []string{"3", "FC Bulleen Lions U16", "2", "1", "0", "1", "3", "3", "+0", "3"}, a.Table.Rows[2])
	assert.Equal(t, []string{"4", "Box Hill United SC U16", "2", "0", "1", "1", "0", "2", "-2", "1"}, a.Table.Rows[3])
}

func TestLadderScenario(t *testing.T) {
	t.Parallel()

	// Two results: Alba 2-1 Borea, Borea 0-0 Citra. Alba tops the table and
	// Citra (GD 0) edges Borea (GD -1) on equal points.
	snap := &models.Snapshot{
		Version: "test",
		Results: []models.Match{
			{ID: "r1", Date: "2026-08-09 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
				HomeTeam: "Alba U16", AwayTeam: "Borea U16", HomeScore: score(2), AwayScore: score(1)},
			{ID: "r2", Date: "2026-08-16 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
				HomeTeam: "Borea U16", AwayTeam: "Citra U16", HomeScore: score(0), AwayScore: score(0)},
		},
		TeamNames: []string{"Alba U16", "Borea U16", "Citra U16"},
	}
	svc := newTestService(t, snap)

	a, err := svc.Ladder("ypl1")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 3)
	assert.Equal(t, "Alba U16", a.Table.Rows[0][1])
	assert.Equal(t, "Citra U16", a.Table.Rows[1][1])
	assert.Equal(t, "Borea U16", a.Table.Rows[2][1])
	// Alba: 3 points, +1. Borea: 1 point, -1. Citra: 1 point, 0.
	assert.Equal(t, "3", a.Table.Rows[0][9])
	assert.Equal(t, "1", a.Table.Rows[1][9])
	assert.Equal(t, "1", a.Table.Rows[2][9])
}

func TestLadderFullTieOrdersByName(t *testing.T) {
	t.Parallel()

	// Two 1-1 draws against each other leave both teams with identical
	// records; the name decides the order.
	snap := &models.Snapshot{
		Version: "test",
		Results: []models.Match{
			{ID: "r1", Date: "2026-08-09 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
				HomeTeam: "Zephyr U16", AwayTeam: "Aurora U16", HomeScore: score(1), AwayScore: score(1)},
			{ID: "r2", Date: "2026-08-16 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
				HomeTeam: "Aurora U16", AwayTeam: "Zephyr U16", HomeScore: score(1), AwayScore: score(1)},
		},
		TeamNames: []string{"Aurora U16", "Zephyr U16"},
	}
	svc := newTestService(t, snap)

	a, err := svc.Ladder("ypl1")
	require.NoError(t, err)
	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, "Aurora U16", a.Table.Rows[0][1])
	assert.Equal(t, "Zephyr U16", a.Table.Rows[1][1])
}

func TestLadderPointsMatchPerMatchAwards(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Ladder("u16 ypl1")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)

	// Each row must carry exactly 3 points per win plus 1 per draw, and the
	// table total must be 3 per decisive result plus 2 per draw.
	total := 0
	for _, row := range a.Table.Rows {
		w, _ := strconv.Atoi(row[3])
		d, _ := strconv.Atoi(row[4])
		pts, _ := strconv.Atoi(row[9])
		assert.Equal(t, 3*w+d, pts, "row %v", row)
		total += pts
	}
	// testSnapshot has three decisive results and one draw.
	assert.Equal(t, 3*3+2*1, total)
}

func TestLadderSkipsByes(t *testing.T) {
	t.Parallel()

	// The bye round carries a score by mistake; it still must not count.
	snap := &models.Snapshot{
		Version: "test",
		Results: []models.Match{
			{ID: "r1", Date: "2026-08-09 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
				HomeTeam: "Alba U16", AwayTeam: "Borea U16", HomeScore: score(2), AwayScore: score(1)},
			{ID: "r2", Date: "2026-08-16 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
				HomeTeam: "Alba U16", AwayTeam: "", HomeScore: score(3), AwayScore: score(0)},
		},
		TeamNames: []string{"Alba U16", "Borea U16"},
	}
	svc := newTestService(t, snap)

	a, err := svc.Ladder("ypl1")
	require.NoError(t, err)
	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, "Alba U16", a.Table.Rows[0][1])
	assert.Equal(t, "1", a.Table.Rows[0][2])
	assert.Equal(t, "3", a.Table.Rows[0][9])
}

func TestMissingScoresIdempotent(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	first, err := svc.MissingScores("")
	require.NoError(t, err)
	second, err := svc.MissingScores("")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLadderUnknownCompetitionListsWhatLoaded(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Ladder("ladder")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "YPL1")
	assert.Contains(t, a.Content, "U16")
}

func TestCompetitionOverview(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.CompetitionOverview("ypl1 standings")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Equal(t, "🏆 YPL1 Competition Overview (4 clubs)", a.Title)
	assert.Contains(t, a.Table.Columns, "U16")

	require.Len(t, a.Table.Rows, 4)
	assert.Equal(t, "Avondale FC", a.Table.Rows[0][1])
	assert.Equal(t, "Box Hill United SC", a.Table.Rows[3][1])
}

func TestTopScorers(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TopScorers("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Equal(t, "⚽ Top Scorers (4 with goals)", a.Title)

	require.Len(t, a.Table.Rows, 4)
	assert.Equal(t, "Caleb Reed", a.Table.Rows[0][1])
	assert.Equal(t, "9", a.Table.Rows[0][3])
	assert.Equal(t, "0.75", a.Table.Rows[0][5])
	assert.Equal(t, "Alex Mori", a.Table.Rows[1][1])
	assert.Equal(t, "Ben Okafor", a.Table.Rows[2][1])
	// Evan Tran has no goals and must not appear.
	for _, row := range a.Table.Rows {
		assert.NotEqual(t, "Evan Tran", row[1])
	}
}

func TestTopScorersTeamFilter(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TopScorers("heidelberg united fc u16")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, "Alex Mori", a.Table.Rows[0][1])
	assert.Equal(t, "Dylan Sousa", a.Table.Rows[1][1])
	assert.Contains(t, a.Title, "(2 with goals)")
}

func TestTopScorersCapsBoard(t *testing.T) {
	t.Parallel()

	snap := &models.Snapshot{Version: "test"}
	for i := 1; i <= 25; i++ {
		snap.Players = append(snap.Players, models.Person{
			ID:            fmt.Sprintf("p%02d", i),
			FirstName:     "Player",
			LastName:      fmt.Sprintf("Num%02d", i),
			Registrations: []models.Registration{{TeamName: "Alba U16", League: "U16 Boys YPL1"}},
			Stats:         models.SeasonStats{MatchesPlayed: 10, Goals: i},
		})
	}
	svc := newTestService(t, snap)

	a, err := svc.TopScorers("")
	require.NoError(t, err)
	require.Len(t, a.Table.Rows, 20)
	assert.Contains(t, a.Title, "(25 with goals, showing top 20)")
	// Highest scorer leads, and the cap trims from the bottom.
	assert.Equal(t, "25", a.Table.Rows[0][3])
	assert.Equal(t, "6", a.Table.Rows[19][3])
}

func TestYellowCardsPlayers(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.YellowCards("", false, false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)

	require.Len(t, a.Table.Rows, 3)
	assert.Equal(t, "Evan Tran", a.Table.Rows[0][1])
	assert.Equal(t, "3", a.Table.Rows[0][3])
	assert.Equal(t, "Ben Okafor", a.Table.Rows[1][1])
	assert.Equal(t, "Alex Mori", a.Table.Rows[2][1])
}

func TestYellowCardsStaffOnly(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.YellowCards("", false, true)
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Contains(t, a.Table.Columns, "Role")

	require.Len(t, a.Table.Rows, 1)
	assert.Equal(t, "Pat Keane", a.Table.Rows[0][1])
	assert.Equal(t, "Coach", a.Table.Rows[0][2])
	assert.Equal(t, "2", a.Table.Rows[0][4])
}

func TestYellowCardsDetail(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.YellowCards("", true, false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Match Detail")
	assert.Contains(t, a.Content, "Evan Tran")
	// Ben's booking carries a minute from his match record.
	assert.Contains(t, a.Content, "70'")
}

func TestRedCards(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.RedCards("", false, false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 1)
	assert.Equal(t, "Evan Tran", a.Table.Rows[0][1])
}

func TestStaffList(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Staff("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)

	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, "Pat Keane", a.Table.Rows[0][1])
	assert.Equal(t, "Coach", a.Table.Rows[0][2])
	assert.Equal(t, "Morgan Lee", a.Table.Rows[1][1])
	assert.Equal(t, "Team Manager", a.Table.Rows[1][2])
}

func TestMissingScores(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.MissingScores("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Equal(t, "⚠️ Missing Scores (1 matches overdue)", a.Title)
	assert.Equal(t, "Kickoff (AEST)", a.Table.Columns[1])

	require.Len(t, a.Table.Rows, 1)
	row := a.Table.Rows[0]
	assert.Equal(t, "09-Aug 04:00 PM", row[1])
	assert.Equal(t, "10", row[2])
	assert.Equal(t, "Heidelberg United FC U16", row[3])
	assert.Equal(t, "Avondale FC U16", row[4])
	assert.Equal(t, "Round 19", row[5])
	assert.Equal(t, "Somers Street", row[6])
}

func TestMissingScoresRoundFilter(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.MissingScores("round 19")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 1)

	// Round 20 is fully scored, so the sweep comes back clean.
	a, err = svc.MissingScores("round 20")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "No missing scores")
}

func TestMissingScoresDayFilters(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	// The only gap is the previous Sunday, so "today" finds nothing.
	a, err := svc.MissingScores("today")
	require.NoError(t, err)
	assert.Equal(t, models.AnswerText, a.Kind)

	a, err = svc.MissingScores("last week")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 1)
}

func TestMissingScoresSkipsFutureAndByes(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	snap.Matches = append(snap.Matches,
		// Dated after today: never overdue, whatever the status says.
		models.Match{ID: "m7", Date: "2026-08-23 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusComplete,
			HomeTeam: "Avondale FC U16", AwayTeam: "FC Bulleen Lions U16", Round: "Round 21"},
		// A bye never needs a score entered.
		models.Match{ID: "m8", Date: "2026-08-09 04:00:00", LeagueName: "U16 Boys YPL1", Status: models.StatusScheduled,
			HomeTeam: "Box Hill United SC U16", AwayTeam: "", Round: "Round 19"},
	)
	svc := newTestService(t, snap)

	a, err := svc.MissingScores("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 1)
	assert.Equal(t, "Heidelberg United FC U16", a.Table.Rows[0][3])
}

func TestTodaysResults(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TodaysResults("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Equal(t, "⚽ Results for 16-Aug-2026 (2 matches)", a.Title)

	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, "Heidelberg United FC U16 3 - 1 FC Bulleen Lions U16", a.Table.Rows[0][1])
	assert.Equal(t, "Box Hill United SC U16 0 - 0 Avondale FC U16", a.Table.Rows[1][1])
}

func TestTodaysScorers(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TodaysScorers("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)

	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, []string{"Alex Mori", "Heidelberg United FC U16", "2", "12', 45'", "FC Bulleen Lions U16"}, a.Table.Rows[0])
	assert.Equal(t, "Ben Okafor", a.Table.Rows[1][0])
	assert.Equal(t, "1", a.Table.Rows[1][2])
}

func TestTodaysLosers(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TodaysLosers("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)

	// The Box Hill v Avondale draw has no loser.
	require.Len(t, a.Table.Rows, 1)
	assert.Equal(t, []string{"FC Bulleen Lions U16", "1 - 3", "Heidelberg United FC U16", "Away"}, a.Table.Rows[0])
}

func TestForm(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Form("heidelberg u16")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Form: Heidelberg United FC U16")
	assert.Contains(t, a.Content, "Last 2: W L")
}

func TestFixturesPersonal(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Fixtures("", 5, true)
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Upcoming Fixtures: Heidelberg United FC U16")
	assert.Contains(t, a.Content, "In 11 days")
	assert.Contains(t, a.Content, "HOME vs Box Hill United SC U16")
	// The unscored Round 19 match is in the past and is not a fixture.
	assert.NotContains(t, a.Content, "Round 19")
}

func TestTeamStats(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TeamStats("heidelberg u16")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Team Statistics: Heidelberg United FC U16")
	assert.Contains(t, a.Content, "Squad Size: 2 players")
	assert.Contains(t, a.Content, "Total Goals: 9")
	assert.Contains(t, a.Content, "Alex Mori")
}

func TestTeamStatsBareAgeUsesHomeClub(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.TeamStats("u16")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Heidelberg United FC U16")
}

func TestPlayerProfile(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.PlayerProfile("mori", false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Alex Mori")
	assert.Contains(t, a.Content, "⚽ Goals: 7")
	assert.Contains(t, a.Content, "#10")
}

func TestPlayerProfileAmbiguous(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	// "an" hits Dylan, Evan Tran, Pat Keane and Morgan Lee.
	a, err := svc.PlayerProfile("an", false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)
	assert.Contains(t, a.Title, "be more specific")
	require.Len(t, a.Table.Rows, 4)
}

func TestPlayerProfileFuzzySuggestion(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.PlayerProfile("alx mori", false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Did you mean *Alex Mori*?")

	a, err = svc.PlayerProfile("zzqq", false)
	require.NoError(t, err)
	require.Equal(t, models.AnswerError, a.Kind)
	assert.Contains(t, a.Message, "No player found")
}

func TestDualRegistrations(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.DualRegistrations("")
	require.NoError(t, err)
	require.Equal(t, models.AnswerTable, a.Kind)

	require.Len(t, a.Table.Rows, 1)
	row := a.Table.Rows[0]
	assert.Equal(t, "Dylan Sousa", row[1])
	assert.Equal(t, "Heidelberg United FC U16 (U16 Boys YPL1); Heidelberg United FC U15 (U15 Boys YPL1)", row[3])
}

func TestMatchCentre(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.MatchCentre("heidelberg u16 vs bulleen")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "3 - 1")
	assert.Contains(t, a.Content, "Olympic Village")
}

func TestLineups(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.Lineups("heidelberg u16 vs bulleen")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Starting XI")
	assert.Contains(t, a.Content, "#10 Alex Mori (Forward)")
	assert.Contains(t, a.Content, "#9 Ben Okafor")
	// Bench players are not part of the starting XI.
	assert.NotContains(t, a.Content, "Dylan Sousa")
}

func TestMatchList(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())

	a, err := svc.MatchList("heidelberg u16")
	require.NoError(t, err)
	require.Equal(t, models.AnswerText, a.Kind)
	assert.Contains(t, a.Content, "Matches: Heidelberg United FC U16")
	assert.Contains(t, a.Content, "2 - 1")
	assert.Contains(t, a.Content, "🔜")
}

func TestNoSnapshotError(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, nil)

	_, err := svc.Ladder("ypl1 ladder")
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestRouterRuleSelection(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())
	router := NewRouter(svc, discardLogger())

	tests := []struct {
		query    string
		wantRule string
	}{
		{"dual registrations", "dual_registrations"},
		{"who is playing for 2 clubs", "dual_registrations"},
		{"missing scores", "missing_scores"},
		{"matches without scores", "missing_scores"},
		{"today's results", "todays_results"},
		{"who scored today", "todays_scorers"},
		{"who lost today", "todays_losers"},
		{"ypl1", "competition_overview"},
		{"ypl1 standings", "competition_overview"},
		{"ypl1 ladder", "ladder"},
		{"upcoming fixtures", "fixtures"},
		{"when do i play next", "fixtures"},
		{"yellow cards", "yellow_cards"},
		{"coach yellow cards", "yellow_cards"},
		{"red cards", "red_cards"},
		{"staff list", "staff"},
		{"top scorers", "top_scorers"},
		{"stats for heidelberg u16", "stats"},
		{"show me alex mori", "stats"},
		{"ladder", "ladder"},
		{"lineup for heidelberg u16 vs bulleen", "lineups"},
		{"heidelberg u16 vs bulleen", "match_centre"},
		{"form heidelberg u16", "form"},
		{"heidelberg u16 overview", "team_overview"},
		{"mumble mumble", "fallback"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			answer, rule := router.Process(tt.query)
			require.NotNil(t, answer)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestRouterStaffCardBoard(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())
	router := NewRouter(svc, discardLogger())

	// "coach" alone would hit the staff rule, but the cards rule wins and
	// narrows the board to staff.
	a, rule := router.Process("coach yellow cards")
	require.Equal(t, "yellow_cards", rule)
	require.Equal(t, models.AnswerTable, a.Kind)
	require.Len(t, a.Table.Rows, 1)
	assert.Equal(t, "Pat Keane", a.Table.Rows[0][1])
}

func TestRouterEmptyQuery(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())
	router := NewRouter(svc, discardLogger())

	a, rule := router.Process("   ")
	assert.Equal(t, "empty", rule)
	assert.Equal(t, models.AnswerError, a.Kind)
}

func TestRouterBeforeFirstLoad(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, nil)
	router := NewRouter(svc, discardLogger())

	a, rule := router.Process("ypl1 ladder")
	assert.Equal(t, "ladder", rule)
	require.Equal(t, models.AnswerError, a.Kind)
	assert.Contains(t, a.Message, "still loading")
}

func TestRouterTopScorersDefaultsToHomeTeam(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, testSnapshot())
	router := NewRouter(svc, discardLogger())

	a, rule := router.Process("top scorers")
	require.Equal(t, "top_scorers", rule)
	require.Equal(t, models.AnswerTable, a.Kind)
	// Residual is empty, so the board narrows to the configured home team.
	require.Len(t, a.Table.Rows, 2)
	assert.Equal(t, "Alex Mori", a.Table.Rows[0][1])
}
