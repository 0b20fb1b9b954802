package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

// reportingDayMatches returns completed, scored matches whose local kickoff
// date falls on the reporting day (today when it is Sunday, otherwise the
// most recent Sunday).
func (s *StatsService) reportingDayMatches(snap *models.Snapshot, f league.Filter) []models.Match {
	day := s.clock.ReportingDay()
	var played []models.Match
	for _, m := range snap.Matches {
		if !m.IsComplete() || !m.HasScore() {
			continue
		}
		matchDay, ok := s.clock.LocalDate(m.Date)
		if !ok || !league.SameDay(matchDay, day) {
			continue
		}
		if !f.MatchMatch(m) {
			continue
		}
		played = append(played, m)
	}
	sort.Slice(played, func(i, j int) bool {
		if played[i].LeagueName != played[j].LeagueName {
			return played[i].LeagueName < played[j].LeagueName
		}
		return played[i].ID < played[j].ID
	})
	return played
}

// TodaysResults lists every completed match on the reporting day.
func (s *StatsService) TodaysResults(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)

	played := s.reportingDayMatches(snap, f)
	day := s.clock.ReportingDay()
	if len(played) == 0 {
		return models.NewErrorAnswer("❌ No results recorded for %s yet", league.FormatDateFull(day)), nil
	}

	table := &models.Table{Columns: []string{"#", "Result", "League", "Round", "Venue"}}
	for i, m := range played {
		table.AddRow(
			strconv.Itoa(i+1),
			fmt.Sprintf("%s %d - %d %s", m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam),
			m.LeagueName,
			m.Round,
			m.Venue,
		)
	}
	title := fmt.Sprintf("⚽ Results for %s (%d matches)", league.FormatDateFull(day), len(played))
	return models.NewTableAnswer(title, table), nil
}

// TodaysScorers lists everyone who scored on the reporting day, with goal
// minutes where the data has them.
func (s *StatsService) TodaysScorers(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)
	day := s.clock.ReportingDay()

	type scored struct {
		player   models.Person
		goals    int
		minutes  []int
		opponent string
	}
	var scorers []scored
	for _, p := range snap.Players {
		if !f.MatchPerson(p) {
			continue
		}
		for _, part := range p.Matches {
			matchDay, ok := s.clock.LocalDate(part.Date)
			if !ok || !league.SameDay(matchDay, day) {
				continue
			}
			goals := part.Goals()
			if goals == 0 {
				continue
			}
			scorers = append(scorers, scored{
				player:   p,
				goals:    goals,
				minutes:  part.GoalMinutes(),
				opponent: part.Opponent,
			})
		}
	}
	if len(scorers) == 0 {
		return models.NewErrorAnswer("❌ No goals recorded for %s yet", league.FormatDateFull(day)), nil
	}

	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].goals != scorers[j].goals {
			return scorers[i].goals > scorers[j].goals
		}
		return strings.ToLower(scorers[i].player.Name()) < strings.ToLower(scorers[j].player.Name())
	})

	table := &models.Table{Columns: []string{"Player", "Team", "Goals", "Minutes", "Opponent"}}
	for _, sc := range scorers {
		table.AddRow(sc.player.Name(), sc.player.TeamName(), strconv.Itoa(sc.goals), fmtMinutes(sc.minutes), sc.opponent)
	}
	title := fmt.Sprintf("⚽ Scorers for %s (%d players)", league.FormatDateFull(day), len(scorers))
	return models.NewTableAnswer(title, table), nil
}

// TodaysLosers lists the losing side of each decided match on the reporting
// day; drawn matches carry no loser and are skipped.
func (s *StatsService) TodaysLosers(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)

	played := s.reportingDayMatches(snap, f)
	day := s.clock.ReportingDay()

	table := &models.Table{Columns: []string{"Losing Team", "Score", "Opponent", "Played"}}
	losers := 0
	for _, m := range played {
		hs, as := *m.HomeScore, *m.AwayScore
		switch {
		case hs < as:
			table.AddRow(m.HomeTeam, fmt.Sprintf("%d - %d", hs, as), m.AwayTeam, "Home")
		case as < hs:
			table.AddRow(m.AwayTeam, fmt.Sprintf("%d - %d", as, hs), m.HomeTeam, "Away")
		default:
			continue
		}
		losers++
	}
	if losers == 0 {
		return models.NewErrorAnswer("❌ No losing teams for %s - no decided matches yet", league.FormatDateFull(day)), nil
	}

	title := fmt.Sprintf("📉 Losing Teams for %s (%d matches)", league.FormatDateFull(day), losers)
	return models.NewTableAnswer(title, table), nil
}
