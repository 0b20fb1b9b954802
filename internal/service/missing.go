package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

// missingScoresWindowDays is the default lookback when no round or day is
// named in the query.
const missingScoresWindowDays = 14

var (
	roundNumberRE = regexp.MustCompile(`\bround\s*(\d+)\b`)
	temporalRE    = regexp.MustCompile(`\b(today|todays|yesterday|last\s+week|last\s+sunday|previous\s+sunday|this\s+week|round\s*\d+)\b`)
	digitsRE      = regexp.MustCompile(`\d+`)
)

// MissingScores flags matches that should have a result by now but do not:
// kickoff date (in the league timezone) on or before today, yet the match is
// still unscored or not marked complete. Future fixtures are never flagged.
func (s *StatsService) MissingScores(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()

	round := ""
	if m := roundNumberRE.FindStringSubmatch(filterText); m != nil {
		round = m[1]
	}
	var day time.Time
	daySet := false
	switch {
	case round != "":
	case strings.Contains(filterText, "today"):
		day, daySet = s.clock.ReportingDay(), true
	case strings.Contains(filterText, "last week"),
		strings.Contains(filterText, "last sunday"),
		strings.Contains(filterText, "previous sunday"):
		day, daySet = s.clock.PreviousReportingSunday(), true
	}

	f := s.resolver(snap).BuildFilter(temporalRE.ReplaceAllString(filterText, " "))

	type overdue struct {
		match   models.Match
		day     time.Time
		kickoff string
	}
	var found []overdue
	for _, m := range snap.Matches {
		if m.IsBye() {
			continue
		}
		matchDay, ok := s.clock.LocalDate(m.Date)
		if !ok || matchDay.After(today) {
			continue
		}
		switch {
		case round != "":
			if digitsRE.FindString(m.Round) != round {
				continue
			}
		case daySet:
			if !league.SameDay(matchDay, day) {
				continue
			}
		default:
			if matchDay.Before(today.AddDate(0, 0, -missingScoresWindowDays)) {
				continue
			}
		}
		if m.IsComplete() && m.HasScore() {
			continue
		}
		if !f.MatchMatch(m) {
			continue
		}

		kickoff := m.Date
		if t, perr := s.clock.ParseStamp(m.Date); perr == nil {
			kickoff = league.FormatKickoff(t)
		} else if len(kickoff) > 10 {
			kickoff = kickoff[:10]
		}
		found = append(found, overdue{match: m, day: matchDay, kickoff: kickoff})
	}

	if len(found) == 0 {
		return models.NewTextAnswer("✅ No missing scores found - every played match has a result entered."), nil
	}

	// Oldest first, so the longest-overdue matches lead the report.
	sort.Slice(found, func(i, j int) bool {
		if !found[i].day.Equal(found[j].day) {
			return found[i].day.Before(found[j].day)
		}
		return found[i].match.ID < found[j].match.ID
	})

	zone := s.clock.Now().Format("MST")
	table := &models.Table{Columns: []string{"#", "Kickoff (" + zone + ")", "Days Overdue", "Home Team", "Away Team", "Round", "Venue"}}
	for i, e := range found {
		table.AddRow(
			strconv.Itoa(i+1),
			e.kickoff,
			strconv.Itoa(league.DaysBetween(e.day, today)),
			e.match.HomeTeam,
			e.match.AwayTeam,
			e.match.Round,
			e.match.Venue,
		)
	}
	return models.NewTableAnswer(fmt.Sprintf("⚠️ Missing Scores (%d matches overdue)", len(found)), table), nil
}
