package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

const matchListLimit = 20

// findMatch resolves a query to a single match: by id first, then by
// "home vs away" name fragments in either orientation. The latest played
// meeting wins over a future one when both exist.
func (s *StatsService) findMatch(snap *models.Snapshot, query string) (models.Match, bool) {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return models.Match{}, false
	}
	for _, m := range snap.Matches {
		if strings.EqualFold(m.ID, q) {
			return m, true
		}
	}

	sep := " vs "
	if !strings.Contains(q, sep) {
		sep = " v "
		if !strings.Contains(q, sep) {
			return models.Match{}, false
		}
	}
	parts := strings.SplitN(q, sep, 2)
	r := s.resolver(snap)
	home := resolveOrRaw(r, parts[0])
	away := resolveOrRaw(r, parts[1])

	var played, scheduled []models.Match
	for _, m := range snap.Matches {
		straight := matchesTeam(m.HomeTeam, home) && matchesTeam(m.AwayTeam, away)
		flipped := matchesTeam(m.HomeTeam, away) && matchesTeam(m.AwayTeam, home)
		if !straight && !flipped {
			continue
		}
		if m.IsComplete() && m.HasScore() {
			played = append(played, m)
		} else {
			scheduled = append(scheduled, m)
		}
	}
	if len(played) > 0 {
		sortByDateDesc(played)
		return played[0], true
	}
	if len(scheduled) > 0 {
		sort.Slice(scheduled, func(i, j int) bool { return scheduled[i].Date < scheduled[j].Date })
		return scheduled[0], true
	}
	return models.Match{}, false
}

func resolveOrRaw(r *league.Resolver, fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if resolved, ok := r.Resolve(fragment); ok {
		return resolved
	}
	return fragment
}

// MatchCentre shows one match's recorded attributes: the played score when
// the meeting has happened, otherwise the fixture details.
func (s *StatsService) MatchCentre(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	m, ok := s.findMatch(snap, query)
	if !ok {
		return models.NewErrorAnswer("❌ No match found for: %s", strings.TrimSpace(query)), nil
	}

	var sb strings.Builder
	sb.WriteString("⚽ *Match Centre*\n\n")
	if m.HasScore() {
		sb.WriteString(fmt.Sprintf("*%s %d - %d %s*\n", m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam))
	} else {
		sb.WriteString(fmt.Sprintf("*%s vs %s*\n", m.HomeTeam, m.AwayTeam))
		sb.WriteString("🔜 Scheduled\n")
	}

	if t, perr := s.clock.ParseStamp(m.Date); perr == nil {
		sb.WriteString(fmt.Sprintf("📅 %s\n", league.FormatDateFull(t)))
	} else if m.Date != "" {
		sb.WriteString(fmt.Sprintf("📅 %s\n", m.Date))
	}
	if m.LeagueName != "" {
		sb.WriteString(fmt.Sprintf("🏆 %s\n", m.LeagueName))
	}
	if m.Venue != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", m.Venue))
	}
	if m.Round != "" {
		sb.WriteString(fmt.Sprintf("🔁 %s\n", m.Round))
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// Lineups shows the starting elevens for a resolved match.
func (s *StatsService) Lineups(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	m, ok := s.findMatch(snap, query)
	if !ok {
		return models.NewErrorAnswer("❌ No match found for: %s", strings.TrimSpace(query)), nil
	}
	lineup, ok := snap.LineupFor(m.ID)
	if !ok {
		return models.NewErrorAnswer("❌ No lineup recorded for %s vs %s", m.HomeTeam, m.AwayTeam), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Starting XI: %s vs %s*\n", m.HomeTeam, m.AwayTeam))
	if t, perr := s.clock.ParseStamp(m.Date); perr == nil {
		sb.WriteString(fmt.Sprintf("📅 %s\n", league.FormatDateFull(t)))
	}
	writeSide := func(label string, players []models.LineupPlayer) {
		sb.WriteString(fmt.Sprintf("\n*%s:*\n", label))
		listed := 0
		for _, lp := range players {
			if !lp.Starting {
				continue
			}
			line := "• "
			if lp.Number != "" {
				line += "#" + lp.Number + " "
			}
			line += lp.Name()
			if lp.Position != "" {
				line += fmt.Sprintf(" (%s)", lp.Position)
			}
			sb.WriteString(line + "\n")
			listed++
		}
		if listed == 0 {
			sb.WriteString("• not recorded\n")
		}
	}
	writeSide(m.HomeTeam, lineup.Home)
	writeSide(m.AwayTeam, lineup.Away)
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// MatchList is the fallback chronological listing for a team mention,
// played matches with scores and upcoming ones as fixtures.
func (s *StatsService) MatchList(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	team := ""
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		if resolved, ok := s.resolver(snap).Resolve(trimmed); ok {
			team = resolved
		} else {
			team = trimmed
		}
	}

	var listed []models.Match
	for _, m := range snap.Matches {
		if team != "" && !involves(m, team) {
			continue
		}
		listed = append(listed, m)
	}
	if len(listed) == 0 {
		target := team
		if target == "" {
			target = "the league"
		}
		return models.NewErrorAnswer("❌ No matches found for: %s", target), nil
	}

	sort.Slice(listed, func(i, j int) bool {
		if listed[i].Date != listed[j].Date {
			return listed[i].Date < listed[j].Date
		}
		return listed[i].ID < listed[j].ID
	})
	if len(listed) > matchListLimit {
		listed = listed[len(listed)-matchListLimit:]
	}

	header := "📅 *All Matches*"
	if team != "" {
		header = fmt.Sprintf("📅 *Matches: %s*", team)
	}
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	for _, m := range listed {
		if m.HasScore() {
			sb.WriteString(fmt.Sprintf("📅 %s: %s %d - %d %s\n",
				s.fmtDate(m.Date), m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam))
		} else {
			sb.WriteString(fmt.Sprintf("🔜 %s: %s vs %s\n", s.fmtDate(m.Date), m.HomeTeam, m.AwayTeam))
		}
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// Fallback answers anything no rule claimed: a recognizable team name gets
// its form, anything else the chronological match list.
func (s *StatsService) Fallback(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if team, ok := s.resolver(snap).Resolve(query); ok {
		return s.Form(team)
	}
	return s.MatchList(query)
}
