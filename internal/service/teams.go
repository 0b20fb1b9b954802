package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

var bareAgeQueryRE = regexp.MustCompile(`(?i)^\s*u(1[3-8])\s*$`)

// expandBareAge turns a lone "u16" into "<configured club> U16" so squad
// queries from the home club stay short.
func (s *StatsService) expandBareAge(query string) string {
	m := bareAgeQueryRE.FindStringSubmatch(query)
	if m == nil || s.identity.Club == "" {
		return query
	}
	return s.identity.Club + " U" + m[1]
}

// teamPlayers returns players holding a registration for the team.
func teamPlayers(snap *models.Snapshot, team string) []models.Person {
	var squad []models.Person
	for _, p := range snap.Players {
		for _, reg := range p.Registrations {
			if matchesTeam(reg.TeamName, team) {
				squad = append(squad, p)
				break
			}
		}
	}
	return squad
}

// recentResults returns the team's last n completed matches, newest first.
func recentResults(snap *models.Snapshot, team string, n int) []models.Match {
	var played []models.Match
	for _, m := range snap.Matches {
		if !m.IsComplete() || !m.HasScore() || !involves(m, team) {
			continue
		}
		played = append(played, m)
	}
	sortByDateDesc(played)
	if len(played) > n {
		played = played[:n]
	}
	return played
}

// outcome classifies a completed match from the team's side of it.
func outcome(m models.Match, team string) byte {
	us, them := *m.HomeScore, *m.AwayScore
	if !matchesTeam(m.HomeTeam, team) {
		us, them = them, us
	}
	switch {
	case us > them:
		return 'W'
	case us < them:
		return 'L'
	default:
		return 'D'
	}
}

func outcomeIcon(o byte) string {
	switch o {
	case 'W':
		return "✅"
	case 'L':
		return "❌"
	default:
		return "➖"
	}
}

// TeamStats builds the full squad statistics card for a resolved team.
func (s *StatsService) TeamStats(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	query = s.expandBareAge(query)
	team, ok := s.resolver(snap).Resolve(query)
	if !ok {
		team = strings.TrimSpace(query)
	}

	squad := teamPlayers(snap, team)
	if len(squad) == 0 {
		return models.NewErrorAnswer("❌ No players found for team: %s", team), nil
	}

	goals, yellows, reds := 0, 0, 0
	for _, p := range squad {
		goals += p.Stats.Goals
		yellows += p.Stats.YellowCards
		reds += p.Stats.RedCards
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Team Statistics: %s*\n\n", team))
	sb.WriteString(fmt.Sprintf("👥 Squad Size: %d players\n", len(squad)))
	sb.WriteString(fmt.Sprintf("⚽ Total Goals: %d\n", goals))
	sb.WriteString(fmt.Sprintf("🟨 Yellow Cards: %d  🟥 Red Cards: %d\n", yellows, reds))

	scorers := make([]models.Person, 0, len(squad))
	for _, p := range squad {
		if p.Stats.Goals > 0 {
			scorers = append(scorers, p)
		}
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Stats.Goals != scorers[j].Stats.Goals {
			return scorers[i].Stats.Goals > scorers[j].Stats.Goals
		}
		return strings.ToLower(scorers[i].Name()) < strings.ToLower(scorers[j].Name())
	})
	if len(scorers) > 0 {
		sb.WriteString("\n*Top Scorers:*\n")
		for i, p := range scorers {
			if i == 5 {
				break
			}
			perMatch := 0.0
			if p.Stats.MatchesPlayed > 0 {
				perMatch = float64(p.Stats.Goals) / float64(p.Stats.MatchesPlayed)
			}
			sb.WriteString(fmt.Sprintf("%d. %s - %d goals (%.2f/match)\n", i+1, p.Name(), p.Stats.Goals, perMatch))
		}
	}

	carded := make([]models.Person, 0, len(squad))
	for _, p := range squad {
		if p.Stats.YellowCards+p.Stats.RedCards > 0 {
			carded = append(carded, p)
		}
	}
	sort.Slice(carded, func(i, j int) bool {
		wi := carded[i].Stats.YellowCards + 2*carded[i].Stats.RedCards
		wj := carded[j].Stats.YellowCards + 2*carded[j].Stats.RedCards
		if wi != wj {
			return wi > wj
		}
		return strings.ToLower(carded[i].Name()) < strings.ToLower(carded[j].Name())
	})
	if len(carded) > 0 {
		sb.WriteString("\n*Discipline:*\n")
		for i, p := range carded {
			if i == 5 {
				break
			}
			sb.WriteString(fmt.Sprintf("%d. %s - %d🟨 %d🟥\n", i+1, p.Name(), p.Stats.YellowCards, p.Stats.RedCards))
		}
	}

	if recent := recentResults(snap, team, 5); len(recent) > 0 {
		sb.WriteString("\n*Recent Results:*\n")
		for _, m := range recent {
			sb.WriteString(fmt.Sprintf("%s %s: %s %d - %d %s\n",
				outcomeIcon(outcome(m, team)), s.fmtDate(m.Date), m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam))
		}
	}

	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// TeamOverview is the lighter team card used by the overview route.
func (s *StatsService) TeamOverview(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	query = s.expandBareAge(query)
	team, ok := s.resolver(snap).Resolve(query)
	if !ok {
		team = strings.TrimSpace(query)
	}

	squad := teamPlayers(snap, team)
	recent := recentResults(snap, team, 5)
	if len(squad) == 0 && len(recent) == 0 {
		return models.NewErrorAnswer("❌ No data found for team: %s", team), nil
	}

	goals, yellows, reds := 0, 0, 0
	for _, p := range squad {
		goals += p.Stats.Goals
		yellows += p.Stats.YellowCards
		reds += p.Stats.RedCards
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏟️ *%s*\n\n", team))
	sb.WriteString(fmt.Sprintf("👥 Squad: %d  ⚽ Goals: %d  🟨 %d  🟥 %d\n", len(squad), goals, yellows, reds))

	if len(recent) > 0 {
		sb.WriteString("\n*Recent Results:*\n")
		for _, m := range recent {
			sb.WriteString(fmt.Sprintf("%s: %s %d - %d %s\n",
				s.fmtDate(m.Date), m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam))
		}
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// Form summarizes the last five completed matches from the team's side,
// most recent first.
func (s *StatsService) Form(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	team, ok := s.resolver(snap).Resolve(query)
	if !ok {
		team = strings.TrimSpace(query)
	}

	recent := recentResults(snap, team, 5)
	if len(recent) == 0 {
		return models.NewErrorAnswer("❌ No form data found for: %s", team), nil
	}

	letters := make([]string, len(recent))
	for i, m := range recent {
		letters[i] = string(outcome(m, team))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 *Form: %s*\n\n", team))
	sb.WriteString(fmt.Sprintf("Last %d: %s\n\n", len(recent), strings.Join(letters, " ")))
	for _, m := range recent {
		sb.WriteString(fmt.Sprintf("%s %s: %s %d - %d %s\n",
			outcomeIcon(outcome(m, team)), s.fmtDate(m.Date), m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam))
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// Fixtures lists upcoming matches, soonest first. Personal queries bind to
// the configured team and show each fixture from its side.
func (s *StatsService) Fixtures(filterText string, limit int, personal bool) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	team := ""
	if personal && s.identity.Team != "" {
		team = s.identity.Team
	} else if trimmed := strings.TrimSpace(filterText); trimmed != "" {
		if resolved, ok := s.resolver(snap).Resolve(trimmed); ok {
			team = resolved
		} else {
			team = trimmed
		}
	}

	today := s.clock.Today()
	type fixture struct {
		match models.Match
		days  int
	}
	var upcoming []fixture
	for _, m := range snap.Matches {
		if m.IsComplete() {
			continue
		}
		day, ok := s.clock.LocalDate(m.Date)
		if !ok || day.Before(today) {
			continue
		}
		if team != "" && !involves(m, team) {
			continue
		}
		upcoming = append(upcoming, fixture{match: m, days: league.DaysBetween(today, day)})
	}
	if len(upcoming) == 0 {
		target := team
		if target == "" {
			target = "the league"
		}
		return models.NewErrorAnswer("❌ No upcoming fixtures found for %s", target), nil
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].match.Date != upcoming[j].match.Date {
			return upcoming[i].match.Date < upcoming[j].match.Date
		}
		return upcoming[i].match.ID < upcoming[j].match.ID
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	header := "🗓️ *Upcoming Fixtures*"
	if team != "" {
		header = fmt.Sprintf("🗓️ *Upcoming Fixtures: %s*", team)
	}
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	for _, fx := range upcoming {
		m := fx.match
		when := s.fmtDate(m.Date)
		if t, perr := s.clock.ParseStamp(m.Date); perr == nil {
			when = league.FormatKickoff(t)
		}

		line := fmt.Sprintf("%s %s - %s vs %s", fixtureBadge(fx.days), when, m.HomeTeam, m.AwayTeam)
		if personal && team != "" {
			if matchesTeam(m.HomeTeam, team) {
				line = fmt.Sprintf("%s %s - HOME vs %s", fixtureBadge(fx.days), when, m.AwayTeam)
			} else {
				line = fmt.Sprintf("%s %s - AWAY at %s", fixtureBadge(fx.days), when, m.HomeTeam)
			}
		}
		if m.Venue != "" {
			line += fmt.Sprintf(" (%s)", m.Venue)
		}
		if m.Round != "" {
			line += fmt.Sprintf(" [%s]", m.Round)
		}
		sb.WriteString(line + "\n")
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

func fixtureBadge(days int) string {
	switch days {
	case 0:
		return "🔴 TODAY!"
	case 1:
		return "⚠️ Tomorrow"
	default:
		return fmt.Sprintf("🗓️ In %d days", days)
	}
}
