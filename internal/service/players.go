package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

const (
	profileSuggestScore = 50
	profileListLimit    = 10
)

// StatsOrProfile dispatches the "stats for X" route: team names get the
// squad card, anything else is treated as a person lookup.
func (s *StatsService) StatsOrProfile(residual string, detailed bool) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	expanded := s.expandBareAge(residual)
	if _, ok := s.resolver(snap).Resolve(expanded); ok {
		return s.TeamStats(expanded)
	}
	return s.PlayerProfile(residual, detailed)
}

// PlayerProfile looks a person up by name substring. One hit gets the full
// card, several hits a disambiguation table, none a fuzzy "did you mean".
func (s *StatsService) PlayerProfile(query string, detailed bool) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.NewErrorAnswer("❌ Who are you looking for? Try 'stats for <player name>'"), nil
	}

	people := snap.People()
	var hits []models.Person
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name()), q) {
			hits = append(hits, p)
		}
	}

	switch {
	case len(hits) == 1:
		return models.NewTextAnswer(s.profileCard(hits[0], detailed, "")), nil
	case len(hits) > 1:
		return profileChoices(q, hits), nil
	}

	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name()
	}
	ranked := league.RankBySimilarity(s.scorer, q, names, 5, profileSuggestScore)
	if len(ranked) == 0 {
		return models.NewErrorAnswer("❌ No player found matching '%s'", query), nil
	}
	if len(ranked) == 1 {
		for _, p := range people {
			if p.Name() == ranked[0].Name {
				prefix := fmt.Sprintf("🤔 Did you mean *%s*?\n\n", p.Name())
				return models.NewTextAnswer(s.profileCard(p, detailed, prefix)), nil
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🤔 No exact match for '%s'. Did you mean:\n\n", query))
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("• %s (%d%% match)\n", r.Name, r.Score))
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n")), nil
}

// profileChoices builds the disambiguation table when a name fragment hits
// several people.
func profileChoices(q string, hits []models.Person) *models.Answer {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].LastName != hits[j].LastName {
			return hits[i].LastName < hits[j].LastName
		}
		return hits[i].FirstName < hits[j].FirstName
	})
	total := len(hits)
	if len(hits) > profileListLimit {
		hits = hits[:profileListLimit]
	}

	table := &models.Table{Columns: []string{"#", "Name", "Role", "Team", "Goals", "Cards"}}
	for i, p := range hits {
		table.AddRow(
			strconv.Itoa(i+1),
			p.Name(),
			displayRole(p),
			p.TeamName(),
			strconv.Itoa(p.Stats.Goals),
			fmt.Sprintf("%d🟨 %d🟥", p.Stats.YellowCards, p.Stats.RedCards),
		)
	}
	title := fmt.Sprintf("🔎 %d people match '%s' - be more specific", total, q)
	return models.NewTableAnswer(title, table)
}

// profileCard renders one person's full card; detailed mode appends the
// match-by-match history with event minutes.
func (s *StatsService) profileCard(p models.Person, detailed bool, prefix string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(fmt.Sprintf("👤 *%s*\n", p.Name()))
	sb.WriteString(fmt.Sprintf("🏷️ Role: %s\n", displayRole(p)))
	for _, reg := range p.Registrations {
		line := "🏟️ " + reg.TeamName
		if reg.League != "" {
			line += fmt.Sprintf(" (%s)", reg.League)
		}
		if reg.Jersey != "" {
			line += " #" + reg.Jersey
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n⚽ Goals: %d\n", p.Stats.Goals))
	sb.WriteString(fmt.Sprintf("🟨 Yellow: %d  🟥 Red: %d\n", p.Stats.YellowCards, p.Stats.RedCards))
	sb.WriteString(fmt.Sprintf("📊 Matches: %d (started %d, bench %d)\n",
		p.Stats.MatchesPlayed, p.Stats.MatchesStarted, p.Stats.BenchAppearances))

	if len(p.Matches) == 0 {
		return strings.TrimRight(sb.String(), "\n")
	}

	history := make([]models.Participation, len(p.Matches))
	copy(history, p.Matches)
	sort.Slice(history, func(i, j int) bool { return history[i].Date > history[j].Date })
	if !detailed && len(history) > 5 {
		history = history[:5]
	}

	if detailed {
		sb.WriteString("\n*Match History:*\n")
	} else {
		sb.WriteString("\n*Recent Matches:*\n")
	}
	for _, part := range history {
		sb.WriteString(s.participationLine(part) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (s *StatsService) participationLine(part models.Participation) string {
	venue := "A"
	if part.Home() {
		venue = "H"
	}
	line := fmt.Sprintf("• %s vs %s (%s)", s.fmtDate(part.Date), part.Opponent, venue)

	var bits []string
	if g := part.Goals(); g > 0 {
		b := fmt.Sprintf("⚽%d", g)
		if mins := part.GoalMinutes(); len(mins) > 0 {
			b += fmt.Sprintf(" (%s)", fmtMinutes(mins))
		}
		bits = append(bits, b)
	}
	if y := part.YellowCards(); y > 0 {
		b := fmt.Sprintf("🟨%d", y)
		if mins := part.YellowMinutes(); len(mins) > 0 {
			b += fmt.Sprintf(" (%s)", fmtMinutes(mins))
		}
		bits = append(bits, b)
	}
	if r := part.RedCards(); r > 0 {
		b := fmt.Sprintf("🟥%d", r)
		if mins := part.RedMinutes(); len(mins) > 0 {
			b += fmt.Sprintf(" (%s)", fmtMinutes(mins))
		}
		bits = append(bits, b)
	}
	if len(bits) > 0 {
		line += ": " + strings.Join(bits, " ")
	}
	if !part.Started {
		line += " [bench]"
	}
	return line
}

// DualRegistrations lists everyone registered to two or more teams, each
// registration spelled out so club overlap is visible at a glance.
func (s *StatsService) DualRegistrations(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)

	var multi []models.Person
	for _, p := range snap.People() {
		if !p.MultiRegistered() || !f.MatchPerson(p) {
			continue
		}
		multi = append(multi, p)
	}
	if len(multi) == 0 {
		return models.NewErrorAnswer("❌ No dual-registered players found%s", filterSuffix(filterText)), nil
	}

	sort.Slice(multi, func(i, j int) bool {
		if multi[i].LastName != multi[j].LastName {
			return multi[i].LastName < multi[j].LastName
		}
		return multi[i].FirstName < multi[j].FirstName
	})

	table := &models.Table{Columns: []string{"#", "Name", "Role", "Registrations"}}
	for i, p := range multi {
		regs := make([]string, len(p.Registrations))
		for j, reg := range p.Registrations {
			if reg.League != "" {
				regs[j] = fmt.Sprintf("%s (%s)", reg.TeamName, reg.League)
			} else {
				regs[j] = reg.TeamName
			}
		}
		table.AddRow(strconv.Itoa(i+1), p.Name(), displayRole(p), strings.Join(regs, "; "))
	}

	title := fmt.Sprintf("👥 Dual Registrations%s (%d people)", titleFilter(f), len(multi))
	return models.NewTableAnswer(title, table), nil
}
