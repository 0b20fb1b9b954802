package league

import (
	"strings"

	"github.com/omarshaarawi/statbot/internal/models"
)

// Filter is the structured form of a free-text entity filter. Matching
// applies exactly one criterion per query, chosen by specificity: exact
// team, then club+age, then club, then age. Criteria are never combined.
type Filter struct {
	ExactTeam string
	Club      string
	AgeGroup  string
	League    string
}

func (f Filter) Empty() bool {
	return f.ExactTeam == "" && f.Club == "" && f.AgeGroup == "" && f.League == ""
}

func (f Filter) hasTeamCriteria() bool {
	return f.ExactTeam != "" || f.Club != "" || f.AgeGroup != ""
}

// MatchTeam reports whether a team name satisfies the filter under
// specificity precedence. Containment runs both ways for the exact-team
// criterion so club-level mentions still catch age-qualified teams.
func (f Filter) MatchTeam(team string) bool {
	t := strings.ToLower(team)
	switch {
	case f.ExactTeam != "":
		e := strings.ToLower(f.ExactTeam)
		return strings.Contains(t, e) || strings.Contains(e, t)
	case f.Club != "" && f.AgeGroup != "":
		return strings.Contains(t, strings.ToLower(f.Club+" "+f.AgeGroup))
	case f.Club != "":
		return strings.Contains(t, strings.ToLower(f.Club))
	case f.AgeGroup != "":
		return strings.Contains(t, strings.ToLower(f.AgeGroup))
	}
	return true
}

// MatchPerson applies MatchTeam across the person's registrations. Any
// single registration satisfying the filter is enough, so multi-registered
// people surface under every team they belong to.
func (f Filter) MatchPerson(p models.Person) bool {
	if !f.hasTeamCriteria() {
		return true
	}
	for _, reg := range p.Registrations {
		if f.MatchTeam(reg.TeamName) {
			return true
		}
	}
	return false
}

// MatchMatch reports whether a fixture or result involves the filtered
// entities: either side passing the team criterion and, when a league code
// is set, the match's league label mapping to that code.
func (f Filter) MatchMatch(m models.Match) bool {
	if f.League != "" && CodeFromLeagueName(m.LeagueName) != f.League {
		return false
	}
	if !f.hasTeamCriteria() {
		return true
	}
	return f.MatchTeam(m.HomeTeam) || f.MatchTeam(m.AwayTeam)
}

// Describe renders the applied criterion for titles, most specific first.
func (f Filter) Describe() string {
	switch {
	case f.ExactTeam != "":
		return f.ExactTeam
	case f.Club != "" && f.AgeGroup != "":
		return f.Club + " " + f.AgeGroup
	case f.Club != "":
		return f.Club
	case f.AgeGroup != "":
		return f.AgeGroup
	case f.League != "":
		return f.League
	}
	return ""
}
