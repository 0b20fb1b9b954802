package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

// ErrNoSnapshot is returned when a query arrives before the first dataset
// load has been published.
var ErrNoSnapshot = errors.New("no snapshot available")

// SnapshotProvider hands out the current canonical snapshot.
type SnapshotProvider interface {
	Snapshot() *models.Snapshot
}

// Identity is the configured "current user" context that personal-query
// phrasing ("my next match") binds to.
type Identity struct {
	Team     string
	Club     string
	AgeGroup string
}

// StatsService answers league statistics queries. Every handler is a pure
// function of (query text, current snapshot, current local time); nothing
// persists between calls.
type StatsService struct {
	repo     SnapshotProvider
	clock    *league.Clock
	identity Identity
	aliases  map[string]string
	scorer   league.Scorer
}

func NewStatsService(repo SnapshotProvider, clock *league.Clock, identity Identity) *StatsService {
	return &StatsService{
		repo:     repo,
		clock:    clock,
		identity: identity,
		aliases:  league.DefaultAliases,
		scorer:   league.LevenshteinScorer,
	}
}

func (s *StatsService) snapshot() (*models.Snapshot, error) {
	snap := s.repo.Snapshot()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// resolver builds a name resolver over the snapshot's team set. Snapshots
// are immutable, so this is cheap and always consistent with the data the
// handler is about to scan.
func (s *StatsService) resolver(snap *models.Snapshot) *league.Resolver {
	return league.NewResolver(s.aliases, snap.TeamNames, s.scorer)
}

// matchesTeam reports whether a recorded team name refers to the resolved
// one, by containment either way, mirroring how loose the source labels are.
func matchesTeam(teamName, resolved string) bool {
	if teamName == "" || resolved == "" {
		return false
	}
	t := strings.ToLower(teamName)
	r := strings.ToLower(resolved)
	return strings.Contains(t, r) || strings.Contains(r, t)
}

func involves(m models.Match, team string) bool {
	return matchesTeam(m.HomeTeam, team) || matchesTeam(m.AwayTeam, team)
}

func sortByDateDesc(matches []models.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Date != matches[j].Date {
			return matches[i].Date > matches[j].Date
		}
		return matches[i].ID < matches[j].ID
	})
}

// fmtDate renders a stored stamp as dd-Mmm, falling back to the raw prefix
// when the stamp won't parse.
func (s *StatsService) fmtDate(raw string) string {
	if raw == "" {
		return "TBD"
	}
	t, err := s.clock.ParseStamp(raw)
	if err != nil {
		if len(raw) >= 10 {
			return raw[:10]
		}
		return raw
	}
	return league.FormatDate(t)
}

func fmtMinutes(mins []int) string {
	if len(mins) == 0 {
		return ""
	}
	parts := make([]string, len(mins))
	for i, m := range mins {
		parts[i] = fmt.Sprintf("%d'", m)
	}
	return strings.Join(parts, ", ")
}

// filterSuffix renders the " matching 'x'" tail used in not-found messages.
func filterSuffix(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return fmt.Sprintf(" matching '%s'", query)
}

// titleFilter renders the " - <applied filter>" fragment for board titles.
func titleFilter(f league.Filter) string {
	if desc := f.Describe(); desc != "" {
		return " - " + desc
	}
	return ""
}
