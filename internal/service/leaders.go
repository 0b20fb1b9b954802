package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/omarshaarawi/statbot/internal/models"
)

const (
	scorersLimit    = 20
	cardBoardLimit  = 30
	cardDetailLimit = 10
)

var roleCaser = cases.Title(language.English)

func displayRole(p models.Person) string {
	if p.IsPlayer() {
		return "Player"
	}
	return roleCaser.String(p.Role)
}

// TopScorers ranks goal scorers under the composed filter, most goals first.
func (s *StatsService) TopScorers(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)

	var scorers []models.Person
	for _, p := range snap.Players {
		if p.Stats.Goals == 0 || !f.MatchPerson(p) {
			continue
		}
		scorers = append(scorers, p)
	}
	if len(scorers) == 0 {
		return models.NewErrorAnswer("❌ No goal scorers found%s", filterSuffix(filterText)), nil
	}

	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Stats.Goals != scorers[j].Stats.Goals {
			return scorers[i].Stats.Goals > scorers[j].Stats.Goals
		}
		return strings.ToLower(scorers[i].Name()) < strings.ToLower(scorers[j].Name())
	})

	total := len(scorers)
	if len(scorers) > scorersLimit {
		scorers = scorers[:scorersLimit]
	}

	table := &models.Table{Columns: []string{"Rank", "Player", "Team", "Goals", "Matches", "Goals/Match", "Yellow", "Red"}}
	for i, p := range scorers {
		perMatch := 0.0
		if p.Stats.MatchesPlayed > 0 {
			perMatch = float64(p.Stats.Goals) / float64(p.Stats.MatchesPlayed)
		}
		table.AddRow(
			strconv.Itoa(i+1),
			p.Name(),
			p.TeamName(),
			strconv.Itoa(p.Stats.Goals),
			strconv.Itoa(p.Stats.MatchesPlayed),
			fmt.Sprintf("%.2f", perMatch),
			strconv.Itoa(p.Stats.YellowCards),
			strconv.Itoa(p.Stats.RedCards),
		)
	}

	title := fmt.Sprintf("⚽ Top Scorers%s (%d with goals", titleFilter(f), total)
	if total > scorersLimit {
		title += fmt.Sprintf(", showing top %d", scorersLimit)
	}
	title += ")"
	return models.NewTableAnswer(title, table), nil
}

type cardKind int

const (
	cardYellow cardKind = iota
	cardRed
)

func (k cardKind) count(p models.Person) int {
	if k == cardRed {
		return p.Stats.RedCards
	}
	return p.Stats.YellowCards
}

func (k cardKind) label() string {
	if k == cardRed {
		return "Red Cards"
	}
	return "Yellow Cards"
}

func (k cardKind) icon() string {
	if k == cardRed {
		return "🟥"
	}
	return "🟨"
}

func (k cardKind) event() string {
	if k == cardRed {
		return models.EventRedCard
	}
	return models.EventYellowCard
}

// YellowCards lists the yellow-card board. Detail mode swaps the table for
// per-match breakdowns with booking minutes; staffOnly restricts the board
// to coaches and other non-players.
func (s *StatsService) YellowCards(filterText string, detail, staffOnly bool) (*models.Answer, error) {
	return s.cardBoard(filterText, cardYellow, detail, staffOnly)
}

// RedCards lists the red-card board, same shape as YellowCards.
func (s *StatsService) RedCards(filterText string, detail, staffOnly bool) (*models.Answer, error) {
	return s.cardBoard(filterText, cardRed, detail, staffOnly)
}

func (s *StatsService) cardBoard(filterText string, kind cardKind, detail, staffOnly bool) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)

	pool := snap.Players
	if staffOnly {
		pool = snap.Staff
	}
	var carded []models.Person
	for _, p := range pool {
		if kind.count(p) == 0 || !f.MatchPerson(p) {
			continue
		}
		carded = append(carded, p)
	}
	if len(carded) == 0 {
		return models.NewErrorAnswer("❌ No %s found%s", strings.ToLower(kind.label()), filterSuffix(filterText)), nil
	}

	sort.Slice(carded, func(i, j int) bool {
		if kind.count(carded[i]) != kind.count(carded[j]) {
			return kind.count(carded[i]) > kind.count(carded[j])
		}
		return strings.ToLower(carded[i].Name()) < strings.ToLower(carded[j].Name())
	})

	total := len(carded)
	if detail {
		return s.cardDetail(carded, kind), nil
	}
	if len(carded) > cardBoardLimit {
		carded = carded[:cardBoardLimit]
	}

	var table *models.Table
	if staffOnly {
		table = &models.Table{Columns: []string{"Rank", "Name", "Role", "Team", kind.label()}}
		for i, p := range carded {
			table.AddRow(strconv.Itoa(i+1), p.Name(), displayRole(p), p.TeamName(), strconv.Itoa(kind.count(p)))
		}
	} else {
		table = &models.Table{Columns: []string{"Rank", "Player", "Team", kind.label(), "Matches", "Goals"}}
		for i, p := range carded {
			table.AddRow(strconv.Itoa(i+1), p.Name(), p.TeamName(),
				strconv.Itoa(kind.count(p)), strconv.Itoa(p.Stats.MatchesPlayed), strconv.Itoa(p.Stats.Goals))
		}
	}

	title := fmt.Sprintf("%s %s%s (%d carded", kind.icon(), kind.label(), titleFilter(f), total)
	if total > cardBoardLimit {
		title += fmt.Sprintf(", showing top %d", cardBoardLimit)
	}
	title += ")"
	return models.NewTableAnswer(title, table), nil
}

// cardDetail renders per-match card breakdowns, bookings with their minutes,
// for the most-carded people.
func (s *StatsService) cardDetail(carded []models.Person, kind cardKind) *models.Answer {
	if len(carded) > cardDetailLimit {
		carded = carded[:cardDetailLimit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *%s - Match Detail*\n\n", kind.icon(), kind.label()))
	for _, p := range carded {
		sb.WriteString(fmt.Sprintf("*%s* (%s) - %d\n", p.Name(), p.TeamName(), kind.count(p)))
		for _, part := range p.Matches {
			count := 0
			var minutes []int
			for _, ev := range part.Events {
				if ev.Type != kind.event() {
					continue
				}
				count++
				if ev.Minute > 0 {
					minutes = append(minutes, ev.Minute)
				}
			}
			if count == 0 {
				continue
			}
			line := fmt.Sprintf("  • vs %s (%s): %d", part.Opponent, s.fmtDate(part.Date), count)
			if len(minutes) > 0 {
				line += fmt.Sprintf(" (%s)", fmtMinutes(minutes))
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	return models.NewTextAnswer(strings.TrimRight(sb.String(), "\n"))
}

// Staff lists coaches and other non-players, most carded first, then by name.
func (s *StatsService) Staff(filterText string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	f := s.resolver(snap).BuildFilter(filterText)

	var staff []models.Person
	for _, p := range snap.Staff {
		if !f.MatchPerson(p) {
			continue
		}
		staff = append(staff, p)
	}
	if len(staff) == 0 {
		return models.NewErrorAnswer("❌ No staff found%s", filterSuffix(filterText)), nil
	}

	sort.Slice(staff, func(i, j int) bool {
		wi := staff[i].Stats.YellowCards + 2*staff[i].Stats.RedCards
		wj := staff[j].Stats.YellowCards + 2*staff[j].Stats.RedCards
		if wi != wj {
			return wi > wj
		}
		if staff[i].LastName != staff[j].LastName {
			return staff[i].LastName < staff[j].LastName
		}
		return staff[i].FirstName < staff[j].FirstName
	})

	table := &models.Table{Columns: []string{"Rank", "Name", "Role", "Team", "Yellow", "Red"}}
	for i, p := range staff {
		table.AddRow(
			strconv.Itoa(i+1),
			p.Name(),
			displayRole(p),
			p.TeamName(),
			strconv.Itoa(p.Stats.YellowCards),
			strconv.Itoa(p.Stats.RedCards),
		)
	}

	title := fmt.Sprintf("📋 Staff%s (%d found)", titleFilter(f), len(staff))
	return models.NewTableAnswer(title, table), nil
}
