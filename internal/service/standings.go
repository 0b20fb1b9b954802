package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

type ladderRow struct {
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

func (r ladderRow) GoalDifference() int { return r.GoalsFor - r.GoalsAgainst }

// Ladder computes the competition table from completed results. Unknown or
// missing competition codes get the list of competitions we do know about.
func (s *StatsService) Ladder(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	code := league.CodeFromQuery(query)
	if code == "" {
		return s.availableCompetitions(snap), nil
	}
	age := league.ExtractAgeGroup(query)

	rows := ladderRows(snap.Results, code, age)
	if len(rows) == 0 {
		return models.NewErrorAnswer("❌ No ladder available for: %s", strings.TrimSpace(query)), nil
	}

	table := &models.Table{Columns: []string{"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"}}
	for i, row := range rows {
		table.AddRow(
			strconv.Itoa(i+1),
			row.Team,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Won),
			strconv.Itoa(row.Drawn),
			strconv.Itoa(row.Lost),
			strconv.Itoa(row.GoalsFor),
			strconv.Itoa(row.GoalsAgainst),
			fmt.Sprintf("%+d", row.GoalDifference()),
			strconv.Itoa(row.Points),
		)
	}

	title := fmt.Sprintf("📊 %s Ladder", code)
	if age != "" {
		title = fmt.Sprintf("📊 %s %s Ladder", age, code)
	}
	return models.NewTableAnswer(title, table), nil
}

// ladderRows accumulates the table for one competition code, optionally one
// age group, over completed results. Win 3, draw 1, loss 0, ordered by
// points, goal difference, goals for, fewest conceded, then team name.
func ladderRows(results []models.Match, code, age string) []ladderRow {
	acc := make(map[string]*ladderRow)
	row := func(team string) *ladderRow {
		r, ok := acc[team]
		if !ok {
			r = &ladderRow{Team: team}
			acc[team] = r
		}
		return r
	}

	for _, m := range results {
		if !m.IsComplete() || !m.HasScore() || m.IsBye() {
			continue
		}
		if league.CodeFromLeagueName(m.LeagueName) != code {
			continue
		}
		if age != "" && !strings.EqualFold(league.ExtractAgeGroup(m.LeagueName), age) {
			continue
		}

		hs, as := *m.HomeScore, *m.AwayScore
		home := row(m.HomeTeam)
		away := row(m.AwayTeam)
		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs
		switch {
		case hs > as:
			home.Won++
			away.Lost++
			home.Points += 3
		case hs < as:
			away.Won++
			home.Lost++
			away.Points += 3
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	rows := make([]ladderRow, 0, len(acc))
	for _, r := range acc {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.GoalsAgainst != b.GoalsAgainst {
			return a.GoalsAgainst < b.GoalsAgainst
		}
		return strings.ToLower(a.Team) < strings.ToLower(b.Team)
	})
	return rows
}

// CompetitionOverview ranks every club across all age groups of one
// competition: one ladder per age group, then clubs ordered by their average
// finishing position.
func (s *StatsService) CompetitionOverview(query string) (*models.Answer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	code := league.CodeFromQuery(query)
	if code == "" {
		return s.availableCompetitions(snap), nil
	}

	ages := competitionAgeGroups(snap.Results, code)
	if len(ages) == 0 {
		return s.availableCompetitions(snap), nil
	}

	type clubTotals struct {
		Club      string
		Positions map[string]int
		TotalPos  int
		GF        int
		GA        int
		Teams     int
	}
	totals := make(map[string]*clubTotals)
	for _, age := range ages {
		for i, row := range ladderRows(snap.Results, code, age) {
			club := league.BaseClubName(row.Team)
			ct, ok := totals[club]
			if !ok {
				ct = &clubTotals{Club: club, Positions: make(map[string]int)}
				totals[club] = ct
			}
			ct.Positions[age] = i + 1
			ct.TotalPos += i + 1
			ct.GF += row.GoalsFor
			ct.GA += row.GoalsAgainst
			ct.Teams++
		}
	}

	clubs := make([]*clubTotals, 0, len(totals))
	for _, ct := range totals {
		clubs = append(clubs, ct)
	}
	sort.Slice(clubs, func(i, j int) bool {
		a, b := clubs[i], clubs[j]
		avgA := float64(a.TotalPos) / float64(a.Teams)
		avgB := float64(b.TotalPos) / float64(b.Teams)
		if avgA != avgB {
			return avgA < avgB
		}
		if a.Teams != b.Teams {
			return a.Teams > b.Teams
		}
		gdA, gdB := a.GF-a.GA, b.GF-b.GA
		if gdA != gdB {
			return gdA > gdB
		}
		return strings.ToLower(a.Club) < strings.ToLower(b.Club)
	})

	columns := []string{"Rank", "Club"}
	columns = append(columns, ages...)
	columns = append(columns, "Total Pos", "GF", "GA", "GD", "Teams")
	table := &models.Table{Columns: columns}
	for i, ct := range clubs {
		cells := []string{strconv.Itoa(i + 1), ct.Club}
		for _, age := range ages {
			if pos, ok := ct.Positions[age]; ok {
				cells = append(cells, strconv.Itoa(pos))
			} else {
				cells = append(cells, "-")
			}
		}
		cells = append(cells,
			strconv.Itoa(ct.TotalPos),
			strconv.Itoa(ct.GF),
			strconv.Itoa(ct.GA),
			fmt.Sprintf("%+d", ct.GF-ct.GA),
			strconv.Itoa(ct.Teams),
		)
		table.AddRow(cells...)
	}

	title := fmt.Sprintf("🏆 %s Competition Overview (%d clubs)", code, len(clubs))
	return models.NewTableAnswer(title, table), nil
}

// competitionAgeGroups collects the distinct age groups seen in a
// competition's results, youngest first.
func competitionAgeGroups(results []models.Match, code string) []string {
	seen := make(map[string]bool)
	for _, m := range results {
		if league.CodeFromLeagueName(m.LeagueName) != code {
			continue
		}
		if age := league.ExtractAgeGroup(m.LeagueName); age != "" {
			seen[age] = true
		}
	}
	ages := make([]string, 0, len(seen))
	for age := range seen {
		ages = append(ages, age)
	}
	sort.Strings(ages)
	return ages
}

// availableCompetitions summarizes what the snapshot actually holds, used
// whenever a query names no competition we recognize.
func (s *StatsService) availableCompetitions(snap *models.Snapshot) *models.Answer {
	var sb strings.Builder
	sb.WriteString("🏆 *Available Competitions*\n\n")

	listed := 0
	for _, code := range league.KnownCompetitions() {
		teams := make(map[string]bool)
		agesSeen := make(map[string]bool)
		for _, m := range snap.Matches {
			if league.CodeFromLeagueName(m.LeagueName) != code {
				continue
			}
			if m.HomeTeam != "" {
				teams[strings.ToLower(m.HomeTeam)] = true
			}
			if m.AwayTeam != "" {
				teams[strings.ToLower(m.AwayTeam)] = true
			}
			if age := league.ExtractAgeGroup(m.LeagueName); age != "" {
				agesSeen[age] = true
			}
		}
		if len(teams) == 0 {
			continue
		}
		ages := make([]string, 0, len(agesSeen))
		for age := range agesSeen {
			ages = append(ages, age)
		}
		sort.Strings(ages)
		sb.WriteString(fmt.Sprintf("*%s* - %d teams", code, len(teams)))
		if len(ages) > 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(ages, ", ")))
		}
		sb.WriteString("\n")
		listed++
	}

	if listed == 0 {
		return models.NewErrorAnswer("❌ No competition data loaded yet")
	}
	sb.WriteString("\n💡 Try: 'YPL1 ladder', 'U16 YPL2 ladder', or 'YSL NW overview'")
	return models.NewTextAnswer(sb.String())
}
