package dataset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/omarshaarawi/statbot/internal/models"
)

type rawCollections struct {
	results  []rawMatch
	fixtures []rawMatch
	players  []rawPerson
	staff    []rawPerson
	lineups  []rawLineup
}

// rawPerson covers the field-name variants the exports use: single-team
// records carry team_name/league_name/role scalars, multi-team records
// carry parallel teams/leagues/roles lists.
type rawPerson struct {
	ID        string             `json:"id"`
	HashID    string             `json:"player_hash_id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Name      string             `json:"name"`
	Role      string             `json:"role"`
	Roles     []string           `json:"roles"`
	TeamName  string             `json:"team_name"`
	Teams     []string           `json:"teams"`
	League    string             `json:"league_name"`
	Leagues   []string           `json:"leagues"`
	Jersey    json.RawMessage    `json:"jersey"`
	Stats     *rawStats          `json:"stats"`
	Goals     int                `json:"goals"`
	Yellows   int                `json:"yellow_cards"`
	Reds      int                `json:"red_cards"`
	Played    int                `json:"matches_played"`
	Matches   []rawParticipation `json:"matches"`
}

type rawStats struct {
	MatchesPlayed    int `json:"matches_played"`
	MatchesStarted   int `json:"matches_started"`
	BenchAppearances int `json:"bench_appearances"`
	Goals            int `json:"goals"`
	YellowCards      int `json:"yellow_cards"`
	RedCards         int `json:"red_cards"`
}

type rawParticipation struct {
	HashID        string            `json:"match_hash_id"`
	MatchID       string            `json:"match_id"`
	Date          string            `json:"date"`
	Opponent      string            `json:"opponent_team_name"`
	HomeOrAway    string            `json:"home_or_away"`
	Started       bool              `json:"started"`
	Goals         int               `json:"goals"`
	GoalMinutes   []json.RawMessage `json:"goal_minutes"`
	YellowCards   int               `json:"yellow_cards"`
	YellowMinutes []json.RawMessage `json:"yellow_minutes"`
	RedCards      int               `json:"red_cards"`
	RedMinutes    []json.RawMessage `json:"red_minutes"`
}

type rawMatchAttrs struct {
	Date        string          `json:"date"`
	LeagueName  string          `json:"league_name"`
	Competition string          `json:"competition_name"`
	HomeTeam    string          `json:"home_team_name"`
	AwayTeam    string          `json:"away_team_name"`
	HomeScore   json.RawMessage `json:"home_score"`
	AwayScore   json.RawMessage `json:"away_score"`
	Status      string          `json:"status"`
	Round       json.RawMessage `json:"round"`
	FullRound   json.RawMessage `json:"full_round"`
	Ground      string          `json:"ground_name"`
	Venue       string          `json:"venue"`
	HomeTeamID  string          `json:"home_team_id"`
	AwayTeamID  string          `json:"away_team_id"`
}

type rawMatch struct {
	ID     string
	HashID string
	Attrs  rawMatchAttrs
}

// UnmarshalJSON accepts both export shapes: fields nested under
// "attributes", or flat on the object itself.
func (m *rawMatch) UnmarshalJSON(data []byte) error {
	var envelope struct {
		ID         string          `json:"id"`
		HashID     string          `json:"match_hash_id"`
		Attributes json.RawMessage `json:"attributes"`
	}
	if err := sonic.Unmarshal(data, &envelope); err != nil {
		return err
	}
	m.ID = envelope.ID
	m.HashID = envelope.HashID
	if len(envelope.Attributes) > 0 {
		return sonic.Unmarshal(envelope.Attributes, &m.Attrs)
	}
	return sonic.Unmarshal(data, &m.Attrs)
}

type rawLineup struct {
	HashID  string            `json:"match_hash_id"`
	MatchID string            `json:"match_id"`
	Home    []rawLineupPlayer `json:"home_lineup"`
	Away    []rawLineupPlayer `json:"away_lineup"`
}

type rawLineupPlayer struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Number    json.RawMessage `json:"shirt_number"`
	Position  string          `json:"position"`
	Starting  bool            `json:"starting"`
}

// personCheck is the minimal validity contract a person record must meet.
type personCheck struct {
	Name string `validate:"required"`
	Team string `validate:"required"`
}

// matchCheck is the minimal validity contract a match record must meet.
type matchCheck struct {
	ID   string `validate:"required"`
	Date string `validate:"required"`
}

// buildSnapshot normalizes the raw collections. Malformed records are
// skipped and logged, never fatal.
func (l *Loader) buildSnapshot(raw rawCollections) *models.Snapshot {
	var players, staff []models.Person
	for _, rp := range raw.players {
		p, err := l.normalizePerson(rp, "")
		if err != nil {
			l.log.Warn("Skipping person record", "error", err)
			continue
		}
		if p.IsPlayer() {
			players = append(players, p)
		} else {
			staff = append(staff, p)
		}
	}
	for _, rp := range raw.staff {
		p, err := l.normalizePerson(rp, "Coach")
		if err != nil {
			l.log.Warn("Skipping staff record", "error", err)
			continue
		}
		staff = append(staff, p)
	}

	results := l.normalizeMatches(raw.results, models.StatusComplete)
	fixtures := l.normalizeMatches(raw.fixtures, models.StatusScheduled)
	merged := mergeMatches(results, fixtures)

	var lineups []models.Lineup
	for _, rl := range raw.lineups {
		id := rl.HashID
		if id == "" {
			id = rl.MatchID
		}
		if id == "" {
			continue
		}
		lineups = append(lineups, models.Lineup{
			MatchID: id,
			Home:    normalizeLineupPlayers(rl.Home),
			Away:    normalizeLineupPlayers(rl.Away),
		})
	}

	return &models.Snapshot{
		Version:   uuid.NewString(),
		LoadedAt:  time.Now(),
		Players:   players,
		Staff:     staff,
		Results:   results,
		Fixtures:  fixtures,
		Matches:   merged,
		Lineups:   lineups,
		TeamNames: collectTeamNames(merged, players, staff),
	}
}

func (l *Loader) normalizePerson(rp rawPerson, defaultRole string) (models.Person, error) {
	p := models.Person{
		ID:        firstNonEmpty(rp.HashID, rp.ID),
		FirstName: strings.TrimSpace(rp.FirstName),
		LastName:  strings.TrimSpace(rp.LastName),
	}
	if p.FirstName == "" && p.LastName == "" {
		p.FirstName = strings.TrimSpace(rp.Name)
	}

	role := defaultRole
	if len(rp.Roles) > 0 {
		role = rp.Roles[0]
	} else if rp.Role != "" {
		role = rp.Role
	}
	p.Role = strings.ToLower(strings.TrimSpace(role))

	jersey := rawToString(rp.Jersey)
	teams := rp.Teams
	if len(teams) == 0 && rp.TeamName != "" {
		teams = []string{rp.TeamName}
	}
	for i, team := range teams {
		team = strings.TrimSpace(team)
		if team == "" {
			continue
		}
		reg := models.Registration{TeamName: team, Jersey: jersey}
		if i < len(rp.Leagues) {
			reg.League = rp.Leagues[i]
		} else {
			reg.League = rp.League
		}
		p.Registrations = append(p.Registrations, reg)
	}

	if rp.Stats != nil {
		p.Stats = models.SeasonStats{
			MatchesPlayed:    rp.Stats.MatchesPlayed,
			MatchesStarted:   rp.Stats.MatchesStarted,
			BenchAppearances: rp.Stats.BenchAppearances,
			Goals:            rp.Stats.Goals,
			YellowCards:      rp.Stats.YellowCards,
			RedCards:         rp.Stats.RedCards,
		}
	} else {
		p.Stats = models.SeasonStats{
			MatchesPlayed: rp.Played,
			Goals:         rp.Goals,
			YellowCards:   rp.Yellows,
			RedCards:      rp.Reds,
		}
	}

	p.Matches = normalizeParticipations(rp.Matches)
	if p.Stats == (models.SeasonStats{}) && len(p.Matches) > 0 {
		p.Stats = deriveStats(p.Matches)
	}

	if p.ID == "" {
		p.ID = slugify(p.Name())
	}
	if err := l.validate.Struct(personCheck{Name: p.Name(), Team: p.TeamName()}); err != nil {
		return models.Person{}, fmt.Errorf("incomplete person %q: %w", p.Name(), err)
	}
	return p, nil
}

// normalizeParticipations keeps the first entry per match id; a person must
// never be counted twice for the same match.
func normalizeParticipations(raw []rawParticipation) []models.Participation {
	seen := make(map[string]struct{}, len(raw))
	var out []models.Participation
	for _, rp := range raw {
		id := firstNonEmpty(rp.HashID, rp.MatchID)
		if id == "" {
			id = rp.Date + "|" + rp.Opponent
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		events := buildEvents(models.EventGoal, rp.Goals, rawMinutes(rp.GoalMinutes))
		events = append(events, buildEvents(models.EventYellowCard, rp.YellowCards, rawMinutes(rp.YellowMinutes))...)
		events = append(events, buildEvents(models.EventRedCard, rp.RedCards, rawMinutes(rp.RedMinutes))...)

		out = append(out, models.Participation{
			MatchID:    id,
			Date:       rp.Date,
			Opponent:   rp.Opponent,
			HomeOrAway: strings.ToLower(rp.HomeOrAway),
			Started:    rp.Started,
			Events:     events,
		})
	}
	return out
}

func buildEvents(eventType string, count int, minutes []int) []models.MatchEvent {
	if count < len(minutes) {
		count = len(minutes)
	}
	events := make([]models.MatchEvent, 0, count)
	for i := 0; i < count; i++ {
		minute := 0
		if i < len(minutes) {
			minute = minutes[i]
		}
		events = append(events, models.MatchEvent{Type: eventType, Minute: minute})
	}
	return events
}

func deriveStats(matches []models.Participation) models.SeasonStats {
	var s models.SeasonStats
	for _, m := range matches {
		s.MatchesPlayed++
		if m.Started {
			s.MatchesStarted++
		} else {
			s.BenchAppearances++
		}
		s.Goals += m.Goals()
		s.YellowCards += m.YellowCards()
		s.RedCards += m.RedCards()
	}
	return s
}

func (l *Loader) normalizeMatches(raw []rawMatch, defaultStatus string) []models.Match {
	var out []models.Match
	for _, rm := range raw {
		m, err := l.normalizeMatch(rm, defaultStatus)
		if err != nil {
			l.log.Warn("Skipping match record", "error", err)
			continue
		}
		if m.IsBye() {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (l *Loader) normalizeMatch(rm rawMatch, defaultStatus string) (models.Match, error) {
	a := rm.Attrs
	m := models.Match{
		ID:          firstNonEmpty(rm.HashID, rm.ID),
		Date:        strings.TrimSpace(a.Date),
		LeagueName:  strings.TrimSpace(a.LeagueName),
		Competition: strings.TrimSpace(a.Competition),
		HomeTeam:    normalizeTeamName(a.HomeTeam),
		AwayTeam:    normalizeTeamName(a.AwayTeam),
		HomeScore:   rawToIntPtr(a.HomeScore),
		AwayScore:   rawToIntPtr(a.AwayScore),
		Status:      normalizeStatus(a.Status, defaultStatus),
		Round:       firstNonEmpty(rawToString(a.FullRound), rawToString(a.Round)),
		Venue:       firstNonEmpty(a.Ground, a.Venue),
		HomeTeamID:  a.HomeTeamID,
		AwayTeamID:  a.AwayTeamID,
	}
	if m.ID == "" {
		m.ID = m.Date + "|" + m.HomeTeam + "|" + m.AwayTeam
	}
	if err := l.validate.Struct(matchCheck{ID: m.ID, Date: m.Date}); err != nil {
		return models.Match{}, fmt.Errorf("incomplete match %s v %s: %w", m.HomeTeam, m.AwayTeam, err)
	}
	return m, nil
}

// mergeMatches joins results and fixtures on match id. Result fields win
// for date, scores and status; fixture fields fill the gaps. Output is
// date-ordered so every downstream scan sees one deterministic sequence.
func mergeMatches(results, fixtures []models.Match) []models.Match {
	merged := make(map[string]models.Match, len(results)+len(fixtures))
	var order []string
	for _, f := range fixtures {
		if _, ok := merged[f.ID]; !ok {
			order = append(order, f.ID)
		}
		merged[f.ID] = f
	}
	for _, r := range results {
		base, ok := merged[r.ID]
		if !ok {
			merged[r.ID] = r
			order = append(order, r.ID)
			continue
		}
		merged[r.ID] = overlayResult(base, r)
	}
	out := make([]models.Match, 0, len(order))
	for _, id := range order {
		out = append(out, merged[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func overlayResult(fixture, result models.Match) models.Match {
	m := fixture
	if result.Date != "" {
		m.Date = result.Date
	}
	m.HomeScore = result.HomeScore
	m.AwayScore = result.AwayScore
	if result.Status != "" {
		m.Status = result.Status
	}
	if result.LeagueName != "" {
		m.LeagueName = result.LeagueName
	}
	if result.Competition != "" {
		m.Competition = result.Competition
	}
	if result.HomeTeam != "" {
		m.HomeTeam = result.HomeTeam
	}
	if result.AwayTeam != "" {
		m.AwayTeam = result.AwayTeam
	}
	if result.Round != "" {
		m.Round = result.Round
	}
	if result.Venue != "" {
		m.Venue = result.Venue
	}
	if result.HomeTeamID != "" {
		m.HomeTeamID = result.HomeTeamID
	}
	if result.AwayTeamID != "" {
		m.AwayTeamID = result.AwayTeamID
	}
	return m
}

func normalizeLineupPlayers(raw []rawLineupPlayer) []models.LineupPlayer {
	out := make([]models.LineupPlayer, 0, len(raw))
	for _, rp := range raw {
		out = append(out, models.LineupPlayer{
			FirstName: strings.TrimSpace(rp.FirstName),
			LastName:  strings.TrimSpace(rp.LastName),
			Number:    rawToString(rp.Number),
			Position:  rp.Position,
			Starting:  rp.Starting,
		})
	}
	return out
}

func collectTeamNames(matches []models.Match, players, staff []models.Person) []string {
	seen := make(map[string]string)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; !ok {
			seen[key] = name
		}
	}
	for _, m := range matches {
		add(m.HomeTeam)
		add(m.AwayTeam)
	}
	for _, p := range players {
		for _, reg := range p.Registrations {
			add(reg.TeamName)
		}
	}
	for _, p := range staff {
		for _, reg := range p.Registrations {
			add(reg.TeamName)
		}
	}
	names := make([]string, 0, len(seen))
	for _, name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeStatus(s, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "complete", "completed", "finished", "final", "ft", "full time", "full-time":
		return models.StatusComplete
	case "scheduled", "upcoming", "pending", "fixture":
		return models.StatusScheduled
	case "":
		if fallback != "" {
			return fallback
		}
		return models.StatusScheduled
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}

// normalizeTeamName blanks placeholder opponents so bye slots read as
// missing team identity.
func normalizeTeamName(name string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "bye") || strings.EqualFold(name, "tbc") || strings.EqualFold(name, "tbd") {
		return ""
	}
	return name
}

func rawMinutes(raw []json.RawMessage) []int {
	var mins []int
	for _, r := range raw {
		s := rawToString(r)
		s = strings.TrimSuffix(strings.TrimSpace(s), "'")
		if s == "" {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			mins = append(mins, n)
		}
	}
	sort.Ints(mins)
	return mins
}

// rawToString reads a JSON scalar that may arrive as a string or a number.
func rawToString(r json.RawMessage) string {
	if len(r) == 0 || string(r) == "null" {
		return ""
	}
	var s string
	if err := sonic.Unmarshal(r, &s); err == nil {
		return s
	}
	var n json.Number
	if err := sonic.Unmarshal(r, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawToIntPtr reads an optional score that may arrive as a number, a
// numeric string, or null.
func rawToIntPtr(r json.RawMessage) *int {
	s := rawToString(r)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
