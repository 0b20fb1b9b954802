package models

import "time"

// Normalized match statuses. Anything the upstream export calls the match
// that isn't recognized is kept lower-cased as-is.
const (
	StatusComplete  = "complete"
	StatusScheduled = "scheduled"
)

// Event types recorded against a match participation.
const (
	EventGoal       = "goal"
	EventYellowCard = "yellow_card"
	EventRedCard    = "red_card"
)

const RolePlayer = "player"

type Registration struct {
	TeamName string
	League   string
	Jersey   string
}

type MatchEvent struct {
	Type   string
	Minute int // 0 when the export carries no minute
}

type Participation struct {
	MatchID    string
	Date       string
	Opponent   string
	HomeOrAway string
	Started    bool
	Events     []MatchEvent
}

func (p Participation) Home() bool {
	return p.HomeOrAway == "home"
}

func (p Participation) count(eventType string) int {
	n := 0
	for _, e := range p.Events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func (p Participation) minutes(eventType string) []int {
	var mins []int
	for _, e := range p.Events {
		if e.Type == eventType && e.Minute > 0 {
			mins = append(mins, e.Minute)
		}
	}
	return mins
}

func (p Participation) Goals() int           { return p.count(EventGoal) }
func (p Participation) YellowCards() int     { return p.count(EventYellowCard) }
func (p Participation) RedCards() int        { return p.count(EventRedCard) }
func (p Participation) GoalMinutes() []int   { return p.minutes(EventGoal) }
func (p Participation) YellowMinutes() []int { return p.minutes(EventYellowCard) }
func (p Participation) RedMinutes() []int    { return p.minutes(EventRedCard) }

type SeasonStats struct {
	MatchesPlayed    int
	MatchesStarted   int
	BenchAppearances int
	Goals            int
	YellowCards      int
	RedCards         int
}

type Person struct {
	ID            string
	FirstName     string
	LastName      string
	Role          string
	Registrations []Registration
	Stats         SeasonStats
	Matches       []Participation
}

func (p Person) Name() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

func (p Person) IsPlayer() bool {
	return p.Role == "" || p.Role == RolePlayer
}

// MultiRegistered reports whether the person holds two or more team
// registrations, e.g. playing U15 and filling in for U16.
func (p Person) MultiRegistered() bool {
	return len(p.Registrations) >= 2
}

// TeamName returns the primary (first) registration's team.
func (p Person) TeamName() string {
	if len(p.Registrations) == 0 {
		return ""
	}
	return p.Registrations[0].TeamName
}

func (p Person) League() string {
	if len(p.Registrations) == 0 {
		return ""
	}
	return p.Registrations[0].League
}

func (p Person) Jersey() string {
	if len(p.Registrations) == 0 {
		return ""
	}
	return p.Registrations[0].Jersey
}

type Match struct {
	ID          string
	Date        string
	LeagueName  string
	Competition string
	HomeTeam    string
	AwayTeam    string
	HomeScore   *int
	AwayScore   *int
	Status      string
	Round       string
	Venue       string
	HomeTeamID  string
	AwayTeamID  string
}

func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) IsComplete() bool {
	return m.Status == StatusComplete
}

// IsBye reports a scheduled slot with no opponent. Byes carry no statistics.
func (m Match) IsBye() bool {
	return m.HomeTeam == "" || m.AwayTeam == ""
}

type LineupPlayer struct {
	FirstName string
	LastName  string
	Number    string
	Position  string
	Starting  bool
}

func (lp LineupPlayer) Name() string {
	if lp.FirstName == "" {
		return lp.LastName
	}
	if lp.LastName == "" {
		return lp.FirstName
	}
	return lp.FirstName + " " + lp.LastName
}

type Lineup struct {
	MatchID string
	Home    []LineupPlayer
	Away    []LineupPlayer
}

// Snapshot is the fully normalized dataset the engine queries. It is
// immutable once published; a refresh builds a new one and swaps it in.
type Snapshot struct {
	Version   string
	LoadedAt  time.Time
	Players   []Person
	Staff     []Person
	Results   []Match
	Fixtures  []Match
	Matches   []Match // Results and Fixtures merged by match id; result fields win
	Lineups   []Lineup
	TeamNames []string
}

// People returns players and staff as one collection, players first.
func (s *Snapshot) People() []Person {
	people := make([]Person, 0, len(s.Players)+len(s.Staff))
	people = append(people, s.Players...)
	people = append(people, s.Staff...)
	return people
}

func (s *Snapshot) LineupFor(matchID string) (Lineup, bool) {
	for _, l := range s.Lineups {
		if l.MatchID == matchID {
			return l, true
		}
	}
	return Lineup{}, false
}
