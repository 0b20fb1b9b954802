package service

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
)

// Trigger vocabularies overlap ("coach yellow cards" mentions both cards and
// staff), so routing is an ordered rule table: the first rule whose predicate
// matches wins, and earlier rules deliberately shadow later ones. Each rule
// strips its own trigger words before handing the residue to its handler, so
// the handler sees only the team/club/age/competition part of the query.
var (
	spaceRE = regexp.MustCompile(`\s+`)

	dualCleanRE     = regexp.MustCompile(`\b(dual|multi|multiple|registrations?|registered|playing|players?|people|clubs?|teams?|two|2|more|than|one|both|list|show|me|who|is|are|for|with|at)\b`)
	missingCleanRE  = regexp.MustCompile(`\b(missing|scores?|no|not|entered|overdue|matches?|without|results?|unrecorded|show|list|me|all|any)\b`)
	todayCleanRE    = regexp.MustCompile(`\b(today'?s?|results?|scores?|scored|goals?|who|lost|losers?|losing|teams?|which|from|show|me|list)\b`)
	fixturesCleanRE = regexp.MustCompile(`\b(next|match|matches|game|games|upcoming|when|where|do|i|play|my|our|schedule|fixtures?|is)\b`)
	cardsCleanRE    = regexp.MustCompile(`\b(yellow|red|cards?|yellows|reds|details?|detailed|show|list|with|for|me|all)\b`)
	staffCleanRE    = regexp.MustCompile(`\b(non|players?|staff|coach|coaches|managers?|for|all|show|list|with|get|me)\b`)
	scorersCleanRE  = regexp.MustCompile(`\b(top|scorers?|leading|golden|boot|goals?|in|for|of|show|me|list|the)\b`)
	statsCleanRE    = regexp.MustCompile(`\b(stats?|statistics|for|team|show|me|get|find|details?|detailed|profile|about|the|of)\b`)
	lineupCleanRE   = regexp.MustCompile(`\b(lineups?|starting|xi|eleven|who|is|for|show|me|the)\b`)
	formCleanRE     = regexp.MustCompile(`\b(form|recent|last|five|5|results?|show|me|for|the|how|doing)\b`)
	overviewCleanRE = regexp.MustCompile(`\b(team|overview|of|show|me|the)\b`)

	tableWordRE = regexp.MustCompile(`\btable\b`)
	formWordRE  = regexp.MustCompile(`\bform\b`)
	teamWordRE  = regexp.MustCompile(`\bteam\b`)
)

func cleanup(re *regexp.Regexp, q string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(re.ReplaceAllString(q, " "), " "))
}

func containsAny(q string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

type route struct {
	name   string
	match  func(q string) bool
	handle func(q string) (*models.Answer, error)
}

// Router turns free-text queries into answers via the ordered rule table.
type Router struct {
	routes []route
	log    *slog.Logger
}

func NewRouter(svc *StatsService, log *slog.Logger) *Router {
	staffWords := []string{"non player", "non-player", "nonplayer", "coach", "staff", "manager"}
	isStaffQuery := func(q string) bool { return containsAny(q, staffWords...) }
	isDetail := func(q string) bool { return strings.Contains(q, "detail") }

	routes := []route{
		{
			name: "dual_registrations",
			match: func(q string) bool {
				return containsAny(q,
					"dual registration", "dual registrations", "dual registered", "dual-registered",
					"multi registration", "multiple registrations", "playing for 2", "playing for two",
					"2 clubs", "two clubs", "more than one team", "more than one club",
					"multiple teams", "multiple clubs", "both clubs")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.DualRegistrations(cleanup(dualCleanRE, q))
			},
		},
		{
			name: "missing_scores",
			match: func(q string) bool {
				return containsAny(q,
					"missing score", "missing scores", "no score", "no scores",
					"score not entered", "scores not entered", "not entered",
					"overdue", "without scores", "without a score", "unrecorded")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.MissingScores(cleanup(missingCleanRE, q))
			},
		},
		{
			name: "todays_results",
			match: func(q string) bool {
				return containsAny(q,
					"today's results", "todays results", "results today",
					"today's scores", "todays scores", "scores from today", "scores today")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.TodaysResults(cleanup(todayCleanRE, q))
			},
		},
		{
			name: "todays_scorers",
			match: func(q string) bool {
				return containsAny(q,
					"today's scorers", "todays scorers", "who scored today", "scored today",
					"goals today", "today's goals", "todays goals")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.TodaysScorers(cleanup(todayCleanRE, q))
			},
		},
		{
			name: "todays_losers",
			match: func(q string) bool {
				return containsAny(q,
					"who lost today", "lost today", "today's losers", "todays losers",
					"losing teams today", "which teams lost")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.TodaysLosers(cleanup(todayCleanRE, q))
			},
		},
		{
			name: "competition_overview",
			match: func(q string) bool {
				if containsAny(q, "competition overview", "competition standings", "club rankings", "overall standings") {
					return true
				}
				if league.IsBareCode(q) {
					return true
				}
				return league.CodeFromQuery(q) != "" &&
					containsAny(q, "overview", "standings", "rankings", "ranking", "competition")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.CompetitionOverview(q)
			},
		},
		{
			name: "fixtures",
			match: func(q string) bool {
				return containsAny(q,
					"next match", "next game", "upcoming", "when do i play", "where do i play",
					"my next", "schedule", "fixture", "fixtures", "when is my", "where is my", "our next")
			},
			handle: func(q string) (*models.Answer, error) {
				personal := containsAny(q,
					"my next", "when do i play", "where do i play", "my schedule",
					"when is my", "where is my", "our next")
				limit := 10
				if personal {
					limit = 5
				}
				return svc.Fixtures(cleanup(fixturesCleanRE, q), limit, personal)
			},
		},
		{
			name: "yellow_cards",
			match: func(q string) bool {
				return containsAny(q, "yellow card", "yellow cards", "yellows")
			},
			handle: func(q string) (*models.Answer, error) {
				clean := cleanup(cardsCleanRE, q)
				if isStaffQuery(q) {
					clean = cleanup(staffCleanRE, clean)
				}
				return svc.YellowCards(clean, isDetail(q), isStaffQuery(q))
			},
		},
		{
			name: "red_cards",
			match: func(q string) bool {
				return containsAny(q, "red card", "red cards", "reds")
			},
			handle: func(q string) (*models.Answer, error) {
				clean := cleanup(cardsCleanRE, q)
				if isStaffQuery(q) {
					clean = cleanup(staffCleanRE, clean)
				}
				return svc.RedCards(clean, isDetail(q), isStaffQuery(q))
			},
		},
		{
			name:  "staff",
			match: isStaffQuery,
			handle: func(q string) (*models.Answer, error) {
				return svc.Staff(cleanup(staffCleanRE, q))
			},
		},
		{
			name: "top_scorers",
			match: func(q string) bool {
				return containsAny(q, "top scorer", "top scorers", "leading scorer", "golden boot")
			},
			handle: func(q string) (*models.Answer, error) {
				clean := cleanup(scorersCleanRE, q)
				if clean == "" && svc.identity.Team != "" {
					clean = strings.ToLower(svc.identity.Team)
				}
				return svc.TopScorers(clean)
			},
		},
		{
			name: "stats",
			match: func(q string) bool {
				return containsAny(q, "stats for", "team stats", "show me", "details for", "profile")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.StatsOrProfile(cleanup(statsCleanRE, q), isDetail(q))
			},
		},
		{
			name: "ladder",
			match: func(q string) bool {
				return containsAny(q, "ladder", "standings") || tableWordRE.MatchString(q)
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.Ladder(q)
			},
		},
		{
			name: "lineups",
			match: func(q string) bool {
				return containsAny(q, "lineup", "starting")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.Lineups(cleanup(lineupCleanRE, q))
			},
		},
		{
			name: "match_centre",
			match: func(q string) bool {
				return strings.Contains(q, " vs ") || strings.Contains(q, " v ")
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.MatchCentre(q)
			},
		},
		{
			name:  "form",
			match: formWordRE.MatchString,
			handle: func(q string) (*models.Answer, error) {
				return svc.Form(cleanup(formCleanRE, q))
			},
		},
		{
			name: "team_overview",
			match: func(q string) bool {
				return strings.Contains(q, "overview") || teamWordRE.MatchString(q)
			},
			handle: func(q string) (*models.Answer, error) {
				return svc.TeamOverview(cleanup(overviewCleanRE, q))
			},
		},
		{
			name:  "fallback",
			match: func(string) bool { return true },
			handle: func(q string) (*models.Answer, error) {
				return svc.Fallback(q)
			},
		},
	}

	return &Router{routes: routes, log: log}
}

// Process routes one free-text query to the first matching rule and returns
// the answer along with the winning rule's name.
func (r *Router) Process(query string) (*models.Answer, string) {
	q := strings.ToLower(strings.TrimSpace(spaceRE.ReplaceAllString(query, " ")))
	if q == "" {
		return models.NewErrorAnswer("🤔 Ask me something - try 'YPL1 ladder', 'top scorers u16', or 'missing scores'"), "empty"
	}

	for _, rt := range r.routes {
		if !rt.match(q) {
			continue
		}
		answer, err := rt.handle(q)
		if err != nil {
			if errors.Is(err, ErrNoSnapshot) {
				return models.NewErrorAnswer("⏳ Stats are still loading - try again in a minute"), rt.name
			}
			r.log.Error("Error answering query", "rule", rt.name, "error", err)
			return models.NewErrorAnswer("⚠️ Something went wrong answering that one"), rt.name
		}
		return answer, rt.name
	}
	return models.NewErrorAnswer("🤔 I didn't understand that one"), "unmatched"
}
