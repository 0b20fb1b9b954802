package league

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Scorer rates the similarity of two strings from 0 to 100. The resolver's
// fuzzy step takes any Scorer, so the algorithm can change without touching
// the precedence chain.
type Scorer func(a, b string) int

// LevenshteinScorer is the default similarity measure.
func LevenshteinScorer(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 100
	}
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	similarity := 1 - float64(distance)/float64(maxLen)
	return int(similarity * 100)
}

const fuzzyThreshold = 75

var (
	ageGroupRE      = regexp.MustCompile(`(?i)\bu(\d{2})\b`)
	bareAgeRE       = regexp.MustCompile(`(?i)^u\d{2}$`)
	trailingAgeRE   = regexp.MustCompile(`(?i)\s*\bu\d{2}\b\s*$`)
	teamAgeSuffixRE = regexp.MustCompile(`\s+U\d{2}$`)
	spaceRE         = regexp.MustCompile(`\s+`)

	// Stat and role keywords that never belong to a team name.
	queryStopWords = regexp.MustCompile(`(?i)\b(top|scorers?|leading|yellow|red|cards?|in|for|of|details?|show|list|with|non|players?|staff|coach|coaches?|manager|managers|team|teams|stats?|me|get|find|about|profile|the|all)\b`)
)

// ExtractAgeGroup pulls the first age-group token out of free text,
// normalized to the form "U16".
func ExtractAgeGroup(text string) string {
	m := ageGroupRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return "U" + m[1]
}

// BaseClubName strips a trailing age-group token from a team name,
// "Heidelberg United FC U16" -> "Heidelberg United FC".
func BaseClubName(team string) string {
	return strings.TrimSpace(teamAgeSuffixRE.ReplaceAllString(team, ""))
}

// CleanQuery strips the stop-word vocabulary and collapses whitespace,
// leaving the residue that may name a team, club or person.
func CleanQuery(text string) string {
	clean := queryStopWords.ReplaceAllString(text, " ")
	return strings.TrimSpace(spaceRE.ReplaceAllString(clean, " "))
}

// Resolver maps free-text team and club mentions to canonical names using
// the alias table, the known team set, and a fuzzy fallback.
type Resolver struct {
	aliases   map[string]string
	teams     []string
	scorer    Scorer
	threshold int
}

// NewResolver builds a resolver over the known team set. A nil scorer gets
// the Levenshtein default.
func NewResolver(aliases map[string]string, teams []string, scorer Scorer) *Resolver {
	if scorer == nil {
		scorer = LevenshteinScorer
	}
	return &Resolver{aliases: aliases, teams: teams, scorer: scorer, threshold: fuzzyThreshold}
}

// ResolveClub maps free text to a canonical club via the alias table: exact
// key match first, then the longest alias key contained in the text.
func (r *Resolver) ResolveClub(text string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(text))
	if club, ok := r.aliases[q]; ok {
		return club, true
	}
	bestKey, bestClub := "", ""
	for alias, canonical := range r.aliases {
		if !strings.Contains(q, alias) {
			continue
		}
		if len(alias) > len(bestKey) || (len(alias) == len(bestKey) && alias < bestKey) {
			bestKey, bestClub = alias, canonical
		}
	}
	if bestKey == "" {
		return "", false
	}
	return bestClub, true
}

// Resolve maps free text to a canonical team name. Precedence, first hit
// wins: the alias table (with the query rebuilt as "<club> <age>" when an
// age token is present), exact match against the known team set, substring
// containment (shortest team when several contain the text, longest when
// the text contains several teams), then fuzzy similarity at the threshold.
func (r *Resolver) Resolve(text string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return "", false
	}
	if club, ok := r.ResolveClub(q); ok {
		if age := ExtractAgeGroup(q); age != "" {
			q = strings.ToLower(club + " " + age)
		} else {
			q = strings.ToLower(club)
		}
	}
	if team, ok := r.matchKnownTeam(q); ok {
		return team, true
	}
	return r.fuzzyTeam(q)
}

// IsKnownTeam reports whether name appears in the team set as-is.
func (r *Resolver) IsKnownTeam(name string) bool {
	for _, team := range r.teams {
		if strings.EqualFold(team, name) {
			return true
		}
	}
	return false
}

// ExtractExactTeam pulls a fully qualified team name out of query text.
// The residue after stop-word stripping must map onto a known team; a bare
// age-group token is never a team.
func (r *Resolver) ExtractExactTeam(text string) string {
	clean := CleanQuery(text)
	if clean == "" || bareAgeRE.MatchString(clean) {
		return ""
	}
	for _, team := range r.teams {
		if strings.EqualFold(clean, team) {
			return team
		}
	}
	if team, ok := r.Resolve(clean); ok && r.IsKnownTeam(team) {
		return team
	}
	return ""
}

// ExtractBaseClub pulls a club name (no age group) out of query text.
func (r *Resolver) ExtractBaseClub(text string) string {
	clean := CleanQuery(text)
	clean = strings.TrimSpace(trailingAgeRE.ReplaceAllString(clean, ""))
	if clean == "" {
		return ""
	}
	if club, ok := r.ResolveClub(clean); ok {
		return club
	}
	// Teams containing the residue that all share one base name resolve to
	// that club; otherwise the most similar base name wins.
	lower := strings.ToLower(clean)
	var bases []string
	seen := make(map[string]struct{})
	for _, team := range r.teams {
		if !strings.Contains(strings.ToLower(team), lower) {
			continue
		}
		base := BaseClubName(team)
		if _, ok := seen[base]; !ok {
			seen[base] = struct{}{}
			bases = append(bases, base)
		}
	}
	if len(bases) == 1 {
		return bases[0]
	}
	if len(bases) > 1 {
		if ranked := RankBySimilarity(r.scorer, clean, bases, 1, 60); len(ranked) > 0 {
			return ranked[0].Name
		}
	}
	if team, ok := r.Resolve(clean); ok {
		return BaseClubName(team)
	}
	return ""
}

// BuildFilter composes the structured filter for residual query text.
func (r *Resolver) BuildFilter(text string) Filter {
	return Filter{
		ExactTeam: r.ExtractExactTeam(text),
		Club:      r.ExtractBaseClub(text),
		AgeGroup:  ExtractAgeGroup(text),
		League:    CodeFromQuery(text),
	}
}

func (r *Resolver) matchKnownTeam(q string) (string, bool) {
	var contains []string
	for _, team := range r.teams {
		lower := strings.ToLower(team)
		if lower == q {
			return team, true
		}
		if strings.Contains(lower, q) {
			contains = append(contains, team)
		}
	}
	if len(contains) > 0 {
		// Shortest containing team is the most specific.
		sort.Slice(contains, func(i, j int) bool {
			if len(contains[i]) != len(contains[j]) {
				return len(contains[i]) < len(contains[j])
			}
			return contains[i] < contains[j]
		})
		return contains[0], true
	}
	var contained []string
	for _, team := range r.teams {
		if strings.Contains(q, strings.ToLower(team)) {
			contained = append(contained, team)
		}
	}
	if len(contained) > 0 {
		// Longest contained team is the most specific.
		sort.Slice(contained, func(i, j int) bool {
			if len(contained[i]) != len(contained[j]) {
				return len(contained[i]) > len(contained[j])
			}
			return contained[i] < contained[j]
		})
		return contained[0], true
	}
	return "", false
}

func (r *Resolver) fuzzyTeam(q string) (string, bool) {
	best, bestScore := "", 0
	for _, team := range r.teams {
		if score := r.scorer(q, team); score > bestScore {
			best, bestScore = team, score
		}
	}
	if bestScore >= r.threshold {
		return best, true
	}
	return "", false
}

// Ranked is a candidate with its similarity score, for suggestion lists.
type Ranked struct {
	Name  string
	Score int
}

// RankBySimilarity orders candidates by similarity to the query, best
// first, dropping anything under minScore and capping at limit.
func RankBySimilarity(scorer Scorer, query string, candidates []string, limit, minScore int) []Ranked {
	if scorer == nil {
		scorer = LevenshteinScorer
	}
	var ranked []Ranked
	for _, c := range candidates {
		if score := scorer(query, c); score >= minScore {
			ranked = append(ranked, Ranked{Name: c, Score: score})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
