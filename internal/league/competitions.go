package league

import "strings"

var knownCompetitions = []string{"YPL1", "YPL2", "YSL NW", "YSL SE", "VPL Men", "VPL Women"}

// KnownCompetitions lists the recognized competition codes in display order.
func KnownCompetitions() []string {
	out := make([]string, len(knownCompetitions))
	copy(out, knownCompetitions)
	return out
}

// competitionTokens maps the spellings seen in queries to codes. More
// specific tokens come first so "ypl 1" wins before a looser prefix could.
var competitionTokens = []struct {
	token string
	code  string
}{
	{"ypl 1", "YPL1"},
	{"ypl1", "YPL1"},
	{"ypl 2", "YPL2"},
	{"ypl2", "YPL2"},
	{"ysl north west", "YSL NW"},
	{"ysl north-west", "YSL NW"},
	{"ysl nw", "YSL NW"},
	{"ysl south east", "YSL SE"},
	{"ysl south-east", "YSL SE"},
	{"ysl se", "YSL SE"},
	{"vpl women", "VPL Women"},
	{"vpl men", "VPL Men"},
}

// CodeFromQuery finds a competition code mentioned in free text, or "".
func CodeFromQuery(text string) string {
	q := strings.ToLower(text)
	for _, t := range competitionTokens {
		if strings.Contains(q, t.token) {
			return t.code
		}
	}
	return ""
}

// IsBareCode reports whether the text is nothing but a competition code,
// e.g. "ypl1" or "ysl nw" on its own.
func IsBareCode(text string) bool {
	q := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if q == "" {
		return false
	}
	for _, t := range competitionTokens {
		if q == t.token {
			return true
		}
	}
	for _, code := range knownCompetitions {
		if q == strings.ToLower(code) {
			return true
		}
	}
	return false
}

// CodeFromLeagueName classifies a full league label into a competition
// code, falling back to "Other" for labels outside the known set.
func CodeFromLeagueName(league string) string {
	if league == "" {
		return "Other"
	}
	l := strings.ToLower(league)
	switch {
	case strings.Contains(l, "ypl1") || strings.Contains(l, "ypl 1"):
		return "YPL1"
	case strings.Contains(l, "ypl2") || strings.Contains(l, "ypl 2"):
		return "YPL2"
	case strings.Contains(l, "ysl") && (strings.Contains(l, "north-west") || strings.Contains(l, "north west") || strings.Contains(l, "nw")):
		return "YSL NW"
	case strings.Contains(l, "ysl") && (strings.Contains(l, "south-east") || strings.Contains(l, "south east") || strings.Contains(l, "se")):
		return "YSL SE"
	case strings.Contains(l, "vpl men"):
		return "VPL Men"
	case strings.Contains(l, "vpl women"):
		return "VPL Women"
	case strings.Contains(l, "ysl"):
		return "YSL"
	}
	return "Other"
}

// CompetitionOf builds the age-qualified competition label a ladder groups
// by, e.g. "U16 YPL1". Labels outside the known set pass through unchanged.
func CompetitionOf(league string) string {
	code := CodeFromLeagueName(league)
	if code == "Other" {
		return league
	}
	if age := ExtractAgeGroup(league); age != "" {
		return age + " " + code
	}
	return code
}
