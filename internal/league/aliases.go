package league

// DefaultAliases maps the club-name variations people actually type to
// canonical club names. Values are clubs only, never age-qualified teams;
// the resolver appends the age token when the query carries one.
var DefaultAliases = map[string]string{
	"heidelberg":           "Heidelberg United FC",
	"heidelberg united":    "Heidelberg United FC",
	"heidelberg utd":       "Heidelberg United FC",
	"heidelberg fc":        "Heidelberg United FC",
	"heidelberg united fc": "Heidelberg United FC",
	"bergers":              "Heidelberg United FC",
	"heid":                 "Heidelberg United FC",

	"brunswick":          "Brunswick Juventus FC",
	"brunswick juventus": "Brunswick Juventus FC",
	"brunswick juve":     "Brunswick Juventus FC",
	"juve":               "Brunswick Juventus FC",
	"brunswick fc":       "Brunswick Juventus FC",

	"essendon":        "Essendon Royals SC",
	"essendon royals": "Essendon Royals SC",
	"royals":          "Essendon Royals SC",
	"essendon sc":     "Essendon Royals SC",

	"avondale":    "Avondale FC",
	"avondale fc": "Avondale FC",

	"altona":       "Altona Magic SC",
	"altona magic": "Altona Magic SC",
	"magic":        "Altona Magic SC",
	"altona sc":    "Altona Magic SC",

	"box hill":        "Box Hill United SC",
	"box hill united": "Box Hill United SC",
	"boxhill":         "Box Hill United SC",

	"manningham":        "Manningham United Blues FC",
	"manningham united": "Manningham United Blues FC",
	"manningham blues":  "Manningham United Blues FC",
	"blues":             "Manningham United Blues FC",

	"bulleen":       "FC Bulleen Lions",
	"bulleen lions": "FC Bulleen Lions",
	"fc bulleen":    "FC Bulleen Lions",
	"lions":         "FC Bulleen Lions",

	"bentleigh":        "Bentleigh Greens SC",
	"bentleigh greens": "Bentleigh Greens SC",
	"greens":           "Bentleigh Greens SC",

	"hume":         "Hume City FC",
	"hume city":    "Hume City FC",
	"hume city fc": "Hume City FC",
}
