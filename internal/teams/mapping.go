// Package teams maps team identities between the two upstream sources.
// ESPN identifies teams by numeric ID and nickname ("Celtics"), while
// teamrankings.com labels its stat rows by city ("Boston"). Both tables
// are keyed off the ESPN nickname as the stable identifier.
package teams

import (
	"fmt"
	"sort"
	"strings"
)

// nicknameToRankings maps ESPN team nicknames to the row labels
// teamrankings.com uses on its NBA stat pages.
var nicknameToRankings = map[string]string{
	"Hawks":         "Atlanta",
	"Celtics":       "Boston",
	"Nets":          "Brooklyn",
	"Hornets":       "Charlotte",
	"Bulls":         "Chicago",
	"Cavaliers":     "Cleveland",
	"Mavericks":     "Dallas",
	"Nuggets":       "Denver",
	"Pistons":       "Detroit",
	"Warriors":      "Golden State",
	"Rockets":       "Houston",
	"Pacers":        "Indiana",
	"Clippers":      "LA Clippers",
	"Lakers":        "LA Lakers",
	"Grizzlies":     "Memphis",
	"Heat":          "Miami",
	"Bucks":         "Milwaukee",
	"Timberwolves":  "Minnesota",
	"Pelicans":      "New Orleans",
	"Knicks":        "New York",
	"Thunder":       "Okla City",
	"Magic":         "Orlando",
	"76ers":         "Philadelphia",
	"Suns":          "Phoenix",
	"Trail Blazers": "Portland",
	"Kings":         "Sacramento",
	"Spurs":         "San Antonio",
	"Raptors":       "Toronto",
	"Jazz":          "Utah",
	"Wizards":       "Washington",
}

// idToNickname maps ESPN numeric team IDs to nicknames.
var idToNickname = map[string]string{
	"1":  "Hawks",
	"2":  "Celtics",
	"3":  "Nets",
	"4":  "Hornets",
	"5":  "Bulls",
	"6":  "Cavaliers",
	"7":  "Mavericks",
	"8":  "Nuggets",
	"9":  "Pistons",
	"10": "Warriors",
	"11": "Rockets",
	"12": "Pacers",
	"13": "Clippers",
	"14": "Lakers",
	"15": "Grizzlies",
	"16": "Heat",
	"17": "Bucks",
	"18": "Timberwolves",
	"19": "Pelicans",
	"20": "Knicks",
	"21": "Thunder",
	"22": "Magic",
	"23": "76ers",
	"24": "Suns",
	"25": "Trail Blazers",
	"26": "Kings",
	"27": "Spurs",
	"28": "Raptors",
	"29": "Jazz",
	"30": "Wizards",
}

// Resolve returns the teamrankings label for an ESPN team name. Exact
// nickname matches win; otherwise any name containing a known nickname
// resolves, which covers full display names like "Boston Celtics".
func Resolve(espnName string) (string, bool) {
	if label, ok := nicknameToRankings[espnName]; ok {
		return label, true
	}
	lower := strings.ToLower(espnName)
	for nickname, label := range nicknameToRankings {
		if strings.Contains(lower, strings.ToLower(nickname)) {
			return label, true
		}
	}
	return "", false
}

// ResolveID returns the teamrankings label for an ESPN numeric team ID.
func ResolveID(id string) (string, bool) {
	nickname, ok := idToNickname[id]
	if !ok {
		return "", false
	}
	label, ok := nicknameToRankings[nickname]
	return label, ok
}

// Nicknames returns every known ESPN nickname, sorted.
func Nicknames() []string {
	names := make([]string, 0, len(nicknameToRankings))
	for name := range nicknameToRankings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a fetched averages map against the alias table and
// reports the teams whose label is missing from it. Used at startup so
// a rename on either source surfaces immediately instead of as a sea
// of NoData glyphs.
func Validate(averages map[string]float64) error {
	var missing []string
	for _, label := range nicknameToRankings {
		if _, ok := averages[label]; !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("averages missing %d of %d teams: %s",
		len(missing), len(nicknameToRankings), strings.Join(missing, ", "))
}
