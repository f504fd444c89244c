// Package report turns a scoreboard snapshot plus the current averages
// into the rendered console report. A Report is an immutable value
// rebuilt from scratch every poll cycle.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dantezy/halftime-watch/internal/espn"
	"github.com/dantezy/halftime-watch/internal/perf"
	"github.com/dantezy/halftime-watch/internal/teamrankings"
	"github.com/dantezy/halftime-watch/internal/teams"
)

var (
	emphasisStyle = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	ruleStyle     = lipgloss.NewStyle().Faint(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

// HalfRatings pairs the away and home ratings for one half.
type HalfRatings struct {
	Away perf.Rating
	Home perf.Rating
}

// Emphasized reports whether this half deserves highlighting: both
// teams carry the same signal rating, i.e. both hot or both cold.
func (h HalfRatings) Emphasized() bool {
	return h.Away.Signal() && h.Away == h.Home
}

// GameLine is one report row, fully computed and ready to print.
type GameLine struct {
	GameID         string
	Away           string
	Home           string
	AwayHalftime   float64
	HomeHalftime   float64
	AwaySecondHalf float64
	HomeSecondHalf float64
	First          HalfRatings
	Second         HalfRatings
	Final          bool
	Status         string
}

// Emphasized reports whether any rendered half of this line qualifies
// for emphasis.
func (l GameLine) Emphasized() bool {
	if l.First.Emphasized() {
		return true
	}
	return l.Final && l.Second.Emphasized()
}

// String renders the line without styling. Live games show the halftime
// score and first-half rating; finals show both halves.
func (l GameLine) String() string {
	if l.Final {
		return fmt.Sprintf("%s %s/%s %s/%s @ %s %s/%s %s/%s - %s",
			l.Away, formatScore(l.AwayHalftime), formatScore(l.AwaySecondHalf),
			l.First.Away.Glyph(), l.Second.Away.Glyph(),
			l.Home, formatScore(l.HomeHalftime), formatScore(l.HomeSecondHalf),
			l.First.Home.Glyph(), l.Second.Home.Glyph(),
			l.Status)
	}
	return fmt.Sprintf("%s %s %s @ %s %s %s - %s",
		l.Away, formatScore(l.AwayHalftime), l.First.Away.Glyph(),
		l.Home, formatScore(l.HomeHalftime), l.First.Home.Glyph(),
		l.Status)
}

// Report is one tick's rendered state: live games first, then finals.
type Report struct {
	Live        []GameLine
	Completed   []GameLine
	GeneratedAt time.Time
}

// Build computes a report from a scoreboard snapshot and the current
// averages. Games that have not yet produced a halftime score are
// omitted. Pure: it touches nothing outside its arguments.
func Build(games []espn.Game, avgs teamrankings.Averages, threshold float64) Report {
	rep := Report{GeneratedAt: time.Now()}

	for _, game := range games {
		awayHalf, awayOK := game.AwayTeam.HalftimeScore()
		homeHalf, homeOK := game.HomeTeam.HalftimeScore()
		if !awayOK || !homeOK {
			continue
		}

		line := GameLine{
			GameID:       game.ID,
			Away:         game.AwayTeam.Name,
			Home:         game.HomeTeam.Name,
			AwayHalftime: awayHalf,
			HomeHalftime: homeHalf,
			Status:       game.StatusDetail,
			First: HalfRatings{
				Away: rateHalf(game.AwayTeam, awayHalf, avgs.FirstHalf, threshold),
				Home: rateHalf(game.HomeTeam, homeHalf, avgs.FirstHalf, threshold),
			},
		}

		if game.Status == espn.StatusFinal {
			line.Final = true
			line.Status = "FINAL"
			line.AwaySecondHalf = game.AwayTeam.Score - awayHalf
			line.HomeSecondHalf = game.HomeTeam.Score - homeHalf
			line.Second = HalfRatings{
				Away: rateHalf(game.AwayTeam, line.AwaySecondHalf, avgs.SecondHalf, threshold),
				Home: rateHalf(game.HomeTeam, line.HomeSecondHalf, avgs.SecondHalf, threshold),
			}
			rep.Completed = append(rep.Completed, line)
		} else {
			rep.Live = append(rep.Live, line)
		}
	}

	return rep
}

// rateHalf resolves a team against the averages map and classifies its
// half score. Any resolution or lookup miss is NoData, never an error.
func rateHalf(team espn.Team, actual float64, averages map[string]float64, threshold float64) perf.Rating {
	label, ok := teams.ResolveID(team.ID)
	if !ok {
		label, ok = teams.Resolve(team.Name)
	}
	if !ok {
		return perf.NoData
	}
	average, ok := averages[label]
	if !ok {
		return perf.NoData
	}
	return perf.ClassifyThreshold(actual, average, threshold)
}

// Render produces the full console report, emphasized lines in bold.
func (r Report) Render() string {
	var b strings.Builder

	if len(r.Live) > 0 {
		b.WriteString(headerStyle.Render("NBA Live Games (Halftime Scores)"))
		b.WriteString("\n")
		b.WriteString(ruleStyle.Render(strings.Repeat("-", 50)))
		b.WriteString("\n")
		for _, line := range r.Live {
			b.WriteString(renderLine(line))
			b.WriteString("\n")
		}
	}

	if len(r.Completed) > 0 {
		if len(r.Live) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headerStyle.Render("Completed Games (Halftime Scores)"))
		b.WriteString("\n")
		b.WriteString(ruleStyle.Render(strings.Repeat("-", 50)))
		b.WriteString("\n")
		for _, line := range r.Completed {
			b.WriteString(renderLine(line))
			b.WriteString("\n")
		}
	}

	if len(r.Live) == 0 && len(r.Completed) == 0 {
		b.WriteString("No NBA games with halftime scores available\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Last updated: " + r.GeneratedAt.Format("03:04:05 PM")))
	b.WriteString("\n")

	return b.String()
}

func renderLine(l GameLine) string {
	s := l.String()
	if l.Emphasized() {
		return emphasisStyle.Render(s)
	}
	return s
}

// formatScore prints whole scores without a trailing ".0" but keeps a
// fraction if one somehow appears in the feed.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
