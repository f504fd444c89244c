package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultScoreboardURL is ESPN's free NBA scoreboard endpoint for today's games.
const DefaultScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba/scoreboard"

// ESPN serves the scoreboard fine to browser agents; keep one to be safe.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client fetches live NBA data from ESPN's scoreboard API.
type Client struct {
	httpClient    *http.Client
	scoreboardURL string
}

// NewClient creates an ESPN scoreboard client. An empty url selects the
// default endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultScoreboardURL
	}
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		scoreboardURL: url,
	}
}

// Game represents one game on today's scoreboard.
type Game struct {
	ID           string
	Name         string
	ShortName    string
	HomeTeam     Team
	AwayTeam     Team
	Status       GameStatus
	StatusDetail string // e.g. "Halftime", "End of 3rd Quarter", "Final"
	Period       int
	StartTime    time.Time
}

// Team represents one side of a game, including per-period scoring.
type Team struct {
	ID           string
	Name         string // ESPN nickname, e.g. "Celtics"
	DisplayName  string // e.g. "Boston Celtics"
	Abbreviation string
	Score        float64
	Linescores   []float64 // points per period, in order
}

// GameStatus represents the current status of a game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
	StatusDelayed    GameStatus = "delayed"
	StatusPostponed  GameStatus = "postponed"
)

// HalftimeScore returns the team's first-half points. It reports false
// until both first-half periods have a linescore entry.
func (t Team) HalftimeScore() (float64, bool) {
	if len(t.Linescores) < 2 {
		return 0, false
	}
	return t.Linescores[0] + t.Linescores[1], true
}

// SecondHalfScore returns the team's points after halftime, overtime
// included. Only meaningful once the game is final.
func (t Team) SecondHalfScore() (float64, bool) {
	halftime, ok := t.HalftimeScore()
	if !ok {
		return 0, false
	}
	return t.Score - halftime, true
}

// Scoreboard fetches today's games. Network failures, non-2xx statuses
// and undecodable bodies return an error; individual events that fail
// shape checks are skipped.
func (c *Client) Scoreboard(ctx context.Context) ([]Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.scoreboardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoreboard request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ESPN scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESPN API returned status %d", resp.StatusCode)
	}

	var data espnResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse ESPN response: %w", err)
	}

	games := make([]Game, 0, len(data.Events))
	for _, event := range data.Events {
		game, err := parseEvent(event)
		if err != nil {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

func parseEvent(event espnEvent) (Game, error) {
	if len(event.Competitions) == 0 {
		return Game{}, fmt.Errorf("no competitions in event")
	}

	comp := event.Competitions[0]
	if len(comp.Competitors) < 2 {
		return Game{}, fmt.Errorf("not enough competitors")
	}

	game := Game{
		ID:           event.ID,
		Name:         event.Name,
		ShortName:    event.ShortName,
		Status:       parseStatus(event.Status.Type.Name),
		StatusDetail: event.Status.Type.Detail,
		Period:       event.Status.Period,
	}

	if t, err := time.Parse(time.RFC3339, event.Date); err == nil {
		game.StartTime = t
	}

	for _, c := range comp.Competitors {
		team := Team{
			ID:           c.Team.ID,
			Name:         c.Team.Name,
			DisplayName:  c.Team.DisplayName,
			Abbreviation: c.Team.Abbreviation,
			Score:        parseScore(c.Score),
		}
		for _, ls := range c.Linescores {
			team.Linescores = append(team.Linescores, ls.Value)
		}

		if c.HomeAway == "home" {
			game.HomeTeam = team
		} else {
			game.AwayTeam = team
		}
	}

	return game, nil
}

func parseStatus(status string) GameStatus {
	status = strings.ToLower(status)
	switch {
	case strings.Contains(status, "final"):
		return StatusFinal
	case strings.Contains(status, "progress"), strings.Contains(status, "halftime"):
		return StatusInProgress
	case strings.Contains(status, "scheduled"), strings.Contains(status, "pre"):
		return StatusScheduled
	case strings.Contains(status, "delayed"):
		return StatusDelayed
	case strings.Contains(status, "postponed"):
		return StatusPostponed
	default:
		return StatusScheduled
	}
}

func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ESPN API response types
type espnResponse struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ShortName    string            `json:"shortName"`
	Date         string            `json:"date"`
	Status       espnStatus        `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnStatus struct {
	Type   espnStatusType `json:"type"`
	Period int            `json:"period"`
}

type espnStatusType struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Detail string `json:"detail"`
}

type espnCompetition struct {
	Competitors []espnCompetitor `json:"competitors"`
}

type espnCompetitor struct {
	Team       espnTeam        `json:"team"`
	Score      string          `json:"score"`
	HomeAway   string          `json:"homeAway"`
	Linescores []espnLinescore `json:"linescores"`
}

type espnLinescore struct {
	Value float64 `json:"value"`
}

type espnTeam struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}
