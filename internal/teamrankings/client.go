// Package teamrankings scrapes NBA per-half scoring averages from
// teamrankings.com stat pages.
package teamrankings

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the teamrankings.com site root.
const DefaultBaseURL = "https://www.teamrankings.com"

const (
	firstHalfPath  = "/nba/stat/1st-half-points-per-game"
	secondHalfPath = "/nba/stat/2nd-half-points-per-game"
)

// teamrankings serves an empty shell to non-browser agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client scrapes per-half points-per-game tables.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a scraper client. An empty baseURL selects the live site.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Averages holds both per-half averages maps, keyed by teamrankings team
// label. It is passed around by value and replaced wholesale on refresh.
type Averages struct {
	FirstHalf  map[string]float64
	SecondHalf map[string]float64
	FetchedAt  time.Time
}

// Stale reports whether the averages are due for a refresh.
func (a Averages) Stale(ttl time.Duration) bool {
	return a.FetchedAt.IsZero() || time.Since(a.FetchedAt) > ttl
}

// FirstHalfAverages scrapes the 1st-half points-per-game table.
func (c *Client) FirstHalfAverages(ctx context.Context) (map[string]float64, error) {
	return c.scrapeStat(ctx, firstHalfPath)
}

// SecondHalfAverages scrapes the 2nd-half points-per-game table.
func (c *Client) SecondHalfAverages(ctx context.Context) (map[string]float64, error) {
	return c.scrapeStat(ctx, secondHalfPath)
}

// FetchAverages scrapes both tables and stamps the result.
func (c *Client) FetchAverages(ctx context.Context) (Averages, error) {
	first, err := c.FirstHalfAverages(ctx)
	if err != nil {
		return Averages{}, fmt.Errorf("first-half averages: %w", err)
	}
	second, err := c.SecondHalfAverages(ctx)
	if err != nil {
		return Averages{}, fmt.Errorf("second-half averages: %w", err)
	}
	return Averages{
		FirstHalf:  first,
		SecondHalf: second,
		FetchedAt:  time.Now(),
	}, nil
}

// scrapeStat fetches a stat page and parses its tr-table into a map of
// team label to current-season average. Rows missing cells or holding an
// unparsable number are skipped; only a missing table or an entirely
// empty result is an error.
func (c *Client) scrapeStat(ctx context.Context, path string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teamrankings returned status %d for %s", resp.StatusCode, path)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML for %s: %w", path, err)
	}

	table := doc.Find("table.tr-table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no stats table found at %s", path)
	}

	averages := make(map[string]float64)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// Column layout: rank, team, current season, then splits.
		// Header rows use th cells and fall out of this check.
		cols := row.Find("td")
		if cols.Length() < 3 {
			return
		}
		name := strings.TrimSpace(cols.Eq(1).Text())
		if name == "" {
			return
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(cols.Eq(2).Text()), 64)
		if err != nil {
			return
		}
		averages[name] = value
	})

	if len(averages) == 0 {
		return nil, fmt.Errorf("stats table at %s yielded no rows", path)
	}

	return averages, nil
}
