package monitor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dantezy/halftime-watch/internal/config"
	"github.com/dantezy/halftime-watch/internal/espn"
	"github.com/dantezy/halftime-watch/internal/teamrankings"
)

const scoreboardBody = `{
  "events": [
    {
      "id": "401705001",
      "name": "New York Knicks at Boston Celtics",
      "shortName": "NYK @ BOS",
      "date": "2025-01-15T00:30Z",
      "status": {
        "type": {"name": "STATUS_IN_PROGRESS", "state": "in", "detail": "Halftime"},
        "period": 2
      },
      "competitions": [
        {
          "competitors": [
            {
              "team": {"id": "2", "name": "Celtics", "displayName": "Boston Celtics", "abbreviation": "BOS"},
              "score": "53",
              "homeAway": "home",
              "linescores": [{"value": 26}, {"value": 27}]
            },
            {
              "team": {"id": "20", "name": "Knicks", "displayName": "New York Knicks", "abbreviation": "NYK"},
              "score": "53",
              "homeAway": "away",
              "linescores": [{"value": 27}, {"value": 26}]
            }
          ]
        }
      ]
    }
  ]
}`

const statTable = `<html><body><table class="tr-table"><tbody>
<tr><td>1</td><td>Boston</td><td>50.0</td><td>51.0</td></tr>
<tr><td>2</td><td>New York</td><td>50.0</td><td>49.5</td></tr>
</tbody></table></body></html>`

func newFixture(t *testing.T, scoreboardFail *atomic.Bool) (*Monitor, *bytes.Buffer, func()) {
	t.Helper()

	scoreSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if scoreboardFail != nil && scoreboardFail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(scoreboardBody))
	}))

	statSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(statTable))
	}))

	cfg := &config.Config{
		PollInterval: 10 * time.Millisecond,
		AveragesTTL:  time.Hour,
		HTTPTimeout:  5 * time.Second,
		Threshold:    0.05,
	}

	var out bytes.Buffer
	m := New(cfg,
		espn.NewClient(scoreSrv.URL, cfg.HTTPTimeout),
		teamrankings.NewClient(statSrv.URL, cfg.HTTPTimeout),
		nil,
		&out,
	)

	return m, &out, func() {
		scoreSrv.Close()
		statSrv.Close()
	}
}

func TestTick_RendersReport(t *testing.T) {
	m, out, cleanup := newFixture(t, nil)
	defer cleanup()

	if err := m.tick(context.Background()); err != nil {
		t.Fatalf("tick returned error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "NBA Live Games (Halftime Scores)") {
		t.Errorf("output missing live section: %q", got)
	}
	// Both teams at 53 vs a 50 average: +6%, both hot.
	if !strings.Contains(got, "🔥") {
		t.Errorf("output missing hot glyph: %q", got)
	}
	if !strings.Contains(got, "Knicks 53") || !strings.Contains(got, "Celtics 53") {
		t.Errorf("output missing game line: %q", got)
	}
}

func TestTick_FetchFailureThenRecovery(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)

	m, out, cleanup := newFixture(t, &fail)
	defer cleanup()

	// First tick: scoreboard is down. No render, no crash.
	if err := m.tick(context.Background()); err == nil {
		t.Fatal("expected error from failing scoreboard")
	}
	if strings.Contains(out.String(), "NBA Live Games") {
		t.Error("failed tick should not render a report")
	}

	// Second tick: feed is back, report renders.
	fail.Store(false)
	if err := m.tick(context.Background()); err != nil {
		t.Fatalf("recovery tick returned error: %v", err)
	}
	if !strings.Contains(out.String(), "NBA Live Games (Halftime Scores)") {
		t.Error("recovery tick did not render the report")
	}
}

func TestRefreshAverages_CachedWithinTTL(t *testing.T) {
	var requests atomic.Int32
	statSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(statTable))
	}))
	defer statSrv.Close()

	cfg := &config.Config{
		PollInterval: 10 * time.Millisecond,
		AveragesTTL:  time.Hour,
		HTTPTimeout:  5 * time.Second,
		Threshold:    0.05,
	}
	m := New(cfg, nil, teamrankings.NewClient(statSrv.URL, cfg.HTTPTimeout), nil, &bytes.Buffer{})

	m.refreshAverages(context.Background())
	if got := requests.Load(); got != 2 { // one per half
		t.Fatalf("initial refresh made %d requests, want 2", got)
	}

	// Within the TTL nothing should be re-scraped.
	m.refreshAverages(context.Background())
	if got := requests.Load(); got != 2 {
		t.Errorf("refresh within TTL made %d requests, want 2", got)
	}
}

func TestRefreshAverages_FailureKeepsPrevious(t *testing.T) {
	var fail atomic.Bool
	statSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(statTable))
	}))
	defer statSrv.Close()

	cfg := &config.Config{
		PollInterval: 10 * time.Millisecond,
		AveragesTTL:  time.Nanosecond, // always stale
		HTTPTimeout:  5 * time.Second,
		Threshold:    0.05,
	}
	m := New(cfg, nil, teamrankings.NewClient(statSrv.URL, cfg.HTTPTimeout), nil, &bytes.Buffer{})

	m.refreshAverages(context.Background())
	if len(m.averages.FirstHalf) == 0 {
		t.Fatal("initial refresh did not populate averages")
	}

	fail.Store(true)
	m.refreshAverages(context.Background())
	if got := m.averages.FirstHalf["Boston"]; got != 50.0 {
		t.Errorf("failed refresh clobbered previous averages: %v", got)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	m, _, cleanup := newFixture(t, nil)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Run(ctx)
	if err != context.DeadlineExceeded {
		t.Errorf("Run returned %v, want context.DeadlineExceeded", err)
	}
}
