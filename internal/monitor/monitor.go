// Package monitor runs the poll loop: fetch the scoreboard, classify
// against the cached averages, redraw the report, sleep, repeat.
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dantezy/halftime-watch/internal/config"
	"github.com/dantezy/halftime-watch/internal/espn"
	"github.com/dantezy/halftime-watch/internal/report"
	"github.com/dantezy/halftime-watch/internal/teamrankings"
	"github.com/dantezy/halftime-watch/internal/teams"
	"github.com/dantezy/halftime-watch/internal/telegram"
)

const clearSequence = "\033[2J\033[H"

// Monitor owns the poll loop and the slow-cadence averages cache.
type Monitor struct {
	cfg      *config.Config
	espn     *espn.Client
	rankings *teamrankings.Client
	bot      *telegram.Bot
	out      io.Writer

	averages teamrankings.Averages
	alerted  map[string]bool
}

// New wires a monitor together. bot may be nil to disable notifications.
func New(cfg *config.Config, espnClient *espn.Client, rankings *teamrankings.Client, bot *telegram.Bot, out io.Writer) *Monitor {
	return &Monitor{
		cfg:      cfg,
		espn:     espnClient,
		rankings: rankings,
		bot:      bot,
		out:      out,
		alerted:  make(map[string]bool),
	}
}

// Run polls until the context is cancelled. Fetch and parse failures
// are logged and skip the tick's render; they never stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	logrus.WithFields(logrus.Fields{
		"poll_interval": m.cfg.PollInterval,
		"averages_ttl":  m.cfg.AveragesTTL,
		"threshold":     m.cfg.Threshold,
	}).Info("starting halftime monitor")

	// First tick immediately, then on the ticker.
	m.tick(ctx)

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("shutting down monitor")
			return ctx.Err()
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick runs one full polling phase: refresh stale averages, fetch the
// scoreboard, rebuild and draw the report. Returns the fetch error, if
// any, for tests; Run ignores it.
func (m *Monitor) tick(ctx context.Context) error {
	m.refreshAverages(ctx)

	games, err := m.espn.Scoreboard(ctx)
	if err != nil {
		logrus.WithError(err).Warn("scoreboard fetch failed, skipping this update")
		return err
	}

	rep := report.Build(games, m.averages, m.cfg.Threshold)

	if m.cfg.ClearScreen {
		fmt.Fprint(m.out, clearSequence)
	}
	fmt.Fprint(m.out, rep.Render())

	m.notifyStreaks(rep)
	return nil
}

// refreshAverages re-scrapes the per-half averages once they pass their
// TTL. On failure the previous map stays in use; the 30-second cadence
// retries soon enough.
func (m *Monitor) refreshAverages(ctx context.Context) {
	if !m.averages.Stale(m.cfg.AveragesTTL) {
		return
	}

	logrus.Info("fetching NBA per-half scoring averages")
	avgs, err := m.rankings.FetchAverages(ctx)
	if err != nil {
		logrus.WithError(err).Warn("averages refresh failed, keeping previous data")
		return
	}

	if err := teams.Validate(avgs.FirstHalf); err != nil {
		// Missing teams degrade to NoData glyphs, so warn and carry on.
		logrus.WithError(err).Warn("averages incomplete")
	}

	logrus.WithFields(logrus.Fields{
		"first_half":  len(avgs.FirstHalf),
		"second_half": len(avgs.SecondHalf),
	}).Info("updated scoring averages")
	m.averages = avgs
}

// notifyStreaks sends one Telegram alert per game+half the first time
// it shows both teams hot or both cold.
func (m *Monitor) notifyStreaks(rep report.Report) {
	if m.bot == nil {
		return
	}

	lines := make([]report.GameLine, 0, len(rep.Live)+len(rep.Completed))
	lines = append(lines, rep.Live...)
	lines = append(lines, rep.Completed...)

	for _, line := range lines {
		for _, half := range []struct {
			key        string
			emphasized bool
		}{
			{line.GameID + ":first", line.First.Emphasized()},
			{line.GameID + ":second", line.Final && line.Second.Emphasized()},
		} {
			if !half.emphasized || m.alerted[half.key] {
				continue
			}
			m.alerted[half.key] = true
			if err := m.bot.NotifyStreak(line.String()); err != nil {
				logrus.WithError(err).Warn("streak notification failed")
			}
		}
	}
}
