package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/dantezy/halftime-watch/internal/config"
	"github.com/dantezy/halftime-watch/internal/espn"
	"github.com/dantezy/halftime-watch/internal/monitor"
	"github.com/dantezy/halftime-watch/internal/teamrankings"
	"github.com/dantezy/halftime-watch/internal/telegram"
)

const banner = `
 _   _       _  __ _   _                  __        __    _       _
| | | | __ _| |/ _| |_(_)_ __ ___   ___   \ \      / /_ _| |_ ___| |__
| |_| |/ _' | | |_| __| | '_ ' _ \ / _ \   \ \ /\ / / _' | __/ __| '_ \
|  _  | (_| | |  _| |_| | | | | | |  __/    \ V  V / (_| | || (__| | | |
|_| |_|\__,_|_|_|  \__|_|_| |_| |_|\___|     \_/\_/ \__,_|\__\___|_| |_|

Halftime Watch v0.1.0
NBA half-scoring deviation monitor
`

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	fmt.Print(banner)
	fmt.Println(strings.Repeat("-", 60))

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	logrus.WithFields(logrus.Fields{
		"poll_interval": cfg.PollInterval,
		"averages_ttl":  cfg.AveragesTTL,
		"threshold":     fmt.Sprintf("±%.0f%%", cfg.Threshold*100),
	}).Info("configuration loaded")

	// Telegram is optional; a failed init just disables notifications.
	var bot *telegram.Bot
	if cfg.HasTelegram() {
		bot, err = telegram.NewBot(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logrus.WithError(err).Warn("telegram init failed, continuing without")
			bot = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logrus.WithField("signal", sig).Info("initiating shutdown")
		cancel()
	}()

	if bot != nil {
		if err := bot.NotifyStarted(); err != nil {
			logrus.WithError(err).Warn("start notification failed")
		}
	}

	m := monitor.New(cfg,
		espn.NewClient(cfg.ScoreboardURL, cfg.HTTPTimeout),
		teamrankings.NewClient(cfg.RankingsBaseURL, cfg.HTTPTimeout),
		bot,
		os.Stdout,
	)

	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Fatal("monitor error")
	}

	if bot != nil {
		if err := bot.NotifyStopped(); err != nil {
			logrus.WithError(err).Warn("stop notification failed")
		}
	}
	logrus.Info("shutdown complete")
}
