package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/statbot/internal/activity"
	"github.com/omarshaarawi/statbot/internal/admin"
	"github.com/omarshaarawi/statbot/internal/bot"
	"github.com/omarshaarawi/statbot/internal/config"
	"github.com/omarshaarawi/statbot/internal/dataset"
	"github.com/omarshaarawi/statbot/internal/league"
	"github.com/omarshaarawi/statbot/internal/models"
	"github.com/omarshaarawi/statbot/internal/repository/memory"
	"github.com/omarshaarawi/statbot/internal/scheduler"
	"github.com/omarshaarawi/statbot/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)

	clock, err := league.NewClock(cfg.League.Timezone, nil)
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(cfg.Data.Dir, cfg.Data.Workers, slog.Default())
	repo := memory.NewRepository()
	refresh := func(ctx context.Context) error {
		snap, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		repo.Publish(snap)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The bot is useless without data, so the first load is fatal.
	if err := refresh(ctx); err != nil {
		return fmt.Errorf("initial data load: %w", err)
	}

	statsService := service.NewStatsService(repo, clock, service.Identity{
		Team:     cfg.League.Team,
		Club:     cfg.League.Club,
		AgeGroup: cfg.League.AgeGroup,
	})
	router := service.NewRouter(statsService, slog.Default())

	var store *activity.Store
	var activityLog bot.ActivityLog
	if cfg.Activity.Enabled {
		store, err = activity.Open(cfg.Activity.DBPath, slog.Default())
		if err != nil {
			return err
		}
		defer store.Close()
		activityLog = store
	}

	handler := bot.NewHandler(router, activityLog)
	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, handler)
	if err != nil {
		return err
	}

	sendAnswer := func(a *models.Answer) error {
		return telegramBot.SendMessage(bot.RenderAnswer(a))
	}
	sched, err := scheduler.NewScheduler(statsService, refresh, sendAnswer, cfg.League.Timezone, cfg.Data.RefreshInterval)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	adminServer := admin.NewServer(repo, store, admin.RefreshFunc(refresh), slog.Default())
	go func() {
		if err := adminServer.Start(ctx, cfg.Admin.Port); err != nil {
			slog.Error("Error running admin server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func setLogLevel(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(l)
}
