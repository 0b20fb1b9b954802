package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/statbot/internal/models"
	"github.com/omarshaarawi/statbot/internal/service"
)

type Scheduler struct {
	s        gocron.Scheduler
	stats    *service.StatsService
	refresh  func(context.Context) error
	send     func(*models.Answer) error
	interval time.Duration
}

func NewScheduler(stats *service.StatsService, refresh func(context.Context) error, send func(*models.Answer) error, timezone string, interval time.Duration) (*Scheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		stats:    stats,
		refresh:  refresh,
		send:     send,
		interval: interval,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Dataset refresh on a fixed cadence
	_, err = s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.refreshData),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	// Missing scores chase-up - Monday 08:00, after the weekend's rounds
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.sendMissingScores),
	)
	if err != nil {
		return fmt.Errorf("failed to create missing scores job: %w", err)
	}

	// Weekend results wrap - Sunday 19:00
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(19, 0, 0))),
		gocron.NewTask(s.sendWeekendResults),
	)
	if err != nil {
		return fmt.Errorf("failed to create weekend results job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshData() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.refresh(ctx); err != nil {
		slog.Error("Failed to refresh dataset", "error", err)
	}
}

func (s *Scheduler) sendMissingScores() {
	answer, err := s.stats.MissingScores("")
	if err != nil {
		slog.Error("Failed to build missing scores report", "error", err)
		return
	}
	if err := s.send(answer); err != nil {
		slog.Error("Error sending missing scores report", "error", err)
	}
}

func (s *Scheduler) sendWeekendResults() {
	answer, err := s.stats.TodaysResults("")
	if err != nil {
		slog.Error("Failed to build weekend results report", "error", err)
		return
	}
	if err := s.send(answer); err != nil {
		slog.Error("Error sending weekend results report", "error", err)
	}
}
