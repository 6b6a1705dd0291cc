package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"markdown-calendar-sync/config"
	cliDelivery "markdown-calendar-sync/internal/sync/delivery/cli"
	gcalRepo "markdown-calendar-sync/internal/sync/repository/gcal"
	"markdown-calendar-sync/internal/sync/usecase"
	"markdown-calendar-sync/internal/weekmd"
	"markdown-calendar-sync/pkg/gcalendar"
	"markdown-calendar-sync/pkg/log"
)

func main() {
	agenda := flag.String("agenda", "", "agenda short name (default: the configured default agenda)")
	period := flag.Int("period", 0, "school-year period, 1 to 5")
	weeksFlag := flag.String("weeks", "", "comma-separated week numbers, e.g. 36,37,38")
	yes := flag.Bool("yes", false, "push without asking for confirmation")
	view := flag.Bool("view", false, "print the content of the week files before confirming")
	interactive := flag.Bool("interactive", false, "ask for the agenda even when a default exists")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Google Calendar client
	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		logger.Errorf(ctx, "Google Calendar not available: %v", err)
		logger.Error(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		os.Exit(1)
	}

	// 4. Parser
	parser, err := weekmd.New(weekmd.Config{
		Timezone:     cfg.Schedule.Timezone,
		DefaultColor: cfg.Schedule.DefaultColor,
		Colors:       colorRules(cfg),
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to create parser: %v", err)
	}

	// 5. Sync domain
	calendarRepo := gcalRepo.New(calendarClient, logger)
	syncUC := usecase.New(logger, parser, calendarRepo)
	handler := cliDelivery.New(logger, cfg, syncUC)

	weeks, err := parseWeeks(*weeksFlag)
	if err != nil {
		logger.Fatalf(ctx, "Bad -weeks flag: %v", err)
	}

	err = handler.Run(ctx, cliDelivery.RunOptions{
		Agenda:      *agenda,
		Period:      *period,
		Weeks:       weeks,
		Yes:         *yes,
		Interactive: *interactive,
		View:        *view,
	})
	if err != nil {
		if errors.Is(err, cliDelivery.ErrAborted) {
			logger.Info(ctx, "Nothing pushed")
			return
		}
		logger.Fatalf(ctx, "Sync failed: %v", err)
	}
	logger.Info(ctx, "Sync complete")
}

func colorRules(cfg *config.Config) []weekmd.ColorRule {
	rules := make([]weekmd.ColorRule, 0, len(cfg.Schedule.Colors))
	for _, rule := range cfg.Schedule.Colors {
		rules = append(rules, weekmd.ColorRule{ColorID: rule.ColorID, Keywords: rule.Keywords})
	}
	return rules
}

func parseWeeks(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var weeks []int
	for _, token := range strings.Split(raw, ",") {
		week, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("bad week number %q", token)
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}
