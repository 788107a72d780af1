package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"bskysnap/app/cfg"
	"bskysnap/app/feed"
	"bskysnap/app/profile"
	"bskysnap/app/search"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting bskysnap", "version", appCfg.Version, "service", appCfg.Service)

	profiles, err := profile.Resolve(appCfg)
	if err != nil {
		slog.Error("Failed to resolve search profiles", "error", err)
		os.Exit(1)
	}
	slog.Debug("Resolved search profiles", "count", len(profiles))

	client := search.NewClient(appCfg.Service, appCfg.Identifier, appCfg.Password,
		appCfg.UserAgent, time.Duration(appCfg.Timeout)*time.Second)

	ctx := context.Background()
	if err := client.Login(ctx); err != nil {
		slog.Error("Login failed", "service", appCfg.Service, "identifier", appCfg.Identifier, "error", err)
		os.Exit(1)
	}
	slog.Info("Logged in", "identifier", appCfg.Identifier)

	searcher := search.NewSearcher(client)
	generator := feed.NewGenerator(appCfg.Version)

	failed := 0
	for _, p := range profiles {
		if err := runProfile(ctx, searcher, generator, p); err != nil {
			slog.Error("Feed run failed", "profile", p.Name, "error", err)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
