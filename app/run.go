package main

import (
	"context"
	"log/slog"
	"time"

	"bskysnap/app/feed"
	"bskysnap/app/profile"
	"bskysnap/app/search"
)

// runProfile executes one snapshot run: aggregate every effective query,
// fall back to the previous snapshot when all of them failed, persist
// the result.
func runProfile(ctx context.Context, searcher *search.Searcher, generator *feed.Generator, p *profile.Profile) error {
	queries := p.EffectiveQueries()
	slog.Debug("Running search profile", "profile", p.Name, "queries", queries, "language", p.Language)

	posts, succeeded := search.Aggregate(ctx, searcher, queries, p.Language)

	if !succeeded {
		prior, err := feed.Load(p.Output)
		if err == nil {
			slog.Warn("All queries failed, keeping previous feed", "profile", p.Name, "path", p.Output, "items", len(prior.Items))
			if p.RSSOutput != "" {
				slog.Warn("Skipping RSS rendition, nothing aggregated", "profile", p.Name, "path", p.RSSOutput)
			}
			return feed.Write(p.Output, *prior)
		}
		slog.Warn("All queries failed and no previous feed is usable, writing empty feed", "profile", p.Name, "path", p.Output, "error", err)
	}

	file := feed.Assemble(posts, queries, p.Language, time.Now())
	if err := feed.Write(p.Output, file); err != nil {
		return err
	}

	if p.RSSOutput != "" {
		rss := generator.Run(p.Name, queries, p.Language, posts)
		if err := feed.WriteRSS(p.RSSOutput, rss); err != nil {
			return err
		}
		slog.Debug("RSS rendition written", "profile", p.Name, "path", p.RSSOutput)
	}

	slog.Info("Feed written", "profile", p.Name, "items", len(file.Items), "queries", queries, "path", p.Output)
	return nil
}
