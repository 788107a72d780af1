package search

import (
	"context"
	"log/slog"
)

// Aggregate runs every query sequentially and merges the results into a
// single deduplicated post list. A failed query is logged and skipped;
// duplicate URIs keep the first-seen post. The boolean reports whether
// at least one query succeeded, where a success with zero posts counts.
func Aggregate(ctx context.Context, searcher *Searcher, queries []string, lang string) ([]Post, bool) {
	seen := make(map[string]bool)
	merged := []Post{}
	succeeded := false

	for _, query := range queries {
		if query == "" {
			continue
		}

		posts, err := searcher.Search(ctx, query, lang)
		if err != nil {
			slog.Warn("Query failed, skipping", "query", query, "error", err)
			continue
		}

		succeeded = true
		for _, post := range posts {
			if seen[post.URI] {
				continue
			}
			seen[post.URI] = true
			merged = append(merged, post)
		}
	}

	return merged, succeeded
}
