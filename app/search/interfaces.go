package search

import "context"

// Client defines the interface for authenticated calls against a
// Bluesky-compatible service. Login must succeed before SearchPosts is
// used; SearchPosts runs a single search request and returns one page of
// the most recent matching posts.
type Client interface {
	Login(ctx context.Context) error
	SearchPosts(ctx context.Context, query string, lang string) ([]Post, error)
}
