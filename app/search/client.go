package search

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bluesky-social/indigo/api/atproto"
	"github.com/bluesky-social/indigo/api/bsky"
	"github.com/bluesky-social/indigo/xrpc"
)

const (
	// pageLimit is the fixed search page size; a single page per query,
	// no cursor pagination.
	pageLimit = 100

	// sortOrder requests the most recent posts first.
	sortOrder = "latest"

	searchPostsMethod = "app.bsky.feed.searchPosts"
)

var _ Client = (*xrpcClient)(nil)

type xrpcClient struct {
	client     *xrpc.Client
	identifier string
	password   string
}

// NewClient creates a Client backed by the XRPC API of the given
// service endpoint.
func NewClient(service, identifier, password, userAgent string, timeout time.Duration) Client {
	ua := userAgent

	return &xrpcClient{
		client: &xrpc.Client{
			Host:      service,
			Client:    &http.Client{Timeout: timeout},
			UserAgent: &ua,
		},
		identifier: identifier,
		password:   password,
	}
}

func (c *xrpcClient) Login(ctx context.Context) error {
	sess, err := atproto.ServerCreateSession(ctx, c.client, &atproto.ServerCreateSession_Input{
		Identifier: c.identifier,
		Password:   c.password,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	c.client.Auth = &xrpc.AuthInfo{
		AccessJwt:  sess.AccessJwt,
		RefreshJwt: sess.RefreshJwt,
		Handle:     sess.Handle,
		Did:        sess.Did,
	}

	return nil
}

func (c *xrpcClient) SearchPosts(ctx context.Context, query string, lang string) ([]Post, error) {
	params := map[string]interface{}{
		"q":     query,
		"limit": pageLimit,
		"sort":  sortOrder,
	}
	if lang != "" {
		params["lang"] = lang
	}

	var out bsky.FeedSearchPosts_Output
	if err := c.client.Do(ctx, xrpc.Query, "", searchPostsMethod, params, nil, &out); err != nil {
		return nil, fmt.Errorf("search %q failed: %w", query, err)
	}

	posts := make([]Post, 0, len(out.Posts))
	for _, view := range out.Posts {
		if view == nil {
			continue
		}
		posts = append(posts, fromPostView(view))
	}

	return posts, nil
}

// fromPostView flattens the parts of a post view the application uses.
// The record payload is decoded lazily by the lexicon registry; anything
// other than a feed post leaves the text fields empty.
func fromPostView(view *bsky.FeedDefs_PostView) Post {
	post := Post{
		URI:       view.Uri,
		CID:       view.Cid,
		IndexedAt: view.IndexedAt,
	}

	if view.Author != nil {
		post.AuthorHandle = view.Author.Handle
		if view.Author.DisplayName != nil {
			post.AuthorName = *view.Author.DisplayName
		}
	}

	if view.Record != nil {
		if record, ok := view.Record.Val.(*bsky.FeedPost); ok {
			post.Text = record.Text
			post.CreatedAt = record.CreatedAt
			post.Langs = record.Langs
		}
	}

	return post
}
