package search

import (
	"fmt"
	"strings"
)

// Post is the slice of a post view the application works with.
type Post struct {
	URI          string
	CID          string
	IndexedAt    string
	CreatedAt    string
	Text         string
	AuthorHandle string
	AuthorName   string
	Langs        []string
}

// WebURL converts the post's AT-URI into a public web permalink.
// Returns an empty string when the URI is not a post URI.
func (p Post) WebURL() string {
	rest, ok := strings.CutPrefix(p.URI, "at://")
	if !ok {
		return ""
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "app.bsky.feed.post" {
		return ""
	}

	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", parts[0], parts[2])
}
