package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"bskysnap/app/search"
)

const itemTitleLimit = 80

type Generator struct {
	version string
}

func NewGenerator(version string) *Generator {
	return &Generator{version: version}
}

// Run renders the posts as an RSS 2.0 document, newest first.
func (g *Generator) Run(name string, queries []string, lang string, posts []search.Post) string {
	sorted := make([]search.Post, len(posts))
	copy(sorted, posts)
	slices.SortStableFunc(sorted, func(a, b search.Post) int {
		return cmp.Compare(b.IndexedAt, a.IndexedAt)
	})

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", fmt.Sprintf("Bluesky search: %s", name), 4)
	g.writeElement(&buf, "link", searchLink(queries), 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Recent posts matching %s", strings.Join(queries, ", ")), 4)

	lastBuildDate := time.Now().UTC()
	if len(sorted) > 0 {
		lastBuildDate = parseTimestamp(sorted[0].IndexedAt, lastBuildDate)
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("bskysnap/%s", g.version), 4)
	if lang != "" {
		g.writeElement(&buf, "language", lang, 4)
	}

	for _, post := range sorted {
		g.writeItem(&buf, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *Generator) writeItem(buf *bytes.Buffer, post search.Post) {
	buf.WriteString("    <item>\n")

	if post.URI != "" {
		buf.WriteString(`      <guid isPermaLink="false">`)
		xml.EscapeText(buf, []byte(post.URI))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", itemTitle(post), 6)

	if link := post.WebURL(); link != "" {
		g.writeElement(buf, "link", link, 6)
	}

	g.writeElement(buf, "description", cmp.Or(post.Text, "No text available"), 6)

	pubDate := parseTimestamp(cmp.Or(post.IndexedAt, post.CreatedAt), time.Now().UTC())
	g.writeElement(buf, "pubDate", pubDate.Format(time.RFC1123Z), 6)

	if post.AuthorHandle != "" {
		g.writeElement(buf, "author", post.AuthorHandle, 6)
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// itemTitle builds a compact item title from the author and the first
// line of the post text.
func itemTitle(post search.Post) string {
	text := strings.TrimSpace(post.Text)
	if line, _, found := strings.Cut(text, "\n"); found {
		text = strings.TrimSpace(line)
	}
	text = truncate(text, itemTitleLimit)

	author := cmp.Or(post.AuthorName, post.AuthorHandle)
	switch {
	case author != "" && text != "":
		return fmt.Sprintf("%s: %s", author, text)
	case text != "":
		return text
	case author != "":
		return fmt.Sprintf("Post by %s", author)
	default:
		return post.URI
	}
}

func searchLink(queries []string) string {
	if len(queries) == 0 {
		return "https://bsky.app"
	}
	return fmt.Sprintf("https://bsky.app/search?q=%s", url.QueryEscape(queries[0]))
}

// parseTimestamp parses an RFC 3339 timestamp, returning the fallback
// when the value is empty or malformed.
func parseTimestamp(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fallback
	}
	return t
}

// truncate shortens a string to max runes, appending an ellipsis when
// anything was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
