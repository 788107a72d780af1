package feed

import (
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"bskysnap/app/search"
)

func samplePosts() []search.Post {
	return []search.Post{
		{
			URI:          "at://did:plc:alice/app.bsky.feed.post/3k2a",
			CID:          "bafyreia",
			IndexedAt:    "2024-02-01T10:00:00.000Z",
			CreatedAt:    "2024-02-01T09:59:00.000Z",
			Text:         "a post about golang",
			AuthorHandle: "alice.example.com",
			AuthorName:   "Alice",
		},
		{
			URI:          "at://did:plc:bob/app.bsky.feed.post/9x1b",
			IndexedAt:    "2024-02-03T12:30:00.000Z",
			Text:         "more golang news",
			AuthorHandle: "bob.example.com",
		},
	}
}

func TestGenerateRSS(t *testing.T) {
	generator := NewGenerator("test")

	rss := generator.Run("golang", []string{"golang -spam"}, "en", samplePosts())

	// Verify RSS structure
	if !strings.Contains(rss, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("RSS should contain XML declaration")
	}
	if !strings.Contains(rss, `<rss version="2.0"`) {
		t.Error("RSS should contain RSS 2.0 declaration")
	}

	// Verify channel metadata
	if !strings.Contains(rss, "<title>Bluesky search: golang</title>") {
		t.Error("RSS should contain channel title")
	}
	if !strings.Contains(rss, "<link>https://bsky.app/search?q=golang+-spam</link>") {
		t.Error("RSS should link to the first query's search page")
	}
	if !strings.Contains(rss, "<description>Recent posts matching golang -spam</description>") {
		t.Error("RSS should contain channel description")
	}
	if !strings.Contains(rss, "<generator>bskysnap/test</generator>") {
		t.Error("RSS should contain generator with version")
	}
	if !strings.Contains(rss, "<language>en</language>") {
		t.Error("RSS should contain language when a filter is set")
	}
	if !strings.Contains(rss, "<lastBuildDate>Sat, 03 Feb 2024 12:30:00 +0000</lastBuildDate>") {
		t.Error("RSS should use the newest post's indexedAt for lastBuildDate")
	}

	// Verify items
	if !strings.Contains(rss, `<guid isPermaLink="false">at://did:plc:alice/app.bsky.feed.post/3k2a</guid>`) {
		t.Error("RSS should use the post URI as GUID")
	}
	if !strings.Contains(rss, "<title>Alice: a post about golang</title>") {
		t.Error("RSS should contain item title with author name")
	}
	if !strings.Contains(rss, "<link>https://bsky.app/profile/did:plc:alice/post/3k2a</link>") {
		t.Error("RSS should contain item web permalink")
	}
	if !strings.Contains(rss, "<description>a post about golang</description>") {
		t.Error("RSS should contain item description")
	}
	if !strings.Contains(rss, "<author>alice.example.com</author>") {
		t.Error("RSS should contain item author handle")
	}
	if !strings.Contains(rss, "<pubDate>Thu, 01 Feb 2024 10:00:00 +0000</pubDate>") {
		t.Error("RSS should contain item pubDate from indexedAt")
	}

	// Newest post is rendered first
	bobIdx := strings.Index(rss, "at://did:plc:bob/app.bsky.feed.post/9x1b")
	aliceIdx := strings.Index(rss, "at://did:plc:alice/app.bsky.feed.post/3k2a")
	if bobIdx == -1 || aliceIdx == -1 || bobIdx > aliceIdx {
		t.Error("RSS items should be ordered newest first")
	}

	// Verify proper XML structure
	if !strings.Contains(rss, "</channel>") || !strings.Contains(rss, "</rss>") {
		t.Error("RSS should contain closing tags")
	}
}

func TestGenerateRSSEscapesSpecialCharacters(t *testing.T) {
	generator := NewGenerator("test")

	posts := []search.Post{
		{
			URI:          "at://did:plc:alice/app.bsky.feed.post/3k2a",
			IndexedAt:    "2024-02-01T10:00:00.000Z",
			Text:         `cats <3 & "dogs"`,
			AuthorHandle: "alice.example.com",
		},
	}

	rss := generator.Run("pets", []string{"pets"}, "", posts)

	if !strings.Contains(rss, "cats &lt;3 &amp; &#34;dogs&#34;") {
		t.Error("Post text should have escaped special characters")
	}
	if strings.Contains(rss, `<description>cats <3`) {
		t.Error("Post text should not appear unescaped")
	}
}

func TestGenerateRSSEmptyPosts(t *testing.T) {
	generator := NewGenerator("test")

	rss := generator.Run("golang", []string{"golang"}, "", nil)

	if !strings.Contains(rss, "<title>Bluesky search: golang</title>") {
		t.Error("Empty RSS should still contain channel title")
	}
	if strings.Contains(rss, "<item>") {
		t.Error("Empty RSS should not contain any items")
	}
	if !strings.Contains(rss, "</channel>") || !strings.Contains(rss, "</rss>") {
		t.Error("Empty RSS should contain closing tags")
	}
}

func TestGenerateRSSParsesBack(t *testing.T) {
	generator := NewGenerator("test")

	rss := generator.Run("golang", []string{"golang -spam"}, "en", samplePosts())

	parsed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("Expected generated RSS to parse, got: %v", err)
	}

	if parsed.Title != "Bluesky search: golang" {
		t.Errorf("Expected parsed title 'Bluesky search: golang', got '%s'", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 parsed items, got %d", len(parsed.Items))
	}
	if parsed.Items[0].GUID != "at://did:plc:bob/app.bsky.feed.post/9x1b" {
		t.Errorf("Expected newest post first, got GUID '%s'", parsed.Items[0].GUID)
	}
	if parsed.Items[1].Link != "https://bsky.app/profile/did:plc:alice/post/3k2a" {
		t.Errorf("Expected item link to be the web permalink, got '%s'", parsed.Items[1].Link)
	}
}

func TestItemTitle(t *testing.T) {
	tests := []struct {
		name     string
		post     search.Post
		expected string
	}{
		{
			"author and text",
			search.Post{Text: "hello world", AuthorName: "Alice", AuthorHandle: "alice.example.com"},
			"Alice: hello world",
		},
		{
			"handle fallback",
			search.Post{Text: "hello world", AuthorHandle: "alice.example.com"},
			"alice.example.com: hello world",
		},
		{
			"first line only",
			search.Post{Text: "line one\nline two", AuthorName: "Alice"},
			"Alice: line one",
		},
		{
			"text only",
			search.Post{Text: "hello world"},
			"hello world",
		},
		{
			"author only",
			search.Post{AuthorName: "Alice"},
			"Post by Alice",
		},
		{
			"uri fallback",
			search.Post{URI: "at://did:plc:a/app.bsky.feed.post/1"},
			"at://did:plc:a/app.bsky.feed.post/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := itemTitle(tt.post); got != tt.expected {
				t.Errorf("Expected title '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a longer string", 10, "this is..."},
		{"日本語の投稿です", 5, "日本..."},
		{"ab", 2, "ab"},
	}

	for _, test := range tests {
		result := truncate(test.input, test.max)
		if result != test.expected {
			t.Errorf("For input '%s' with max %d, expected '%s', got '%s'", test.input, test.max, test.expected, result)
		}
	}
}
