package feed

// Feed snapshot types

// Source identifies the producing call in every snapshot.
const Source = "app.bsky.feed.searchPosts"

// File is the persisted feed snapshot.
type File struct {
	GeneratedAt string   `json:"generatedAt"`
	Source      string   `json:"source"`
	Query       []string `json:"query"`
	Languages   []string `json:"languages"`
	Items       []Item   `json:"items"`
}

// Item is a minimal reference to one post.
type Item struct {
	URI       string `json:"uri"`
	IndexedAt string `json:"indexedAt"`
}
