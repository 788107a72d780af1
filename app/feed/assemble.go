package feed

import (
	"cmp"
	"slices"
	"time"

	"bskysnap/app/search"
)

// Assemble converts aggregated posts into a snapshot. Items are sorted
// by indexedAt descending; the values are RFC 3339 timestamps, so plain
// string comparison matches chronological order. A post without an
// indexedAt takes the snapshot timestamp.
func Assemble(posts []search.Post, queries []string, lang string, now time.Time) File {
	generatedAt := now.UTC().Format(time.RFC3339)

	items := make([]Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, Item{
			URI:       post.URI,
			IndexedAt: cmp.Or(post.IndexedAt, generatedAt),
		})
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(b.IndexedAt, a.IndexedAt)
	})

	if queries == nil {
		queries = []string{}
	}

	languages := []string{}
	if lang != "" {
		languages = []string{lang}
	}

	return File{
		GeneratedAt: generatedAt,
		Source:      Source,
		Query:       queries,
		Languages:   languages,
		Items:       items,
	}
}
