package profile

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// SplitQueryParts splits a comma-separated query string into independent
// query parts. Parts are trimmed and empty entries are dropped. A string
// that contains no parts after splitting but is non-empty once trimmed
// (e.g. a bare comma) is kept whole as a single query.
func SplitQueryParts(raw string) []string {
	parts := splitCommaList(raw)
	if len(parts) == 0 {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			return []string{trimmed}
		}
	}
	return parts
}

// SplitMuteWords splits a comma-separated mute word list. Words are
// trimmed and empty entries are dropped.
func SplitMuteWords(raw string) []string {
	return splitCommaList(raw)
}

func splitCommaList(raw string) []string {
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AppendMuteWords appends one exclusion token per mute word to the
// query, in order. Words containing whitespace are quoted so the service
// treats them as a single phrase.
func AppendMuteWords(query string, muteWords []string) string {
	if len(muteWords) == 0 {
		return query
	}

	var b strings.Builder
	b.WriteString(query)
	for _, word := range muteWords {
		b.WriteString(" -")
		if strings.ContainsFunc(word, unicode.IsSpace) {
			b.WriteString(`"`)
			b.WriteString(word)
			b.WriteString(`"`)
		} else {
			b.WriteString(word)
		}
	}
	return b.String()
}

// ParseLanguage validates a single language code and returns its
// canonical form. Multiple comma-separated codes are a configuration
// error. An empty value means no language filter.
func ParseLanguage(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	if strings.Contains(trimmed, ",") {
		return "", fmt.Errorf("expected a single language code, got %q", raw)
	}

	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", trimmed, err)
	}

	return tag.String(), nil
}
