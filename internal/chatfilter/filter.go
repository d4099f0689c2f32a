package chatfilter

import (
	"regexp"
	"strings"
)

// Filter masks known words in kid-visible text. Matching is whole-word
// and case-insensitive; matched words are replaced with asterisks of
// the same length so message layout is preserved.
type Filter struct {
	pattern *regexp.Regexp
}

// New builds a filter from a word list. Empty entries are ignored; an
// empty list yields a filter that passes text through unchanged.
func New(words []string) *Filter {
	var quoted []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(w)))
	}
	if len(quoted) == 0 {
		return &Filter{}
	}
	pattern := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return &Filter{pattern: pattern}
}

// Mask replaces every matched word with asterisks
func (f *Filter) Mask(text string) string {
	if f.pattern == nil {
		return text
	}
	return f.pattern.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Repeat("*", len([]rune(match)))
	})
}
