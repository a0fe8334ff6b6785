package training

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Filter отбирает промпты для списка. Пустые поля не ограничивают выборку.
type Filter struct {
	Category   Category
	PromptType PromptType
	Query      string
	ActiveOnly bool
}

// normalizeText приводит текст к виду для поиска:
// нижний регистр, пунктуация -> пробел, схлопнутые пробелы.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Match reports whether p passes the filter. Every word of Query must occur in
// the prompt's name, content, context or keywords.
func (f Filter) Match(p Prompt) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.PromptType != "" && p.PromptType != f.PromptType {
		return false
	}
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	q := normalizeText(f.Query)
	if q == "" {
		return true
	}
	fields := append([]string{p.Name, p.Content, p.Context}, p.Keywords...)
	hay := " " + normalizeText(strings.Join(fields, " ")) + " "
	for _, w := range strings.Fields(q) {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}
