// Package casing converts field names between camelCase and snake_case with
// exact, deterministic word splitting, preserving leading and trailing
// underscore runs verbatim.
package casing

import (
	"strings"
	"unicode"
)

// ToSnake converts a camelCase name to snake_case. Words split at each
// lower-to-upper transition and at the end of an uppercase run followed by a
// lowercase letter, so "myURLProperty" becomes "my_url_property".
func ToSnake(s string) string {
	if s == "" {
		return s
	}
	start, end := trimUnderscores(s)
	if start >= end {
		return s
	}
	words := splitWords(s[start:end])
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return s[:start] + strings.Join(words, "_") + s[end:]
}

// ToCamel converts a snake_case name to camelCase. A core with no underscores
// is assumed already camel-cased and passes through; otherwise the first
// component is lowercased and each later component gets its first letter
// uppercased, the rest kept as-is.
func ToCamel(s string) string {
	if s == "" {
		return s
	}
	start, end := trimUnderscores(s)
	if start >= end {
		return s // entirely underscores
	}
	core := s[start:end]
	parts := strings.Split(core, "_")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(core))
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return s[:start] + b.String() + s[end:]
}

// trimUnderscores locates the core between the leading and trailing
// underscore runs.
func trimUnderscores(s string) (start, end int) {
	start, end = 0, len(s)
	for start < end && s[start] == '_' {
		start++
	}
	for end > start && s[end-1] == '_' {
		end--
	}
	return start, end
}

func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	wordStart := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			words = append(words, string(runes[wordStart:i]))
			wordStart = i
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// the last capital of an uppercase run starts the next word
			words = append(words, string(runes[wordStart:i]))
			wordStart = i
		}
	}
	return append(words, string(runes[wordStart:]))
}
