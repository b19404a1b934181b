// Package personalize substitutes {{token}} placeholders in plain text.
package personalize

import (
	"regexp"
	"sort"
)

// tokenPattern matches {{identifier}} where identifier is one or more word characters.
var tokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Values maps a token identifier to its replacement text
type Values map[string]string

// Lookup returns the value for token and whether it is usable for substitution.
// An empty value counts as missing so the literal token stays visible.
func (v Values) Lookup(token string) (string, bool) {
	if v == nil {
		return "", false
	}
	value, ok := v[token]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Substitute replaces every {{identifier}} found in text with its value.
// Identifiers without a value are left as the literal {{identifier}}.
// The scan is a single left-to-right pass: inserted values are never re-scanned.
func Substitute(text string, values Values) string {
	if text == "" || len(values) == 0 {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		token := match[2 : len(match)-2]
		if value, ok := values.Lookup(token); ok {
			return value
		}
		return match
	})
}

// Tokens returns the distinct identifiers referenced by text, sorted
func Tokens(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	sort.Strings(out)
	return out
}

// Unresolved returns the identifiers referenced by text that values cannot fill
func Unresolved(text string, values Values) []string {
	var out []string
	for _, token := range Tokens(text) {
		if _, ok := values.Lookup(token); !ok {
			out = append(out, token)
		}
	}
	return out
}

// Placeholder formats token as it appears inside content
func Placeholder(token string) string {
	return "{{" + token + "}}"
}
