package placeholder

import (
	"regexp"
	"strings"
)

const (
	tokenOpen  = "{{"
	tokenClose = "}}"
)

// tokenPattern matches {{word}} with no internal whitespace.
var tokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Token returns the placeholder token for key, e.g. Token("name") == "{{name}}".
func Token(key string) string {
	return tokenOpen + key + tokenClose
}

// ReplaceKeys replaces every {{key}} occurrence for each key present in values.
// Keys not present in values are left untouched, as is any other {{...}} text.
//
// All keys are substituted in a single pass, so a replacement value that itself
// contains {{otherKey}} is not substituted again and map iteration order has no
// effect on the result.
//
// Example:
//
//	ReplaceKeys("Hi {{name}}, {{missing}}", map[string]string{"name": "Ann"})
//	// "Hi Ann, {{missing}}"
func ReplaceKeys(s string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(s, tokenOpen) {
		return s
	}

	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, Token(key), value)
	}

	return strings.NewReplacer(pairs...).Replace(s)
}

// ReplaceTokens scans s for {{word}} tokens and resolves each against values.
// A token whose key is absent from values is kept verbatim.
// Word characters are ASCII letters, digits and underscore.
//
// Example:
//
//	ReplaceTokens("<h1>{{title}}</h1>{{unknown}}", map[string]string{"title": "Hi"})
//	// "<h1>Hi</h1>{{unknown}}"
func ReplaceTokens(s string, values map[string]string) string {
	if !strings.Contains(s, tokenOpen) {
		return s
	}

	return tokenPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := match[len(tokenOpen) : len(match)-len(tokenClose)]
		if value, ok := values[key]; ok {
			return value
		}
		return match
	})
}

// ReplaceFirst replaces only the first occurrence of {{key}} in s.
func ReplaceFirst(s, key, value string) string {
	return strings.Replace(s, Token(key), value, 1)
}

// Tokens returns the distinct {{word}} token names found in s,
// in order of first appearance.
func Tokens(s string) []string {
	matches := tokenPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}
