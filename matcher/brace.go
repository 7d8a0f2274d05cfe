package matcher

import (
	"errors"
	"strings"
)

// errUnbalancedBrace is returned for a pattern with mismatched "{"/"}".
var errUnbalancedBrace = errors.New("unbalanced brace")

// expandBraces rewrites a single "{a,b,c}" group (or several, including
// nested groups) into the cross-product of alternatives (§4.A rule 1,
// GLOSSARY "Brace expansion"). A pattern with no braces expands to itself.
func expandBraces(pattern string) ([]string, error) {
	if !strings.ContainsRune(pattern, '{') {
		return []string{pattern}, nil
	}
	open := strings.IndexByte(pattern, '{')
	closeIdx, err := matchingBrace(pattern, open)
	if err != nil {
		return nil, err
	}
	prefix := pattern[:open]
	body := pattern[open+1 : closeIdx]
	suffix := pattern[closeIdx+1:]

	alts := splitTopLevel(body)
	if len(alts) == 0 {
		return nil, errUnbalancedBrace
	}

	var out []string
	for _, alt := range alts {
		combined := prefix + alt + suffix
		expanded, err := expandBraces(combined)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// matchingBrace finds the index of the "}" that closes the "{" at openIdx,
// respecting nested braces.
func matchingBrace(s string, openIdx int) (int, error) {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errUnbalancedBrace
}

// splitTopLevel splits s on commas that are not inside a nested brace group.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
