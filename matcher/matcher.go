// Package matcher compiles glob pattern lists into a single relative-path
// matcher, following §4.A of the pattern-matcher design.
package matcher

import (
	"log"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher tests relative paths against a compiled set of glob patterns.
type Matcher struct {
	patterns []string
}

// Compile expands braces and normalizes every pattern in patterns, then
// returns a Matcher. An empty or all-invalid pattern list yields a Matcher
// whose Matches always returns false.
func Compile(patterns []string) *Matcher {
	var compiled []string
	for _, raw := range patterns {
		expanded, err := expandBraces(raw)
		if err != nil {
			log.Printf("matcher: dropping pattern %q: %v", raw, err)
			continue
		}
		for _, p := range expanded {
			compiled = append(compiled, normalize(p))
		}
	}
	return &Matcher{patterns: compiled}
}

// normalize strips a leading "./" and, for patterns with no "/", prefixes
// "**/" so the pattern matches at any depth (§4.A rule 2).
func normalize(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "./")
	if !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}
	return pattern
}

// Matches reports whether relPath is matched by any compiled pattern.
// Matching is against relative paths only (§4.A).
func (m *Matcher) Matches(relPath string) bool {
	relPath = strings.TrimPrefix(filepathToSlash(relPath), "./")
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no compiled patterns — the
// selection engine treats that as "no include constraint" (§4.A).
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
