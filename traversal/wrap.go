package traversal

import (
	"fmt"
	"strings"
)

// splitLines mirrors Rust's str::lines(): split on "\n", with at most one
// trailing terminator absorbed (so "a\nb\n" and "a\nb" both yield two
// lines, while "a\nb\n\n" yields three, the middle blank line included).
func splitLines(code string) []string {
	if code == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(code, "\n"), "\n")
}

// wrapCode applies the wrap policy of §4.E step 6 / §6 "Wrap format" and
// "Line-numbering format": optional "%4d | %s\n" line numbering, optional
// triple-backtick-plus-extension fencing. The two compose.
func wrapCode(code, extension string, lineNumbers, codeblockWrap bool) string {
	body := code
	if lineNumbers {
		var b strings.Builder
		for i, line := range splitLines(code) {
			fmt.Fprintf(&b, "%4d | %s\n", i+1, line)
		}
		body = b.String()
	}

	if !codeblockWrap {
		return body
	}

	delimiter := "```"
	return delimiter + extension + "\n" + body + "\n" + delimiter
}
