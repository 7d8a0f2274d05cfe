// Package ignore discovers and layers the ignore sources consulted by the
// traversal pipeline (§4.E, §6 "Ignore-source discovery"): a global
// `.promptignore`, a repo-local `.promptignore`, any `extra_ignore_files`,
// the `.gitignore` hierarchy, and the hidden-file policy.
//
// Precedence, highest first (resolved Open Question, see DESIGN.md):
// global .promptignore > local .promptignore > extra_ignore_files >
// .gitignore hierarchy > hidden-file filter. The three lower layers only
// add exclusions. Each .promptignore that is present replaces the verdict
// for every path: a path it does not match is not ignored, whatever the
// lower layers (or, for the global file, the local one) decided.
package ignore

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"promptkit/model"
)

// Source combines every ignore layer for one traversal root.
type Source struct {
	includeHidden bool

	gitignoreHierarchy *gitignore.GitIgnore // nil if disabled or no patterns found
	extraFiles         *gitignore.GitIgnore // nil if none configured/found
	promptignoreLocal  *gitignore.GitIgnore // nil if disabled or absent
	promptignoreGlobal *gitignore.GitIgnore // nil if disabled or absent
}

// Load builds a Source for root per cfg's ignore-related flags (§6).
func Load(cfg model.Config, root string) *Source {
	s := &Source{includeHidden: cfg.IncludeHidden}

	if !cfg.IgnoreGitignore {
		s.gitignoreHierarchy = loadGitignoreHierarchy(root)
	}

	if len(cfg.ExtraIgnoreFiles) > 0 {
		var lines []string
		for _, f := range cfg.ExtraIgnoreFiles {
			lines = append(lines, readLines(f)...)
		}
		if len(lines) > 0 {
			gi, err := gitignore.CompileIgnoreLines(lines...)
			if err != nil {
				log.Printf("ignore: compiling extra_ignore_files: %v", err)
			} else {
				s.extraFiles = gi
			}
		}
	}

	if !cfg.NoPromptignore {
		if lines := readLines(filepath.Join(root, ".promptignore")); len(lines) > 0 {
			if gi, err := gitignore.CompileIgnoreLines(lines...); err == nil {
				s.promptignoreLocal = gi
			}
		}
		if dir, err := os.UserConfigDir(); err == nil {
			if lines := readLines(filepath.Join(dir, "promptkit", ".promptignore")); len(lines) > 0 {
				if gi, err := gitignore.CompileIgnoreLines(lines...); err == nil {
					s.promptignoreGlobal = gi
				}
			}
		}
	}

	return s
}

// ShouldIgnore reports whether relPath (slash-separated, root-relative)
// should be excluded from traversal, per the layered precedence above.
//
// The hidden-file filter, the .gitignore hierarchy, and extra_ignore_files
// are purely additive: each can only add an exclusion, never lift one a
// higher-precedence layer hasn't spoken to (go-gitignore's MatchesPath
// can't distinguish "no pattern applies" from "explicitly un-ignored",
// so additive composition is the only safe way to combine independently
// compiled layers without losing a lower layer's exclusion by accident).
// The two .promptignore sources are the user's explicit final word and
// so are allowed to override outright, local applied before (and
// overridable by) global, matching the stated precedence.
func (s *Source) ShouldIgnore(relPath string, isDir bool) bool {
	ignored := !s.includeHidden && isHidden(relPath)
	path := matchPath(relPath, isDir)

	if s.gitignoreHierarchy != nil && s.gitignoreHierarchy.MatchesPath(path) {
		ignored = true
	}
	if s.extraFiles != nil && s.extraFiles.MatchesPath(path) {
		ignored = true
	}
	if s.promptignoreLocal != nil {
		ignored = s.promptignoreLocal.MatchesPath(path)
	}
	if s.promptignoreGlobal != nil {
		ignored = s.promptignoreGlobal.MatchesPath(path)
	}
	return ignored
}

func matchPath(relPath string, isDir bool) string {
	if isDir && !strings.HasSuffix(relPath, "/") {
		return relPath + "/"
	}
	return relPath
}

func isHidden(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}

// loadGitignoreHierarchy walks root collecting every ".gitignore" file and
// rewrites its patterns to be scoped to the file's directory, then compiles
// the aggregate pattern set into a single matcher (an approximation of
// git's own nearest-directory-wins hierarchy, good enough for prompt
// generation — see DESIGN.md).
func loadGitignoreHierarchy(root string) *gitignore.GitIgnore {
	var allLines []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}
		dir, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil {
			return nil
		}
		dir = filepath.ToSlash(dir)
		if dir == "." {
			dir = ""
		}
		for _, line := range readLines(path) {
			allLines = append(allLines, scopeLine(line, dir))
		}
		return nil
	})
	if len(allLines) == 0 {
		return nil
	}
	gi, err := gitignore.CompileIgnoreLines(allLines...)
	if err != nil {
		log.Printf("ignore: compiling .gitignore hierarchy: %v", err)
		return nil
	}
	return gi
}

// scopeLine rewrites a single gitignore pattern line so it is anchored
// beneath dir (the directory the originating .gitignore file lives in).
// Comments and blank lines pass through unchanged (the compiler skips
// them); negation is preserved.
func scopeLine(line, dir string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || dir == "" {
		return line
	}
	negated := strings.HasPrefix(trimmed, "!")
	body := strings.TrimPrefix(trimmed, "!")
	if strings.HasPrefix(body, "/") {
		body = dir + body
	} else {
		body = dir + "/**/" + body
	}
	if negated {
		return "!" + body
	}
	return body
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
