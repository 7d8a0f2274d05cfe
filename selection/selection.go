// Package selection implements the selection engine: combining glob
// patterns with explicit per-path include/exclude actions under the
// precedence rules of §4.B.
package selection

import (
	"strings"
	"sync"

	"promptkit/hashutil"
	"promptkit/matcher"
	"promptkit/model"
)

// Engine is a pure function of its action log and pattern matchers, with a
// cache that must be invalidated wholesale on any mutation (§9 "Selection-
// engine cache").
type Engine struct {
	includeMatcher *matcher.Matcher
	excludeMatcher *matcher.Matcher

	mu      sync.Mutex
	actions []model.SelectionAction
	nextSeq int64
	cache   map[string]bool // keyed by hashutil.HashHex(relPath), not the raw path
}

// New builds an Engine from a Config's pattern lists and explicit sets.
// The explicit sets are converted to an action log: every explicit exclude,
// then every explicit include, each stamped with the next sequence number
// (map iteration order within each set). A path in both sets therefore
// resolves to include, and every Builder-supplied action is "earlier"
// (lower-timestamp) than any interactive mutation that follows session
// construction.
func New(cfg model.Config) *Engine {
	e := &Engine{
		includeMatcher: matcher.Compile(cfg.IncludePatterns),
		excludeMatcher: matcher.Compile(cfg.ExcludePatterns),
		cache:          map[string]bool{},
	}
	for p := range cfg.ExplicitExcludes {
		e.appendActionLocked(p, model.ActionExclude)
	}
	for p := range cfg.ExplicitIncludes {
		e.appendActionLocked(p, model.ActionInclude)
	}
	return e
}

func (e *Engine) appendActionLocked(path string, kind model.ActionKind) model.SelectionAction {
	path = normalizePath(path)
	a := model.SelectionAction{
		Path:        path,
		Kind:        kind,
		Timestamp:   e.nextSeq,
		Specificity: specificity(path),
	}
	e.nextSeq++
	e.actions = append(e.actions, a)
	return a
}

// RecordAction appends an explicit action (Session.select_file /
// deselect_file) and invalidates the decision cache wholesale.
func (e *Engine) RecordAction(path string, kind model.ActionKind) model.SelectionAction {
	e.mu.Lock()
	defer e.mu.Unlock()
	a := e.appendActionLocked(path, kind)
	e.cache = map[string]bool{}
	return a
}

// ClearActions drops the entire action log (Session.clear_user_actions) and
// invalidates the cache.
func (e *Engine) ClearActions() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actions = nil
	e.cache = map[string]bool{}
}

// HasActions reports whether any explicit action has been recorded
// (Session.has_user_actions).
func (e *Engine) HasActions() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.actions) > 0
}

// ExplicitActionLog returns a copy of every recorded explicit action, in
// recording order; a path acted on more than once appears once per action.
func (e *Engine) ExplicitActionLog() []model.SelectionAction {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.SelectionAction, len(e.actions))
	copy(out, e.actions)
	return out
}

// Decide implements §4.B's precedence: the most specific applicable
// explicit action wins (ties broken by latest timestamp); absent any
// explicit action, pattern logic decides. Decisions are memoized; any
// mutation via RecordAction/ClearActions invalidates the cache wholesale
// (§9).
func (e *Engine) Decide(relPath string) bool {
	relPath = normalizePath(relPath)
	key := hashutil.HashHex([]byte(relPath))

	e.mu.Lock()
	if v, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return v
	}
	actions := make([]model.SelectionAction, len(e.actions))
	copy(actions, e.actions)
	e.mu.Unlock()

	decision := decide(relPath, actions, e.includeMatcher, e.excludeMatcher)

	e.mu.Lock()
	e.cache[key] = decision
	e.mu.Unlock()
	return decision
}

func decide(relPath string, actions []model.SelectionAction, include, exclude *matcher.Matcher) bool {
	var winner *model.SelectionAction
	for i := range actions {
		a := &actions[i]
		if !isAncestorOrSelf(a.Path, relPath) {
			continue
		}
		if winner == nil {
			winner = a
			continue
		}
		if a.Specificity > winner.Specificity {
			winner = a
		} else if a.Specificity == winner.Specificity && a.Timestamp > winner.Timestamp {
			winner = a
		}
	}
	if winner != nil {
		return winner.Kind == model.ActionInclude
	}

	inc := !include.Empty() && include.Matches(relPath)
	exc := !exclude.Empty() && exclude.Matches(relPath)
	switch {
	case inc && exc:
		return false
	case inc:
		return true
	case exc:
		return false
	default:
		return include.Empty()
	}
}

// isAncestorOrSelf reports whether ancestor is relPath itself or a path
// component prefix of relPath.
func isAncestorOrSelf(ancestor, relPath string) bool {
	if ancestor == relPath {
		return true
	}
	return strings.HasPrefix(relPath, ancestor+"/")
}

func specificity(relPath string) int {
	if relPath == "" {
		return 0
	}
	return strings.Count(relPath, "/") + 1
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, "/")
	return p
}
