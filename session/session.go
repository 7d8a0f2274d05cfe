// Package session implements the Session façade of §4.H: it owns a
// Config and a Selection engine, caches the results of traversal and git
// operations, and assembles and renders the final prompt.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"promptkit/gitadapter"
	"promptkit/model"
	"promptkit/selection"
	"promptkit/template"
	"promptkit/tokenizer"
	"promptkit/traversal"
)

// Session is a state-holding façade over one Config (§4.H). It is not
// safe for concurrent use by more than one goroutine at a time (§5
// "Scheduling model").
type Session struct {
	cfg       model.Config
	selection *selection.Engine
	templates *template.Registry

	codebase *model.CodebaseData

	gitDiff       *string
	gitDiffBranch *string
	gitLogBranch  *string
}

// New constructs a Session with no cached data (§4.H new(config)). It
// enforces §3's Config invariant that the root path exists — the check
// belongs here, at Session construction, rather than in Builder.Build,
// since one Config may be handed to several Sessions in turn (§5
// "Callers may drive multiple Sessions concurrently").
func New(cfg model.Config) (*Session, error) {
	if _, err := os.Stat(cfg.RootPath); err != nil {
		return nil, fmt.Errorf("session: root path %q: %w", cfg.RootPath, err)
	}
	return &Session{
		cfg:       cfg,
		selection: selection.New(cfg),
		templates: template.NewRegistry(),
	}, nil
}

// LoadCodebase runs the traversal pipeline and caches its result (§4.H
// load_codebase, wrapping §4.E).
func (s *Session) LoadCodebase() error {
	treeText, files, err := traversal.Build(s.cfg, s.selection)
	if err != nil {
		return fmt.Errorf("loading codebase: %w", err)
	}
	s.codebase = &model.CodebaseData{TreeText: treeText, Files: files}
	return nil
}

// HasCodebase reports whether LoadCodebase has succeeded.
func (s *Session) HasCodebase() bool {
	return s.codebase != nil
}

// LoadGitDiff loads the HEAD-vs-index diff, gated on
// cfg.DiffEnabled (§4.H load_git_diff, wrapping §4.F diff(repo)).
func (s *Session) LoadGitDiff() error {
	if !s.cfg.DiffEnabled {
		return nil
	}
	repo, err := gitadapter.Open(s.cfg.RootPath)
	if err != nil {
		return fmt.Errorf("loading git diff: %w", err)
	}
	diff, err := repo.Diff()
	if err != nil {
		return fmt.Errorf("loading git diff: %w", err)
	}
	s.gitDiff = &diff
	return nil
}

// LoadGitDiffBetweenBranches loads the diff between cfg.DiffBranches'
// From and To refs, gated on cfg.DiffBranches being set (§4.H
// load_git_diff_between_branches, wrapping §4.F diff_between).
func (s *Session) LoadGitDiffBetweenBranches() error {
	if s.cfg.DiffBranches == nil {
		return nil
	}
	repo, err := gitadapter.Open(s.cfg.RootPath)
	if err != nil {
		return fmt.Errorf("loading git diff between branches: %w", err)
	}
	diff, err := repo.DiffBetween(s.cfg.DiffBranches.From, s.cfg.DiffBranches.To)
	if err != nil {
		return fmt.Errorf("loading git diff between branches: %w", err)
	}
	s.gitDiffBranch = &diff
	return nil
}

// LoadGitLogBetweenBranches loads the commit log between cfg.LogBranches'
// From and To refs, gated on cfg.LogBranches being set (§4.H
// load_git_log_between_branches, wrapping §4.F log_between).
func (s *Session) LoadGitLogBetweenBranches() error {
	if s.cfg.LogBranches == nil {
		return nil
	}
	repo, err := gitadapter.Open(s.cfg.RootPath)
	if err != nil {
		return fmt.Errorf("loading git log between branches: %w", err)
	}
	logText, err := repo.LogBetween(s.cfg.LogBranches.From, s.cfg.LogBranches.To)
	if err != nil {
		return fmt.Errorf("loading git log between branches: %w", err)
	}
	s.gitLogBranch = &logText
	return nil
}

// BuildTemplateData assembles the template data object from cached state,
// substituting nulls for absent git fields (§4.H build_template_data).
// LoadCodebase must have succeeded first (§5 "Ordering guarantees").
func (s *Session) BuildTemplateData() (model.TemplateData, error) {
	if s.codebase == nil {
		return model.TemplateData{}, fmt.Errorf("building template data: codebase not loaded")
	}
	absRoot, err := filepath.Abs(s.cfg.RootPath)
	if err != nil {
		return model.TemplateData{}, fmt.Errorf("building template data: %w", err)
	}
	return model.TemplateData{
		AbsoluteCodePath: absRoot,
		SourceTree:       s.codebase.TreeText,
		Files:            s.codebase.Files,
		GitDiff:          s.gitDiff,
		GitDiffBranch:    s.gitDiffBranch,
		GitLogBranch:     s.gitLogBranch,
		UserVars:         s.cfg.UserVars,
	}, nil
}

// RenderPrompt chooses the template (custom if configured, else Markdown
// or XML per cfg.OutputFormat), renders it, counts tokens, and returns
// the rendered bundle (§4.H render_prompt).
func (s *Session) RenderPrompt(data model.TemplateData) (model.RenderedPrompt, error) {
	name, err := s.ensureTemplate()
	if err != nil {
		return model.RenderedPrompt{}, err
	}

	rendered, err := s.templates.Render(name, templateDataToMap(data))
	if err != nil {
		return model.RenderedPrompt{}, fmt.Errorf("rendering prompt: %w", err)
	}

	tokenCount, err := tokenizer.Count(rendered, s.cfg.TokenizerKind)
	if err != nil {
		return model.RenderedPrompt{}, fmt.Errorf("rendering prompt: %w", err)
	}

	return model.RenderedPrompt{
		Prompt:        rendered,
		TokenCount:    tokenCount,
		TokenFormat:   s.cfg.TokenFormat,
		ModelInfo:     tokenizer.Description(s.cfg.TokenizerKind),
		DirectoryName: filepath.Base(data.AbsoluteCodePath),
		FilePaths:     filePaths(data.Files),
	}, nil
}

// ensureTemplate registers (if needed) and returns the name of the
// template to render: the custom template if configured, else the
// embedded default matching cfg.OutputFormat (§4.H render_prompt
// "choose template").
func (s *Session) ensureTemplate() (string, error) {
	if s.cfg.CustomTemplate != "" {
		if err := s.templates.Setup(s.cfg.CustomTemplate, s.cfg.CustomTemplateName); err != nil {
			return "", fmt.Errorf("rendering prompt: %w", err)
		}
		return s.cfg.CustomTemplateName, nil
	}

	if err := s.templates.RegisterDefaults(); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	if s.cfg.OutputFormat == model.FormatXML {
		return template.NameDefaultXML, nil
	}
	return template.NameDefaultMarkdown, nil
}

func filePaths(files []model.FileRecord) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// SelectFile records an explicit include action on path (§4.H
// select_file). path may be absolute or relative; it is normalized to
// relative for storage.
func (s *Session) SelectFile(path string) {
	s.selection.RecordAction(s.normalize(path), model.ActionInclude)
}

// DeselectFile records an explicit exclude action on path (§4.H
// deselect_file).
func (s *Session) DeselectFile(path string) {
	s.selection.RecordAction(s.normalize(path), model.ActionExclude)
}

// IsFileSelected reports the current selection decision for path (§4.H
// is_file_selected).
func (s *Session) IsFileSelected(path string) bool {
	return s.selection.Decide(s.normalize(path))
}

// GetSelectedFiles returns the sorted paths of every file currently cached
// in the codebase (§4.H get_selected_files), as the FileRecords hold them:
// relative, or absolute when cfg.AbsolutePath is set. LoadCodebase must
// have succeeded first.
func (s *Session) GetSelectedFiles() []string {
	if s.codebase == nil {
		return nil
	}
	paths := filePaths(s.codebase.Files)
	sort.Strings(paths)
	return paths
}

// ClearUserActions discards every explicit selection action, reverting
// to pattern-only decisions (§4.H clear_user_actions).
func (s *Session) ClearUserActions() {
	s.selection.ClearActions()
}

// HasUserActions reports whether any explicit selection action has been
// recorded (§4.H has_user_actions).
func (s *Session) HasUserActions() bool {
	return s.selection.HasActions()
}

// normalize converts an absolute path under cfg.RootPath to a
// root-relative, slash-separated path; a path already relative is
// returned unchanged (§4.H "the session normalizes to relative for
// storage").
func (s *Session) normalize(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	absRoot, err := filepath.Abs(s.cfg.RootPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
