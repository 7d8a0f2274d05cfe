package model

// Config is an immutable snapshot of a session's settings, assembled by
// Builder (§3). The core never mutates a Config after construction.
type Config struct {
	RootPath string

	IncludePatterns []string
	ExcludePatterns []string

	ExplicitIncludes map[string]bool
	ExplicitExcludes map[string]bool

	LineNumbers      bool
	AbsolutePath     bool
	FollowSymlinks   bool
	IncludeHidden    bool
	IgnoreGitignore  bool
	NoPromptignore   bool
	NoCodeblockWrap  bool
	FullDirectoryTree bool
	TokenMapEnabled  bool
	DiffEnabled      bool

	SortMethod   SortMethod
	OutputFormat OutputFormat

	TokenizerKind TokenizerKind
	TokenFormat   TokenFormat

	DiffBranches *BranchPair
	LogBranches  *BranchPair

	CustomTemplate     string
	CustomTemplateName string

	ExtraIgnoreFiles []string
	UserVars         map[string]string
}

// Builder constructs a Config incrementally. Start one with NewBuilder: the
// zero value has nil maps, and WithExplicitInclude, WithExplicitExclude and
// WithUserVar panic on it.
type Builder struct {
	cfg Config
}

// NewBuilder starts a Builder rooted at rootPath. Neither NewBuilder nor
// Build checks that rootPath exists: a Config is a plain value that may
// be built once and handed to several Sessions (§5 "Callers may drive
// multiple Sessions concurrently"), so the existence check belongs at
// session.New, where the root-path-exists invariant (§3) is actually
// enforced.
func NewBuilder(rootPath string) *Builder {
	return &Builder{cfg: Config{
		RootPath:         rootPath,
		ExplicitIncludes: map[string]bool{},
		ExplicitExcludes: map[string]bool{},
		SortMethod:       SortNone,
		OutputFormat:     FormatMarkdown,
		TokenizerKind:    TokenizerCL100K,
		TokenFormat:      TokenFormatRaw,
		UserVars:         map[string]string{},
	}}
}

func (b *Builder) WithIncludePatterns(p []string) *Builder { b.cfg.IncludePatterns = p; return b }
func (b *Builder) WithExcludePatterns(p []string) *Builder { b.cfg.ExcludePatterns = p; return b }

func (b *Builder) WithExplicitInclude(relPath string) *Builder {
	b.cfg.ExplicitIncludes[relPath] = true
	return b
}

func (b *Builder) WithExplicitExclude(relPath string) *Builder {
	b.cfg.ExplicitExcludes[relPath] = true
	return b
}

func (b *Builder) WithLineNumbers(v bool) *Builder       { b.cfg.LineNumbers = v; return b }
func (b *Builder) WithAbsolutePath(v bool) *Builder       { b.cfg.AbsolutePath = v; return b }
func (b *Builder) WithFollowSymlinks(v bool) *Builder     { b.cfg.FollowSymlinks = v; return b }
func (b *Builder) WithIncludeHidden(v bool) *Builder      { b.cfg.IncludeHidden = v; return b }
func (b *Builder) WithIgnoreGitignore(v bool) *Builder    { b.cfg.IgnoreGitignore = v; return b }
func (b *Builder) WithNoPromptignore(v bool) *Builder     { b.cfg.NoPromptignore = v; return b }
func (b *Builder) WithNoCodeblockWrap(v bool) *Builder    { b.cfg.NoCodeblockWrap = v; return b }
func (b *Builder) WithFullDirectoryTree(v bool) *Builder  { b.cfg.FullDirectoryTree = v; return b }
func (b *Builder) WithTokenMapEnabled(v bool) *Builder    { b.cfg.TokenMapEnabled = v; return b }
func (b *Builder) WithDiffEnabled(v bool) *Builder        { b.cfg.DiffEnabled = v; return b }

func (b *Builder) WithSortMethod(m SortMethod) *Builder     { b.cfg.SortMethod = m; return b }
func (b *Builder) WithOutputFormat(f OutputFormat) *Builder { b.cfg.OutputFormat = f; return b }
func (b *Builder) WithTokenizerKind(k TokenizerKind) *Builder { b.cfg.TokenizerKind = k; return b }
func (b *Builder) WithTokenFormat(f TokenFormat) *Builder   { b.cfg.TokenFormat = f; return b }

func (b *Builder) WithDiffBranches(p BranchPair) *Builder { b.cfg.DiffBranches = &p; return b }
func (b *Builder) WithLogBranches(p BranchPair) *Builder  { b.cfg.LogBranches = &p; return b }

func (b *Builder) WithCustomTemplate(name, source string) *Builder {
	b.cfg.CustomTemplateName = name
	b.cfg.CustomTemplate = source
	return b
}

func (b *Builder) WithExtraIgnoreFiles(files []string) *Builder {
	b.cfg.ExtraIgnoreFiles = files
	return b
}

func (b *Builder) WithUserVar(key, value string) *Builder {
	b.cfg.UserVars[key] = value
	return b
}

// Build finalizes the Config. It does not copy the explicit-set maps or
// UserVars further; callers should stop mutating the Builder once Build is
// called.
func (b *Builder) Build() Config {
	return b.cfg
}
