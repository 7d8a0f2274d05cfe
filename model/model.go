// Package model holds the shared data types that flow between the
// selection, traversal, tokenizer, git, template, and session packages.
package model

import "strconv"

// SortMethod controls ordering of files and directory-tree nodes.
type SortMethod int

const (
	SortNone SortMethod = iota
	SortNameAsc
	SortNameDesc
	SortDateAsc
	SortDateDesc
)

// wire name <-> SortMethod, per spec §6 "Sort-method wire names".
var sortWireNames = map[string]SortMethod{
	"":          SortNone,
	"name_asc":  SortNameAsc,
	"name_desc": SortNameDesc,
	"date_asc":  SortDateAsc,
	"date_desc": SortDateDesc,
}

// ParseSortMethod resolves a wire name to a SortMethod. An unrecognized
// name is a configuration error.
func ParseSortMethod(name string) (SortMethod, error) {
	m, ok := sortWireNames[name]
	if !ok {
		return SortNone, &ConfigError{Field: "sort_method", Value: name}
	}
	return m, nil
}

// OutputFormat selects both the default template and the final wrap shape.
type OutputFormat int

const (
	FormatMarkdown OutputFormat = iota
	FormatJSON
	FormatXML
)

// ParseOutputFormat resolves a wire name (with the "md" alias) to an
// OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatMarkdown, &ConfigError{Field: "output_format", Value: name}
	}
}

// TokenFormat selects how RenderedPrompt.FormattedTokenCount renders its count.
type TokenFormat int

const (
	TokenFormatRaw TokenFormat = iota
	TokenFormatLocalized
)

// TokenizerKind names one of the five supported BPE encodings (§4.D).
type TokenizerKind int

const (
	TokenizerO200K TokenizerKind = iota
	TokenizerCL100K
	TokenizerP50K
	TokenizerP50KEdit
	TokenizerR50K
)

// ParseTokenizerKind resolves a wire name to a TokenizerKind; "gpt2" is an
// alias of r50k per spec §6.
func ParseTokenizerKind(name string) (TokenizerKind, error) {
	switch name {
	case "o200k":
		return TokenizerO200K, nil
	case "cl100k":
		return TokenizerCL100K, nil
	case "p50k":
		return TokenizerP50K, nil
	case "p50k_edit":
		return TokenizerP50KEdit, nil
	case "r50k", "gpt2":
		return TokenizerR50K, nil
	default:
		return 0, &ConfigError{Field: "tokenizer", Value: name}
	}
}

// ConfigError reports an invalid configuration value (§7 Configuration error).
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return "invalid " + e.Field + ": " + e.Value
}

// BranchPair names two git references for a ref-to-ref diff or log (§3, §4.F).
type BranchPair struct {
	From string
	To   string
}

// ActionKind is the kind of an explicit SelectionAction.
type ActionKind int

const (
	ActionInclude ActionKind = iota
	ActionExclude
)

// SelectionAction is an explicit, timestamped user override on one path (§3).
type SelectionAction struct {
	Path        string
	Kind        ActionKind
	Timestamp   int64
	Specificity int
}

// Metadata describes non-content facts about a FileRecord's origin path.
type Metadata struct {
	IsDir     bool
	IsSymlink bool
}

// FileRecord is the per-included-file unit produced by the traversal
// pipeline (§3, §4.E) and exposed to templates (§6).
type FileRecord struct {
	Path         string
	Extension    string
	WrappedCode  string
	Metadata     Metadata
	ModTime      *int64
	TokenCount   *int
}

// TreeNode is one named node of a DirectoryTree (§3). Children are unique
// by name within a node and preserve insertion order unless sorted.
type TreeNode struct {
	Name     string
	IsDir    bool
	ModTime  int64
	Children []*TreeNode
}

// CodebaseData is the cached result of Session.LoadCodebase (§3).
type CodebaseData struct {
	TreeText string
	Files    []FileRecord
}

// TemplateData is the per-render data object handed to the template engine
// (§3, §6). User-defined variables are merged in at render time by Session.
type TemplateData struct {
	AbsoluteCodePath string
	SourceTree       string
	Files            []FileRecord
	GitDiff          *string
	GitDiffBranch    *string
	GitLogBranch     *string
	UserVars         map[string]string
}

// RenderedPrompt is the final output bundle of Session.RenderPrompt (§3).
type RenderedPrompt struct {
	Prompt        string
	TokenCount    int
	TokenFormat   TokenFormat
	ModelInfo     string
	DirectoryName string
	FilePaths     []string
}

// FormattedTokenCount renders TokenCount per TokenFormat (§4.D expansion in
// SPEC_FULL.md): Raw is the plain decimal, Localized groups by thousands.
func (r RenderedPrompt) FormattedTokenCount() string {
	if r.TokenFormat == TokenFormatRaw {
		return strconv.Itoa(r.TokenCount)
	}
	return groupThousands(r.TokenCount)
}

// groupThousands inserts comma separators every three digits. No locale
// library in the retrieval pack covers this (see DESIGN.md), so grouping
// is hand-rolled rather than translated.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := parts[0]
	for _, p := range parts[1:] {
		out += "," + p
	}
	if neg {
		out = "-" + out
	}
	return out
}
