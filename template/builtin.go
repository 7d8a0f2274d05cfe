package template

import "sync"

// Builtin describes one entry in the builtin template library (§4.G "A
// library of named builtin templates ... is exposed as a static keyed
// map").
type Builtin struct {
	DisplayName string
	Content     string
	Description string
}

var (
	builtinOnce sync.Once
	builtins    map[string]Builtin
)

// Builtins returns the process-wide, immutable-after-first-access builtin
// template map (§4.H "Shared resources").
func Builtins() map[string]Builtin {
	builtinOnce.Do(func() {
		builtins = map[string]Builtin{
			"ctf-solver": {
				DisplayName: "CTF Solver",
				Description: "Analyze the codebase for a capture-the-flag challenge and propose an exploitation path",
				Content: "You are given the following codebase, believed to be a CTF challenge.\n\n" +
					"{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Identify the vulnerability class, the likely entry point, and a concrete path to the flag.",
			},
			"fix-bugs": {
				DisplayName: "Fix Bugs",
				Description: "Find and fix bugs in the codebase",
				Content: "You are given the following codebase:\n\n{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Find any bugs in the code above and propose fixes, with a brief explanation for each.",
			},
			"refactor": {
				DisplayName: "Refactor",
				Description: "Refactor the codebase for clarity and maintainability",
				Content: "You are given the following codebase:\n\n{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Refactor the code above for clarity and maintainability without changing its behavior.",
			},
			"write-readme": {
				DisplayName: "Write README",
				Description: "Generate a README for the codebase",
				Content: "You are given the following codebase:\n\n{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Write a README.md for this project describing its purpose, setup, and usage.",
			},
			"clean-up-code": {
				DisplayName: "Clean Up Code",
				Description: "Clean up dead code, unused imports, and inconsistent style",
				Content: "You are given the following codebase:\n\n{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Clean up the code above: remove dead code and unused imports, and make style consistent.",
			},
			"document-code": {
				DisplayName: "Document Code",
				Description: "Add documentation comments to the codebase",
				Content: "You are given the following codebase:\n\n{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Add documentation comments to the code above, matching the density and style already present.",
			},
			"write-git-commit": {
				DisplayName: "Write Git Commit",
				Description: "Generate a commit message from a diff",
				Content:     "You are given the following git diff:\n\n```diff\n{{{git_diff}}}\n```\n\nWrite a concise commit message describing this change.",
			},
			"find-security-vulnerabilities": {
				DisplayName: "Find Security Vulnerabilities",
				Description: "Audit the codebase for security vulnerabilities",
				Content: "You are given the following codebase:\n\n{{source_tree}}\n\n{{#files}}`{{path}}`:\n\n{{{code}}}\n\n{{/files}}\n\n" +
					"Audit the code above for security vulnerabilities and describe how each could be exploited.",
			},
		}
	})
	return builtins
}
