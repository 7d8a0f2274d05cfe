package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"promptkit/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHiddenFilePolicy(t *testing.T) {
	root := t.TempDir()
	cfg := model.NewBuilder(root).WithNoPromptignore(true).Build()
	s := Load(cfg, root)
	if !s.ShouldIgnore(".env", false) {
		t.Errorf("expected dotfile to be ignored when IncludeHidden is false")
	}

	cfg2 := model.NewBuilder(root).WithNoPromptignore(true).WithIncludeHidden(true).Build()
	s2 := Load(cfg2, root)
	if s2.ShouldIgnore(".env", false) {
		t.Errorf("expected dotfile not ignored when IncludeHidden is true")
	}
}

func TestGitignoreHierarchy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "keepme.log\n!keepme.log\n")

	cfg := model.NewBuilder(root).WithNoPromptignore(true).Build()
	s := Load(cfg, root)
	if !s.ShouldIgnore("app.log", false) {
		t.Errorf("expected app.log ignored by root .gitignore")
	}
}

func TestPromptignoreLocalOverridesGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(root, ".promptignore"), "!*.log\n")

	cfg := model.NewBuilder(root).Build()
	s := Load(cfg, root)
	if s.ShouldIgnore("app.log", false) {
		t.Errorf("expected .promptignore negation to override .gitignore exclusion")
	}
}

func TestNoPromptignoreDisablesBothPromptignoreSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".promptignore"), "secret.txt\n")

	cfg := model.NewBuilder(root).WithNoPromptignore(true).Build()
	s := Load(cfg, root)
	if s.ShouldIgnore("secret.txt", false) {
		t.Errorf("expected .promptignore to be disabled by NoPromptignore")
	}
}

func TestExtraIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	extra := filepath.Join(root, ".dockerignore")
	writeFile(t, extra, "build/\n")

	cfg := model.NewBuilder(root).WithNoPromptignore(true).WithExtraIgnoreFiles([]string{extra}).Build()
	s := Load(cfg, root)
	if !s.ShouldIgnore("build/out.bin", false) {
		t.Errorf("expected extra_ignore_files pattern to exclude build/out.bin")
	}
}
