package session

import (
	"os"
	"path/filepath"
	"testing"

	"promptkit/model"
	"promptkit/tokenizer"
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

func newTestSession(t *testing.T, root string, configure func(*model.Builder)) *Session {
	t.Helper()
	b := model.NewBuilder(root).WithNoPromptignore(true)
	if configure != nil {
		configure(b)
	}
	s, err := New(b.Build())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRenderPromptTokenCountInvariant(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")

	s := newTestSession(t, root, func(b *model.Builder) {
		b.WithIncludePatterns([]string{"*.go"})
	})
	if err := s.LoadCodebase(); err != nil {
		t.Fatalf("LoadCodebase: %v", err)
	}
	if err := s.LoadGitDiff(); err != nil {
		t.Fatalf("LoadGitDiff: %v", err)
	}
	data, err := s.BuildTemplateData()
	if err != nil {
		t.Fatalf("BuildTemplateData: %v", err)
	}
	if data.GitDiff != nil {
		t.Errorf("expected nil GitDiff with diff disabled, got %v", *data.GitDiff)
	}

	prompt, err := s.RenderPrompt(data)
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}

	want, err := tokenizer.Count(prompt.Prompt, model.TokenizerCL100K)
	if err != nil {
		t.Fatalf("tokenizer.Count: %v", err)
	}
	if prompt.TokenCount != want {
		t.Errorf("TokenCount = %d, want %d", prompt.TokenCount, want)
	}
}

func TestNewRejectsMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := New(model.NewBuilder(root).Build()); err == nil {
		t.Fatal("expected New to reject a nonexistent root path")
	}
}

func TestBuildTemplateDataBeforeLoadCodebaseFails(t *testing.T) {
	root := t.TempDir()
	s := newTestSession(t, root, nil)
	if _, err := s.BuildTemplateData(); err == nil {
		t.Fatal("expected an error building template data before LoadCodebase")
	}
}

func TestSelectionHelpersNormalizeAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "content")

	s := newTestSession(t, root, nil)
	abs := filepath.Join(root, "a.txt")

	if !s.IsFileSelected(abs) {
		t.Fatal("expected a.txt to be selected by default with no include patterns configured")
	}

	s.DeselectFile(abs)
	if s.IsFileSelected("a.txt") {
		t.Error("expected a.txt to be unselected after DeselectFile(abs path)")
	}
	if !s.HasUserActions() {
		t.Error("expected HasUserActions to be true after DeselectFile")
	}

	s.SelectFile("a.txt")
	if !s.IsFileSelected(abs) {
		t.Error("expected a.txt to be selected again after a later SelectFile")
	}

	s.ClearUserActions()
	if s.HasUserActions() {
		t.Error("expected HasUserActions to be false after ClearUserActions")
	}
	if !s.IsFileSelected(abs) {
		t.Error("expected a.txt to fall back to the default pattern decision (selected) after clearing actions")
	}
}

func TestGetSelectedFilesReflectsLoadedCodebase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "a")
	writeFile(t, filepath.Join(root, "b.py"), "b")

	s := newTestSession(t, root, func(b *model.Builder) {
		b.WithIncludePatterns([]string{"*.py"})
	})
	if err := s.LoadCodebase(); err != nil {
		t.Fatalf("LoadCodebase: %v", err)
	}

	got := s.GetSelectedFiles()
	if len(got) != 2 || got[0] != "a.py" || got[1] != "b.py" {
		t.Errorf("GetSelectedFiles = %v, want [a.py b.py]", got)
	}
}

func TestRenderPromptUsesXMLDefaultForXMLOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package main\n")

	s := newTestSession(t, root, func(b *model.Builder) {
		b.WithIncludePatterns([]string{"*.go"}).WithOutputFormat(model.FormatXML)
	})
	if err := s.LoadCodebase(); err != nil {
		t.Fatalf("LoadCodebase: %v", err)
	}
	data, err := s.BuildTemplateData()
	if err != nil {
		t.Fatalf("BuildTemplateData: %v", err)
	}
	prompt, err := s.RenderPrompt(data)
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}
	if len(prompt.Prompt) == 0 {
		t.Fatal("expected a non-empty rendered prompt")
	}
	if prompt.Prompt[0] != '<' {
		t.Errorf("expected XML-rendered prompt to start with '<', got %q", prompt.Prompt[:1])
	}
}
