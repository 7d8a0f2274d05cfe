package traversal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promptkit/model"
	"promptkit/selection"
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

func buildFor(t *testing.T, root string, configure func(*model.Builder)) (string, []model.FileRecord) {
	t.Helper()
	b := model.NewBuilder(root).WithNoPromptignore(true)
	if configure != nil {
		configure(b)
	}
	cfg := b.Build()
	engine := selection.New(cfg)
	treeText, files, err := Build(cfg, engine)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return treeText, files
}

func pathsOf(files []model.FileRecord) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestPatternInclusionScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lowercase", "foo.py"), "content foo.py")
	writeFile(t, filepath.Join(root, "lowercase", "qux.txt"), "content qux.txt")
	writeFile(t, filepath.Join(root, "uppercase", "FOO.py"), "CONTENT FOO.PY")

	_, files := buildFor(t, root, func(b *model.Builder) {
		b.WithIncludePatterns([]string{"*.py"})
	})
	paths := pathsOf(files)

	if !contains(paths, "lowercase/foo.py") {
		t.Errorf("expected lowercase/foo.py in %v", paths)
	}
	if !contains(paths, "uppercase/FOO.py") {
		t.Errorf("expected uppercase/FOO.py in %v", paths)
	}
	if contains(paths, "lowercase/qux.txt") {
		t.Errorf("did not expect lowercase/qux.txt in %v", paths)
	}
}

func TestExcludePrecedenceScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lowercase", "foo.py"), "content foo.py")
	writeFile(t, filepath.Join(root, "uppercase", "FOO.py"), "CONTENT FOO.PY")

	_, files := buildFor(t, root, func(b *model.Builder) {
		b.WithIncludePatterns([]string{"*.py"}).WithExcludePatterns([]string{"**/uppercase/*"})
	})
	paths := pathsOf(files)

	if len(paths) != 1 || paths[0] != "lowercase/foo.py" {
		t.Errorf("expected only lowercase/foo.py, got %v", paths)
	}
}

func TestBinaryRejectionScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "code.rs"), `fn main() { println!("Hi"); }`)
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	writeFile(t, filepath.Join(root, "image.png"), string(png))

	_, files := buildFor(t, root, nil)
	if len(files) != 1 {
		t.Fatalf("expected exactly one FileRecord, got %d: %v", len(files), pathsOf(files))
	}
	if !strings.HasSuffix(files[0].Path, "code.rs") {
		t.Errorf("expected the surviving file to be code.rs, got %s", files[0].Path)
	}
}

func TestEmptyRootYieldsSingleNodeTreeAndNoFiles(t *testing.T) {
	root := t.TempDir()
	treeText, files := buildFor(t, root, nil)
	if len(files) != 0 {
		t.Errorf("expected no files for an empty root, got %v", files)
	}
	if strings.Contains(treeText, "\n") {
		t.Errorf("expected a single-line (single-node) tree for an empty root, got %q", treeText)
	}
}

func TestBOMOnlyFileIsExcluded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bom.txt"), "\xEF\xBB\xBF")

	_, files := buildFor(t, root, nil)
	if len(files) != 0 {
		t.Errorf("expected BOM-only file to be excluded, got %v", pathsOf(files))
	}
}

func TestLineNumberingAndCodeblockWrap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package main\n")

	_, files := buildFor(t, root, func(b *model.Builder) {
		b.WithLineNumbers(true)
	})
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	want := "```go\n   1 | package main\n\n```"
	if files[0].WrappedCode != want {
		t.Errorf("wrapped code = %q, want %q", files[0].WrappedCode, want)
	}
}
