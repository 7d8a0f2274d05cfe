package gitadapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *git.Repository, name, content, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatal(err)
	}
	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Unix(0, 0)}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: sig}); err != nil {
		t.Fatal(err)
	}
}

func TestResolveRefBranch(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "one\n", "first")

	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	branchName := head.Name().Short()

	r := &Repository{repo: repo}
	commit, err := r.ResolveRef(branchName)
	if err != nil {
		t.Fatalf("ResolveRef(%q) error: %v", branchName, err)
	}
	if commit.Hash != head.Hash() {
		t.Errorf("resolved commit %s, want %s", commit.Hash, head.Hash())
	}
}

func TestResolveRefUnknownBranch(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "one\n", "first")

	r := &Repository{repo: repo}
	_, err := r.ResolveRef("does-not-exist")
	if err == nil {
		t.Fatal("expected an error for an unresolvable ref")
	}
	want := "Branch does-not-exist doesn't exist!"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestDiffBetweenTwoCommits(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "one\n", "first")
	commitFile(t, dir, repo, "a.txt", "one\ntwo\n", "second")

	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	branchName := head.Name().Short()

	r := &Repository{repo: repo}
	logIter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var commits []string
	_ = logIter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c.Hash.String())
		return nil
	})
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	firstCommit := commits[1]

	patch, err := r.DiffBetween(firstCommit, branchName)
	if err != nil {
		t.Fatalf("DiffBetween error: %v", err)
	}
	if patch == "" {
		t.Error("expected a non-empty patch between two differing commits")
	}
}

func TestLogBetweenExcludesBaseAncestry(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "one\n", "first commit")
	commitFile(t, dir, repo, "a.txt", "one\ntwo\n", "second commit")
	commitFile(t, dir, repo, "a.txt", "one\ntwo\nthree\n", "third commit")

	logIter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var commits []string
	_ = logIter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c.Hash.String())
		return nil
	})
	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}
	head := commits[0]
	first := commits[2]

	r := &Repository{repo: repo}
	logText, err := r.LogBetween(first, head)
	if err != nil {
		t.Fatalf("LogBetween error: %v", err)
	}
	if !contains(logText, "second commit") || !contains(logText, "third commit") {
		t.Errorf("expected second and third commits in log, got %q", logText)
	}
	if contains(logText, "first commit") {
		t.Errorf("did not expect first commit (the base) in log, got %q", logText)
	}
}

func TestDiffAgainstStagedIndex(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "one\n", "first commit")

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("a.txt"); err != nil {
		t.Fatal(err)
	}

	r := &Repository{repo: repo}
	patch, err := r.Diff()
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !contains(patch, "a.txt") {
		t.Errorf("expected patch to mention a.txt, got %q", patch)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
