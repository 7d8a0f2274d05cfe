// Package gitadapter implements the three git operations of §4.F: a
// working-tree diff, a ref-to-ref diff, and a ref-to-ref commit log,
// each returned as plain text.
package gitadapter

import (
	"bytes"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps a go-git repository opened at a filesystem path
// (grounded on ivcs/internal/gitio/gitio.go's Repository/Open).
type Repository struct {
	repo *git.Repository
}

// Open opens an existing git repository at repoPath.
func Open(repoPath string) (*Repository, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return &Repository{repo: repo}, nil
}

// ResolveRef resolves "HEAD", a branch name, a tag name, or a full/abbreviated
// commit hash to a commit object, in that order (§4.F, ivcs's ResolveRef
// chain generalized to also accept HEAD).
func (r *Repository) ResolveRef(refName string) (*object.Commit, error) {
	if refName == "HEAD" {
		head, err := r.repo.Head()
		if err == nil {
			return r.repo.CommitObject(head.Hash())
		}
	}
	if ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(refName), true); err == nil {
		return r.repo.CommitObject(ref.Hash())
	}
	if ref, err := r.repo.Reference(plumbing.NewTagReferenceName(refName), true); err == nil {
		return r.repo.CommitObject(ref.Hash())
	}
	if hash, err := r.repo.ResolveRevision(plumbing.Revision(refName)); err == nil {
		if commit, err := r.repo.CommitObject(*hash); err == nil {
			return commit, nil
		}
	}
	return nil, fmt.Errorf("Branch %s doesn't exist!", refName)
}

// Diff returns the diff between HEAD's tree and the current index, as
// unified-patch text (§4.F diff(repo)). Unlike git2's DiffOptions used by
// the original implementation, go-git's tree differ has no whitespace-
// insensitive mode, so whitespace-only changes are not filtered here
// (documented approximation, see DESIGN.md).
func (r *Repository) Diff() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("loading HEAD commit: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return "", fmt.Errorf("loading HEAD tree: %w", err)
	}

	indexTree, err := buildIndexTree(r.repo)
	if err != nil {
		return "", fmt.Errorf("building index tree: %w", err)
	}

	changes, err := headTree.Diff(indexTree)
	if err != nil {
		return "", fmt.Errorf("diffing HEAD against index: %w", err)
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("generating patch: %w", err)
	}
	return patch.String(), nil
}

// DiffBetween returns the diff between two references, resolved via
// ResolveRef's chain (§4.F diff_between(repo, a, b)).
func (r *Repository) DiffBetween(a, b string) (string, error) {
	commitA, err := r.ResolveRef(a)
	if err != nil {
		return "", err
	}
	commitB, err := r.ResolveRef(b)
	if err != nil {
		return "", err
	}

	treeA, err := commitA.Tree()
	if err != nil {
		return "", fmt.Errorf("loading tree for %s: %w", a, err)
	}
	treeB, err := commitB.Tree()
	if err != nil {
		return "", fmt.Errorf("loading tree for %s: %w", b, err)
	}

	changes, err := treeA.Diff(treeB)
	if err != nil {
		return "", fmt.Errorf("diffing %s..%s: %w", a, b, err)
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("generating patch for %s..%s: %w", a, b, err)
	}
	return patch.String(), nil
}

// LogBetween returns the commit log walking from b back to a, excluding
// commits reachable from a, one-per-commit (§4.F log_between(repo, a, b)).
func (r *Repository) LogBetween(a, b string) (string, error) {
	commitA, err := r.ResolveRef(a)
	if err != nil {
		return "", err
	}
	commitB, err := r.ResolveRef(b)
	if err != nil {
		return "", err
	}

	ancestorsOfA, err := ancestorSet(commitA)
	if err != nil {
		return "", fmt.Errorf("walking ancestry of %s: %w", a, err)
	}

	var buf bytes.Buffer
	iter := object.NewCommitPreorderIter(commitB, nil, nil)
	walkErr := iter.ForEach(func(c *object.Commit) error {
		if c.Hash == commitA.Hash || ancestorsOfA[c.Hash] {
			return nil
		}
		fmt.Fprintf(&buf, "commit %s\nAuthor: %s\nDate:   %s\n\n    %s\n\n",
			c.Hash.String(), c.Author.String(), c.Author.When.String(), firstLine(c.Message))
		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("walking log %s..%s: %w", a, b, walkErr)
	}
	return buf.String(), nil
}

func ancestorSet(commit *object.Commit) (map[plumbing.Hash]bool, error) {
	set := map[plumbing.Hash]bool{commit.Hash: true}
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err := iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = true
		return nil
	})
	return set, err
}

func firstLine(message string) string {
	for i, r := range message {
		if r == '\n' {
			return message[:i]
		}
	}
	return message
}
