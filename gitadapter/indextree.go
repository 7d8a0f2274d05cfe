package gitadapter

import (
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// indexNode is an intermediate, in-memory representation of one level of
// the index's path hierarchy, built up from the flat index.Entry list
// before being written out as real tree objects.
type indexNode struct {
	blob     plumbing.Hash
	mode     filemode.FileMode
	isBlob   bool
	children map[string]*indexNode
}

func newIndexDir() *indexNode {
	return &indexNode{children: make(map[string]*indexNode)}
}

// buildIndexTree materializes the repository's current index as a real
// *object.Tree, writing the intermediate tree objects into the repo's
// object store (grounded on go-git's own worktree commit-building code,
// which assembles trees from flat entry lists the same way).
func buildIndexTree(repo *git.Repository) (*object.Tree, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, err
	}

	root := newIndexDir()
	for _, entry := range idx.Entries {
		insertIndexEntry(root, strings.Split(entry.Name, "/"), entry.Hash, entry.Mode)
	}

	rootHash, err := writeIndexNode(repo, root)
	if err != nil {
		return nil, err
	}
	return object.GetTree(repo.Storer, rootHash)
}

func insertIndexEntry(dir *indexNode, parts []string, hash plumbing.Hash, mode filemode.FileMode) {
	name := parts[0]
	if len(parts) == 1 {
		dir.children[name] = &indexNode{blob: hash, mode: mode, isBlob: true}
		return
	}
	child, ok := dir.children[name]
	if !ok || child.isBlob {
		child = newIndexDir()
		dir.children[name] = child
	}
	insertIndexEntry(child, parts[1:], hash, mode)
}

func writeIndexNode(repo *git.Repository, dir *indexNode) (plumbing.Hash, error) {
	names := make([]string, 0, len(dir.children))
	for name := range dir.children {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := &object.Tree{}
	for _, name := range names {
		child := dir.children[name]
		if child.isBlob {
			tree.Entries = append(tree.Entries, object.TreeEntry{Name: name, Mode: child.mode, Hash: child.blob})
			continue
		}
		childHash, err := writeIndexNode(repo, child)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		tree.Entries = append(tree.Entries, object.TreeEntry{Name: name, Mode: filemode.Dir, Hash: childHash})
	}

	obj := repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	return repo.Storer.SetEncodedObject(obj)
}
