package traversal

import (
	"os"
	"sort"
	"strings"

	"promptkit/model"
)

// insertPath inserts relPath's components into tree, deduping nodes by
// name at each level and preserving insertion order (§3 DirectoryTree,
// §4.E step 3).
func insertPath(root *model.TreeNode, relPath string, isDir bool, modTime int64) {
	current := root
	parts := strings.Split(relPath, "/")
	for i, part := range parts {
		last := i == len(parts)-1
		var child *model.TreeNode
		for _, c := range current.Children {
			if c.Name == part {
				child = c
				break
			}
		}
		if child == nil {
			child = &model.TreeNode{Name: part}
			current.Children = append(current.Children, child)
		}
		if last {
			child.IsDir = isDir
			child.ModTime = modTime
		} else {
			child.IsDir = true
		}
		current = child
	}
}

// sortTree recursively sorts tree's children per method (§4.E step 8).
// Every node is ordered by name, for date sorts as well (date_asc as
// name ascending, date_desc as name descending); node mtimes are not
// consulted (mirroring sort.rs's sort_tree_impl).
func sortTree(tree *model.TreeNode, method model.SortMethod) {
	if method == model.SortNone {
		return
	}
	ascending := method == model.SortNameAsc || method == model.SortDateAsc
	sort.SliceStable(tree.Children, func(i, j int) bool {
		if ascending {
			return tree.Children[i].Name < tree.Children[j].Name
		}
		return tree.Children[i].Name > tree.Children[j].Name
	})
	for _, c := range tree.Children {
		sortTree(c, method)
	}
}

// renderTree renders tree as indented UTF-8 box-drawing text (§4.E
// "Tree rendering", §6 "Tree format").
func renderTree(label string, tree *model.TreeNode) string {
	var b strings.Builder
	b.WriteString(label)
	b.WriteByte('\n')
	renderChildren(&b, tree, "")
	return strings.TrimRight(b.String(), "\n")
}

func renderChildren(b *strings.Builder, node *model.TreeNode, prefix string) {
	for i, c := range node.Children {
		last := i == len(node.Children)-1
		connector := "├── "
		nextPrefix := prefix + "│  "
		if last {
			connector = "└── "
			nextPrefix = prefix + "   "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(c.Name)
		b.WriteByte('\n')
		renderChildren(b, c, nextPrefix)
	}
}

// rootLabel resolves the tree's root label: the canonical root's file
// name, or a sentinel derived from the current directory if the path has
// no file-name component (§4.E "Tree rendering").
func rootLabel(canonicalRoot string) string {
	base := lastPathComponent(canonicalRoot)
	if base != "" {
		return base
	}
	if cwd, err := os.Getwd(); err == nil {
		if b := lastPathComponent(cwd); b != "" {
			return b
		}
	}
	return "."
}

func lastPathComponent(p string) string {
	p = strings.TrimRight(filepathToSlash(p), "/")
	if p == "" {
		return ""
	}
	idx := strings.LastIndexByte(p, '/')
	return p[idx+1:]
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
