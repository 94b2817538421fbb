// File: pkg/markdown/tree.go
package markdown

import (
	"fmt"
	"sort"
	"strings"

	"codecat/pkg/scan"
)

// treeNode is one directory or file in the rendered project tree.
type treeNode struct {
	name     string
	isDir    bool
	children map[string]*treeNode
}

// treeSection renders the included files as a connector-drawn tree.
// The tree is built from the scan result, not the filesystem, so the
// section stays a pure function of the result.
func treeSection(entries []scan.FileEntry) string {
	root := &treeNode{isDir: true, children: map[string]*treeNode{}}
	files := 0
	for _, entry := range entries {
		if entry.Status != scan.StatusIncluded {
			continue
		}
		root.insert(strings.Split(entry.RelPath, "/"))
		files++
	}
	if files == 0 {
		return ""
	}

	var b strings.Builder
	root.render(&b, "")
	tree := strings.TrimRight(b.String(), "\n")

	fence := scan.Fence(tree)
	return fmt.Sprintf("## Project Tree\n\n%s\n%s\n%s", fence, tree, fence)
}

func (n *treeNode) insert(segments []string) {
	if len(segments) == 0 {
		return
	}
	name := segments[0]
	child, ok := n.children[name]
	if !ok {
		child = &treeNode{name: name, isDir: len(segments) > 1, children: map[string]*treeNode{}}
		n.children[name] = child
	}
	if len(segments) > 1 {
		child.isDir = true
		child.insert(segments[1:])
	}
}

// render draws the node's children with box connectors, directories
// first, alphabetically within each group.
func (n *treeNode) render(b *strings.Builder, prefix string) {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, c := n.children[names[i]], n.children[names[j]]
		if a.isDir != c.isDir {
			return a.isDir
		}
		return strings.ToLower(a.name) < strings.ToLower(c.name)
	})

	for i, name := range names {
		connector := "├── "
		extension := "│   "
		if i == len(names)-1 {
			connector = "└── "
			extension = "    "
		}

		child := n.children[name]
		if child.isDir {
			fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, child.name)
			child.render(b, prefix+extension)
		} else {
			fmt.Fprintf(b, "%s%s%s\n", prefix, connector, child.name)
		}
	}
}
