package usecase

import (
	"sort"
	"strings"

	"xray/internal/domain"
)

// treeNode collects the modules of one directory while files are visited in
// any order. Conversion to the domain types sorts everything by name.
type treeNode struct {
	name        string
	description string
	modules     []domain.Module
	children    map[string]*treeNode
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, children: make(map[string]*treeNode)}
}

// dir returns the node for a slash separated path relative to n, creating
// intermediate nodes. "." is n itself.
func (n *treeNode) dir(rel string) *treeNode {
	if rel == "." || rel == "" {
		return n
	}
	node := n
	for _, part := range strings.Split(rel, "/") {
		child, ok := node.children[part]
		if !ok {
			child = newTreeNode(part)
			node.children[part] = child
		}
		node = child
	}
	return node
}

func (n *treeNode) root() domain.Root {
	p := n.pkg()
	return domain.Root{
		Name:        p.Name,
		Description: p.Description,
		Packages:    p.Packages,
		Modules:     p.Modules,
	}
}

func (n *treeNode) pkg() domain.Package {
	p := domain.Package{
		Name:        n.name,
		Description: n.description,
		Modules:     n.modules,
	}
	sort.SliceStable(p.Modules, func(i, j int) bool {
		return p.Modules[i].Name < p.Modules[j].Name
	})

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.Packages = append(p.Packages, n.children[name].pkg())
	}
	return p
}

func countTree(stats *domain.ParseStats, packages []domain.Package, modules []domain.Module) {
	for _, m := range modules {
		stats.Modules++
		stats.Classes += len(m.Classes)
		stats.Functions += len(m.Functions)
		for _, c := range m.Classes {
			stats.Functions += len(c.Methods)
		}
	}
	for _, p := range packages {
		stats.Packages++
		countTree(stats, p.Packages, p.Modules)
	}
}
