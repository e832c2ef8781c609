// Package tree nests a flat category registry into a forest and
// finalizes cumulative medicine counts.
package tree

import (
	"errors"

	"github.com/tiendc/go-deepcopy"

	"github.com/lwei/drugtree/pkg/drugtree/models"
)

// ErrCyclicParent indicates the registry's parent links form a cycle,
// leaving part of the registry unreachable from any root.
var ErrCyclicParent = errors.New("cyclic category parent links")

// Assemble nests the flat category registry into a forest keyed by root
// code and replaces every category's direct medicine count with the
// cumulative count of its subtree. A category whose parent code is
// empty or absent from the registry becomes a root.
//
// The input registry is deep-copied first and never mutated, so
// assembling the same registry twice yields identical, independent
// forests.
func Assemble(flat map[string]*models.Category) (map[string]*models.Category, error) {
	nodes := make(map[string]*models.Category, len(flat))
	for code, cat := range flat {
		cp := &models.Category{}
		if err := deepcopy.Copy(cp, cat); err != nil {
			return nil, err
		}
		cp.Subcategories = map[string]*models.Category{}
		nodes[code] = cp
	}

	roots := make(map[string]*models.Category)
	for code, node := range nodes {
		parent, ok := nodes[node.ParentCode]
		if node.ParentCode != "" && ok {
			parent.Subcategories[code] = node
		} else {
			roots[code] = node
		}
	}

	// Every node hangs under at most one parent, so the subgraph
	// reachable from the roots is acyclic. A parent cycle strands its
	// members outside every root's subtree, which the visit count
	// detects.
	visited := 0
	for _, root := range roots {
		recount(root, &visited)
	}
	if visited != len(nodes) {
		return nil, ErrCyclicParent
	}
	return roots, nil
}

// recount finalizes counts post-order: a category's cumulative count is
// its direct count plus its children's cumulative counts.
func recount(node *models.Category, visited *int) int {
	*visited++
	total := node.MedicineCount
	for _, sub := range node.Subcategories {
		total += recount(sub, visited)
	}
	node.MedicineCount = total
	return total
}
