package hierarchy

import (
	"context"
	"fmt"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// Tree es una raíz con la lista plana de todos sus descendientes transitivos
// (forma "subCategories" de la API).
type Tree struct {
	Root        *entity.Category
	Descendants []*entity.Category
}

// Node es un nodo del árbol anidado padre -> hijos.
type Node struct {
	Category *entity.Category
	Children []*Node
}

// BuildTree arma, para cada raíz del owner, la lista plana de sus descendientes.
// Todas las raíces se expanden juntas: una consulta por nivel para todo el bosque.
func BuildTree(ctx context.Context, src TreeSource, ownerID string) ([]Tree, error) {
	f, err := loadForest(ctx, src, ownerID)
	if err != nil {
		return nil, err
	}
	trees := make([]Tree, len(f.roots))
	index := make(map[string]int, len(f.roots))
	for i, r := range f.roots {
		trees[i] = Tree{Root: r, Descendants: make([]*entity.Category, 0)}
		index[r.ID] = i
	}
	for _, c := range f.order {
		i := index[f.rootOf[c.ID]]
		trees[i].Descendants = append(trees[i].Descendants, c)
	}
	return trees, nil
}

// BuildNestedTree arma el árbol anidado real: cada nodo lleva solo sus hijos directos.
func BuildNestedTree(ctx context.Context, src TreeSource, ownerID string) ([]*Node, error) {
	f, err := loadForest(ctx, src, ownerID)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(f.roots))
	for _, r := range f.roots {
		nodes = append(nodes, f.node(r))
	}
	return nodes, nil
}

func loadForest(ctx context.Context, src TreeSource, ownerID string) (*forest, error) {
	roots, err := src.FindRoots(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("raíces: %w", err)
	}
	return expand(ctx, src, roots)
}

func (f *forest) node(c *entity.Category) *Node {
	kids := f.children[c.ID]
	n := &Node{Category: c, Children: make([]*Node, 0, len(kids))}
	for _, k := range kids {
		n.Children = append(n.Children, f.node(k))
	}
	return n
}
