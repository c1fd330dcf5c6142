package ast

// Walker exposes the ancestry of the node currently being visited.
type Walker interface {
	// Ancestors returns the nodes between the traversal root and the
	// current node, root first, nearest ancestor last. The slice is a
	// copy; callers may keep it.
	Ancestors() []Node

	// Parent returns the nearest ancestor, or nil at the root.
	Parent() Node
}

// Visitor receives each node of a traversal in pre-order. The returned
// visitor is used for the node's children; returning nil skips the subtree.
// That is the only cancellation mechanism: siblings and the rest of the
// tree are still visited.
type Visitor interface {
	Visit(w Walker, n Node) Visitor
}

// VisitorFunc adapts a function to the Visitor interface. The function is
// reused for all descendants unless it returns a different visitor.
type VisitorFunc func(Walker, Node)

func (f VisitorFunc) Visit(w Walker, n Node) Visitor {
	f(w, n)
	return f
}

// Visit drives a depth-first pre-order traversal of n, calling v for every
// node. Child order matches declaration order, so repeated traversals of
// the same tree see the same sequence.
func Visit(v Visitor, n Node) {
	w := &walker{}
	w.visit(v, n)
}

type walker struct {
	ancestors []Node
}

func (w *walker) Ancestors() []Node {
	out := make([]Node, len(w.ancestors))
	copy(out, w.ancestors)
	return out
}

func (w *walker) Parent() Node {
	if len(w.ancestors) == 0 {
		return nil
	}
	return w.ancestors[len(w.ancestors)-1]
}

func (w *walker) visit(v Visitor, n Node) {
	next := v.Visit(w, n)
	if next == nil {
		return
	}
	w.ancestors = append(w.ancestors, n)
	n.forEachChild(func(c Node) {
		w.visit(next, c)
	})
	w.ancestors = w.ancestors[:len(w.ancestors)-1]
}
