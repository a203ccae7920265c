package document

// Edge is one upstream dependency discovered during traversal. Upstream
// drives Downstream; Connecting is the input or binding element that
// spells the connection, when one exists.
type Edge struct {
	Upstream   Element
	Connecting Element
	Downstream Element
}

// TraverseGraph walks the upstream dependency graph rooted at the given
// element and returns its edges in depth-first order. The material
// argument is accepted but not consulted: shader-reference bindings
// resolve through the shader reference's own document.
//
// Each element is expanded once, so traversal terminates on documents
// that spell a cycle; the cyclic edge itself is still reported and left
// for the graph finalizer to reject.
func TraverseGraph(root Element, material *Material) []Edge {
	t := traversal{expanded: make(map[Element]bool)}
	t.expand(root)
	return t.edges
}

type traversal struct {
	edges    []Edge
	expanded map[Element]bool
}

func (t *traversal) expand(elem Element) {
	if elem == nil || t.expanded[elem] {
		return
	}
	t.expanded[elem] = true

	switch e := elem.(type) {
	case *Output:
		if node := e.ConnectedNode(); node != nil {
			t.visit(node, nil, e)
		}

	case *Node:
		for _, in := range e.Inputs {
			if in.NodeName == "" {
				continue
			}
			if upstream := e.sibling(in.NodeName); upstream != nil {
				t.visit(upstream, in, e)
			}
		}

	case *ShaderRef:
		for _, bind := range e.BindInputs {
			if out := bind.ConnectedOutput(); out != nil {
				t.visit(out, bind, e)
			}
		}
	}
}

func (t *traversal) visit(upstream Element, connecting Element, downstream Element) {
	t.edges = append(t.edges, Edge{
		Upstream:   upstream,
		Connecting: connecting,
		Downstream: downstream,
	})
	t.expand(upstream)
}
