// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

// Edge is one step of an upstream traversal: the output being visited
// and the downstream input it feeds. The first edge of a traversal has
// a nil Downstream, standing for the starting output itself.
type Edge struct {
	Upstream   *Output
	Downstream *Input
}

// EdgeIterator walks the edges upstream of an output, depth first,
// following each node's inputs in positional order. Traversal stops at
// subgraph boundaries. The iterator is single pass; create a fresh one
// for every traversal.
//
// Usage follows the scanner pattern:
//
//	it := output.TraverseUpstream()
//	for it.Next() {
//		edge := it.Current()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type EdgeIterator struct {
	upstream   *Output
	downstream *Input

	stack []edgeFrame

	// path holds the outputs on the current traversal path, for cycle
	// detection.
	path map[*Output]bool

	current Edge
	started bool
	done    bool
	err     error
}

type edgeFrame struct {
	output *Output
	index  int
}

func newEdgeIterator(output *Output) *EdgeIterator {
	return &EdgeIterator{
		upstream: output,
		path:     make(map[*Output]bool),
	}
}

// Next advances the iterator, reporting whether an edge is available.
// It returns false at the end of traversal or on a detected cycle;
// check Err to tell the two apart.
func (it *EdgeIterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		if it.upstream == nil {
			it.done = true
			return false
		}
		it.current = Edge{Upstream: it.upstream}
		return true
	}
	return it.advance()
}

// Current returns the edge most recently produced by Next.
func (it *EdgeIterator) Current() Edge { return it.current }

// Err returns the cycle error that terminated traversal, if any.
func (it *EdgeIterator) Err() error { return it.err }

func (it *EdgeIterator) advance() bool {
	// Descend into the current node's first input.
	if it.upstream != nil && it.upstream.Node.NumInputs() > 0 {
		it.stack = append(it.stack, edgeFrame{output: it.upstream})

		input := it.upstream.Node.InputAt(0)
		if output := input.Connection; output != nil && !output.Node.IsGraph() {
			return it.extendPathUpstream(output, input)
		}
	}

	for {
		if it.upstream != nil {
			it.returnPathDownstream(it.upstream)
		}

		if len(it.stack) == 0 {
			it.done = true
			return false
		}

		// Advance to our siblings.
		parent := &it.stack[len(it.stack)-1]
		for parent.index+1 < parent.output.Node.NumInputs() {
			parent.index++
			input := parent.output.Node.InputAt(parent.index)
			if output := input.Connection; output != nil && !output.Node.IsGraph() {
				return it.extendPathUpstream(output, input)
			}
		}

		// Exhausted this node; return to the parent's siblings.
		it.returnPathDownstream(parent.output)
		it.stack = it.stack[:len(it.stack)-1]
	}
}

func (it *EdgeIterator) extendPathUpstream(upstream *Output, downstream *Input) bool {
	if it.path[upstream] {
		it.err = errorf(ErrCycle, "encountered cycle at element %s.%s", upstream.Node.Name(), upstream.Name)
		it.done = true
		return false
	}

	it.path[upstream] = true
	it.upstream = upstream
	it.downstream = downstream
	it.current = Edge{Upstream: upstream, Downstream: downstream}
	return true
}

func (it *EdgeIterator) returnPathDownstream(upstream *Output) {
	delete(it.path, upstream)
	it.upstream = nil
	it.downstream = nil
}
