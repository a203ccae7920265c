// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/types"
)

// Graph is a flat, acyclic network of shader nodes built from a
// material document. It is itself a Node, so it can nest as a subgraph.
//
// Socket polarity is inverted at the boundary: a graph input socket is
// represented as an Output of the graph node (inside the graph it
// drives interior inputs) and a graph output socket as an Input. This
// lets one upstream walker serve ports and sockets alike.
type Graph struct {
	Node

	doc       *document.Document
	nodeMap   map[string]*Node
	nodeOrder []*Node

	// colorTransforms queues nodes whose output needs a color transform
	// inserted during finalization, keyed by node with the transform name.
	colorTransforms map[*Node]string
}

// NewGraph creates an empty graph bound to its source document. Most
// callers use FromNodeGraph or FromElement instead.
func NewGraph(name string, doc *document.Document) *Graph {
	g := &Graph{
		doc:             doc,
		nodeMap:         make(map[string]*Node),
		colorTransforms: make(map[*Node]string),
	}
	g.Node = Node{
		name:         name,
		inputMap:     make(map[string]*Input),
		outputMap:    make(map[string]*Output),
		usedClosures: make(map[*Node]struct{}),
		contextIDs:   make(map[int]struct{}),
		isGraph:      true,
	}
	return g
}

// Document returns the source document.
func (g *Graph) Document() *document.Document { return g.doc }

// AddInputSocket adds a graph input socket.
func (g *Graph) AddInputSocket(name string, t *types.TypeDesc) (*InputSocket, error) {
	return g.Node.AddOutput(name, t)
}

// AddOutputSocket adds a graph output socket.
func (g *Graph) AddOutputSocket(name string, t *types.TypeDesc) (*OutputSocket, error) {
	return g.Node.AddInput(name, t)
}

// InputSocket returns the named input socket, or nil.
func (g *Graph) InputSocket(name string) *InputSocket {
	return g.Node.OutputNamed(name)
}

// InputSockets returns the graph input sockets in declaration order.
func (g *Graph) InputSockets() []*InputSocket { return g.Node.Outputs() }

// OutputSocket returns the primary (first) output socket, or nil.
func (g *Graph) OutputSocket() *OutputSocket { return g.Node.InputAt(0) }

// OutputSocketNamed returns the named output socket, or nil.
func (g *Graph) OutputSocketNamed(name string) *OutputSocket {
	return g.Node.Input(name)
}

// OutputSockets returns the graph output sockets in declaration order.
func (g *Graph) OutputSockets() []*OutputSocket { return g.Node.Inputs() }

// RenameInputSocket renames a graph input socket.
func (g *Graph) RenameInputSocket(name, newName string) {
	g.Node.RenameOutput(name, newName)
}

// RenameOutputSocket renames a graph output socket.
func (g *Graph) RenameOutputSocket(name, newName string) {
	g.Node.RenameInput(name, newName)
}

// GetNode returns the interior node with the given name, or nil.
func (g *Graph) GetNode(name string) *Node { return g.nodeMap[name] }

// Nodes returns the interior nodes. After finalization the order is
// topological and is the emission order. The slice is shared; callers
// must not modify it.
func (g *Graph) Nodes() []*Node { return g.nodeOrder }

// NumNodes returns the interior node count.
func (g *Graph) NumNodes() int { return len(g.nodeMap) }

func (g *Graph) insertNode(n *Node) {
	g.nodeMap[n.name] = n
	g.nodeOrder = append(g.nodeOrder, n)
}

// disconnect breaks every connection to and from the node.
func (g *Graph) disconnect(n *Node) {
	for _, input := range n.inputs {
		input.Disconnect()
	}
	for _, output := range n.outputs {
		output.DisconnectAll()
	}
}

// finalize runs the lowering pipeline: optimization, color-transform
// insertion, topological ordering, scope analysis, name validation and
// closure tracking. After finalize the graph is frozen.
func (g *Graph) finalize(gen Generator) error {
	if err := g.optimize(); err != nil {
		return err
	}

	// Insert color transformation nodes where needed. Iterate the node
	// order so insertion order is deterministic.
	for _, node := range g.nodeOrder {
		transform, ok := g.colorTransforms[node]
		if !ok {
			continue
		}
		if err := g.addColorTransformNode(node.Output(), transform, gen); err != nil {
			return err
		}
	}
	g.colorTransforms = make(map[*Node]string)

	if err := g.topologicalSort(); err != nil {
		return err
	}

	g.calculateScopes()

	g.validateNames(gen.Syntax())

	// Track closure nodes used by each shader node.
	for _, node := range g.nodeOrder {
		if !node.HasClassification(ClassShader) {
			continue
		}
		it := node.Output().TraverseUpstream()
		for it.Next() {
			edge := it.Current()
			if edge.Upstream != nil && edge.Upstream.Node.HasClassification(ClassClosure) {
				node.usedClosures[edge.Upstream.Node] = struct{}{}
			}
		}
		if err := it.Err(); err != nil {
			return err
		}
	}

	return nil
}
