// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

// topologicalSort orders the interior nodes using Kahn's algorithm.
// Socket-driven inputs do not count towards in-degree; only edges
// between interior nodes do. Runs in O(numNodes + numEdges).
func (g *Graph) topologicalSort() error {
	inDegree := make(map[*Node]int, len(g.nodeMap))
	queue := make([]*Node, 0, len(g.nodeMap))

	for _, node := range g.nodeOrder {
		count := 0
		for _, input := range node.inputs {
			if input.Connection != nil && input.Connection.Node != &g.Node {
				count++
			}
		}
		inDegree[node] = count
		if count == 0 {
			queue = append(queue, node)
		}
	}

	order := make([]*Node, 0, len(g.nodeMap))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		// Decrease the in-degree of every downstream interior node,
		// enqueueing those that reach zero.
		for _, output := range node.outputs {
			for _, input := range output.Connections {
				if input.Node == &g.Node {
					continue
				}
				inDegree[input.Node]--
				if inDegree[input.Node] == 0 {
					queue = append(queue, input.Node)
				}
			}
		}
	}

	if len(order) != len(g.nodeMap) {
		for _, node := range g.nodeOrder {
			if inDegree[node] > 0 {
				return errorf(ErrCycle, "encountered a cycle in graph %q at node %q", g.Name(), node.Name())
			}
		}
		return errorf(ErrCycle, "encountered a cycle in graph %q", g.Name())
	}

	g.nodeOrder = order
	return nil
}
