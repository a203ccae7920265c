// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

// ifElseFullMask is the full condition mask carried by compare nodes.
const ifElseFullMask = 0x12

// calculateScopes tags every node with its conditional dependency,
// walking the topological order in reverse so each node is visited
// after everything that depends on it.
func (g *Graph) calculateScopes() {
	if len(g.nodeOrder) == 0 {
		return
	}

	lastNode := g.nodeOrder[len(g.nodeOrder)-1]
	lastNode.scope.Type = ScopeGlobal

	nodeUsed := make(map[*Node]bool, len(g.nodeOrder))
	nodeUsed[lastNode] = true

	for nodeIndex := len(g.nodeOrder) - 1; nodeIndex >= 0; nodeIndex-- {
		node := g.nodeOrder[nodeIndex]

		// A node's scope is final once every dependent has been visited;
		// nodes never reached stay unknown and untouched.
		if !nodeUsed[node] {
			continue
		}

		isIfElse := node.HasClassification(ClassIfElse)
		isSwitch := node.HasClassification(ClassSwitch)
		currentScope := node.scope

		for inputIndex, input := range node.inputs {
			if input.Connection == nil {
				continue
			}
			upstreamNode := input.Connection.Node

			// Conditional branches narrow the scope for this network arm.
			newScope := currentScope
			if isIfElse && (inputIndex == 2 || inputIndex == 3) {
				newScope.AdjustAtConditionalInput(node, inputIndex, ifElseFullMask)
			} else if isSwitch {
				fullMask := uint32(1<<len(node.inputs)) - 1
				newScope.AdjustAtConditionalInput(node, inputIndex, fullMask)
			}

			upstreamNode.scope.Merge(newScope)
			nodeUsed[upstreamNode] = true
		}
	}
}
