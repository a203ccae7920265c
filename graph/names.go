// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

// validateNames gives sockets and node outputs identifiers that are
// legal in the target language and unique across the graph, so emitted
// variable names never collide.
func (g *Graph) validateNames(syntax Syntax) {
	uniqueNames := make(map[string]int)

	for _, socket := range g.InputSockets() {
		name := syntax.MakeUnique(socket.Name, uniqueNames)
		g.RenameInputSocket(socket.Name, name)
	}
	for _, socket := range g.OutputSockets() {
		name := syntax.MakeUnique(socket.Name, uniqueNames)
		g.RenameOutputSocket(socket.Name, name)
	}
	for _, node := range g.nodeOrder {
		for _, output := range node.outputs {
			// Node outputs use long names for better code readability.
			name := syntax.MakeUnique(node.Name()+"_"+output.Name, uniqueNames)
			node.RenameOutput(output.Name, name)
		}
	}
}
