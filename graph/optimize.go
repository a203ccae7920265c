// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/gogpu/shadergraph/types"
)

// optimize removes redundant paths: constant nodes fold their literal
// downstream, and conditionals with a constant test collapse to the
// taken branch. Orphaned nodes are then garbage collected against the
// set still reachable from the output sockets.
func (g *Graph) optimize() error {
	numEdits := 0
	for _, node := range g.nodeOrder {
		switch {
		case node.HasClassification(ClassConstant):
			// A constant node can be removed by assigning its value
			// downstream, unless its value input is published upstream.
			valueInput := node.InputAt(0)
			if valueInput != nil && valueInput.Connection == nil {
				g.Bypass(node, 0, 0)
				numEdits++
			}

		case node.HasClassification(ClassIfElse):
			branch, ok, err := g.foldIfElse(node)
			if err != nil {
				return err
			}
			if ok {
				g.Bypass(node, branch, 0)
				numEdits++
			}

		case node.HasClassification(ClassSwitch):
			branch, ok, err := g.foldSwitch(node)
			if err != nil {
				return err
			}
			if ok {
				g.Bypass(node, branch, 0)
				numEdits++
			}
		}
	}

	if numEdits == 0 {
		return nil
	}

	// Traverse the graph to find nodes still in use.
	usedNodes := make(map[*Node]struct{})
	for _, socket := range g.OutputSockets() {
		if socket.Connection == nil {
			continue
		}
		it := socket.Connection.TraverseUpstream()
		for it.Next() {
			usedNodes[it.Current().Upstream.Node] = struct{}{}
		}
		if err := it.Err(); err != nil {
			return err
		}
	}

	// Remove any unused nodes.
	live := g.nodeOrder[:0]
	for _, node := range g.nodeOrder {
		if _, used := usedNodes[node]; used {
			live = append(live, node)
			continue
		}
		g.disconnect(node)
		delete(g.colorTransforms, node)
		delete(g.nodeMap, node.name)
	}
	g.nodeOrder = live

	return nil
}

// foldIfElse resolves a compare node with a constant test expression,
// returning the branch input index to bypass on.
func (g *Graph) foldIfElse(node *Node) (branch int, ok bool, err error) {
	intest := node.Input("intest")
	if intest == nil {
		return 0, false, nil
	}
	if intest.Connection != nil && !intest.Connection.Node.HasClassification(ClassConstant) {
		return 0, false, nil
	}

	cutoff := node.Input("cutoff")
	if cutoff == nil || cutoff.Value == nil {
		return 0, false, nil
	}
	cutoffValue, err := cutoff.Value.AsFloat()
	if err != nil {
		return 0, false, err
	}

	v := intest.Value
	if intest.Connection != nil {
		v = intest.Connection.Node.InputAt(0).Value
	}
	var intestValue float32
	if v != nil {
		intestValue, err = v.AsFloat()
		if err != nil {
			return 0, false, err
		}
	}

	if intestValue <= cutoffValue {
		return 2, true, nil
	}
	return 3, true, nil
}

// foldSwitch resolves a switch node with a constant selector, returning
// the branch input index to bypass on. A nil selector folds to branch 0.
func (g *Graph) foldSwitch(node *Node) (branch int, ok bool, err error) {
	which := node.Input("which")
	if which == nil {
		return 0, false, nil
	}
	if which.Connection != nil && !which.Connection.Node.HasClassification(ClassConstant) {
		return 0, false, nil
	}

	v := which.Value
	if which.Connection != nil {
		v = which.Connection.Node.InputAt(0).Value
	}

	branch = 0
	if v != nil {
		switch which.Type {
		case types.Boolean:
			b, err := v.AsBool()
			if err != nil {
				return 0, false, err
			}
			if b {
				branch = 1
			}
		case types.Float:
			f, err := v.AsFloat()
			if err != nil {
				return 0, false, err
			}
			branch = int(f)
		default:
			branch, err = v.AsInt()
			if err != nil {
				return 0, false, err
			}
		}
	}

	if branch < 0 || branch >= node.NumInputs() {
		return 0, false, nil
	}
	return branch, true, nil
}

// Bypass removes a node from the network by splicing the chosen input
// through to every consumer of the chosen output. When the input has no
// upstream connection its literal value is pushed downstream instead.
// Only outputIndex 0 is exercised by the optimizer.
func (g *Graph) Bypass(node *Node, inputIndex, outputIndex int) {
	input := node.InputAt(inputIndex)
	output := node.OutputAt(outputIndex)
	if input == nil || output == nil {
		return
	}

	// Iterate a copy of the connection list since the original changes
	// while breaking connections.
	downstream := append([]*Input(nil), output.Connections...)

	if upstream := input.Connection; upstream != nil {
		// Re-route the upstream output to the downstream inputs.
		for _, d := range downstream {
			output.Disconnect(d)
			d.Connect(upstream)
		}
	} else {
		// Nothing connected upstream to re-route, so push the input's
		// value downstream instead.
		for _, d := range downstream {
			output.Disconnect(d)
			d.Value = input.Value
		}
	}
}
