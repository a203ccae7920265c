// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/gogpu/shadergraph/types"
	"github.com/gogpu/shadergraph/value"
)

// Input is an input port of a node. It carries at most one upstream
// connection; when unconnected its literal Value drives the port.
//
// The Connection field is maintained exclusively by the connect and
// disconnect methods on Input and Output, which keep it symmetric with
// the upstream output's Connections list at all times.
type Input struct {
	Name  string
	Type  *types.TypeDesc
	Node  *Node
	Value *value.Value

	// Connection is the upstream output driving this input, or nil.
	Connection *Output
}

// Output is an output port of a node, feeding any number of downstream
// inputs. Value is used only when the output doubles as a graph input
// socket carrying an interface default.
type Output struct {
	Name  string
	Type  *types.TypeDesc
	Node  *Node
	Value *value.Value

	// Connections lists the downstream inputs fed by this output, in
	// connection order.
	Connections []*Input
}

// Connect attaches the input to the given upstream output, breaking any
// existing upstream connection first.
func (in *Input) Connect(src *Output) {
	in.Disconnect()
	in.Connection = src
	src.addConnection(in)
}

// Disconnect breaks the upstream connection, if any.
func (in *Input) Disconnect() {
	if in.Connection == nil {
		return
	}
	in.Connection.removeConnection(in)
	in.Connection = nil
}

// Connect attaches the given downstream input to this output.
func (out *Output) Connect(dst *Input) {
	dst.Connect(out)
}

// Disconnect breaks the connection to one downstream input.
func (out *Output) Disconnect(dst *Input) {
	if dst.Connection != out {
		return
	}
	out.removeConnection(dst)
	dst.Connection = nil
}

// DisconnectAll breaks every downstream connection.
func (out *Output) DisconnectAll() {
	for _, in := range out.Connections {
		in.Connection = nil
	}
	out.Connections = out.Connections[:0]
}

// TraverseUpstream returns an iterator over the upstream edges reachable
// from this output.
func (out *Output) TraverseUpstream() *EdgeIterator {
	return newEdgeIterator(out)
}

func (out *Output) addConnection(in *Input) {
	for _, existing := range out.Connections {
		if existing == in {
			return
		}
	}
	out.Connections = append(out.Connections, in)
}

func (out *Output) removeConnection(in *Input) {
	for i, existing := range out.Connections {
		if existing == in {
			out.Connections = append(out.Connections[:i], out.Connections[i+1:]...)
			return
		}
	}
}

// InputSocket is a graph input socket. Inside the graph it drives
// interior inputs, so it is represented with output polarity.
type InputSocket = Output

// OutputSocket is a graph output socket. Inside the graph it is fed by
// an interior output, so it is represented with input polarity.
type OutputSocket = Input
