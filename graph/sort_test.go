package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/graph"
)

func TestTopologicalOrder(t *testing.T) {
	g := buildNodeGraph(t, "NG_surface")

	// Every interior edge points forward in the emission order.
	position := make(map[string]int)
	for i, node := range g.Nodes() {
		position[node.Name()] = i
	}
	for _, node := range g.Nodes() {
		for _, input := range node.Inputs() {
			if input.Connection == nil || input.Connection.Node.IsGraph() {
				continue
			}
			upstream := input.Connection.Node.Name()
			assert.Less(t, position[upstream], position[node.Name()],
				"%s must precede %s", upstream, node.Name())
		}
	}

	// The node feeding the primary output socket comes last.
	socket := g.OutputSocket()
	require.NotNil(t, socket.Connection)
	last := g.Nodes()[len(g.Nodes())-1]
	assert.Same(t, socket.Connection.Node, last)
}

func TestCycleDetection(t *testing.T) {
	doc := loadTestDocument(t)
	_, err := graph.FromNodeGraph(doc.Graph("NG_cycle"), testGenerator())
	require.Error(t, err)

	var gerr *graph.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, graph.ErrCycle, gerr.Kind)
	assert.Regexp(t, "mult[AB]", gerr.Message)
}
