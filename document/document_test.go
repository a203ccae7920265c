package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/value"
)

const sampleDocument = `
nodedefs:
  - name: ND_add_float
    node: add
    type: float
    group: math
    attributes: {bsdf: R}
    inputs:
      - {name: in1, type: float, value: "1"}
      - {name: in2, type: float}
    outputs:
      - {name: out, type: float}
  - name: ND_constant_float
    node: constant
    type: float
    inputs:
      - {name: value, type: float, value: "0"}
    outputs:
      - {name: out, type: float}

implementations:
  - {name: IM_add_float_glsl, nodedef: ND_add_float, target: glsl400, language: glsl}
  - {name: IM_add_float_any, nodedef: ND_add_float}
  - {name: IM_constant_float, nodedef: ND_constant_float, language: osl}

nodegraphs:
  - name: NG_sum
    nodedef: ND_add_float
    nodes:
      - name: c1
        node: constant
        type: float
        inputs:
          - {name: value, type: float, value: "3.5"}
      - name: sum1
        node: add
        type: float
        inputs:
          - {name: in1, type: float, node: c1}
          - {name: in2, type: float, interfacename: in2}
    outputs:
      - {name: out, type: float, node: sum1}

materials:
  - name: m1
    shaderrefs:
      - name: s1
        nodedef: ND_add_float
        bindinputs:
          - {name: in1, type: float, nodegraph: NG_sum, output: out}
          - {name: in2, type: float, value: "2"}
`

func parseSample(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(sampleDocument))
	require.NoError(t, err)
	return doc
}

func TestParse_Lookups(t *testing.T) {
	doc := parseSample(t)

	def := doc.NodeDef("ND_add_float")
	require.NotNil(t, def)
	assert.Equal(t, "add", def.NodeString())
	assert.Equal(t, "math", def.NodeGroup())
	assert.Equal(t, "R", def.Attribute("bsdf"))
	assert.Equal(t, "", def.Attribute("missing"))

	// Inputs come before outputs in the value element order.
	elems := def.ValueElements()
	require.Len(t, elems, 3)
	assert.Equal(t, "in1", elems[0].Name())
	assert.Equal(t, "in2", elems[1].Name())
	assert.Equal(t, "out", elems[2].Name())

	assert.Nil(t, doc.NodeDef("ND_absent"))
	assert.NotNil(t, doc.Graph("NG_sum"))
	assert.NotNil(t, doc.Material("m1"))
}

func TestParse_Values(t *testing.T) {
	doc := parseSample(t)

	in1 := doc.NodeDef("ND_add_float").Input("in1")
	require.NotNil(t, in1)
	require.NotNil(t, in1.Value())
	f, err := in1.Value().AsFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(1), f)

	// An input without a value string has no parsed value.
	in2 := doc.NodeDef("ND_add_float").Input("in2")
	assert.Nil(t, in2.Value())

	c1 := doc.Graph("NG_sum").Node("c1")
	require.NotNil(t, c1)
	assert.Equal(t, value.KindFloat, c1.Input("value").Value().Kind())
}

func TestParse_BadValue(t *testing.T) {
	_, err := document.Parse([]byte(`
nodedefs:
  - name: ND_bad
    node: bad
    type: float
    inputs:
      - {name: x, type: float, value: "not-a-float"}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ND_bad")
}

func TestNodeDefResolution(t *testing.T) {
	doc := parseSample(t)

	sum := doc.Graph("NG_sum").Node("sum1")
	require.NotNil(t, sum)
	def := sum.NodeDef()
	require.NotNil(t, def)
	assert.Equal(t, "ND_add_float", def.Name())

	ref := doc.Material("m1").ShaderRefs[0]
	assert.Equal(t, "ND_add_float", ref.NodeDef().Name())
	assert.NotNil(t, ref.BindInput("in1"))
	assert.Nil(t, ref.BindInput("absent"))
}

func TestImplementationMatching(t *testing.T) {
	doc := parseSample(t)
	def := doc.NodeDef("ND_add_float")

	// Exact match wins over the wildcard by declaration order.
	impl := def.Implementation("glsl400", "glsl")
	require.NotNil(t, impl)
	assert.Equal(t, "IM_add_float_glsl", impl.Name())

	// An implementation with empty target and language matches anything.
	impl = def.Implementation("msl23", "msl")
	require.NotNil(t, impl)
	assert.Equal(t, "IM_add_float_any", impl.Name())

	// A language-restricted implementation does not match others.
	konst := doc.NodeDef("ND_constant_float")
	assert.Nil(t, konst.Implementation("glsl400", "glsl"))
	assert.NotNil(t, konst.Implementation("anything", "osl"))
}

func TestTraverseGraph(t *testing.T) {
	doc := parseSample(t)
	out := doc.Graph("NG_sum").Output("out")
	require.NotNil(t, out)

	edges := document.TraverseGraph(out, nil)
	require.Len(t, edges, 2)

	assert.Equal(t, "sum1", edges[0].Upstream.Name())
	assert.Nil(t, edges[0].Connecting)
	assert.Equal(t, "out", edges[0].Downstream.Name())

	assert.Equal(t, "c1", edges[1].Upstream.Name())
	assert.Equal(t, "in1", edges[1].Connecting.Name())
	assert.Equal(t, "sum1", edges[1].Downstream.Name())
}

func TestTraverseGraph_ShaderRef(t *testing.T) {
	doc := parseSample(t)
	ref := doc.Material("m1").ShaderRefs[0]

	edges := document.TraverseGraph(ref, ref.Material())
	require.Len(t, edges, 3)

	// The bind-input edge leads to the nodegraph output, then the
	// traversal jumps through it into the graph interior.
	assert.Equal(t, "out", edges[0].Upstream.Name())
	assert.Equal(t, "in1", edges[0].Connecting.Name())
	assert.Equal(t, "s1", edges[0].Downstream.Name())
	assert.Equal(t, "sum1", edges[1].Upstream.Name())
	assert.Equal(t, "out", edges[1].Downstream.Name())
	assert.Equal(t, "c1", edges[2].Upstream.Name())
	assert.Equal(t, "sum1", edges[2].Downstream.Name())
}

func TestTraverseGraph_Cyclic(t *testing.T) {
	doc, err := document.Parse([]byte(`
nodedefs:
  - name: ND_add_float
    node: add
    type: float
    inputs:
      - {name: in1, type: float}
    outputs:
      - {name: out, type: float}
nodegraphs:
  - name: NG_loop
    nodedef: ND_add_float
    nodes:
      - name: x
        node: add
        type: float
        inputs:
          - {name: in1, type: float, node: y}
      - name: y
        node: add
        type: float
        inputs:
          - {name: in1, type: float, node: x}
    outputs:
      - {name: out, type: float, node: x}
`))
	require.NoError(t, err)

	// Traversal terminates and reports each edge once; rejecting the
	// cycle is the graph finalizer's job.
	edges := document.TraverseGraph(doc.Graph("NG_loop").Output("out"), nil)
	assert.Len(t, edges, 3)
}
