package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/gen"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/types"
	"github.com/gogpu/shadergraph/value"
)

// testDocument declares the node definitions, implementations, graphs
// and materials the builder tests run against.
//
// The tests assume the inverted socket polarity of the Graph type: a
// graph input socket is addressed as an Output (it drives interior
// inputs) and a graph output socket as an Input.
const testDocument = `
nodedefs:
  - name: ND_constant_color3
    node: constant
    type: color3
    inputs:
      - {name: value, type: color3, value: "0.5, 0.5, 0.5"}
    outputs:
      - {name: out, type: color3}
  - name: ND_constant_integer
    node: constant
    type: integer
    inputs:
      - {name: value, type: integer, value: "0"}
    outputs:
      - {name: out, type: integer}
  - name: ND_multiply_color3
    node: multiply
    type: color3
    inputs:
      - {name: in1, type: color3, value: "1, 1, 1"}
      - {name: in2, type: color3, value: "1, 1, 1"}
    outputs:
      - {name: out, type: color3}
  - name: ND_image_color3
    node: image
    type: color3
    group: texture2d
    inputs:
      - {name: texcoord, type: vector2}
    params:
      - {name: file, type: filename}
    outputs:
      - {name: out, type: color3}
  - name: ND_noise2d_color3
    node: noise2d
    type: color3
    group: procedural2d
    inputs:
      - {name: texcoord, type: vector2, geomprop: {name: texcoord, space: object, index: "1"}}
      - {name: amplitude, type: float, value: "1"}
    outputs:
      - {name: out, type: color3}
  - name: ND_texcoord_vector2
    node: texcoord
    type: vector2
    inputs:
      - {name: index, type: string, value: "0"}
      - {name: space, type: string}
    outputs:
      - {name: out, type: vector2}
  - name: ND_srgb_linear_color3
    node: srgb_linear
    type: color3
    inputs:
      - {name: in, type: color3}
    outputs:
      - {name: out, type: color3}
  - name: ND_compare_color3
    node: compare
    type: color3
    inputs:
      - {name: intest, type: float, value: "0"}
      - {name: cutoff, type: float, value: "0.5"}
      - {name: in1, type: color3}
      - {name: in2, type: color3}
    outputs:
      - {name: out, type: color3}
  - name: ND_switch_color3
    node: switch
    type: color3
    inputs:
      - {name: in0, type: color3}
      - {name: in1, type: color3}
      - {name: in2, type: color3}
      - {name: in3, type: color3}
      - {name: in4, type: color3}
      - {name: which, type: integer}
    outputs:
      - {name: out, type: color3}
  - name: ND_diffuse_bsdf
    node: diffuse_bsdf
    type: BSDF
    inputs:
      - {name: color, type: color3, value: "1, 1, 1"}
    outputs:
      - {name: out, type: BSDF}
  - name: ND_refl_bsdf
    node: refl_bsdf
    type: BSDF
    attributes: {bsdf: R}
    inputs:
      - {name: color, type: color3, value: "1, 1, 1"}
    outputs:
      - {name: out, type: BSDF}
  - name: ND_testsurface
    node: testsurface
    type: surfaceshader
    inputs:
      - {name: base_color, type: color3, value: "0.8, 0.8, 0.8"}
      - {name: bsdf, type: BSDF}
      - {name: uv, type: vector2, geomprop: {name: texcoord, index: "0"}}
    params:
      - {name: roughness, type: float, value: "0.3"}
    outputs:
      - {name: out, type: surfaceshader}
  - name: ND_onlyin_float
    node: onlyin
    type: float
    inputs:
      - {name: x, type: float, value: "0"}
  - name: ND_noimpl_float
    node: noimpl
    type: float
    inputs:
      - {name: x, type: float}
    outputs:
      - {name: out, type: float}
  - name: ND_foldgraph
    node: foldgraph
    type: color3
    inputs:
      - {name: tint, type: color3, value: "1, 1, 1"}
  - name: ND_colorgraph
    node: colorgraph
    type: color3
  - name: ND_surfacegraph
    node: surfacegraph
    type: surfaceshader
  - name: ND_scopegraph
    node: scopegraph
    type: color3
    inputs:
      - {name: sel, type: float, value: "0.5"}
  - name: ND_namegraph
    node: namegraph
    type: color3
    inputs:
      - {name: float, type: float, value: "0"}
      - {name: alpha_out, type: color3, value: "1, 1, 1"}

implementations:
  - {name: IM_constant_color3, nodedef: ND_constant_color3}
  - {name: IM_constant_integer, nodedef: ND_constant_integer}
  - {name: IM_multiply_color3, nodedef: ND_multiply_color3}
  - {name: IM_image_color3, nodedef: ND_image_color3}
  - {name: IM_noise2d_color3, nodedef: ND_noise2d_color3}
  - {name: IM_texcoord_vector2, nodedef: ND_texcoord_vector2}
  - {name: IM_srgb_linear_color3, nodedef: ND_srgb_linear_color3}
  - {name: IM_compare_color3, nodedef: ND_compare_color3}
  - {name: IM_switch_color3, nodedef: ND_switch_color3}
  - {name: IM_diffuse_bsdf, nodedef: ND_diffuse_bsdf}
  - {name: IM_refl_bsdf, nodedef: ND_refl_bsdf}
  - {name: IM_testsurface, nodedef: ND_testsurface}
  - {name: IM_onlyin_float, nodedef: ND_onlyin_float}

nodegraphs:
  - name: NG_fold
    nodedef: ND_foldgraph
    nodes:
      - name: const1
        node: constant
        type: color3
        inputs:
          - {name: value, type: color3, value: "2, 2, 2"}
      - name: mult1
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, node: const1}
          - {name: in2, type: color3, interfacename: tint}
    outputs:
      - {name: out, type: color3, node: mult1}
  - name: NG_ifelse
    nodedef: ND_colorgraph
    nodes:
      - name: img1
        node: image
        type: color3
      - name: green1
        node: constant
        type: color3
        inputs:
          - {name: value, type: color3, value: "0, 1, 0"}
      - name: cmp1
        node: compare
        type: color3
        inputs:
          - {name: intest, type: float, value: "0.3"}
          - {name: in1, type: color3, node: img1}
          - {name: in2, type: color3, node: green1}
    outputs:
      - {name: out, type: color3, node: cmp1}
  - name: NG_switch
    nodedef: ND_colorgraph
    nodes:
      - name: whichc
        node: constant
        type: integer
        inputs:
          - {name: value, type: integer, value: "2"}
      - name: img2
        node: image
        type: color3
      - name: sw1
        node: switch
        type: color3
        inputs:
          - {name: in0, type: color3, value: "1, 0, 0"}
          - {name: in2, type: color3, node: img2}
          - {name: which, type: integer, node: whichc}
    outputs:
      - {name: out, type: color3, node: sw1}
  - name: NG_switch_null
    nodedef: ND_colorgraph
    nodes:
      - name: img3
        node: image
        type: color3
      - name: backup3
        node: image
        type: color3
      - name: sw2
        node: switch
        type: color3
        inputs:
          - {name: in0, type: color3, node: img3}
          - {name: in1, type: color3, node: backup3}
    outputs:
      - {name: out, type: color3, node: sw2}
  - name: NG_cycle
    nodedef: ND_colorgraph
    nodes:
      - name: multA
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, node: multB}
      - name: multB
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, node: multA}
    outputs:
      - {name: out, type: color3, node: multA}
  - name: NG_srgb
    nodedef: ND_colorgraph
    nodes:
      - name: img4
        node: image
        type: color3
        params:
          - {name: file, type: filename, value: wood.png, attributes: {colorspace: sRGB}}
      - name: mult2
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, node: img4}
    outputs:
      - {name: out, type: color3, node: mult2}
  - name: NG_noise
    nodedef: ND_colorgraph
    nodes:
      - name: noise1
        node: noise2d
        type: color3
    outputs:
      - {name: out, type: color3, node: noise1}
  - name: NG_surface
    nodedef: ND_surfacegraph
    nodes:
      - name: bsdf1
        node: diffuse_bsdf
        type: BSDF
      - name: surf1
        node: testsurface
        type: surfaceshader
        inputs:
          - {name: bsdf, type: BSDF, node: bsdf1}
    outputs:
      - {name: out, type: surfaceshader, node: surf1}
  - name: NG_names
    nodedef: ND_namegraph
    nodes:
      - name: alpha
        node: multiply
        type: color3
        inputs:
          - {name: in2, type: color3, interfacename: alpha_out}
    outputs:
      - {name: out, type: color3, node: alpha}
  - name: NG_scope
    nodedef: ND_scopegraph
    nodes:
      - name: shared
        node: image
        type: color3
      - name: mA
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, node: shared}
      - name: mB
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, node: shared}
      - name: cmp2
        node: compare
        type: color3
        inputs:
          - {name: intest, type: float, interfacename: sel}
          - {name: in1, type: color3, node: mA}
          - {name: in2, type: color3, node: mB}
    outputs:
      - {name: out, type: color3, node: cmp2}
  - name: NG_tex
    nodedef: ND_colorgraph
    nodes:
      - name: img5
        node: image
        type: color3
    outputs:
      - {name: out, type: color3, node: img5}
  - name: NG_noimpl
    nodedef: ND_colorgraph
    nodes:
      - name: bad1
        node: noimpl
        type: float
    outputs:
      - {name: out, type: float, node: bad1}
  - name: NG_badinput
    nodedef: ND_colorgraph
    nodes:
      - name: const2
        node: constant
        type: color3
      - name: mult3
        node: multiply
        type: color3
        inputs:
          - {name: bogus, type: color3, node: const2}
    outputs:
      - {name: out, type: color3, node: mult3}
  - name: NG_badiface
    nodedef: ND_colorgraph
    nodes:
      - name: mult4
        node: multiply
        type: color3
        inputs:
          - {name: in1, type: color3, interfacename: nope}
    outputs:
      - {name: out, type: color3, node: mult4}
  - name: NG_missingdef
    nodedef: ND_missing
    outputs:
      - {name: out, type: color3}

nodes:
  - name: nodeA
    node: multiply
    type: color3
    inputs:
      - {name: in1, type: color3, node: nodeB}
  - name: nodeB
    node: constant
    type: color3
    inputs:
      - {name: value, type: color3, value: "0.25, 0.5, 0.75"}

outputs:
  - {name: outA, type: color3, node: nodeA}

materials:
  - name: mat1
    shaderrefs:
      - name: sr1
        node: testsurface
        bindparams:
          - {name: roughness, type: float, value: "0.5"}
        bindinputs:
          - {name: base_color, type: color3, nodegraph: NG_tex, output: out}
`

func loadTestDocument(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(testDocument))
	require.NoError(t, err)
	return doc
}

func testGenerator() *gen.Generator {
	return gen.New("test", "test")
}

func colorType(t *testing.T) *types.TypeDesc {
	t.Helper()
	return types.Color3
}

func mustColor(t *testing.T, s string) *value.Value {
	t.Helper()
	v, err := value.Parse(types.Color3, s)
	require.NoError(t, err)
	return v
}

func buildNodeGraph(t *testing.T, name string) *graph.Graph {
	t.Helper()
	doc := loadTestDocument(t)
	ng := doc.Graph(name)
	require.NotNil(t, ng, "nodegraph %s not in fixture", name)
	g, err := graph.FromNodeGraph(ng, testGenerator())
	require.NoError(t, err)
	return g
}
