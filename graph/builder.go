// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/value"
)

// FromNodeGraph builds and finalizes a graph from a declared node-graph
// element. The node-graph must reference a node definition, which
// supplies the input sockets.
func FromNodeGraph(nodeGraph *document.NodeGraph, gen Generator) (*Graph, error) {
	nodeDef := nodeGraph.NodeDef()
	if nodeDef == nil {
		return nil, errorf(ErrNodeDefNotFound,
			"can't find nodedef %q referenced by nodegraph %q",
			nodeGraph.NodeDefString(), nodeGraph.Name())
	}

	g := NewGraph(nodeGraph.Name(), nodeGraph.Document())

	if err := g.addInputSockets(nodeDef); err != nil {
		return nil, err
	}
	if err := g.addOutputSockets(nodeGraph.Outputs, nodeDef.TypeName()); err != nil {
		return nil, err
	}

	// Traverse all outputs and create all upstream dependencies.
	for _, output := range nodeGraph.Outputs {
		if err := g.addUpstreamDependencies(output, nil, gen); err != nil {
			return nil, err
		}
	}

	// Classify the graph by the node feeding its primary output.
	// A graph with multiple outputs uses only the primary one here.
	if socket := g.OutputSocket(); socket != nil && socket.Connection != nil {
		g.classification |= socket.Connection.Node.classification
	}

	if err := g.finalize(gen); err != nil {
		return nil, err
	}
	return g, nil
}

// FromElement builds and finalizes a graph rooted at a bare output
// element or a shader reference. Any other element kind is rejected.
func FromElement(name string, elem document.Element, gen Generator) (*Graph, error) {
	switch root := elem.(type) {
	case *document.Output:
		return fromOutput(name, root, gen)
	case *document.ShaderRef:
		return fromShaderRef(name, root, gen)
	default:
		return nil, errorf(ErrUnsupportedRoot,
			"shader generation from element %q of type %T is not supported", elem.Name(), elem)
	}
}

func fromOutput(name string, output *document.Output, gen Generator) (*Graph, error) {
	// Locate an interface for the input sockets: the owning node-graph's
	// nodedef, the node-graph itself, or as a fallback the connected node.
	var iface document.InterfaceElement
	var doc *document.Document
	if parent := output.Parent(); parent != nil {
		doc = parent.Document()
		if nodeDef := parent.NodeDef(); nodeDef != nil {
			iface = nodeDef
		} else {
			iface = parent
		}
	}
	if iface == nil {
		node := output.ConnectedNode()
		if node == nil {
			return nil, errorf(ErrUnsupportedRoot,
				"given output %q has no interface valid for shader generation", output.Name())
		}
		iface = node
		doc = node.Document()
	}

	g := NewGraph(name, doc)

	if err := g.addInputSockets(iface); err != nil {
		return nil, err
	}

	outputType, err := resolveType(output.TypeName(), name, output.Name())
	if err != nil {
		return nil, err
	}
	if _, err := g.AddOutputSocket(output.Name(), outputType); err != nil {
		return nil, err
	}

	if err := g.addUpstreamDependencies(output, nil, gen); err != nil {
		return nil, err
	}

	if socket := g.OutputSocket(); socket.Connection != nil {
		g.classification |= socket.Connection.Node.classification
	}

	if err := g.finalize(gen); err != nil {
		return nil, err
	}
	return g, nil
}

func fromShaderRef(name string, ref *document.ShaderRef, gen Generator) (*Graph, error) {
	nodeDef := ref.NodeDef()
	if nodeDef == nil {
		return nil, errorf(ErrNodeDefNotFound, "could not find a nodedef for shader %q", ref.Name())
	}

	g := NewGraph(name, ref.Document())

	if err := g.addInputSockets(nodeDef); err != nil {
		return nil, err
	}
	if err := g.addOutputSocketsFromDefs(nodeDef.Outputs, nodeDef.TypeName()); err != nil {
		return nil, err
	}

	// Create the shader node inside the graph and wire it to the single
	// graph output socket.
	node, err := CreateNode(ref.Name(), nodeDef, gen, nil)
	if err != nil {
		return nil, err
	}
	g.insertNode(node)
	g.OutputSocket().Connect(node.Output())

	// Shader parameters: copy bind-param overrides and connect each
	// node input to its interface socket.
	for _, param := range nodeDef.Params {
		socket := g.InputSocket(param.Name())
		input := node.Input(param.Name())
		if socket == nil || input == nil {
			return nil, errorf(ErrInterfaceNameMismatch,
				"shader parameter %q doesn't match an existing input on graph %q", param.Name(), g.Name())
		}
		if bind := ref.BindParam(param.Name()); bind != nil && bind.ValueString() != "" {
			socket.Value = bind.Value()
		}
		input.Connect(socket)
	}

	// Shader inputs: copy bind-input overrides, then connect either to a
	// synthesized geometry node or to the interface socket, unless an
	// explicit upstream binding takes over during traversal.
	for _, defInput := range nodeDef.Inputs {
		socket := g.InputSocket(defInput.Name())
		input := node.Input(defInput.Name())
		if socket == nil || input == nil {
			return nil, errorf(ErrInterfaceNameMismatch,
				"shader input %q doesn't match an existing input on graph %q", defInput.Name(), g.Name())
		}

		bind := ref.BindInput(defInput.Name())
		if bind != nil && bind.ValueString() != "" {
			socket.Value = bind.Value()
		}

		connection := ""
		if bind != nil {
			connection = bind.OutputString()
		}
		if connection == "" {
			if defInput.GeomProp != nil {
				if err := g.addDefaultGeomNode(input, defInput.GeomProp, gen); err != nil {
					return nil, err
				}
			} else {
				input.Connect(socket)
			}
		}
	}

	if err := g.addUpstreamDependencies(ref, ref.Material(), gen); err != nil {
		return nil, err
	}

	if socket := g.OutputSocket(); socket.Connection != nil {
		g.classification |= socket.Connection.Node.classification
	}

	if err := g.finalize(gen); err != nil {
		return nil, err
	}
	return g, nil
}

// addInputSockets creates graph input sockets from an interface,
// copying literal defaults.
func (g *Graph) addInputSockets(iface document.InterfaceElement) error {
	for _, elem := range iface.ValueElements() {
		if _, isOutput := elem.(*document.OutputDef); isOutput {
			continue
		}
		t, err := resolveType(elem.TypeName(), iface.Name(), elem.Name())
		if err != nil {
			return err
		}
		socket, err := g.AddInputSocket(elem.Name(), t)
		if err != nil {
			return err
		}
		if elem.ValueString() != "" {
			socket.Value = elem.Value()
		}
	}
	return nil
}

// addOutputSockets creates graph output sockets from declared outputs,
// or a synthetic "out" socket of the fallback type if none exist.
func (g *Graph) addOutputSockets(outputs []*document.Output, fallbackType string) error {
	for _, output := range outputs {
		t, err := resolveType(output.TypeName(), g.Name(), output.Name())
		if err != nil {
			return err
		}
		if _, err := g.AddOutputSocket(output.Name(), t); err != nil {
			return err
		}
	}
	if len(g.OutputSockets()) == 0 {
		t, err := resolveType(fallbackType, g.Name(), "out")
		if err != nil {
			return err
		}
		if _, err := g.AddOutputSocket("out", t); err != nil {
			return err
		}
	}
	return nil
}

// addOutputSocketsFromDefs is the nodedef flavor of addOutputSockets.
func (g *Graph) addOutputSocketsFromDefs(outputs []*document.OutputDef, fallbackType string) error {
	for _, output := range outputs {
		t, err := resolveType(output.TypeName(), g.Name(), output.Name())
		if err != nil {
			return err
		}
		if _, err := g.AddOutputSocket(output.Name(), t); err != nil {
			return err
		}
	}
	if len(g.OutputSockets()) == 0 {
		t, err := resolveType(fallbackType, g.Name(), "out")
		if err != nil {
			return err
		}
		if _, err := g.AddOutputSocket("out", t); err != nil {
			return err
		}
	}
	return nil
}

// addUpstreamDependencies expands the document dependency graph rooted
// at the given element into interior nodes and connections.
func (g *Graph) addUpstreamDependencies(root document.Element, material *document.Material, gen Generator) error {
	// The root node is needed to resolve bind-input connections when the
	// root is a shader reference.
	rootNode := g.GetNode(root.Name())

	processedOutputs := make(map[document.Element]bool)
	for _, edge := range document.TraverseGraph(root, material) {
		upstream := edge.Upstream
		downstream := edge.Downstream
		connecting := edge.Connecting

		// Skip outputs that were already jumped over.
		if processedOutputs[downstream] {
			continue
		}

		// If upstream is an output element, jump to the node connected to
		// it, and remember the output so the node-to-output edge that
		// follows is not processed again.
		if output, ok := upstream.(*document.Output); ok {
			processedOutputs[output] = true
			node := output.ConnectedNode()
			if node == nil {
				continue
			}
			upstream = node
		}

		upstreamNode, ok := upstream.(*document.Node)
		if !ok {
			continue
		}

		newNode := g.GetNode(upstreamNode.Name())
		if newNode == nil {
			var err error
			newNode, err = g.addNode(upstreamNode, gen)
			if err != nil {
				return err
			}
		}

		// Bind-input connections attach to the root shader node.
		if bind, isBind := connecting.(*document.BindInput); isBind && rootNode != nil {
			if input := rootNode.Input(bind.Name()); input != nil {
				input.Connect(newNode.Output())
			}
			continue
		}

		if downstreamNode, isNode := downstream.(*document.Node); isNode {
			target := g.GetNode(downstreamNode.Name())
			if target != nil && connecting != nil {
				input := target.Input(connecting.Name())
				if input == nil {
					return errorf(ErrInputNotFound,
						"could not find an input named %q on downstream node %q",
						connecting.Name(), target.Name())
				}
				input.Connect(newNode.Output())
			}
			continue
		}

		// Not a node downstream, so it must be an output socket.
		if socket := g.OutputSocketNamed(downstream.Name()); socket != nil {
			socket.Connect(newNode.Output())
		}
	}
	return nil
}

// addNode creates an interior node for a document node instance and
// wires its interface publications, geometry defaults and color
// transform bookkeeping.
func (g *Graph) addNode(node *document.Node, gen Generator) (*Node, error) {
	nodeDef := node.NodeDef()
	if nodeDef == nil {
		return nil, errorf(ErrNodeDefNotFound, "could not find a nodedef for node %q", node.Name())
	}

	newNode, err := CreateNode(node.Name(), nodeDef, gen, node)
	if err != nil {
		return nil, err
	}
	g.insertNode(newNode)

	// A convolution anywhere marks the whole graph.
	if newNode.HasClassification(ClassConvolution2D) {
		g.classification |= ClassConvolution2D
	}

	// Connect published inputs to the graph interface.
	for _, elem := range node.ValueElements() {
		interfaceName := elem.InterfaceName()
		if interfaceName == "" {
			continue
		}
		socket := g.InputSocket(interfaceName)
		if socket == nil {
			return nil, errorf(ErrInterfaceNameMismatch,
				"interface name %q doesn't match an existing input on nodegraph %q",
				interfaceName, g.Name())
		}
		if input := newNode.Input(elem.Name()); input != nil {
			input.Connect(socket)
		}
	}

	// Synthesize default geometry nodes for unbound inputs that declare
	// a geomprop.
	for _, defInput := range nodeDef.Inputs {
		input := newNode.Input(defInput.Name())
		if input == nil {
			continue
		}
		connection := ""
		if instInput := node.Input(defInput.Name()); instInput != nil {
			connection = instInput.NodeName
		}
		if connection == "" && input.Connection == nil && defInput.GeomProp != nil {
			if err := g.addDefaultGeomNode(input, defInput.GeomProp, gen); err != nil {
				return nil, err
			}
		}
	}

	// File textures tagged sRGB need a color transform on output.
	if newNode.HasClassification(ClassFileTexture) {
		colorSpace := ""
		if file := node.Parameter("file"); file != nil {
			colorSpace = file.Attribute("colorspace")
		}
		if colorSpace == "sRGB" {
			g.colorTransforms[newNode] = "srgb_linear"
		}
	}

	return newNode, nil
}

// addDefaultGeomNode connects the input to a synthesized geometry
// reader node, creating it on first use. The node is named after the
// geometric property and typed after the input.
func (g *Graph) addDefaultGeomNode(input *Input, geomprop *document.GeomProp, gen Generator) error {
	geomNodeName := "default_" + geomprop.Name()
	node := g.GetNode(geomNodeName)
	if node == nil {
		// The input type and the geomprop type are required to agree, so
		// the nodedef is looked up with the input type.
		geomNodeDefName := "ND_" + geomprop.Name() + "_" + input.Type.Name()
		geomNodeDef := g.doc.NodeDef(geomNodeDefName)
		if geomNodeDef == nil {
			return errorf(ErrNodeDefNotFound,
				"could not find a nodedef named %q for geomprop on input %s.%s",
				geomNodeDefName, input.Node.Name(), input.Name)
		}

		var err error
		node, err = CreateNode(geomNodeName, geomNodeDef, gen, nil)
		if err != nil {
			return err
		}
		g.insertNode(node)

		if geomprop.Space != "" {
			if spaceInput := node.Input("space"); spaceInput != nil {
				spaceInput.Value = value.String(geomprop.Space)
			}
		}
		if geomprop.Index != "" {
			if indexInput := node.Input("index"); indexInput != nil {
				indexInput.Value = value.String(geomprop.Index)
			}
		}
		if geomprop.AttrName != "" {
			if attrInput := node.Input("attrname"); attrInput != nil {
				attrInput.Value = value.String(geomprop.AttrName)
			}
		}
	}

	input.Connect(node.Output())
	return nil
}

// addColorTransformNode interposes a color transform node between the
// given output and its downstream consumers. Transforms are only
// defined for color types; the insertion is skipped silently when no
// nodedef exists for the output's type.
func (g *Graph) addColorTransformNode(output *Output, colorTransform string, gen Generator) error {
	nodeDefName := "ND_" + colorTransform + "_" + output.Type.Name()
	nodeDef := g.doc.NodeDef(nodeDefName)
	if nodeDef == nil {
		return nil
	}

	nodeName := output.Node.Name() + "_" + colorTransform
	node, err := CreateNode(nodeName, nodeDef, gen, nil)
	if err != nil {
		return err
	}
	g.insertNode(node)

	nodeOutput := node.Output()

	// Move the downstream connections over. Iterate a copy since the
	// connection list changes while breaking edges.
	downstream := append([]*Input(nil), output.Connections...)
	for _, d := range downstream {
		d.Disconnect()
		d.Connect(nodeOutput)
	}

	// Feed the transform from the original output.
	node.InputAt(0).Connect(output)
	return nil
}
