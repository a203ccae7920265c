// Package document models a material document: node definitions, node
// graphs, node instances, materials and their shader references. It is
// the query surface the graph builder reads from; the builder never
// mutates a document.
//
// Documents are usually produced by Load from a YAML file, but can be
// assembled in memory for tests and tools.
package document

import (
	"fmt"

	"github.com/gogpu/shadergraph/types"
	"github.com/gogpu/shadergraph/value"
)

// Element is anything addressable by name inside a document.
type Element interface {
	Name() string
}

// ValueElement is a named, typed element that may carry a literal value.
// Inputs, parameters, outputs and bindings all satisfy it.
type ValueElement interface {
	Element
	TypeName() string
	ValueString() string
	Value() *value.Value
	InterfaceName() string
}

// InterfaceElement exposes an ordered list of value elements. Node
// definitions and node instances satisfy it; a node graph forwards to
// its node definition when one is declared.
type InterfaceElement interface {
	Element
	ValueElements() []ValueElement
}

// GeomProp asks for a synthesized geometry-reader node when the input
// that declares it is left unbound.
type GeomProp struct {
	GeomName string `yaml:"name"`
	Space    string `yaml:"space"`
	Index    string `yaml:"index"`
	AttrName string `yaml:"attrname"`
}

// Name returns the geometric property name (e.g. "texcoord").
func (g *GeomProp) Name() string { return g.GeomName }

// InputDef is an input declaration on a node definition.
type InputDef struct {
	InputName string    `yaml:"name"`
	Type      string    `yaml:"type"`
	ValueStr  string    `yaml:"value"`
	GeomProp  *GeomProp `yaml:"geomprop"`

	val *value.Value
}

func (e *InputDef) Name() string          { return e.InputName }
func (e *InputDef) TypeName() string      { return e.Type }
func (e *InputDef) ValueString() string   { return e.ValueStr }
func (e *InputDef) Value() *value.Value   { return e.val }
func (e *InputDef) InterfaceName() string { return "" }

// ParamDef is a uniform parameter declaration on a node definition.
type ParamDef struct {
	ParamName string `yaml:"name"`
	Type      string `yaml:"type"`
	ValueStr  string `yaml:"value"`

	val *value.Value
}

func (e *ParamDef) Name() string          { return e.ParamName }
func (e *ParamDef) TypeName() string      { return e.Type }
func (e *ParamDef) ValueString() string   { return e.ValueStr }
func (e *ParamDef) Value() *value.Value   { return e.val }
func (e *ParamDef) InterfaceName() string { return "" }

// OutputDef is an output declaration on a node definition.
type OutputDef struct {
	OutputName string `yaml:"name"`
	Type       string `yaml:"type"`
}

func (e *OutputDef) Name() string          { return e.OutputName }
func (e *OutputDef) TypeName() string      { return e.Type }
func (e *OutputDef) ValueString() string   { return "" }
func (e *OutputDef) Value() *value.Value   { return nil }
func (e *OutputDef) InterfaceName() string { return "" }

// NodeDef declares the interface of a node: its node string, declared
// type, group, attributes, and ordered inputs, parameters and outputs.
type NodeDef struct {
	DefName    string            `yaml:"name"`
	Node       string            `yaml:"node"`
	Type       string            `yaml:"type"`
	Group      string            `yaml:"group"`
	Attributes map[string]string `yaml:"attributes"`
	Inputs     []*InputDef       `yaml:"inputs"`
	Params     []*ParamDef       `yaml:"params"`
	Outputs    []*OutputDef      `yaml:"outputs"`

	doc *Document
}

func (d *NodeDef) Name() string { return d.DefName }

// NodeString returns the node category this definition implements.
func (d *NodeDef) NodeString() string { return d.Node }

// TypeName returns the declared type of the definition.
func (d *NodeDef) TypeName() string { return d.Type }

// NodeGroup returns the group attribute, e.g. "texture2d".
func (d *NodeDef) NodeGroup() string { return d.Group }

// Attribute returns a named attribute, or "".
func (d *NodeDef) Attribute(key string) string { return d.Attributes[key] }

// ValueElements returns inputs, then parameters, then outputs, each in
// declaration order. Callers tell outputs apart by their *OutputDef type.
func (d *NodeDef) ValueElements() []ValueElement {
	elems := make([]ValueElement, 0, len(d.Inputs)+len(d.Params)+len(d.Outputs))
	for _, in := range d.Inputs {
		elems = append(elems, in)
	}
	for _, p := range d.Params {
		elems = append(elems, p)
	}
	for _, out := range d.Outputs {
		elems = append(elems, out)
	}
	return elems
}

// Input returns the input declaration with the given name, or nil.
func (d *NodeDef) Input(name string) *InputDef {
	for _, in := range d.Inputs {
		if in.InputName == name {
			return in
		}
	}
	return nil
}

// Implementation returns the implementation element registered for this
// definition matching the given target and language. An implementation
// with an empty target or language matches any.
func (d *NodeDef) Implementation(target, language string) *Implementation {
	if d.doc == nil {
		return nil
	}
	for _, impl := range d.doc.Implementations {
		if impl.NodeDef != d.DefName {
			continue
		}
		if impl.Target != "" && impl.Target != target {
			continue
		}
		if impl.Language != "" && impl.Language != language {
			continue
		}
		return impl
	}
	return nil
}

// Implementation binds a node definition to generator source for a
// specific target and language.
type Implementation struct {
	ImplName string `yaml:"name"`
	NodeDef  string `yaml:"nodedef"`
	Target   string `yaml:"target"`
	Language string `yaml:"language"`
	File     string `yaml:"file"`
	Function string `yaml:"function"`
}

func (i *Implementation) Name() string { return i.ImplName }

// InputElem is an input on a node instance. It either carries a value
// override, names an upstream node, or publishes itself on the graph
// interface.
type InputElem struct {
	InputName string `yaml:"name"`
	Type      string `yaml:"type"`
	ValueStr  string `yaml:"value"`
	NodeName  string `yaml:"node"`
	Interface string `yaml:"interfacename"`

	val *value.Value
}

func (e *InputElem) Name() string          { return e.InputName }
func (e *InputElem) TypeName() string      { return e.Type }
func (e *InputElem) ValueString() string   { return e.ValueStr }
func (e *InputElem) Value() *value.Value   { return e.val }
func (e *InputElem) InterfaceName() string { return e.Interface }

// ParamElem is a parameter on a node instance.
type ParamElem struct {
	ParamName  string            `yaml:"name"`
	Type       string            `yaml:"type"`
	ValueStr   string            `yaml:"value"`
	Interface  string            `yaml:"interfacename"`
	Attributes map[string]string `yaml:"attributes"`

	val *value.Value
}

func (e *ParamElem) Name() string          { return e.ParamName }
func (e *ParamElem) TypeName() string      { return e.Type }
func (e *ParamElem) ValueString() string   { return e.ValueStr }
func (e *ParamElem) Value() *value.Value   { return e.val }
func (e *ParamElem) InterfaceName() string { return e.Interface }

// Attribute returns a named attribute, or "".
func (e *ParamElem) Attribute(key string) string { return e.Attributes[key] }

// Node is a node instance inside a node graph or at document level.
type Node struct {
	NodeName string       `yaml:"name"`
	Category string       `yaml:"node"`
	Type     string       `yaml:"type"`
	Inputs   []*InputElem `yaml:"inputs"`
	Params   []*ParamElem `yaml:"params"`

	graph *NodeGraph
	doc   *Document
}

func (n *Node) Name() string { return n.NodeName }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// ValueElements returns the instance inputs then parameters.
func (n *Node) ValueElements() []ValueElement {
	elems := make([]ValueElement, 0, len(n.Inputs)+len(n.Params))
	for _, in := range n.Inputs {
		elems = append(elems, in)
	}
	for _, p := range n.Params {
		elems = append(elems, p)
	}
	return elems
}

// Input returns the instance input with the given name, or nil.
func (n *Node) Input(name string) *InputElem {
	for _, in := range n.Inputs {
		if in.InputName == name {
			return in
		}
	}
	return nil
}

// Parameter returns the instance parameter with the given name, or nil.
func (n *Node) Parameter(name string) *ParamElem {
	for _, p := range n.Params {
		if p.ParamName == name {
			return p
		}
	}
	return nil
}

// NodeDef resolves the node definition for this instance: the first
// definition whose node string matches the instance category and whose
// declared type matches the instance type, if the instance declares one.
func (n *Node) NodeDef() *NodeDef {
	if n.doc == nil {
		return nil
	}
	for _, def := range n.doc.NodeDefs {
		if def.Node != n.Category {
			continue
		}
		if n.Type != "" && def.Type != "" && def.Type != n.Type {
			continue
		}
		return def
	}
	return nil
}

// sibling resolves a node name in the instance's scope: its graph
// first, then the document.
func (n *Node) sibling(name string) *Node {
	if n.graph != nil {
		if s := n.graph.Node(name); s != nil {
			return s
		}
	}
	if n.doc != nil {
		return n.doc.Node(name)
	}
	return nil
}

// Output is an output element of a node graph or the document,
// optionally connected to a node by name.
type Output struct {
	OutputName string `yaml:"name"`
	Type       string `yaml:"type"`
	NodeName   string `yaml:"node"`

	graph *NodeGraph
	doc   *Document
}

func (o *Output) Name() string          { return o.OutputName }
func (o *Output) TypeName() string      { return o.Type }
func (o *Output) ValueString() string   { return "" }
func (o *Output) Value() *value.Value   { return nil }
func (o *Output) InterfaceName() string { return "" }

// Parent returns the owning node graph, or nil for document-level
// outputs.
func (o *Output) Parent() *NodeGraph { return o.graph }

// ConnectedNode resolves the node this output reads from, or nil.
func (o *Output) ConnectedNode() *Node {
	if o.NodeName == "" {
		return nil
	}
	if o.graph != nil {
		if n := o.graph.Node(o.NodeName); n != nil {
			return n
		}
	}
	if o.doc != nil {
		return o.doc.Node(o.NodeName)
	}
	return nil
}

// NodeGraph is a named graph of node instances with declared outputs.
type NodeGraph struct {
	GraphName  string    `yaml:"name"`
	NodeDefStr string    `yaml:"nodedef"`
	Nodes      []*Node   `yaml:"nodes"`
	Outputs    []*Output `yaml:"outputs"`

	doc *Document
}

func (g *NodeGraph) Name() string { return g.GraphName }

// NodeDefString returns the name of the declared interface.
func (g *NodeGraph) NodeDefString() string { return g.NodeDefStr }

// NodeDef resolves the declared interface, or nil.
func (g *NodeGraph) NodeDef() *NodeDef {
	if g.doc == nil || g.NodeDefStr == "" {
		return nil
	}
	return g.doc.NodeDef(g.NodeDefStr)
}

// ValueElements forwards to the declared interface when present.
func (g *NodeGraph) ValueElements() []ValueElement {
	if def := g.NodeDef(); def != nil {
		return def.ValueElements()
	}
	return nil
}

// Node returns the node instance with the given name, or nil.
func (g *NodeGraph) Node(name string) *Node {
	for _, n := range g.Nodes {
		if n.NodeName == name {
			return n
		}
	}
	return nil
}

// Output returns the output with the given name, or nil.
func (g *NodeGraph) Output(name string) *Output {
	for _, o := range g.Outputs {
		if o.OutputName == name {
			return o
		}
	}
	return nil
}

// Document returns the owning document.
func (g *NodeGraph) Document() *Document { return g.doc }

// BindInput overrides a shader input, either with a value or with an
// explicit connection to a node graph output.
type BindInput struct {
	BindName  string `yaml:"name"`
	Type      string `yaml:"type"`
	ValueStr  string `yaml:"value"`
	NodeGraph string `yaml:"nodegraph"`
	Output    string `yaml:"output"`

	val *value.Value
	ref *ShaderRef
}

func (b *BindInput) Name() string          { return b.BindName }
func (b *BindInput) TypeName() string      { return b.Type }
func (b *BindInput) ValueString() string   { return b.ValueStr }
func (b *BindInput) Value() *value.Value   { return b.val }
func (b *BindInput) InterfaceName() string { return "" }

// OutputString names the explicit upstream output, or "".
func (b *BindInput) OutputString() string { return b.Output }

// ConnectedOutput resolves the explicit upstream output element, or nil.
func (b *BindInput) ConnectedOutput() *Output {
	if b.ref == nil || b.ref.doc == nil || b.NodeGraph == "" {
		return nil
	}
	ng := b.ref.doc.Graph(b.NodeGraph)
	if ng == nil {
		return nil
	}
	if b.Output != "" {
		return ng.Output(b.Output)
	}
	if len(ng.Outputs) > 0 {
		return ng.Outputs[0]
	}
	return nil
}

// BindParam overrides a shader parameter with a value.
type BindParam struct {
	BindName string `yaml:"name"`
	Type     string `yaml:"type"`
	ValueStr string `yaml:"value"`

	val *value.Value
}

func (b *BindParam) Name() string          { return b.BindName }
func (b *BindParam) TypeName() string      { return b.Type }
func (b *BindParam) ValueString() string   { return b.ValueStr }
func (b *BindParam) Value() *value.Value   { return b.val }
func (b *BindParam) InterfaceName() string { return "" }

// ShaderRef instantiates a shader node definition inside a material.
type ShaderRef struct {
	RefName    string       `yaml:"name"`
	NodeDefStr string       `yaml:"nodedef"`
	Node       string       `yaml:"node"`
	BindInputs []*BindInput `yaml:"bindinputs"`
	BindParams []*BindParam `yaml:"bindparams"`

	material *Material
	doc      *Document
}

func (r *ShaderRef) Name() string { return r.RefName }

// NodeDef resolves the referenced shader definition: by nodedef name if
// declared, otherwise by node string.
func (r *ShaderRef) NodeDef() *NodeDef {
	if r.doc == nil {
		return nil
	}
	if r.NodeDefStr != "" {
		return r.doc.NodeDef(r.NodeDefStr)
	}
	if r.Node != "" {
		for _, def := range r.doc.NodeDefs {
			if def.Node == r.Node {
				return def
			}
		}
	}
	return nil
}

// BindInput returns the binding for the named input, or nil.
func (r *ShaderRef) BindInput(name string) *BindInput {
	for _, b := range r.BindInputs {
		if b.BindName == name {
			return b
		}
	}
	return nil
}

// BindParam returns the binding for the named parameter, or nil.
func (r *ShaderRef) BindParam(name string) *BindParam {
	for _, b := range r.BindParams {
		if b.BindName == name {
			return b
		}
	}
	return nil
}

// Material returns the owning material.
func (r *ShaderRef) Material() *Material { return r.material }

// Document returns the owning document.
func (r *ShaderRef) Document() *Document { return r.doc }

// Material groups shader references.
type Material struct {
	MaterialName string       `yaml:"name"`
	ShaderRefs   []*ShaderRef `yaml:"shaderrefs"`
}

func (m *Material) Name() string { return m.MaterialName }

// Document is the root element.
type Document struct {
	NodeDefs        []*NodeDef        `yaml:"nodedefs"`
	Implementations []*Implementation `yaml:"implementations"`
	NodeGraphs      []*NodeGraph      `yaml:"nodegraphs"`
	Nodes           []*Node           `yaml:"nodes"`
	Outputs         []*Output         `yaml:"outputs"`
	Materials       []*Material       `yaml:"materials"`
}

// NodeDef returns the definition with the given name, or nil.
func (d *Document) NodeDef(name string) *NodeDef {
	for _, def := range d.NodeDefs {
		if def.DefName == name {
			return def
		}
	}
	return nil
}

// Graph returns the node graph with the given name, or nil.
func (d *Document) Graph(name string) *NodeGraph {
	for _, g := range d.NodeGraphs {
		if g.GraphName == name {
			return g
		}
	}
	return nil
}

// Node returns the document-level node with the given name, or nil.
func (d *Document) Node(name string) *Node {
	for _, n := range d.Nodes {
		if n.NodeName == name {
			return n
		}
	}
	return nil
}

// Output returns the document-level output with the given name, or nil.
func (d *Document) Output(name string) *Output {
	for _, o := range d.Outputs {
		if o.OutputName == name {
			return o
		}
	}
	return nil
}

// Material returns the material with the given name, or nil.
func (d *Document) Material(name string) *Material {
	for _, m := range d.Materials {
		if m.MaterialName == name {
			return m
		}
	}
	return nil
}

// Resolve wires parent and document back-references and parses every
// literal value string against its declared type. Load calls it; callers
// assembling documents in memory must call it themselves before use.
func (d *Document) Resolve() error {
	for _, def := range d.NodeDefs {
		def.doc = d
		for _, in := range def.Inputs {
			if err := parseValue(&in.val, in.Type, in.ValueStr); err != nil {
				return fmt.Errorf("nodedef %s input %s: %w", def.DefName, in.InputName, err)
			}
		}
		for _, p := range def.Params {
			if err := parseValue(&p.val, p.Type, p.ValueStr); err != nil {
				return fmt.Errorf("nodedef %s param %s: %w", def.DefName, p.ParamName, err)
			}
		}
	}
	for _, g := range d.NodeGraphs {
		g.doc = d
		for _, n := range g.Nodes {
			n.graph = g
			n.doc = d
			if err := resolveNode(n); err != nil {
				return fmt.Errorf("nodegraph %s: %w", g.GraphName, err)
			}
		}
		for _, o := range g.Outputs {
			o.graph = g
			o.doc = d
		}
	}
	for _, n := range d.Nodes {
		n.doc = d
		if err := resolveNode(n); err != nil {
			return err
		}
	}
	for _, o := range d.Outputs {
		o.doc = d
	}
	for _, m := range d.Materials {
		for _, r := range m.ShaderRefs {
			r.material = m
			r.doc = d
			for _, b := range r.BindInputs {
				b.ref = r
				if err := parseValue(&b.val, b.Type, b.ValueStr); err != nil {
					return fmt.Errorf("shaderref %s bindinput %s: %w", r.RefName, b.BindName, err)
				}
			}
			for _, b := range r.BindParams {
				if err := parseValue(&b.val, b.Type, b.ValueStr); err != nil {
					return fmt.Errorf("shaderref %s bindparam %s: %w", r.RefName, b.BindName, err)
				}
			}
		}
	}
	return nil
}

func resolveNode(n *Node) error {
	for _, in := range n.Inputs {
		if err := parseValue(&in.val, in.Type, in.ValueStr); err != nil {
			return fmt.Errorf("node %s input %s: %w", n.NodeName, in.InputName, err)
		}
	}
	for _, p := range n.Params {
		if err := parseValue(&p.val, p.Type, p.ValueStr); err != nil {
			return fmt.Errorf("node %s param %s: %w", n.NodeName, p.ParamName, err)
		}
	}
	return nil
}

func parseValue(dst **value.Value, typeName, valueStr string) error {
	if valueStr == "" {
		return nil
	}
	t := types.Get(typeName)
	if t == nil {
		return fmt.Errorf("unknown type %q", typeName)
	}
	v, err := value.Parse(t, valueStr)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
