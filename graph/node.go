// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"sort"

	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/types"
)

// Classification is a bitmask of semantic node roles. Flags are
// additive; emitters test them to select code templates.
type Classification uint32

const (
	// ClassTexture is a node that outputs a spatially-varying value.
	ClassTexture Classification = 1 << iota

	// ClassClosure is a node that outputs a light-interaction closure.
	ClassClosure

	// ClassShader is a complete shader.
	ClassShader

	// ClassSurface is a surface shader.
	ClassSurface

	// ClassLight is a light shader.
	ClassLight

	// ClassBSDF is a reflectance/transmittance distribution closure.
	ClassBSDF

	// ClassBSDFR restricts a BSDF to reflection.
	ClassBSDFR

	// ClassBSDFT restricts a BSDF to transmission.
	ClassBSDFT

	// ClassEDF is an emission distribution closure.
	ClassEDF

	// ClassVDF is a volume distribution closure.
	ClassVDF

	// ClassConstant is a constant-value texture node.
	ClassConstant

	// ClassFileTexture is a file texture node.
	ClassFileTexture

	// ClassConditional is a conditional node of either flavor.
	ClassConditional

	// ClassIfElse is a compare conditional.
	ClassIfElse

	// ClassSwitch is a switch conditional.
	ClassSwitch

	// ClassSample2D samples in two dimensions.
	ClassSample2D

	// ClassSample3D samples in three dimensions.
	ClassSample3D

	// ClassConvolution2D convolves a two-dimensional neighborhood.
	ClassConvolution2D
)

var classNames = []struct {
	flag Classification
	name string
}{
	{ClassTexture, "texture"},
	{ClassClosure, "closure"},
	{ClassShader, "shader"},
	{ClassSurface, "surface"},
	{ClassLight, "light"},
	{ClassBSDF, "bsdf"},
	{ClassBSDFR, "bsdf_r"},
	{ClassBSDFT, "bsdf_t"},
	{ClassEDF, "edf"},
	{ClassVDF, "vdf"},
	{ClassConstant, "constant"},
	{ClassFileTexture, "filetexture"},
	{ClassConditional, "conditional"},
	{ClassIfElse, "ifelse"},
	{ClassSwitch, "switch"},
	{ClassSample2D, "sample2d"},
	{ClassSample3D, "sample3d"},
	{ClassConvolution2D, "convolution2d"},
}

// String returns the set flags joined with '|'.
func (c Classification) String() string {
	s := ""
	for _, cn := range classNames {
		if c&cn.flag == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += cn.name
	}
	if s == "" {
		return "none"
	}
	return s
}

// ScopeType tags how a node's result is needed across execution paths.
type ScopeType uint8

const (
	// ScopeUnknown is the uninitialized state.
	ScopeUnknown ScopeType = iota

	// ScopeGlobal marks a node needed on every execution path.
	ScopeGlobal

	// ScopeSingle marks a node needed only on specific branches of one
	// conditional node.
	ScopeSingle

	// ScopeMultiple marks a node needed under more than one conditional.
	// Code generation currently treats it like ScopeGlobal.
	ScopeMultiple
)

// String returns a human-readable scope type name.
func (t ScopeType) String() string {
	switch t {
	case ScopeGlobal:
		return "global"
	case ScopeSingle:
		return "single"
	case ScopeMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// ScopeInfo records a node's conditional dependency.
type ScopeInfo struct {
	Type ScopeType

	// ConditionalNode is the conditional ancestor for ScopeSingle.
	ConditionalNode *Node

	// ConditionBitmask has one bit set per branch the node is needed on.
	ConditionBitmask uint32

	// FullConditionMask is the mask with every branch bit set.
	FullConditionMask uint32
}

// AdjustAtConditionalInput narrows the scope for a value feeding the
// given branch of a conditional node.
func (s *ScopeInfo) AdjustAtConditionalInput(cond *Node, branch int, fullMask uint32) {
	if s.Type == ScopeGlobal || (s.Type == ScopeSingle && s.ConditionBitmask == s.FullConditionMask) {
		s.Type = ScopeSingle
		s.ConditionalNode = cond
		s.ConditionBitmask = 1 << branch
		s.FullConditionMask = fullMask
	} else if s.Type == ScopeSingle {
		s.Type = ScopeMultiple
		s.ConditionalNode = nil
	}
}

// Merge widens the scope with the requirements of one more downstream
// use.
func (s *ScopeInfo) Merge(from ScopeInfo) {
	if s.Type == ScopeUnknown || from.Type == ScopeGlobal {
		*s = from
	} else if s.Type == ScopeGlobal {
		// Already needed everywhere.
	} else if s.Type == ScopeSingle && from.Type == ScopeSingle && s.ConditionalNode == from.ConditionalNode {
		s.ConditionBitmask |= from.ConditionBitmask

		// Needed on all branches, so no longer conditional.
		if s.ConditionBitmask == s.FullConditionMask {
			s.Type = ScopeGlobal
			s.ConditionalNode = nil
		}
	} else {
		s.Type = ScopeMultiple
		s.ConditionalNode = nil
	}
}

// Node string identities and attributes with classification meaning.
const (
	constantNode = "constant"
	imageNode    = "image"
	compareNode  = "compare"
	switchNode   = "switch"

	classAttribute = "sxclass"
	bsdfAttribute  = "bsdf"
	bsdfReflection = "R"
	bsdfTransmit   = "T"
)

// Node groups with sampling semantics.
const (
	groupTexture2D     = "texture2d"
	groupTexture3D     = "texture3d"
	groupProcedural2D  = "procedural2d"
	groupProcedural3D  = "procedural3d"
	groupConvolution2D = "convolution2d"
)

// Canonical sampling inputs per group.
const (
	texcoordInput = "texcoord"
	positionInput = "position"
)

// Node is a typed operator in a shader graph.
type Node struct {
	name           string
	classification Classification
	impl           Implementation

	inputs    []*Input
	outputs   []*Output
	inputMap  map[string]*Input
	outputMap map[string]*Output

	// samplingInput is the input that positions texture sampling, for
	// nodes in a sampling group.
	samplingInput *Input

	scope        ScopeInfo
	usedClosures map[*Node]struct{}
	contextIDs   map[int]struct{}

	isGraph bool
}

// NewNode creates an empty node with the given name.
func NewNode(name string) *Node {
	return &Node{
		name:         name,
		inputMap:     make(map[string]*Input),
		outputMap:    make(map[string]*Output),
		usedClosures: make(map[*Node]struct{}),
		contextIDs:   make(map[int]struct{}),
	}
}

// CreateNode builds a node from its definition, resolving the
// implementation through the generator and copying value overrides from
// the optional instance element.
func CreateNode(name string, nodeDef *document.NodeDef, gen Generator, instance *document.Node) (*Node, error) {
	n := NewNode(name)

	if elem := nodeDef.Implementation(gen.Target(), gen.Language()); elem != nil {
		n.impl = gen.Implementation(elem)
	}
	if n.impl == nil {
		return nil, errorf(ErrImplementationNotFound,
			"no implementation for node %q matching language %q and target %q",
			nodeDef.NodeString(), gen.Language(), gen.Target())
	}

	var groupClassification Classification
	switch nodeDef.NodeGroup() {
	case groupTexture2D, groupProcedural2D:
		groupClassification = ClassSample2D
	case groupTexture3D, groupProcedural3D:
		groupClassification = ClassSample3D
	case groupConvolution2D:
		groupClassification = ClassConvolution2D
	}

	// Create the interface from the definition.
	for _, elem := range nodeDef.ValueElements() {
		t, err := resolveType(elem.TypeName(), nodeDef.Name(), elem.Name())
		if err != nil {
			return nil, err
		}
		if _, isOutput := elem.(*document.OutputDef); isOutput {
			if _, err := n.AddOutput(elem.Name(), t); err != nil {
				return nil, err
			}
			continue
		}

		input, err := n.AddInput(elem.Name(), t)
		if err != nil {
			return nil, err
		}
		if elem.ValueString() != "" {
			input.Value = elem.Value()
		}

		if (groupClassification == ClassSample2D && elem.Name() == texcoordInput) ||
			(groupClassification == ClassSample3D && elem.Name() == positionInput) {
			n.samplingInput = input
		}
	}

	// Add a default output if the definition declared none.
	if len(n.outputs) == 0 {
		t, err := resolveType(nodeDef.TypeName(), nodeDef.Name(), "out")
		if err != nil {
			return nil, err
		}
		if _, err := n.AddOutput("out", t); err != nil {
			return nil, err
		}
	}

	// Assign input values from the node instance.
	if instance != nil {
		for _, elem := range instance.ValueElements() {
			if elem.ValueString() == "" {
				continue
			}
			if input := n.Input(elem.Name()); input != nil {
				input.Value = elem.Value()
			}
		}
	}

	// Classify, defaulting to texture node.
	n.classification = ClassTexture
	switch primary := n.Output(); primary.Type {
	case types.SurfaceShader:
		n.classification = ClassSurface | ClassShader
	case types.LightShader:
		n.classification = ClassLight | ClassShader
	case types.BSDF:
		n.classification = ClassBSDF | ClassClosure
		switch nodeDef.Attribute(bsdfAttribute) {
		case bsdfReflection:
			n.classification |= ClassBSDFR
		case bsdfTransmit:
			n.classification |= ClassBSDFT
		}
	case types.EDF:
		n.classification = ClassEDF | ClassClosure
	case types.VDF:
		n.classification = ClassVDF | ClassClosure
	default:
		switch {
		case nodeDef.NodeString() == constantNode:
			n.classification = ClassTexture | ClassConstant
		case nodeDef.NodeString() == imageNode || nodeDef.Attribute(classAttribute) == imageNode:
			n.classification = ClassTexture | ClassFileTexture
		case nodeDef.NodeString() == compareNode:
			n.classification = ClassTexture | ClassConditional | ClassIfElse
		case nodeDef.NodeString() == switchNode:
			n.classification = ClassTexture | ClassConditional | ClassSwitch
		}
	}
	n.classification |= groupClassification

	gen.AssignContextIDs(n)

	return n, nil
}

func resolveType(typeName, owner, port string) (*types.TypeDesc, error) {
	t := types.Get(typeName)
	if t == nil {
		return nil, fmt.Errorf("unknown type %q on %s.%s", typeName, owner, port)
	}
	return t, nil
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Classification returns the classification bitmask.
func (n *Node) Classification() Classification { return n.classification }

// HasClassification reports whether every flag in c is set.
func (n *Node) HasClassification(c Classification) bool {
	return n.classification&c == c
}

// Impl returns the implementation handle.
func (n *Node) Impl() Implementation { return n.impl }

// IsGraph reports whether the node is itself a graph.
func (n *Node) IsGraph() bool { return n.isGraph }

// SamplingInput returns the sampling position input for nodes in a
// sampling group, or nil.
func (n *Node) SamplingInput() *Input { return n.samplingInput }

// ScopeInfo returns the mutable scope record.
func (n *Node) ScopeInfo() *ScopeInfo { return &n.scope }

// ReferencedConditionally reports whether the node is needed only on
// specific conditional branches.
func (n *Node) ReferencedConditionally() bool {
	if n.scope.Type != ScopeSingle {
		return false
	}
	branches := 0
	for mask := n.scope.ConditionBitmask; mask != 0; mask >>= 1 {
		if mask&1 != 0 {
			branches++
		}
	}
	return branches > 0
}

// UsedClosures returns the closure nodes reachable upstream from a
// shader node, in name order. Populated during graph finalization.
func (n *Node) UsedClosures() []*Node {
	closures := make([]*Node, 0, len(n.usedClosures))
	for c := range n.usedClosures {
		closures = append(closures, c)
	}
	sort.Slice(closures, func(i, j int) bool { return closures[i].name < closures[j].name })
	return closures
}

// UsesClosure reports whether the given closure node feeds this node.
func (n *Node) UsesClosure(c *Node) bool {
	_, ok := n.usedClosures[c]
	return ok
}

// AddContextID records a generator context this node participates in.
func (n *Node) AddContextID(id int) {
	n.contextIDs[id] = struct{}{}
}

// ContextIDs returns the recorded context IDs in ascending order.
func (n *Node) ContextIDs() []int {
	ids := make([]int, 0, len(n.contextIDs))
	for id := range n.contextIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AddInput adds an input port. The port order is positional and
// observable; conditional folding indexes into it.
func (n *Node) AddInput(name string, t *types.TypeDesc) (*Input, error) {
	if _, exists := n.inputMap[name]; exists {
		return nil, errorf(ErrDuplicatePortName, "an input named %q already exists on node %q", name, n.name)
	}
	in := &Input{Name: name, Type: t, Node: n}
	n.inputMap[name] = in
	n.inputs = append(n.inputs, in)
	return in, nil
}

// AddOutput adds an output port.
func (n *Node) AddOutput(name string, t *types.TypeDesc) (*Output, error) {
	if _, exists := n.outputMap[name]; exists {
		return nil, errorf(ErrDuplicatePortName, "an output named %q already exists on node %q", name, n.name)
	}
	out := &Output{Name: name, Type: t, Node: n}
	n.outputMap[name] = out
	n.outputs = append(n.outputs, out)
	return out, nil
}

// Input returns the input with the given name, or nil.
func (n *Node) Input(name string) *Input { return n.inputMap[name] }

// InputAt returns the input at the given position, or nil.
func (n *Node) InputAt(index int) *Input {
	if index < 0 || index >= len(n.inputs) {
		return nil
	}
	return n.inputs[index]
}

// Inputs returns the ordered input ports. The slice is shared; callers
// must not modify it.
func (n *Node) Inputs() []*Input { return n.inputs }

// NumInputs returns the input count.
func (n *Node) NumInputs() int { return len(n.inputs) }

// OutputNamed returns the output with the given name, or nil.
func (n *Node) OutputNamed(name string) *Output { return n.outputMap[name] }

// Output returns the primary (first) output, or nil for a node with no
// outputs.
func (n *Node) Output() *Output { return n.OutputAt(0) }

// OutputAt returns the output at the given position, or nil.
func (n *Node) OutputAt(index int) *Output {
	if index < 0 || index >= len(n.outputs) {
		return nil
	}
	return n.outputs[index]
}

// Outputs returns the ordered output ports. The slice is shared;
// callers must not modify it.
func (n *Node) Outputs() []*Output { return n.outputs }

// NumOutputs returns the output count.
func (n *Node) NumOutputs() int { return len(n.outputs) }

// RenameInput renames an input, keeping name lookup consistent.
func (n *Node) RenameInput(name, newName string) {
	if name == newName {
		return
	}
	in, ok := n.inputMap[name]
	if !ok {
		return
	}
	in.Name = newName
	delete(n.inputMap, name)
	n.inputMap[newName] = in
}

// RenameOutput renames an output, keeping name lookup consistent.
func (n *Node) RenameOutput(name, newName string) {
	if name == newName {
		return
	}
	out, ok := n.outputMap[name]
	if !ok {
		return
	}
	out.Name = newName
	delete(n.outputMap, name)
	n.outputMap[newName] = out
}

func (n *Node) String() string {
	return fmt.Sprintf("%s (%s)", n.name, n.classification)
}
