package graph

import "github.com/gogpu/shadergraph/document"

// Implementation is an opaque handle to the code that implements a node
// for the generator's target. The graph core never looks inside it; it
// is carried on nodes for the emitters downstream.
type Implementation interface {
	Name() string
}

// Generator is the narrow seam to the shader-generator backend. The
// builder consults it for implementation resolution and node-context
// assignment; the name validator consults its syntax service.
type Generator interface {
	// Target returns the generation target, e.g. "glsl400".
	Target() string

	// Language returns the shading language, e.g. "glsl".
	Language() string

	// Implementation maps an implementation element to a handle, or nil
	// when the element cannot be served.
	Implementation(elem *document.Implementation) Implementation

	// AssignContextIDs records on the node the generator contexts the
	// node participates in.
	AssignContextIDs(n *Node)

	// Syntax returns the identifier service for the target language.
	Syntax() Syntax
}

// Syntax legalizes identifiers for a target language.
type Syntax interface {
	// MakeUnique transforms name into a legal, unique identifier, using
	// and updating the given uniqueness map.
	MakeUnique(name string, used map[string]int) string
}

// DefaultContext is the node context every node participates in unless
// a generator assigns others.
const DefaultContext = 0
