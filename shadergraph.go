// Package shadergraph lowers declarative material documents into a
// typed shader-graph intermediate representation.
//
// Given a material document and a root element — a node graph, an
// output, or a shader reference — the package builds a flat, acyclic
// graph of shader nodes, folds constants and constant conditionals,
// inserts implicit color transforms and default geometry readers,
// orders the nodes for emission, computes conditional-scope metadata,
// and assigns unique target-legal identifiers. Language backends
// consume the finalized graph and emit source.
//
// Example usage:
//
//	doc, err := document.Load("material.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := shadergraph.Build(doc, "NG_marble", gen.New("glsl400", "glsl"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, node := range g.Nodes() {
//	    fmt.Println(node.Name(), node.Classification())
//	}
//
// The heavy lifting lives in the graph package; document models the
// input, and gen supplies the default generator and syntax services.
package shadergraph

import (
	"fmt"

	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/graph"
)

// Build builds and finalizes the shader graph for a named element of
// the document. The name may identify a node graph, a document-level
// output, a material (its first shader reference is used), or a shader
// reference inside any material.
func Build(doc *document.Document, elementName string, generator graph.Generator) (*graph.Graph, error) {
	if ng := doc.Graph(elementName); ng != nil {
		return graph.FromNodeGraph(ng, generator)
	}
	if output := doc.Output(elementName); output != nil {
		return graph.FromElement(elementName, output, generator)
	}
	if material := doc.Material(elementName); material != nil {
		if len(material.ShaderRefs) == 0 {
			return nil, fmt.Errorf("material %q has no shader references", elementName)
		}
		ref := material.ShaderRefs[0]
		return graph.FromElement(ref.Name(), ref, generator)
	}
	for _, material := range doc.Materials {
		for _, ref := range material.ShaderRefs {
			if ref.Name() == elementName {
				return graph.FromElement(ref.Name(), ref, generator)
			}
		}
	}
	return nil, fmt.Errorf("element %q not found in document", elementName)
}

// BuildFile loads a YAML material document and builds the named
// element, as Build does.
func BuildFile(path, elementName string, generator graph.Generator) (*graph.Graph, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return Build(doc, elementName, generator)
}
