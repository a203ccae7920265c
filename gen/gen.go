// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package gen provides the default generator and syntax services the
// graph builder consults: target and language selection, implementation
// resolution, node-context assignment, and identifier legalization.
package gen

import (
	"github.com/gogpu/shadergraph/document"
	"github.com/gogpu/shadergraph/graph"
)

// SourceImplementation is an implementation handle backed by a source
// code implementation element from the document.
type SourceImplementation struct {
	elem *document.Implementation
}

// Name returns the implementation element name.
func (s *SourceImplementation) Name() string { return s.elem.Name() }

// File returns the source file the implementation points at.
func (s *SourceImplementation) File() string { return s.elem.File }

// Function returns the entry function inside the source file.
func (s *SourceImplementation) Function() string { return s.elem.Function }

// Generator is the default shader generator front half: it resolves
// implementations straight from the document and assigns every node the
// default context. Language backends embed or wrap it.
type Generator struct {
	target   string
	language string
	syntax   *Syntax
}

// New creates a generator for the given target and language with the
// default syntax.
func New(target, language string) *Generator {
	return &Generator{
		target:   target,
		language: language,
		syntax:   NewSyntax(),
	}
}

// Target returns the generation target.
func (g *Generator) Target() string { return g.target }

// Language returns the shading language.
func (g *Generator) Language() string { return g.language }

// Implementation wraps an implementation element into a handle.
func (g *Generator) Implementation(elem *document.Implementation) graph.Implementation {
	if elem == nil {
		return nil
	}
	return &SourceImplementation{elem: elem}
}

// AssignContextIDs gives every node the default context.
func (g *Generator) AssignContextIDs(n *graph.Node) {
	n.AddContextID(graph.DefaultContext)
}

// Syntax returns the identifier service.
func (g *Generator) Syntax() graph.Syntax { return g.syntax }
