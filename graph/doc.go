// Package graph is the shader-graph intermediate representation and its
// lowering pipeline.
//
// A Graph is built from one of three material-document roots — a
// declared node-graph, a bare output element, or a shader reference —
// and finalized into a frozen IR: optimized (constants folded,
// conditionals with constant tests collapsed), topologically ordered,
// scope-analyzed, uniquely named, and closure-tracked. Language
// backends consume the finalized graph and emit source; the graph core
// itself emits nothing.
//
// # Structure
//
// Nodes own their ports. Connections are non-owning cross-links kept
// symmetric by the port mutators: an input's Connection always appears
// in the upstream output's Connections list and vice versa. Graphs own
// their nodes and expose polarity-inverted boundary sockets.
//
// # Pipeline
//
//	Builder → Optimizer → Color transforms → Topological sort →
//	Scope analysis → Name validation → Closure tracking
//
// All of it is single threaded. Independent graphs may be built
// concurrently as long as they share no nodes or ports and the type
// registry is populated first.
package graph
