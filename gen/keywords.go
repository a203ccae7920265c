// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gen

// reservedKeywords contains the identifiers the default syntax refuses
// to hand out: GLSL keywords, type names, and the common built-in
// variables. Based on the GLSL 4.x specification.
var reservedKeywords = map[string]struct{}{
	// Keywords
	"attribute":     {},
	"break":         {},
	"buffer":        {},
	"case":          {},
	"centroid":      {},
	"coherent":      {},
	"const":         {},
	"continue":      {},
	"default":       {},
	"discard":       {},
	"do":            {},
	"else":          {},
	"flat":          {},
	"for":           {},
	"highp":         {},
	"if":            {},
	"in":            {},
	"inout":         {},
	"invariant":     {},
	"layout":        {},
	"lowp":          {},
	"mediump":       {},
	"noperspective": {},
	"out":           {},
	"patch":         {},
	"precision":     {},
	"readonly":      {},
	"restrict":      {},
	"return":        {},
	"sample":        {},
	"shared":        {},
	"smooth":        {},
	"struct":        {},
	"subroutine":    {},
	"switch":        {},
	"uniform":       {},
	"varying":       {},
	"volatile":      {},
	"while":         {},
	"writeonly":     {},

	// Types
	"bool":        {},
	"bvec2":       {},
	"bvec3":       {},
	"bvec4":       {},
	"double":      {},
	"dvec2":       {},
	"dvec3":       {},
	"dvec4":       {},
	"float":       {},
	"int":         {},
	"isampler2D":  {},
	"isampler3D":  {},
	"ivec2":       {},
	"ivec3":       {},
	"ivec4":       {},
	"mat2":        {},
	"mat3":        {},
	"mat4":        {},
	"sampler1D":   {},
	"sampler2D":   {},
	"sampler3D":   {},
	"samplerCube": {},
	"uint":        {},
	"usampler2D":  {},
	"usampler3D":  {},
	"uvec2":       {},
	"uvec3":       {},
	"uvec4":       {},
	"vec2":        {},
	"vec3":        {},
	"vec4":        {},
	"void":        {},

	// Built-in variables and functions commonly collided with
	"gl_FragColor": {},
	"gl_FragCoord": {},
	"gl_FragDepth": {},
	"gl_Position":  {},
	"gl_VertexID":  {},
	"main":         {},
	"mix":          {},
	"normalize":    {},
	"reflect":      {},
	"refract":      {},
	"texture":      {},
}
