// Package main provides the entry point for the glyphcheck CLI.
//
// glyphcheck checks the outlines of a font for geometric problems: tiny
// segments, near-miss lengths, nearly overlapping nodes, redundant
// collinear points, open paths and stray points or anchors.
//
// Usage:
//
//	glyphcheck check <font-or-snapshot>...
//	glyphcheck compare <font-or-snapshot>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
