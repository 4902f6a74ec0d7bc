// Package source loads glyph outlines from font files into immutable
// outline snapshots.
//
// Two kinds of sources are supported:
//   - OpenType and TrueType binaries (.ttf, .otf), read with
//     golang.org/x/image/font/sfnt. A binary font has a single master.
//   - Outline snapshots (.yaml, .yml, .json) exported from a font editor,
//     which may carry several masters, anchors and hints.
//
// Everything is read once. The returned outline.Font shares no state with the
// file it came from.
package source
