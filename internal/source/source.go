package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/glyphcheck/internal/outline"
)

// Format identifies the kind of a source file.
type Format int

const (
	// FormatUnknown is returned for unrecognized extensions.
	FormatUnknown Format = iota
	// FormatSFNT is an OpenType or TrueType binary.
	FormatSFNT
	// FormatSnapshot is a YAML or JSON outline snapshot.
	FormatSnapshot
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatSFNT:
		return "sfnt"
	case FormatSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// DetectFormat returns the format implied by the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return FormatSFNT
	case ".yaml", ".yml", ".json":
		return FormatSnapshot
	default:
		return FormatUnknown
	}
}

// sfntMagic lists the leading tags of TrueType and OpenType binaries.
var sfntMagic = [][]byte{
	{0x00, 0x01, 0x00, 0x00},
	[]byte("OTTO"),
	[]byte("true"),
}

// SniffFormat returns FormatSFNT when data starts with a font file tag,
// and FormatUnknown otherwise. Snapshots are only recognized by extension.
func SniffFormat(data []byte) Format {
	for _, magic := range sfntMagic {
		if bytes.HasPrefix(data, magic) {
			return FormatSFNT
		}
	}
	return FormatUnknown
}

// LoadFile reads the font at path and returns its outline snapshot. The
// extension picks the format; files with an unknown extension are sniffed
// for a font file tag.
func LoadFile(ctx context.Context, path string) (*outline.Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	format := DetectFormat(path)
	if format == FormatUnknown {
		format = SniffFormat(data)
	}
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	var font *outline.Font
	switch format {
	case FormatSFNT:
		font, err = ParseSFNT(ctx, data)
	default:
		font, err = ParseSnapshot(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if font.FamilyName == "" {
		font.FamilyName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return font, nil
}
