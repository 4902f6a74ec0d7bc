package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/glyphcheck/internal/outline"
)

// Node type tokens of the snapshot format.
const (
	nodeLine     = "line"
	nodeCurve    = "curve"
	nodeQCurve   = "qcurve"
	nodeOffCurve = "offcurve"
)

// Snapshot tokens of segment component hints. The numeric form is the
// TrueType hint type Glyphs uses for them.
const (
	hintTypeSegment     = "segment"
	hintTypeSegmentCode = "19"
)

// snapshotFile is the on-disk layout of an outline snapshot. YAML is a
// superset of JSON, so one decoder reads both.
type snapshotFile struct {
	Family  string           `yaml:"family"`
	Masters []snapshotMaster `yaml:"masters"`
	Glyphs  []snapshotGlyph  `yaml:"glyphs"`
}

type snapshotMaster struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type snapshotGlyph struct {
	Name   string                   `yaml:"name"`
	Layers map[string]snapshotLayer `yaml:"layers"`
}

type snapshotLayer struct {
	Paths   []snapshotPath   `yaml:"paths"`
	Anchors []snapshotAnchor `yaml:"anchors"`
	Hints   []snapshotHint   `yaml:"hints"`
}

type snapshotPath struct {
	Closed bool           `yaml:"closed"`
	Nodes  []snapshotNode `yaml:"nodes"`
}

type snapshotAnchor struct {
	Name *string `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type snapshotHint struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Origin []int  `yaml:"origin"`
	Target []int  `yaml:"target"`
}

// snapshotNode is a node written as a flow sequence: [x, y, type].
// An optional fourth element (for example "smooth") is ignored.
type snapshotNode struct {
	X    float64
	Y    float64
	Type string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *snapshotNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) < 3 || len(value.Content) > 4 {
		return fmt.Errorf("%w at line %d: want [x, y, type]", ErrInvalidNode, value.Line)
	}
	if err := value.Content[0].Decode(&n.X); err != nil {
		return fmt.Errorf("%w at line %d: x: %w", ErrInvalidNode, value.Line, err)
	}
	if err := value.Content[1].Decode(&n.Y); err != nil {
		return fmt.Errorf("%w at line %d: y: %w", ErrInvalidNode, value.Line, err)
	}
	n.Type = strings.ToLower(strings.TrimSpace(value.Content[2].Value))
	switch n.Type {
	case nodeLine, nodeCurve, nodeQCurve, nodeOffCurve:
		return nil
	default:
		return fmt.Errorf("%w at line %d: unknown type %q", ErrInvalidNode, value.Line, n.Type)
	}
}

// ReadSnapshot decodes an outline snapshot from r.
func ReadSnapshot(r io.Reader) (*outline.Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes a YAML or JSON outline snapshot.
func ParseSnapshot(data []byte) (*outline.Font, error) {
	var file snapshotFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFont
		}
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if len(file.Glyphs) == 0 {
		return nil, ErrEmptyFont
	}

	font := &outline.Font{
		FamilyName: file.Family,
		Masters:    make([]outline.Master, 0, len(file.Masters)),
		Glyphs:     make([]outline.Glyph, 0, len(file.Glyphs)),
	}
	for _, m := range file.Masters {
		id := m.ID
		if id == "" {
			id = m.Name
		}
		font.Masters = append(font.Masters, outline.Master{ID: id, Name: m.Name})
	}

	for _, g := range file.Glyphs {
		glyph := outline.Glyph{
			Name:   g.Name,
			Layers: make(map[string]outline.Layer, len(g.Layers)),
		}
		for id, l := range g.Layers {
			layer, err := l.toLayer()
			if err != nil {
				return nil, fmt.Errorf("glyph %s, layer %s: %w", g.Name, id, err)
			}
			glyph.Layers[id] = layer
		}
		font.Glyphs = append(font.Glyphs, glyph)
	}

	return font, nil
}

func (l snapshotLayer) toLayer() (outline.Layer, error) {
	layer := outline.Layer{}

	for _, p := range l.Paths {
		path := outline.Path{Closed: p.Closed, Points: make([]outline.Point, 0, len(p.Nodes))}
		for _, n := range p.Nodes {
			if n.Type == nodeQCurve {
				path.Quadratic = true
			}
			if n.Type == nodeOffCurve {
				path.Points = append(path.Points, outline.Off(n.X, n.Y))
				continue
			}
			path.Points = append(path.Points, outline.On(n.X, n.Y))
		}
		layer.Paths = append(layer.Paths, path)
	}

	for _, a := range l.Anchors {
		layer.Anchors = append(layer.Anchors, outline.Anchor{Name: a.Name, X: a.X, Y: a.Y})
	}

	for i, h := range l.Hints {
		hint, err := h.toHint(len(layer.Paths))
		if err != nil {
			return outline.Layer{}, fmt.Errorf("hint %d: %w", i, err)
		}
		layer.Hints = append(layer.Hints, hint)
	}

	return layer, nil
}

func (h snapshotHint) toHint(pathCount int) (outline.Hint, error) {
	hint := outline.Hint{Name: h.Name}
	switch strings.ToLower(strings.TrimSpace(h.Type)) {
	case hintTypeSegment, hintTypeSegmentCode:
		hint.Type = outline.HintTypeSegment
	default:
		hint.Type = outline.HintTypeOther
	}

	var err error
	if hint.Origin, err = pointRef(h.Origin, pathCount); err != nil {
		return outline.Hint{}, fmt.Errorf("origin: %w", err)
	}
	if hint.Target, err = pointRef(h.Target, pathCount); err != nil {
		return outline.Hint{}, fmt.Errorf("target: %w", err)
	}
	return hint, nil
}

// pointRef converts a [path, point] pair. An empty pair means no reference.
func pointRef(pair []int, pathCount int) (*outline.PointRef, error) {
	if len(pair) == 0 {
		return nil, nil
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("%w: want [path, point], got %v", ErrInvalidHint, pair)
	}
	if pair[0] < 0 || pair[0] >= pathCount || pair[1] < 0 {
		return nil, fmt.Errorf("%w: reference %v out of range", ErrInvalidHint, pair)
	}
	return &outline.PointRef{Path: pair[0], Point: pair[1]}, nil
}
