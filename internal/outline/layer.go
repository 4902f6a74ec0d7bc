package outline

// Anchor is a named reference position attached to a layer.
type Anchor struct {
	// Name is nil when the anchor carries no name.
	Name *string `json:"name,omitempty"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NamedAnchor returns an anchor with the given name.
func NamedAnchor(name string, x, y float64) Anchor {
	return Anchor{Name: &name, X: x, Y: y}
}

// HintType identifies the kind of a layer hint.
type HintType int

const (
	// HintTypeOther covers every hint kind the checks do not interpret.
	HintTypeOther HintType = iota

	// HintTypeSegment marks two points as the ends of a segment component
	// (TrueType hint type 19 in Glyphs).
	HintTypeSegment
)

// Hint is an annotation on a layer that references up to two points.
type Hint struct {
	Type HintType `json:"type"`
	Name string   `json:"name,omitempty"`

	// Origin and Target are nil when the hint does not reference a point.
	Origin *PointRef `json:"origin,omitempty"`
	Target *PointRef `json:"target,omitempty"`
}

// Layer is the drawing of one glyph in one master.
type Layer struct {
	Paths   []Path   `json:"paths,omitempty"`
	Anchors []Anchor `json:"anchors,omitempty"`
	Hints   []Hint   `json:"hints,omitempty"`
}

// Bounds returns the bounding box of all paths of the layer.
// ok is false when the layer has no outline.
func (l Layer) Bounds() (Rect, bool) {
	var (
		r     Rect
		found bool
	)
	for _, p := range l.Paths {
		b, ok := p.Bounds()
		if !ok {
			continue
		}
		if !found {
			r, found = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, found
}

// Glyph is a named glyph with one layer per master.
type Glyph struct {
	Name string `json:"name"`

	// Layers maps a master ID to the glyph's drawing in that master.
	Layers map[string]Layer `json:"layers"`
}

// Layer returns the glyph's layer for the given master.
func (g Glyph) Layer(masterID string) (Layer, bool) {
	l, ok := g.Layers[masterID]
	return l, ok
}

// Master describes one design master of a font.
type Master struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Font is a snapshot of a font's outlines.
type Font struct {
	// FamilyName is the family name, possibly empty.
	FamilyName string `json:"family_name,omitempty"`

	// Masters lists the masters in font order.
	Masters []Master `json:"masters"`

	// Glyphs lists the glyphs in font order.
	Glyphs []Glyph `json:"glyphs"`
}

// Master looks a master up by ID first and by name second.
func (f *Font) Master(key string) (Master, bool) {
	for _, m := range f.Masters {
		if m.ID == key {
			return m, true
		}
	}
	for _, m := range f.Masters {
		if m.Name == key {
			return m, true
		}
	}
	return Master{}, false
}

// DefaultMaster returns the first master, which editors select by default.
func (f *Font) DefaultMaster() (Master, bool) {
	if len(f.Masters) == 0 {
		return Master{}, false
	}
	return f.Masters[0], true
}
