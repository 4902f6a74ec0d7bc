package model

import (
	"fmt"
	"strings"
)

// Category identifies which detector produced an issue.
//
// Design decision: We use iota-based constants rather than string constants
// so categories sort in detector order. The text form (see MarshalText) is
// what appears in JSON and in the database.
type Category int

const (
	// CategorySmallSegment marks segments whose bounding box is only a few
	// units wide or tall.
	CategorySmallSegment Category = iota

	// CategorySuspiciousLength marks segments whose length is close to, but
	// not exactly, one of the meaningful design lengths.
	CategorySuspiciousLength

	// CategoryCloseNodes marks pairs of on-curve points placed too close.
	CategoryCloseNodes

	// CategoryCollinear marks on-curve points lying on a straight run
	// between their neighbours.
	CategoryCollinear

	// CategoryOpenPath marks open paths.
	CategoryOpenPath

	// CategoryIsolated marks single-point paths and stray anchors.
	CategoryIsolated
)

// categoryCount is the number of defined categories.
const categoryCount = int(CategoryIsolated) + 1

// Categories returns all categories in detector order.
func Categories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// String returns the stable identifier of the category.
func (c Category) String() string {
	switch c {
	case CategorySmallSegment:
		return "small_segment"
	case CategorySuspiciousLength:
		return "suspicious_length"
	case CategoryCloseNodes:
		return "close_nodes"
	case CategoryCollinear:
		return "collinear"
	case CategoryOpenPath:
		return "open_path"
	case CategoryIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= categoryCount {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory converts an identifier produced by String back to a Category.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if c.String() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// CategoryInfo contains presentation metadata about a category.
type CategoryInfo struct {
	// Label is the summary line label.
	Label string

	// Description explains what the detector looks for.
	Description string

	// Recommendation tells the designer what to review.
	Recommendation string
}

// categoryInfoMapping maps categories to their metadata.
// This centralized mapping keeps the text, Markdown and comparison output
// consistent.
var categoryInfoMapping = map[Category]CategoryInfo{
	CategorySmallSegment: {
		Label:          "Small segments (<=10 units)",
		Description:    "Segments whose bounding box is between 1 and 9 units wide or tall.",
		Recommendation: "Remove accidental micro-segments or merge them into their neighbours.",
	},
	CategorySuspiciousLength: {
		Label:          "Near specific length segments (±3)",
		Description:    "Segments whose length is a few units away from a meaningful design length.",
		Recommendation: "Snap the segment to the intended length or move it clearly away from it.",
	},
	CategoryCloseNodes: {
		Label:          "Very close nodes (<9 units apart)",
		Description:    "On-curve points that are almost, or exactly, on top of each other.",
		Recommendation: "Merge duplicated nodes or move them apart deliberately.",
	},
	CategoryCollinear: {
		Label:          "Collinear extra points",
		Description:    "On-curve points in the middle of a straight run.",
		Recommendation: "Delete the redundant node unless a hint or component needs it.",
	},
	CategoryOpenPath: {
		Label:          "Open paths",
		Description:    "Paths whose end does not connect back to their start.",
		Recommendation: "Close the path or remove the leftover stroke.",
	},
	CategoryIsolated: {
		Label:          "Isolated points or anchors",
		Description:    "Single-point paths and anchors outside the expected attachment set.",
		Recommendation: "Delete stray nodes and anchors that are not used for mark attachment.",
	},
}

// GetCategoryInfo returns the metadata of a category.
func GetCategoryInfo(c Category) CategoryInfo {
	if info, ok := categoryInfoMapping[c]; ok {
		return info
	}
	return CategoryInfo{
		Label:          "Unknown",
		Description:    "Unknown category.",
		Recommendation: "Review manually.",
	}
}
