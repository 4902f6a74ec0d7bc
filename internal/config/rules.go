package config

import (
	"github.com/nao1215/glyphcheck/internal/check"
	"github.com/nao1215/glyphcheck/internal/outline"
	"golang.org/x/text/cases"
)

// Rules holds detector tuning from the rules file. Every field is
// optional; unset fields keep the value from the layer below.
type Rules struct {
	// Relaxed toggles the false-positive relaxations.
	Relaxed *bool `yaml:"relaxed,omitempty"`

	// LengthTargets replaces the suspicious-length targets.
	LengthTargets []float64 `yaml:"lengthTargets,omitempty"`

	LengthToleranceMin   *float64 `yaml:"lengthToleranceMin,omitempty"`
	LengthToleranceMax   *float64 `yaml:"lengthToleranceMax,omitempty"`
	ExactLengthTolerance *float64 `yaml:"exactLengthTolerance,omitempty"`

	// LengthGlyphDenylist replaces the glyphs skipped by the length check.
	LengthGlyphDenylist []string `yaml:"lengthGlyphDenylist,omitempty"`

	SmallSegmentMin *float64 `yaml:"smallSegmentMin,omitempty"`
	SmallSegmentMax *float64 `yaml:"smallSegmentMax,omitempty"`

	CloseNodeDistance *float64 `yaml:"closeNodeDistance,omitempty"`

	CollinearEpsilon *float64 `yaml:"collinearEpsilon,omitempty"`

	// AnchorDenylist replaces the anchor names skipped under relaxation.
	AnchorDenylist []string `yaml:"anchorDenylist,omitempty"`
}

// File represents the structure of the .glyphcheck rules file.
type File struct {
	// Defaults apply to every master unless a profile overrides them.
	Defaults Rules `yaml:"defaults,omitempty"`

	// Profiles maps a profile name to its overrides. A profile is picked
	// automatically when its name equals the master ID or name, ignoring case.
	Profiles map[string]Rules `yaml:"profiles,omitempty"`
}

// GetProfile returns the defaults merged with the named profile.
// An unknown or empty name returns the defaults alone.
func (f *File) GetProfile(name string) Rules {
	result := f.Defaults
	profile, ok := f.Profiles[name]
	if !ok {
		return result
	}

	if profile.Relaxed != nil {
		result.Relaxed = profile.Relaxed
	}
	if len(profile.LengthTargets) > 0 {
		result.LengthTargets = profile.LengthTargets
	}
	if profile.LengthToleranceMin != nil {
		result.LengthToleranceMin = profile.LengthToleranceMin
	}
	if profile.LengthToleranceMax != nil {
		result.LengthToleranceMax = profile.LengthToleranceMax
	}
	if profile.ExactLengthTolerance != nil {
		result.ExactLengthTolerance = profile.ExactLengthTolerance
	}
	if len(profile.LengthGlyphDenylist) > 0 {
		result.LengthGlyphDenylist = profile.LengthGlyphDenylist
	}
	if profile.SmallSegmentMin != nil {
		result.SmallSegmentMin = profile.SmallSegmentMin
	}
	if profile.SmallSegmentMax != nil {
		result.SmallSegmentMax = profile.SmallSegmentMax
	}
	if profile.CloseNodeDistance != nil {
		result.CloseNodeDistance = profile.CloseNodeDistance
	}
	if profile.CollinearEpsilon != nil {
		result.CollinearEpsilon = profile.CollinearEpsilon
	}
	if len(profile.AnchorDenylist) > 0 {
		result.AnchorDenylist = profile.AnchorDenylist
	}
	return result
}

// LookupProfile finds the profile for a master. The master ID is tried
// before the name, both compared case-insensitively.
func (f *File) LookupProfile(master outline.Master) (string, bool) {
	fold := cases.Fold()
	for _, want := range []string{master.ID, master.Name} {
		if want == "" {
			continue
		}
		key := fold.String(want)
		for name := range f.Profiles {
			if fold.String(name) == key {
				return name, true
			}
		}
	}
	return "", false
}

// ApplyTo overlays the set fields onto opts and returns the result.
func (r Rules) ApplyTo(opts check.Options) check.Options {
	if r.Relaxed != nil {
		opts.Relaxed = *r.Relaxed
	}
	if len(r.LengthTargets) > 0 {
		opts.LengthTargets = append([]float64(nil), r.LengthTargets...)
	}
	setFloat(&opts.LengthToleranceMin, r.LengthToleranceMin)
	setFloat(&opts.LengthToleranceMax, r.LengthToleranceMax)
	setFloat(&opts.ExactLengthTolerance, r.ExactLengthTolerance)
	if len(r.LengthGlyphDenylist) > 0 {
		opts.LengthGlyphDenylist = append([]string(nil), r.LengthGlyphDenylist...)
	}
	setFloat(&opts.SmallSegmentMin, r.SmallSegmentMin)
	setFloat(&opts.SmallSegmentMax, r.SmallSegmentMax)
	setFloat(&opts.CloseNodeDistance, r.CloseNodeDistance)
	setFloat(&opts.CollinearEpsilon, r.CollinearEpsilon)
	if len(r.AnchorDenylist) > 0 {
		opts.AnchorDenylist = append([]string(nil), r.AnchorDenylist...)
	}
	return opts
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
