// Package painter applies paint, reset and picker actions to scoped sets of
// rendered objects as parallel jobs with deferred playback.
package painter

import (
	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// MinRadius is the smallest radius a radius scope uses.
const MinRadius = 1

// Tool is the state handed over by the tool and input layer.
type Tool struct {
	Palettes   [swatch.Channels]palette.ID // palette choice per channel, empty for none
	Colors     colorstate.ColorSet         // working color set
	Toggles    colorstate.Mask             // channels the tool touches
	Anchor     scene.Vec3                  // cursor position for radius scope
	Scope      Scope                       // single or radius
	Mode       Mode                        // paint, reset or picker
	Radius     float32                     // radius scope size, clamped to MinRadius
	Target     scene.ID                    // single scope target, 0 for none
	Categories scene.CategoryMask          // radius scope filter
}

// DefaultTool returns a paint tool touching every channel of any category.
func DefaultTool() Tool {
	return Tool{
		Scope:      ScopeSingle,
		Mode:       ModePaint,
		Radius:     10,
		Toggles:    colorstate.AllChannels,
		Categories: scene.AllCategories,
	}
}

// EffectiveRadius returns the radius clamped to MinRadius.
func (t Tool) EffectiveRadius() float32 {
	if t.Radius < MinRadius {
		return MinRadius
	}

	return t.Radius
}

// HasPalettes reports whether any toggled channel carries a palette choice.
func (t Tool) HasPalettes() bool {
	for ch, pid := range t.Palettes {
		if pid != "" && t.Toggles[ch] {
			return true
		}
	}

	return false
}

// InRadius reports whether pos lies strictly inside the horizontal circle of
// the tool. The anchor height is projected onto the candidate.
func (t Tool) InRadius(pos scene.Vec3) bool {
	r := float64(t.EffectiveRadius())
	dx := float64(pos.X - t.Anchor.X)
	dz := float64(pos.Z - t.Anchor.Z)

	return dx*dx+dz*dz < r*r
}
