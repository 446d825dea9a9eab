// Package colorstate keeps the baseline / override / live color tiers of rendered objects.
package colorstate

import (
	"errors"

	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

var (
	// ErrInvalidChannel is returned for channel indices outside 0..2.
	ErrInvalidChannel = errors.New("channel out of range")
	// ErrNoColorBuffer is returned when an object has no registered colors.
	ErrNoColorBuffer = errors.New("object has no color buffer")
	// ErrSlotCount is returned when colors do not cover every mesh slot.
	ErrSlotCount = errors.New("mesh slot count mismatch")
)

// ColorSet holds one color per material channel.
type ColorSet [swatch.Channels]swatch.Color

// Mask selects material channels.
type Mask [swatch.Channels]bool

// AllChannels selects every channel.
var AllChannels = Mask{true, true, true}

// Compile merges colors into current for every channel selected by mask.
// Unselected channels pass through unchanged.
func Compile(current ColorSet, colors ColorSet, mask Mask) ColorSet {
	out := current
	for ch := range out {
		if mask[ch] {
			out[ch] = colors[ch]
		}
	}

	return out
}

// Only returns a mask selecting a single channel.
func Only(ch int) Mask {
	var m Mask
	if swatch.ValidChannel(ch) {
		m[ch] = true
	}

	return m
}

// Marker receives objects whose rendered colors changed.
type Marker interface {
	MarkUpdated(id scene.ID)
}

// customization is present exactly while an object is customized, so the
// baseline exists if and only if the override exists.
type customization struct {
	baseline []ColorSet // colors before the first customization
	override []ColorSet // active replacement colors
}

// record is the color buffer of one object: one ColorSet per mesh slot.
type record struct {
	live   []ColorSet
	custom *customization
}

// stale reports whether the customization no longer fits the mesh slots.
func (r *record) stale() bool {
	if r.custom == nil {
		return false
	}

	return len(r.custom.baseline) != len(r.live) || len(r.custom.override) != len(r.live)
}

func cloneSets(in []ColorSet) []ColorSet {
	out := make([]ColorSet, len(in))
	copy(out, in)

	return out
}
