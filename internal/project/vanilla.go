package project

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// vanillaRule maps prefab name fragments to stock colors.
type vanillaRule struct {
	Keys  []string            // name fragments, matched case-insensitively
	Color colorstate.ColorSet // stock colors of channels 0..2
}

// vanillaRules are checked in order; the first match wins.
var vanillaRules = []vanillaRule{
	{
		Keys: []string{"tree", "bush", "hedge"},
		Color: colorstate.ColorSet{
			{R: 70, G: 120, B: 50, A: 255},
			{R: 95, G: 70, B: 45, A: 255},
			{R: 120, G: 160, B: 80, A: 255},
		},
	},
	{
		Keys: []string{"brick"},
		Color: colorstate.ColorSet{
			{R: 160, G: 70, B: 50, A: 255},
			{R: 200, G: 190, B: 170, A: 255},
			{R: 90, G: 40, B: 30, A: 255},
		},
	},
	{
		Keys: []string{"lane", "road", "marking"},
		Color: colorstate.ColorSet{
			{R: 230, G: 230, B: 225, A: 255},
			{R: 240, G: 200, B: 40, A: 255},
			{R: 60, G: 60, B: 65, A: 255},
		},
	},
	{
		Keys: []string{"car", "van", "truck", "bus"},
		Color: colorstate.ColorSet{
			{R: 180, G: 30, B: 30, A: 255},
			{R: 40, G: 40, B: 45, A: 255},
			{R: 200, G: 200, B: 205, A: 255},
		},
	},
	{
		Keys: []string{"house", "residential", "office"},
		Color: colorstate.ColorSet{
			{R: 220, G: 210, B: 190, A: 255},
			{R: 120, G: 60, B: 50, A: 255},
			{R: 80, G: 90, B: 110, A: 255},
		},
	},
}

// VanillaColors returns the stock colors of a prefab that brings none of
// its own. Unknown prefabs get a stable color derived from the name.
func VanillaColors(prefab string) colorstate.ColorSet {
	name := strings.ToLower(prefab)
	for _, rule := range vanillaRules {
		if rule.matches(name) {
			return rule.Color
		}
	}

	base := nameColor(name)
	return colorstate.ColorSet{
		base,
		shade(base, 0.6),
		blend(base, swatch.Color{R: 255, G: 255, B: 255, A: 255}),
	}
}

func (r vanillaRule) matches(name string) bool {
	for _, k := range r.Keys {
		if strings.Contains(name, k) {
			return true
		}
	}

	return false
}

// nameColor hashes a name to a mid range opaque color.
func nameColor(name string) swatch.Color {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], xxhash.Sum64String(name))
	h := binary.LittleEndian.Uint32(buf[:4]) ^ binary.LittleEndian.Uint32(buf[4:])

	return swatch.Color{
		R: byte(50 + h%170),
		G: byte(50 + (h>>8)%170),
		B: byte(50 + (h>>16)%170),
		A: 255,
	}
}

// shade scales the rgb channels by factor in (0, 1].
func shade(c swatch.Color, factor float64) swatch.Color {
	if factor <= 0 {
		return swatch.Color{A: c.A}
	}
	if factor > 1 {
		factor = 1
	}

	return swatch.Color{
		R: byte(float64(c.R) * factor),
		G: byte(float64(c.G) * factor),
		B: byte(float64(c.B) * factor),
		A: c.A,
	}
}

// blend returns the rounded average of a and b.
func blend(a, b swatch.Color) swatch.Color {
	avg := func(x, y byte) byte {
		return byte((int(x) + int(y) + 1) / 2)
	}

	return swatch.Color{
		R: avg(a.R, b.R),
		G: avg(a.G, b.G),
		B: avg(a.B, b.B),
		A: avg(a.A, b.A),
	}
}
