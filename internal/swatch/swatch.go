// Package swatch provides palette swatches, colors and the weighted color resolver.
package swatch

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
)

// Channels is the number of independent color channels a material supports.
const Channels = 3

// Color is an RGBA color used for rendered object channels.
// It encodes as "#RRGGBBAA" in JSON and YAML documents.
type Color struct {
	R byte // red component
	G byte // green component
	B byte // blue component
	A byte // alpha component
}

// Swatch is a color with a selection weight inside a palette.
type Swatch struct {
	Color  Color  `json:"color"`  // swatch color
	Weight uint32 `json:"weight"` // probability weight, 0 excludes the swatch
}

// Set is an ordered collection of swatches belonging to a palette.
type Set []Swatch

// ValidChannel reports whether ch addresses one of the material channels.
func ValidChannel(ch int) bool {
	return ch >= 0 && ch < Channels
}

// TotalWeight returns the sum of all swatch weights.
func (s Set) TotalWeight() uint64 {
	var total uint64
	for _, sw := range s {
		total += uint64(sw.Weight)
	}

	return total
}

// Clone returns a copy of the set that shares no memory with s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}

	out := make(Set, len(s))
	copy(out, s)

	return out
}

// String formats the color as #RRGGBBAA.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or an SVG color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if !strings.HasPrefix(s, "#") {
		named, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return Color{}, fmt.Errorf("unknown color name: %q", s)
		}

		return Color{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}

	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return Color{}, fmt.Errorf("invalid hex color: %q", s)
	}

	raw, err := hex.DecodeString(digits)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return Color{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}, nil
}

// MarshalText encodes the color as #RRGGBBAA.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a hex string or color name.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
