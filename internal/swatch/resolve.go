package swatch

import "math"

// channelStride is the number of draws discarded per channel index so that a
// single seed yields different colors on channels 0, 1 and 2.
const channelStride = 10

// maxTotalWeight bounds the summed weight to the signed 32-bit draw range.
const maxTotalWeight = math.MaxInt32

// weighted is a distinct color and its summed weight.
type weighted struct {
	color  Color
	weight uint64
}

// aggregate merges swatches sharing a color into their first occurrence and
// sums their weights. The order of first occurrence is preserved.
func aggregate(swatches []Swatch) ([]weighted, uint64) {
	index := make(map[Color]int, len(swatches))
	out := make([]weighted, 0, len(swatches))

	var total uint64
	for _, sw := range swatches {
		total += uint64(sw.Weight)
		if i, ok := index[sw.Color]; ok {
			out[i].weight += uint64(sw.Weight)
			continue
		}

		index[sw.Color] = len(out)
		out = append(out, weighted{color: sw.Color, weight: uint64(sw.Weight)})
	}

	return out, total
}

// Resolve picks the color for one channel of an object from weighted swatches.
//
// The draw sequence is frozen: seed the generator, discard channel*10 draws,
// then draw once in [0, totalWeight) and walk the aggregated entries in
// declaration order. Changing any step reassigns colors in existing saves.
//
// It returns false when no color can be selected (empty list, zero total
// weight, out of range channel); the caller must leave the color unchanged.
func Resolve(swatches []Swatch, seed uint16, channel int) (Color, bool) {
	if !ValidChannel(channel) {
		return Color{}, false
	}

	entries, total := aggregate(swatches)
	if total == 0 || total > maxTotalWeight {
		return Color{}, false
	}

	rng := NewRandom(uint32(seed))
	rng.Discard(channel * channelStride)
	remaining := rng.NextInt(total)

	for _, e := range entries {
		if e.weight > remaining {
			return e.color, true
		}
		remaining -= e.weight
	}

	// unreachable while remaining < total
	return Color{}, false
}
