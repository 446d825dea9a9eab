// Package palette provides palette definitions and the runtime palette instance cache.
package palette

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// MinSwatches is the smallest swatch count a usable palette definition has.
const MinSwatches = 2

// ID is the stable identity of a palette definition (its prefab name).
type ID string

// Definition is a palette as provided by the prefab layer.
type Definition struct {
	ID       ID              `json:"id"`                 // stable palette identity
	Category string          `json:"category,omitempty"` // subcategory shown in the UI
	Swatches []swatch.Swatch `json:"swatches"`           // ordered swatches
}

// Source provides the live palette definitions.
type Source interface {
	// Definition returns the current definition for id.
	Definition(id ID) (Definition, bool)
}

// Usable reports whether the definition can back a palette instance.
func (d Definition) Usable() bool {
	return len(d.Swatches) >= MinSwatches
}

// Hash returns a deterministic 32-bit identity hash of id.
// It is stable across processes and used where a compact key is needed.
func (id ID) Hash() uint32 {
	var buf [8]byte
	h := xxhash.Sum64String(string(id))

	binary.LittleEndian.PutUint64(buf[:], h)
	lo := binary.LittleEndian.Uint32(buf[:4])
	hi := binary.LittleEndian.Uint32(buf[4:])

	return lo ^ hi
}

// MapSource is an in-memory Source.
type MapSource map[ID]Definition

// Definition returns the definition stored under id.
func (m MapSource) Definition(id ID) (Definition, bool) {
	d, ok := m[id]
	return d, ok
}

// Put stores a definition under its own id.
func (m MapSource) Put(d Definition) {
	m[d.ID] = d
}
