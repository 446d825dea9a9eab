// Package scene models rendered objects, their sub-object hierarchy and
// visual refresh markers.
package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash"
)

// ID identifies a rendered object instance.
type ID uint32

// Category is the filterable kind of a rendered object.
type Category uint8

const (
	// CategoryNone is an object that radius selection never picks.
	CategoryNone Category = iota
	// CategoryBuilding is a building.
	CategoryBuilding
	// CategoryProp is a static prop or tree.
	CategoryProp
	// CategoryVehicle is a parked or moving vehicle.
	CategoryVehicle
	// CategoryNetLane is a net lane such as a fence or hedge.
	CategoryNetLane
)

// categoryNames maps categories to their config names.
var categoryNames = map[Category]string{
	CategoryNone:     "none",
	CategoryBuilding: "building",
	CategoryProp:     "prop",
	CategoryVehicle:  "vehicle",
	CategoryNetLane:  "netlane",
}

// String returns the config name of the category.
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}

	return "category(" + strconv.Itoa(int(c)) + ")"
}

// ParseCategory parses a config category name.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == s {
			return c, nil
		}
	}

	return CategoryNone, fmt.Errorf("unknown category: %q", s)
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// CategoryMask is a set of categories.
type CategoryMask uint8

// MaskOf builds a mask from categories.
func MaskOf(cats ...Category) CategoryMask {
	var m CategoryMask
	for _, c := range cats {
		m |= 1 << c
	}

	return m
}

// AllCategories selects every filterable category.
var AllCategories = MaskOf(CategoryBuilding, CategoryProp, CategoryVehicle, CategoryNetLane)

// Has reports whether c is in the mask.
func (m CategoryMask) Has(c Category) bool {
	return c != CategoryNone && m&(1<<c) != 0
}

// Vec3 is a world position; Y is the vertical axis.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Entity is a rendered object instance.
type Entity struct {
	Prefab     string   `json:"prefab"`                // prefab identity
	SubObjects []ID     `json:"sub_objects,omitempty"` // direct sub-objects
	SubLanes   []ID     `json:"sub_lanes,omitempty"`   // owned secondary lanes
	Position   Vec3     `json:"position"`              // world position
	ID         ID       `json:"id"`                    // instance id
	Original   ID       `json:"original,omitempty"`    // set on preview copies
	Seed       uint16   `json:"seed"`                  // pseudo random seed
	Category   Category `json:"category"`              // filterable kind
}

// ErrUnknownEntity is returned for ids the world does not hold.
var ErrUnknownEntity = errors.New("unknown entity")

// SeedFor derives the deterministic seed of a new instance.
func SeedFor(prefab string, id ID) uint16 {
	var buf [8]byte
	h := xxhash.Sum64String(prefab + "#" + strconv.FormatUint(uint64(id), 10))

	binary.LittleEndian.PutUint64(buf[:], h)
	lo := binary.LittleEndian.Uint32(buf[:4])
	hi := binary.LittleEndian.Uint32(buf[4:])
	x := lo ^ hi

	return uint16(x) ^ uint16(x>>16)
}

// World holds entities and the set of objects whose visuals need a refresh.
type World struct {
	entities map[ID]*Entity
	updated  map[ID]struct{}
	nextID   ID
	mu       sync.RWMutex
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		entities: map[ID]*Entity{},
		updated:  map[ID]struct{}{},
		nextID:   1,
	}
}

// Add stores e. A zero ID is allocated and a zero seed is derived once from
// the prefab; preview copies take the seed of their original.
func (w *World) Add(e Entity) ID {
	w.mu.Lock()
	defer w.mu.Unlock()

	if e.ID == 0 {
		for w.entities[w.nextID] != nil {
			w.nextID++
		}
		e.ID = w.nextID
	}
	if e.ID >= w.nextID {
		w.nextID = e.ID + 1
	}

	if orig, ok := w.entities[e.Original]; ok && e.Original != 0 {
		e.Seed = orig.Seed
	} else if e.Seed == 0 {
		e.Seed = SeedFor(e.Prefab, e.ID)
	}

	cp := e
	cp.SubObjects = append([]ID(nil), e.SubObjects...)
	cp.SubLanes = append([]ID(nil), e.SubLanes...)
	w.entities[e.ID] = &cp

	return e.ID
}

// Preview creates a temporary copy of original that shares its seed.
func (w *World) Preview(original ID, pos Vec3) (ID, error) {
	orig, ok := w.Get(original)
	if !ok {
		return 0, ErrUnknownEntity
	}

	orig.ID = 0
	orig.Original = original
	orig.Position = pos
	orig.SubObjects = nil
	orig.SubLanes = nil

	return w.Add(orig), nil
}

// SyncPreviewSeed corrects seed drift by copying the original's seed.
// It returns true when the preview seed changed.
func (w *World) SyncPreviewSeed(preview ID) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.entities[preview]
	if !ok {
		return false, ErrUnknownEntity
	}

	orig, ok := w.entities[p.Original]
	if !ok || p.Original == 0 {
		return false, nil
	}

	if p.Seed == orig.Seed {
		return false, nil
	}

	p.Seed = orig.Seed
	return true, nil
}

// Get returns a copy of the entity.
func (w *World) Get(id ID) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}

	return *e, true
}

// Remove deletes an entity.
func (w *World) Remove(id ID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.entities, id)
	delete(w.updated, id)
}

// Link appends child to the sub-objects of parent.
func (w *World) Link(parent, child ID) error {
	return w.link(parent, child, false)
}

// LinkLane appends lane to the sub-lanes of owner.
func (w *World) LinkLane(owner, lane ID) error {
	return w.link(owner, lane, true)
}

func (w *World) link(parent, child ID, lane bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.entities[parent]
	if !ok {
		return fmt.Errorf("parent %d: %w", parent, ErrUnknownEntity)
	}
	if _, ok := w.entities[child]; !ok {
		return fmt.Errorf("child %d: %w", child, ErrUnknownEntity)
	}

	if lane {
		p.SubLanes = append(p.SubLanes, child)
	} else {
		p.SubObjects = append(p.SubObjects, child)
	}

	return nil
}

// IDs returns every entity id in ascending order.
func (w *World) IDs() []ID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]ID, 0, len(w.entities))
	for id := range w.entities {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Candidates returns ids of entities whose category is in mask, ascending.
func (w *World) Candidates(mask CategoryMask) []ID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []ID
	for id, e := range w.entities {
		if mask.Has(e.Category) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// SubObjects returns the direct sub-objects of id.
func (w *World) SubObjects(id ID) []ID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if e, ok := w.entities[id]; ok {
		return append([]ID(nil), e.SubObjects...)
	}

	return nil
}

// SubLanes returns the owned sub-lanes of id.
func (w *World) SubLanes(id ID) []ID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if e, ok := w.entities[id]; ok {
		return append([]ID(nil), e.SubLanes...)
	}

	return nil
}

// MarkUpdated flags id for a visual batch refresh.
func (w *World) MarkUpdated(id ID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[id]; ok {
		w.updated[id] = struct{}{}
	}
}

// IsUpdated reports whether id is flagged for refresh.
func (w *World) IsUpdated(id ID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.updated[id]
	return ok
}

// TakeUpdated returns and clears the flagged ids, ascending.
func (w *World) TakeUpdated() []ID {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]ID, 0, len(w.updated))
	for id := range w.updated {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w.updated = map[ID]struct{}{}

	return out
}
