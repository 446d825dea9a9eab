package palette

import (
	"sync"

	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// Handle references a palette instance in the cache arena.
// A handle outliving its instance resolves to "no instance".
type Handle struct {
	Index      uint32 // arena slot
	Generation uint32 // slot generation the handle was issued for
}

// IsZero reports whether h was never issued.
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

// Instance is the immutable runtime snapshot of a palette definition.
type Instance struct {
	ID       ID
	Swatches swatch.Set
}

// slot is one arena cell.
type slot struct {
	instance   *Instance // nil when the slot is free
	generation uint32    // bumped on every release
	stale      bool      // invalidated, re-snapshot on next GetOrCreate
}

// Cache maps palette definition ids to runtime instances.
//
// Writers (GetOrCreate, Invalidate, Remove) are expected to run on the
// controlling goroutine between batch ticks; Swatches may be called from
// parallel jobs.
type Cache struct {
	source Source
	slots  []slot
	byID   map[ID]uint32
	free   []uint32
	mu     sync.RWMutex
}

// NewCache creates a cache reading definitions from source.
func NewCache(source Source) *Cache {
	return &Cache{
		source: source,
		byID:   map[ID]uint32{},
	}
}

// GetOrCreate returns the handle of the instance for id, snapshotting the
// definition on first use or after Invalidate. It returns false when the
// definition is unknown or has fewer than MinSwatches swatches.
func (c *Cache) GetOrCreate(id ID) (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.byID[id]
	if ok && !c.slots[idx].stale {
		return Handle{Index: idx, Generation: c.slots[idx].generation}, true
	}

	def, found := c.source.Definition(id)
	if !found || !def.Usable() {
		if ok {
			c.release(id, idx)
		}
		return Handle{}, false
	}

	inst := &Instance{ID: id, Swatches: swatch.Set(def.Swatches).Clone()}

	if ok {
		// re-snapshot: readers holding the old handle see "no instance"
		c.slots[idx].generation++
		c.slots[idx].instance = inst
		c.slots[idx].stale = false
		return Handle{Index: idx, Generation: c.slots[idx].generation}, true
	}

	idx = c.alloc()
	c.slots[idx].instance = inst
	c.byID[id] = idx

	return Handle{Index: idx, Generation: c.slots[idx].generation}, true
}

// Lookup returns the current handle for id without creating an instance.
func (c *Cache) Lookup(id ID) (Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.byID[id]
	if !ok || c.slots[idx].stale {
		return Handle{}, false
	}

	return Handle{Index: idx, Generation: c.slots[idx].generation}, true
}

// Invalidate forces the next GetOrCreate for id to re-snapshot the definition.
// Snapshots already obtained through Instance stay unchanged.
func (c *Cache) Invalidate(id ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.byID[id]; ok {
		c.slots[idx].stale = true
	}
}

// Remove drops the instance for id. The cache keeps no reverse references;
// callers must clear bindings that point at the removed instance.
func (c *Cache) Remove(id ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.byID[id]
	if !ok {
		return false
	}

	c.release(id, idx)
	return true
}

// Instance returns the snapshot behind h. Stale or released handles return false.
func (c *Cache) Instance(h Handle) (*Instance, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if h.IsZero() || int(h.Index) >= len(c.slots) {
		return nil, false
	}

	s := c.slots[h.Index]
	if s.instance == nil || s.generation != h.Generation {
		return nil, false
	}

	return s.instance, true
}

// Swatches returns the swatch snapshot behind h.
func (c *Cache) Swatches(h Handle) (swatch.Set, bool) {
	inst, ok := c.Instance(h)
	if !ok {
		return nil, false
	}

	return inst.Swatches, true
}

// Len returns the number of live instances.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byID)
}

// alloc returns a free slot index. Callers hold mu.
func (c *Cache) alloc() uint32 {
	if n := len(c.free); n > 0 {
		idx := c.free[n-1]
		c.free = c.free[:n-1]
		return idx
	}

	c.slots = append(c.slots, slot{generation: 1})
	return uint32(len(c.slots) - 1)
}

// release frees the slot of id. Callers hold mu.
func (c *Cache) release(id ID, idx uint32) {
	c.slots[idx].instance = nil
	c.slots[idx].stale = false
	c.slots[idx].generation++
	delete(c.byID, id)
	c.free = append(c.free, idx)
}
