// Package binding assigns palettes to the channels of rendered objects and
// resolves them into color overrides.
package binding

import (
	"errors"
	"sort"

	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

var (
	// ErrInvalidChannel is returned for channel indices outside 0..2.
	ErrInvalidChannel = colorstate.ErrInvalidChannel
	// ErrUnusablePalette is returned when a palette cannot back an instance.
	ErrUnusablePalette = errors.New("palette not usable")
)

// Entry binds one channel to a palette instance.
type Entry struct {
	Palette palette.ID     // palette definition identity
	Handle  palette.Handle // cache handle captured at assignment
	Channel int            // material channel 0..2
}

// Binding is the list of channel entries of one object, at most one per channel.
type Binding []Entry

// Channel returns the entry for ch.
func (b Binding) Channel(ch int) (Entry, bool) {
	for _, e := range b {
		if e.Channel == ch {
			return e, true
		}
	}

	return Entry{}, false
}

// World provides object seeds, the sub-object hierarchy and refresh markers.
type World interface {
	scene.Graph
	Get(id scene.ID) (scene.Entity, bool)
	MarkUpdated(id scene.ID)
}

// Manager owns the palette bindings of all objects.
//
// It is used from the controlling goroutine only.
type Manager struct {
	cache    *palette.Cache
	store    *colorstate.Store
	world    World
	bindings map[scene.ID]Binding
}

// NewManager creates a binding manager.
func NewManager(cache *palette.Cache, store *colorstate.Store, world World) *Manager {
	return &Manager{
		cache:    cache,
		store:    store,
		world:    world,
		bindings: map[scene.ID]Binding{},
	}
}

// Bindings returns a copy of the binding of id.
func (m *Manager) Bindings(id scene.ID) Binding {
	return append(Binding(nil), m.bindings[id]...)
}

// Bound returns every object with a binding, ascending.
func (m *Manager) Bound() []scene.ID {
	out := make([]scene.ID, 0, len(m.bindings))
	for id := range m.bindings {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Assign binds palette pid to channel ch of id and resolves the channel.
// A palette whose weights sum to zero stays assigned without changing colors.
func (m *Manager) Assign(id scene.ID, ch int, pid palette.ID) error {
	if !swatch.ValidChannel(ch) {
		return ErrInvalidChannel
	}

	h, ok := m.cache.GetOrCreate(pid)
	if !ok {
		return ErrUnusablePalette
	}

	b := m.bindings[id]
	entry := Entry{Channel: ch, Palette: pid, Handle: h}

	replaced := false
	for i := range b {
		if b[i].Channel == ch {
			b[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		b = append(b, entry)
	}
	m.bindings[id] = b

	m.resolveChannel(id, entry)
	return nil
}

// Unassign removes the palette from channel ch of id and reverts the channel
// to its baseline.
func (m *Manager) Unassign(id scene.ID, ch int) error {
	if !swatch.ValidChannel(ch) {
		return ErrInvalidChannel
	}

	b := m.bindings[id]
	for i := range b {
		if b[i].Channel != ch {
			continue
		}

		b = append(b[:i], b[i+1:]...)
		if len(b) == 0 {
			delete(m.bindings, id)
		} else {
			m.bindings[id] = b
		}

		err := m.store.ResetChannel(id, ch)
		if errors.Is(err, colorstate.ErrNoColorBuffer) {
			return nil
		}
		if err != nil {
			return err
		}

		m.cascade(id)
		return nil
	}

	return nil
}

// Clear removes every binding of id without touching its colors.
func (m *Manager) Clear(id scene.ID) {
	delete(m.bindings, id)
}

// ResolveAndApply resolves every bound channel of id and writes the colors
// as overrides. It returns the number of channels that changed.
func (m *Manager) ResolveAndApply(id scene.ID) int {
	n := 0
	for _, e := range m.bindings[id] {
		if m.resolveChannel(id, e) {
			n++
		}
	}

	return n
}

// Resolve computes the palette color for channel ch of id without applying it.
func (m *Manager) Resolve(id scene.ID, ch int) (swatch.Color, bool) {
	e, ok := m.bindings[id].Channel(ch)
	if !ok {
		return swatch.Color{}, false
	}

	return m.resolve(id, e)
}

// PaletteEdited invalidates the cached instance of pid and re-resolves every
// object bound to it. Bindings whose palette became unusable are cleared.
func (m *Manager) PaletteEdited(pid palette.ID) {
	m.cache.Invalidate(pid)

	if _, ok := m.cache.GetOrCreate(pid); !ok {
		m.PaletteRemoved(pid)
		return
	}

	for _, id := range m.Bound() {
		for _, e := range m.bindings[id] {
			if e.Palette == pid {
				m.resolveChannel(id, e)
			}
		}
	}
}

// PaletteRemoved drops the cached instance of pid, clears every binding
// entry referencing it and reverts those channels.
func (m *Manager) PaletteRemoved(pid palette.ID) {
	m.cache.Remove(pid)

	for _, id := range m.Bound() {
		for _, e := range m.Bindings(id) {
			if e.Palette == pid {
				_ = m.Unassign(id, e.Channel)
			}
		}
	}
}

// resolve looks up the current instance through the cache and resolves the
// entry with the object's seed. The stored handle is refreshed.
func (m *Manager) resolve(id scene.ID, e Entry) (swatch.Color, bool) {
	ent, ok := m.world.Get(id)
	if !ok {
		return swatch.Color{}, false
	}

	h, ok := m.cache.GetOrCreate(e.Palette)
	if !ok {
		return swatch.Color{}, false
	}
	if h != e.Handle {
		m.refreshHandle(id, e.Channel, h)
	}

	set, ok := m.cache.Swatches(h)
	if !ok {
		return swatch.Color{}, false
	}

	return swatch.Resolve(set, ent.Seed, e.Channel)
}

// resolveChannel resolves and applies one entry. It returns false when the
// color was left unchanged.
func (m *Manager) resolveChannel(id scene.ID, e Entry) bool {
	c, ok := m.resolve(id, e)
	if !ok {
		return false
	}

	if m.store.ApplyOverride(id, e.Channel, c) != nil {
		return false
	}

	m.cascade(id)
	return true
}

// cascade marks the sub-objects and sub-lanes of a changed object.
func (m *Manager) cascade(id scene.ID) {
	for _, dep := range scene.Cascade(id, m.world, m.store) {
		m.world.MarkUpdated(dep)
	}
}

func (m *Manager) refreshHandle(id scene.ID, ch int, h palette.Handle) {
	b := m.bindings[id]
	for i := range b {
		if b[i].Channel == ch {
			b[i].Handle = h
		}
	}
}
