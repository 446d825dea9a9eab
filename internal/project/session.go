package project

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/binding"
	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/painter"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/prefs"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

// Session is a loaded project wired to the color pipeline.
type Session struct {
	World    *scene.World
	Store    *colorstate.Store
	Cache    *palette.Cache
	Bindings *binding.Manager
	Mutator  *painter.Mutator
	Prefs    prefs.Preferences
	Inline   palette.MapSource
	Dir      *palette.DirSource // nil without a palette directory

	doc Document
}

// layered looks definitions up in order.
type layered []palette.Source

func (l layered) Definition(id palette.ID) (palette.Definition, bool) {
	for _, s := range l {
		if d, ok := s.Definition(id); ok {
			return d, true
		}
	}

	return palette.Definition{}, false
}

// Open validates doc and builds a session. A relative palette directory is
// resolved against baseDir. workers <= 0 picks a default.
func Open(ctx context.Context, doc Document, baseDir string, workers int) (*Session, error) {
	log := logger.FromContext(ctx)

	if err := Validate(doc); err != nil {
		return nil, err
	}

	inline := palette.MapSource{}
	for _, def := range doc.Palettes {
		inline.Put(def)
	}
	sources := layered{inline}

	var dir *palette.DirSource
	if doc.PaletteDir != "" {
		path := doc.PaletteDir
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		dir = palette.NewDirSource(path)
		if err := dir.Load(); err != nil {
			return nil, fmt.Errorf("palette dir: %w", err)
		}
		// Files win over inline definitions.
		sources = layered{dir, inline}
	}

	world := scene.NewWorld()
	store := colorstate.NewStore(world)
	cache := palette.NewCache(sources)
	bindings := binding.NewManager(cache, store, world)

	s := &Session{
		World:    world,
		Store:    store,
		Cache:    cache,
		Bindings: bindings,
		Mutator:  painter.NewMutator(world, store, bindings, workers),
		Prefs:    doc.PrefabPreferences(),
		Inline:   inline,
		Dir:      dir,
		doc:      doc,
	}

	// Originals first so previews inherit their seed.
	for _, preview := range []bool{false, true} {
		for _, e := range doc.Entities {
			if (e.Original != 0) == preview {
				s.add(e)
			}
		}
	}

	for _, e := range doc.Entities {
		if e.NoColors {
			continue
		}

		if len(e.Override) > 0 {
			if err := store.SetOverride(e.ID, e.Override); err != nil {
				return nil, fmt.Errorf("entity %d: %w", e.ID, err)
			}
		}

		// Customized instances without bindings were painted by hand.
		a := prefs.Assignment(e.Palettes)
		if len(a) == 0 && len(e.Override) == 0 {
			a = s.Prefs[e.Prefab]
		}
		if len(a) == 0 {
			continue
		}

		if n := a.ApplyTo(bindings, e.ID); n < countAssigned(a) {
			log.Warn("unusable palettes skipped",
				zap.Uint32("entity", uint32(e.ID)),
				zap.Int("bound", n),
				zap.Int("wanted", countAssigned(a)))
		}
	}

	// Loading is not an edit.
	world.TakeUpdated()

	log.Debug("project opened",
		zap.Int("entities", len(doc.Entities)),
		zap.Int("palettes", len(doc.Palettes)),
		zap.Int("bound", len(bindings.Bound())))

	return s, nil
}

func (s *Session) add(e Entity) {
	s.World.Add(scene.Entity{
		ID:         e.ID,
		Prefab:     e.Prefab,
		Category:   e.Category,
		Position:   e.Position,
		Seed:       e.Seed,
		Original:   e.Original,
		SubObjects: e.SubObjects,
		SubLanes:   e.SubLanes,
	})

	if e.NoColors {
		return
	}

	colors := e.Colors
	if len(colors) == 0 {
		colors = []colorstate.ColorSet{VanillaColors(e.Prefab)}
	}
	s.Store.Register(e.ID, colors)
}

// ApplyPaletteEvents fans palette file changes out to every bound object and
// returns the number of events applied.
func (s *Session) ApplyPaletteEvents(events []palette.Event) int {
	n := 0
	for _, ev := range events {
		switch ev.Kind {
		case palette.Edited:
			s.Bindings.PaletteEdited(ev.ID)
		case palette.Removed:
			if _, ok := s.Inline.Definition(ev.ID); ok {
				// Inline definition takes over.
				s.Bindings.PaletteEdited(ev.ID)
			} else {
				s.Bindings.PaletteRemoved(ev.ID)
			}
		default:
			continue
		}
		n++
	}

	return n
}

// Snapshot returns the current state as a document.
func (s *Session) Snapshot() Document {
	out := Document{
		PaletteDir:  s.doc.PaletteDir,
		Palettes:    s.doc.Palettes,
		Preferences: preferenceList(s.Prefs),
	}

	for _, id := range s.World.IDs() {
		e, _ := s.World.Get(id)
		ent := Entity{
			ID:         e.ID,
			Prefab:     e.Prefab,
			Category:   e.Category,
			Position:   e.Position,
			Seed:       e.Seed,
			Original:   e.Original,
			SubObjects: e.SubObjects,
			SubLanes:   e.SubLanes,
		}

		if base, ok := s.Store.Baseline(id); ok {
			ent.Colors = base
			if s.Store.IsCustomized(id) {
				if live, ok := s.Store.Live(id); ok {
					ent.Override = live
				}
			}
		} else {
			ent.NoColors = true
		}

		for _, b := range s.Bindings.Bindings(id) {
			ent.Palettes = append(ent.Palettes, prefs.Preference{Channel: b.Channel, Palette: b.Palette})
		}

		out.Entities = append(out.Entities, ent)
	}

	return out
}

func preferenceList(p prefs.Preferences) []PrefabPreference {
	var out []PrefabPreference
	for _, prefab := range p.Prefabs() {
		out = append(out, PrefabPreference{
			Prefab:   prefab,
			Palettes: append([]prefs.Preference(nil), p[prefab]...),
		})
	}

	return out
}

func countAssigned(a prefs.Assignment) int {
	n := 0
	for _, p := range a {
		if p.Palette != "" {
			n++
		}
	}

	return n
}
