package project

import (
	"fmt"
	"strings"

	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/prefs"
	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// Validate checks references and channels in doc.
// It runs before a session is built to catch typos early.
func Validate(doc Document) error {
	palettes := map[palette.ID]struct{}{}
	for _, def := range doc.Palettes {
		if strings.TrimSpace(string(def.ID)) == "" {
			return fmt.Errorf("palette without id")
		}
		if _, dup := palettes[def.ID]; dup {
			return fmt.Errorf("duplicate palette %q", def.ID)
		}
		palettes[def.ID] = struct{}{}
	}

	ids := map[scene.ID]struct{}{}
	for _, e := range doc.Entities {
		if e.ID == 0 {
			return fmt.Errorf("entity %q: id 0 is reserved", e.Prefab)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("duplicate entity id %d", e.ID)
		}
		ids[e.ID] = struct{}{}
	}

	for _, e := range doc.Entities {
		if e.Original != 0 {
			if _, ok := ids[e.Original]; !ok {
				return fmt.Errorf("entity %d: unknown original %d", e.ID, e.Original)
			}
			if e.Original == e.ID {
				return fmt.Errorf("entity %d: preview of itself", e.ID)
			}
		}

		if err := validateRefs(ids, e.ID, "sub-object", e.SubObjects); err != nil {
			return err
		}
		if err := validateRefs(ids, e.ID, "sub-lane", e.SubLanes); err != nil {
			return err
		}

		if e.NoColors && (len(e.Colors) > 0 || len(e.Override) > 0) {
			return fmt.Errorf("entity %d: no_colors with colors or override", e.ID)
		}
		if len(e.Override) > 0 {
			slots := max(len(e.Colors), 1)
			if len(e.Override) != slots {
				return fmt.Errorf("entity %d: override has %d slots, colors have %d", e.ID, len(e.Override), slots)
			}
		}

		if err := validatePreferences(e.Palettes); err != nil {
			return fmt.Errorf("entity %d: %w", e.ID, err)
		}
	}

	for _, pp := range doc.Preferences {
		if strings.TrimSpace(pp.Prefab) == "" {
			return fmt.Errorf("preference without prefab")
		}
		if err := validatePreferences(pp.Palettes); err != nil {
			return fmt.Errorf("prefab %q: %w", pp.Prefab, err)
		}
	}

	return nil
}

func validateRefs(ids map[scene.ID]struct{}, owner scene.ID, kind string, refs []scene.ID) error {
	for _, ref := range refs {
		if ref == owner {
			return fmt.Errorf("entity %d: %s refers to itself", owner, kind)
		}
		if _, ok := ids[ref]; !ok {
			return fmt.Errorf("entity %d: unknown %s %d", owner, kind, ref)
		}
	}

	return nil
}

// validatePreferences rejects invalid and duplicate channels.
func validatePreferences(list []prefs.Preference) error {
	seen := [swatch.Channels]bool{}
	for _, p := range list {
		if !swatch.ValidChannel(p.Channel) {
			return fmt.Errorf("palette %q: channel %d out of range", p.Palette, p.Channel)
		}
		if seen[p.Channel] {
			return fmt.Errorf("channel %d assigned twice", p.Channel)
		}
		seen[p.Channel] = true
	}

	return nil
}
