// Package project reads and writes scene documents: palettes, entities with
// their colors and palette bindings, and prefab preferences.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/yaml"

	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/prefs"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

// Document is a project file.
type Document struct {
	PaletteDir  string               `json:"palette_dir,omitempty"` // palette files, relative to the project file
	Palettes    []palette.Definition `json:"palettes,omitempty"`    // inline palette definitions
	Preferences []PrefabPreference   `json:"preferences,omitempty"` // palettes applied to new instances of a prefab
	Entities    []Entity             `json:"entities"`              // scene objects
}

// PrefabPreference lists the preferred palettes of one prefab.
type PrefabPreference struct {
	Prefab   string             `json:"prefab"`
	Palettes []prefs.Preference `json:"palettes"`
}

// Entity is one scene object.
type Entity struct {
	ID         scene.ID              `json:"id"`
	Prefab     string                `json:"prefab"`
	Category   scene.Category        `json:"category"`
	Position   scene.Vec3            `json:"position"`
	Seed       uint16                `json:"seed,omitempty"`        // derived from prefab and id when zero
	Original   scene.ID              `json:"original,omitempty"`    // preview copies only
	SubObjects []scene.ID            `json:"sub_objects,omitempty"` // direct sub-objects
	SubLanes   []scene.ID            `json:"sub_lanes,omitempty"`   // owned secondary lanes
	Colors     []colorstate.ColorSet `json:"colors,omitempty"`      // vanilla colors per mesh slot
	NoColors   bool                  `json:"no_colors,omitempty"`   // object has no color buffer
	Override   []colorstate.ColorSet `json:"override,omitempty"`    // customized colors per mesh slot
	Palettes   []prefs.Preference    `json:"palettes,omitempty"`    // bound palettes
}

// Read reads a YAML or JSON project file.
func Read(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Encode encodes doc as yaml or json.
func Encode(doc Document, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(doc)
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Write encodes doc and writes it to path, or to stdout when path is empty.
func Write(path string, doc Document, format string) error {
	out, err := Encode(doc, format)
	if err != nil {
		return err
	}

	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}

	return os.WriteFile(path, out, 0o600)
}

// PrefabPreferences returns the preferences of doc keyed by prefab.
func (d Document) PrefabPreferences() prefs.Preferences {
	out := prefs.Preferences{}
	for _, pp := range d.Preferences {
		for _, p := range pp.Palettes {
			out.Set(pp.Prefab, p.Channel, p.Palette)
		}
	}

	return out
}
