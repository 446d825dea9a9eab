// Package colorsets stores named color sets on disk so they can be reused by
// the paint tool.
package colorsets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/invopop/yaml"
	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

const ext = ".yaml"

// Document is the on-disk form of a saved color set.
type Document struct {
	Name     string         `json:"name"`     // display name
	Channels []swatch.Color `json:"channels"` // colors for channels 0..2
}

// Library is a directory of saved color sets.
type Library struct {
	dir string
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Save writes set under name.
func (l *Library) Save(ctx context.Context, name string, set colorstate.ColorSet) error {
	log := logger.FromContext(ctx)

	path, err := l.path(name)
	if err != nil {
		return err
	}

	raw, err := yaml.Marshal(Document{Name: name, Channels: set[:]})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		log.Warn("create color set dir", zap.String("dir", l.dir), zap.Error(err))
		return err
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		log.Warn("write color set", zap.String("path", path), zap.Error(err))
		return err
	}

	return nil
}

// Load reads the set saved under name. Missing or corrupt files are logged
// and reported as absent.
func (l *Library) Load(ctx context.Context, name string) (colorstate.ColorSet, bool) {
	log := logger.FromContext(ctx)

	path, err := l.path(name)
	if err != nil {
		log.Warn("color set name", zap.String("name", name), zap.Error(err))
		return colorstate.ColorSet{}, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("read color set", zap.String("path", path), zap.Error(err))
		}
		return colorstate.ColorSet{}, false
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		log.Warn("decode color set", zap.String("path", path), zap.Error(err))
		return colorstate.ColorSet{}, false
	}
	if len(doc.Channels) != swatch.Channels {
		log.Warn("color set channel count",
			zap.String("path", path),
			zap.Int("channels", len(doc.Channels)))
		return colorstate.ColorSet{}, false
	}

	var set colorstate.ColorSet
	copy(set[:], doc.Channels)

	return set, true
}

// Delete removes the set saved under name.
func (l *Library) Delete(name string) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// List returns the saved set names in sorted order. An unreadable directory
// yields an empty list.
func (l *Library) List(ctx context.Context) []string {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.FromContext(ctx).Warn("list color sets", zap.String("dir", l.dir), zap.Error(err))
		}
		return nil
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(out)

	return out
}

// path maps a set name to its file.
func (l *Library) path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\:`) {
		return "", fmt.Errorf("invalid color set name: %q", name)
	}

	return filepath.Join(l.dir, name+ext), nil
}
