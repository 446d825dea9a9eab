package palette

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/invopop/yaml"
)

// DirSource reads palette definitions from *.yaml / *.json files in a directory.
// A definition without an id takes the file base name.
type DirSource struct {
	dir   string
	defs  map[ID]Definition
	files map[string]ID // file path -> id, for removals
	mu    sync.RWMutex
}

// NewDirSource creates a source rooted at dir. Call Load to read it.
func NewDirSource(dir string) *DirSource {
	return &DirSource{
		dir:   dir,
		defs:  map[ID]Definition{},
		files: map[string]ID{},
	}
}

// Dir returns the watched directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Definition returns the definition loaded for id.
func (s *DirSource) Definition(id ID) (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.defs[id]
	return d, ok
}

// IDs returns the loaded palette ids in sorted order.
func (s *DirSource) IDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ID, 0, len(s.defs))
	for id := range s.defs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Load reads every definition file in the directory.
func (s *DirSource) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !IsDefinitionFile(e.Name()) {
			continue
		}

		if _, err := s.Reload(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Reload re-reads one definition file and returns its id.
// A missing file is forgotten and reported with os.ErrNotExist.
func (s *DirSource) Reload(path string) (ID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			id, _ := s.Forget(path)
			return id, err
		}
		return "", err
	}

	def, err := DecodeDefinition(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if def.ID == "" {
		def.ID = ID(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.files[path]; ok && prev != def.ID {
		delete(s.defs, prev)
	}
	s.defs[def.ID] = def
	s.files[path] = def.ID

	return def.ID, nil
}

// Forget drops the definition that was loaded from path.
func (s *DirSource) Forget(path string) (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.files[path]
	if !ok {
		return "", false
	}

	delete(s.files, path)
	delete(s.defs, id)

	return id, true
}

// DecodeDefinition decodes a YAML or JSON palette definition.
func DecodeDefinition(raw []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return Definition{}, err
	}

	return def, nil
}

// EncodeDefinition encodes a palette definition as YAML.
func EncodeDefinition(def Definition) ([]byte, error) {
	return yaml.Marshal(def)
}

// IsDefinitionFile reports whether name has a definition file extension.
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
