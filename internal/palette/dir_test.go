package palette

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirSourceLoadAndReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Pastel.yaml")
	body := `swatches:
  - color: "#ff0000"
    weight: 100
  - color: navy
    weight: 25
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	src := NewDirSource(dir)
	if err := src.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	def, ok := src.Definition("Pastel")
	if !ok {
		t.Fatalf("definition not loaded, ids=%v", src.IDs())
	}
	if len(def.Swatches) != 2 || def.Swatches[0].Color != red || def.Swatches[1].Weight != 25 {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if def.Swatches[1].Color.B != 128 {
		t.Fatalf("named color not decoded: %+v", def.Swatches[1].Color)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	id, err := src.Reload(path)
	if !errors.Is(err, os.ErrNotExist) || id != "Pastel" {
		t.Fatalf("reload after delete: id=%q err=%v", id, err)
	}
	if _, ok := src.Definition("Pastel"); ok {
		t.Fatalf("removed definition still present")
	}
}

func TestDefinitionRoundTripYAML(t *testing.T) {
	t.Parallel()

	def := redBlue("rb")
	raw, err := EncodeDefinition(def)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeDefinition(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != def.ID || len(got.Swatches) != 2 || got.Swatches[1] != def.Swatches[1] {
		t.Fatalf("got=%+v want %+v", got, def)
	}
}
