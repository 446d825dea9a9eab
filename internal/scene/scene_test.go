package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeBuffers marks which ids have colors and which are customized.
type fakeBuffers struct {
	colors     map[ID]bool
	customized map[ID]bool
}

func (f fakeBuffers) HasColors(id ID) bool    { return f.colors[id] }
func (f fakeBuffers) IsCustomized(id ID) bool { return f.customized[id] }

func TestCascadeDepthBound(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	buf := fakeBuffers{colors: map[ID]bool{}, customized: map[ID]bool{}}

	// root + 6 nested levels
	chain := make([]ID, 7)
	for i := range chain {
		chain[i] = w.Add(Entity{Prefab: "tree", Category: CategoryProp})
		buf.colors[chain[i]] = true
		if i > 0 {
			if err := w.Link(chain[i-1], chain[i]); err != nil {
				t.Fatalf("link: %v", err)
			}
		}
	}

	got := Cascade(chain[0], w, buf)
	want := chain[:6] // root and levels 1..5
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cascade mismatch (-want +got):\n%s", diff)
	}
}

func TestCascadeSkipsMissingBuffers(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	root := w.Add(Entity{Prefab: "house", Category: CategoryBuilding})
	bare := w.Add(Entity{Prefab: "marker"})
	leaf := w.Add(Entity{Prefab: "chimney"})
	_ = w.Link(root, bare)
	_ = w.Link(bare, leaf)

	buf := fakeBuffers{colors: map[ID]bool{root: true, leaf: true}}
	got := Cascade(root, w, buf)
	if diff := cmp.Diff([]ID{root, leaf}, got); diff != "" {
		t.Fatalf("cascade mismatch (-want +got):\n%s", diff)
	}
}

func TestCascadeSubLanes(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	root := w.Add(Entity{Prefab: "house", Category: CategoryBuilding})
	plain := w.Add(Entity{Prefab: "fence", Category: CategoryNetLane})
	custom := w.Add(Entity{Prefab: "fence", Category: CategoryNetLane})
	bare := w.Add(Entity{Prefab: "fence", Category: CategoryNetLane})
	_ = w.LinkLane(root, plain)
	_ = w.LinkLane(root, custom)
	_ = w.LinkLane(root, bare)

	buf := fakeBuffers{
		colors:     map[ID]bool{root: true, plain: true, custom: true},
		customized: map[ID]bool{custom: true},
	}

	got := Cascade(root, w, buf)
	if diff := cmp.Diff([]ID{root, plain}, got); diff != "" {
		t.Fatalf("cascade mismatch (-want +got):\n%s", diff)
	}
}

func TestCascadeSharedSubObjectOnce(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	root := w.Add(Entity{Prefab: "a"})
	left := w.Add(Entity{Prefab: "b"})
	right := w.Add(Entity{Prefab: "c"})
	shared := w.Add(Entity{Prefab: "d"})
	_ = w.Link(root, left)
	_ = w.Link(root, right)
	_ = w.Link(left, shared)
	_ = w.Link(right, shared)
	_ = w.Link(shared, root) // cycle

	buf := fakeBuffers{colors: map[ID]bool{root: true, left: true, right: true, shared: true}}
	got := Cascade(root, w, buf)
	if diff := cmp.Diff([]ID{root, left, right, shared}, got); diff != "" {
		t.Fatalf("cascade mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewSeed(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	orig := w.Add(Entity{Prefab: "house", Category: CategoryBuilding})
	o, _ := w.Get(orig)
	if o.Seed != SeedFor("house", orig) {
		t.Fatalf("seed=%d want %d", o.Seed, SeedFor("house", orig))
	}

	preview, err := w.Preview(orig, Vec3{X: 10})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	p, _ := w.Get(preview)
	if p.Seed != o.Seed || p.Original != orig {
		t.Fatalf("preview=%+v original=%+v", p, o)
	}

	// simulate drift and correct it
	w.mu.Lock()
	w.entities[preview].Seed++
	w.mu.Unlock()

	changed, err := w.SyncPreviewSeed(preview)
	if err != nil || !changed {
		t.Fatalf("sync: changed=%v err=%v", changed, err)
	}
	p, _ = w.Get(preview)
	if p.Seed != o.Seed {
		t.Fatalf("seed not copied from original: %d vs %d", p.Seed, o.Seed)
	}

	if changed, _ := w.SyncPreviewSeed(preview); changed {
		t.Fatalf("second sync changed the seed")
	}
}

func TestCandidatesAndMarkers(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	b := w.Add(Entity{Prefab: "house", Category: CategoryBuilding})
	p := w.Add(Entity{Prefab: "bench", Category: CategoryProp})
	v := w.Add(Entity{Prefab: "car", Category: CategoryVehicle})
	_ = w.Add(Entity{Prefab: "ghost"})

	if diff := cmp.Diff([]ID{b, v}, w.Candidates(MaskOf(CategoryBuilding, CategoryVehicle))); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{b, p, v}, w.Candidates(AllCategories)); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	w.MarkUpdated(p)
	w.MarkUpdated(999)
	if !w.IsUpdated(p) || w.IsUpdated(b) {
		t.Fatalf("unexpected markers")
	}
	if diff := cmp.Diff([]ID{p}, w.TakeUpdated()); diff != "" {
		t.Fatalf("updated mismatch (-want +got):\n%s", diff)
	}
	if len(w.TakeUpdated()) != 0 {
		t.Fatalf("markers not cleared")
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for c, name := range categoryNames {
		got, err := ParseCategory(name)
		if err != nil || got != c {
			t.Fatalf("%s: got=%v err=%v", name, got, err)
		}
	}
	if _, err := ParseCategory("spaceship"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHierarchyReturnsCopies(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	parent := w.Add(Entity{Prefab: "house"})
	a := w.Add(Entity{Prefab: "door"})
	b := w.Add(Entity{Prefab: "fence"})
	if err := w.Link(parent, a); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := w.LinkLane(parent, b); err != nil {
		t.Fatalf("link lane: %v", err)
	}

	subs := w.SubObjects(parent)
	subs[0] = 99
	lanes := w.SubLanes(parent)
	lanes[0] = 99

	if diff := cmp.Diff([]ID{a}, w.SubObjects(parent)); diff != "" {
		t.Fatalf("sub-objects aliased (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{b}, w.SubLanes(parent)); diff != "" {
		t.Fatalf("sub-lanes aliased (-want +got):\n%s", diff)
	}
}
