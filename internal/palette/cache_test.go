package palette

import (
	"testing"

	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

var (
	red  = swatch.Color{R: 255, A: 255}
	blue = swatch.Color{B: 255, A: 255}
)

func redBlue(id ID) Definition {
	return Definition{ID: id, Swatches: []swatch.Swatch{{Color: red, Weight: 100}, {Color: blue, Weight: 100}}}
}

func TestGetOrCreateRejectsSingleSwatch(t *testing.T) {
	t.Parallel()

	src := MapSource{}
	src.Put(Definition{ID: "solo", Swatches: []swatch.Swatch{{Color: red, Weight: 100}}})
	c := NewCache(src)

	if _, ok := c.GetOrCreate("solo"); ok {
		t.Fatalf("single swatch palette must not produce an instance")
	}
	if _, ok := c.GetOrCreate("missing"); ok {
		t.Fatalf("unknown palette must not produce an instance")
	}
	if c.Len() != 0 {
		t.Fatalf("len=%d want 0", c.Len())
	}
}

func TestGetOrCreateIdempotent(t *testing.T) {
	t.Parallel()

	src := MapSource{}
	src.Put(redBlue("a"))
	c := NewCache(src)

	h1, ok := c.GetOrCreate("a")
	if !ok {
		t.Fatalf("expected instance")
	}
	i1, _ := c.Instance(h1)

	// editing the source without Invalidate must not re-snapshot
	src.Put(Definition{ID: "a", Swatches: []swatch.Swatch{{Color: blue, Weight: 1}, {Color: red, Weight: 1}}})

	h2, ok := c.GetOrCreate("a")
	if !ok {
		t.Fatalf("expected instance")
	}
	i2, _ := c.Instance(h2)

	if h1 != h2 || i1 != i2 {
		t.Fatalf("repeated GetOrCreate returned different instances: %+v vs %+v", h1, h2)
	}
	if i2.Swatches[0].Color != red {
		t.Fatalf("instance was re-snapshot without invalidation")
	}
}

func TestInvalidateResnapshots(t *testing.T) {
	t.Parallel()

	src := MapSource{}
	src.Put(redBlue("a"))
	c := NewCache(src)

	h1, _ := c.GetOrCreate("a")
	old, _ := c.Instance(h1)

	src.Put(Definition{ID: "a", Swatches: []swatch.Swatch{{Color: blue, Weight: 5}, {Color: red, Weight: 1}}})
	c.Invalidate("a")

	if _, ok := c.Lookup("a"); ok {
		t.Fatalf("lookup must miss while invalidated")
	}

	h2, ok := c.GetOrCreate("a")
	if !ok {
		t.Fatalf("expected instance after invalidate")
	}
	fresh, _ := c.Instance(h2)
	if fresh.Swatches[0].Color != blue || fresh.Swatches[0].Weight != 5 {
		t.Fatalf("instance not re-snapshot: %+v", fresh.Swatches)
	}

	// the snapshot captured before the edit is untouched
	if old.Swatches[0].Color != red {
		t.Fatalf("in-flight snapshot was mutated: %+v", old.Swatches)
	}
	if _, ok := c.Instance(h1); ok {
		t.Fatalf("stale handle must resolve to no instance")
	}
}

func TestInvalidateToUnusable(t *testing.T) {
	t.Parallel()

	src := MapSource{}
	src.Put(redBlue("a"))
	c := NewCache(src)

	h, _ := c.GetOrCreate("a")
	src.Put(Definition{ID: "a", Swatches: []swatch.Swatch{{Color: red, Weight: 1}}})
	c.Invalidate("a")

	if _, ok := c.GetOrCreate("a"); ok {
		t.Fatalf("edited palette with one swatch must be unusable")
	}
	if _, ok := c.Instance(h); ok {
		t.Fatalf("old handle must be released")
	}
}

func TestRemoveReleasesHandle(t *testing.T) {
	t.Parallel()

	src := MapSource{}
	src.Put(redBlue("a"))
	src.Put(redBlue("b"))
	c := NewCache(src)

	ha, _ := c.GetOrCreate("a")
	if !c.Remove("a") {
		t.Fatalf("remove returned false")
	}
	if c.Remove("a") {
		t.Fatalf("second remove returned true")
	}
	if _, ok := c.Swatches(ha); ok {
		t.Fatalf("removed handle must resolve to no instance")
	}

	// the freed slot is reused without reviving the old handle
	hb, _ := c.GetOrCreate("b")
	if hb.Index != ha.Index {
		t.Fatalf("slot not reused: a=%+v b=%+v", ha, hb)
	}
	if _, ok := c.Instance(ha); ok {
		t.Fatalf("old handle resolved after slot reuse")
	}
	if inst, ok := c.Instance(hb); !ok || inst.ID != "b" {
		t.Fatalf("new handle broken: %+v %v", inst, ok)
	}
}

func TestZeroHandle(t *testing.T) {
	t.Parallel()

	c := NewCache(MapSource{})
	if _, ok := c.Instance(Handle{}); ok {
		t.Fatalf("zero handle resolved")
	}
	if _, ok := c.Instance(Handle{Index: 42, Generation: 1}); ok {
		t.Fatalf("out of range handle resolved")
	}
}

func TestIDHashDeterministic(t *testing.T) {
	t.Parallel()

	if ID("Pastel").Hash() != ID("Pastel").Hash() {
		t.Fatalf("hash not deterministic")
	}
	if ID("Pastel").Hash() == ID("Neon").Hash() {
		t.Fatalf("hash collision for different ids")
	}
}
