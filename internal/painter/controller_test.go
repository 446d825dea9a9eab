package painter

import (
	"context"
	"testing"

	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

func TestSingleScopeIsEdgeTriggered(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1)
	id := e.add(scene.CategoryBuilding, scene.Vec3{})

	tool := DefaultTool()
	tool.Colors = colorstate.ColorSet{white, white, white}
	c := NewController(e.mut, tool)
	ctx := context.Background()

	if _, ran, _ := c.Update(ctx, Input{Hover: id, ApplyPressed: true, ApplyHeld: true}); !ran {
		t.Fatalf("press must fire")
	}
	if _, ran, _ := c.Update(ctx, Input{Hover: id, ApplyHeld: true}); ran {
		t.Fatalf("held input must not re-fire in single scope")
	}
	if !e.store.IsCustomized(id) {
		t.Fatalf("target not painted")
	}

	// secondary apply resets
	if _, ran, _ := c.Update(ctx, Input{Hover: id, SecondaryPressed: true}); !ran {
		t.Fatalf("secondary press must fire")
	}
	if e.store.IsCustomized(id) {
		t.Fatalf("secondary apply must reset")
	}
}

func TestRadiusScopeIsLevelTriggered(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1)
	first := e.add(scene.CategoryProp, scene.Vec3{X: 0})
	second := e.add(scene.CategoryProp, scene.Vec3{X: 50})

	tool := DefaultTool()
	tool.Scope = ScopeRadius
	tool.Radius = 5
	tool.Colors = colorstate.ColorSet{white, white, white}
	c := NewController(e.mut, tool)
	ctx := context.Background()

	if _, ran, _ := c.Update(ctx, Input{Cursor: scene.Vec3{X: 0}, ApplyPressed: true, ApplyHeld: true}); !ran {
		t.Fatalf("press must fire")
	}
	// dragging with the button held keeps painting
	res, ran, _ := c.Update(ctx, Input{Cursor: scene.Vec3{X: 49}, ApplyHeld: true})
	if !ran || res.Targets != 1 {
		t.Fatalf("held drag: ran=%v result=%+v", ran, res)
	}
	if !e.store.IsCustomized(first) || !e.store.IsCustomized(second) {
		t.Fatalf("continuous radius painting missed an object")
	}

	if _, ran, _ := c.Update(ctx, Input{Cursor: scene.Vec3{X: 49}}); ran {
		t.Fatalf("released input must not fire")
	}
}

func TestPickerSamplesLiveColors(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1)
	src := e.add(scene.CategoryBuilding, scene.Vec3{})
	dst := e.add(scene.CategoryBuilding, scene.Vec3{X: 10})
	_ = e.store.ApplyOverride(src, 1, yellow)

	tool := DefaultTool()
	tool.Mode = ModePicker
	c := NewController(e.mut, tool)
	ctx := context.Background()

	if _, ran, _ := c.Update(ctx, Input{Hover: src, ApplyPressed: true}); ran {
		t.Fatalf("picker must not mutate")
	}
	if got := c.Tool().Colors; got != (colorstate.ColorSet{red, yellow, blue}) {
		t.Fatalf("picked=%v", got)
	}
	if c.Tool().Mode != ModePaint {
		t.Fatalf("mode=%v want paint after pick", c.Tool().Mode)
	}

	if _, ran, _ := c.Update(ctx, Input{Hover: dst, ApplyPressed: true}); !ran {
		t.Fatalf("paint after pick must fire")
	}
	live, _ := e.store.Primary(dst)
	if live[1] != yellow {
		t.Fatalf("live=%v", live)
	}
}

func TestDeactivatedControllerIdles(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1)
	id := e.add(scene.CategoryBuilding, scene.Vec3{})

	tool := DefaultTool()
	tool.Colors = colorstate.ColorSet{white, white, white}
	c := NewController(e.mut, tool)
	c.Deactivate()

	if _, ran, _ := c.Update(context.Background(), Input{Hover: id, ApplyPressed: true}); ran {
		t.Fatalf("inactive controller fired")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Activate()
	if _, ran, _ := c.Update(ctx, Input{Hover: id, ApplyPressed: true}); ran {
		t.Fatalf("cancelled controller fired")
	}
	if c.Active() {
		t.Fatalf("cancellation must deactivate the controller")
	}
	if e.store.IsCustomized(id) {
		t.Fatalf("state mutated while inactive")
	}
}
