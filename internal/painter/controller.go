package painter

import (
	"context"

	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

// Input is the per-tick state of the apply buttons and cursor.
type Input struct {
	Cursor           scene.Vec3 // cursor position in the world
	Hover            scene.ID   // object under the cursor, 0 for none
	ApplyPressed     bool       // apply went down this tick
	ApplyHeld        bool       // apply is down
	SecondaryPressed bool       // secondary apply went down this tick
	SecondaryHeld    bool       // secondary apply is down
}

// Controller drives a Mutator from per-tick input.
//
// Radius scope is level triggered: it re-runs every tick while an apply
// input is held. Single scope is edge triggered and fires once per press.
type Controller struct {
	mutator *Mutator
	tool    Tool
	active  bool
}

// NewController creates an active controller for tool.
func NewController(m *Mutator, tool Tool) *Controller {
	return &Controller{mutator: m, tool: tool, active: true}
}

// Tool returns the current tool state.
func (c *Controller) Tool() Tool {
	return c.tool
}

// SetTool replaces the tool state.
func (c *Controller) SetTool(t Tool) {
	c.tool = t
}

// Activate enables scheduling.
func (c *Controller) Activate() {
	c.active = true
}

// Deactivate stops scheduling new batches.
func (c *Controller) Deactivate() {
	c.active = false
}

// Active reports whether the controller schedules batches.
func (c *Controller) Active() bool {
	return c.active
}

// Update processes one tick of input. It returns the batch result when a
// mutation ran.
func (c *Controller) Update(ctx context.Context, in Input) (Result, bool, error) {
	if !c.active {
		return Result{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		c.active = false
		return Result{}, false, nil
	}

	c.tool.Anchor = in.Cursor
	c.tool.Target = in.Hover

	if c.tool.Mode == ModePicker {
		if in.ApplyPressed && in.Hover != 0 {
			set, err := c.mutator.Pick(in.Hover)
			if err != nil {
				return Result{}, false, nil
			}
			c.tool.Colors = set
			c.tool.Mode = ModePaint
			logger.FromContext(ctx).Debug("picked colors", zap.Uint32("target", uint32(in.Hover)))
		}
		return Result{}, false, nil
	}

	primary, secondary := in.ApplyPressed, in.SecondaryPressed
	if c.tool.Scope.Continuous() {
		primary = primary || in.ApplyHeld
		secondary = secondary || in.SecondaryHeld
	}

	var mode Mode
	switch {
	case primary:
		mode = c.tool.Mode
	case secondary:
		mode = ModeReset
	default:
		return Result{}, false, nil
	}

	tool := c.tool
	tool.Mode = mode
	res, err := c.mutator.Run(ctx, tool)
	if err != nil {
		return Result{}, false, err
	}

	return res, true, nil
}
