package painter

import (
	"errors"

	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/binding"
	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

// IntentKind is the structural mutation an intent carries.
type IntentKind int

const (
	// IntentApply writes a compiled color set.
	IntentApply IntentKind = iota + 1
	// IntentReset reverts masked channels to the baseline.
	IntentReset
	// IntentAssign binds a palette to a channel.
	IntentAssign
	// IntentUnassign removes the palette of a channel.
	IntentUnassign
	// IntentMark flags an object for visual refresh.
	IntentMark
)

// Intent is a mutation computed by a parallel job and applied at playback.
type Intent struct {
	Palette palette.ID
	Colors  colorstate.ColorSet
	Mask    colorstate.Mask
	Kind    IntentKind
	Target  scene.ID
	Channel int
}

// CommandBuffer records intents of one job chunk.
type CommandBuffer struct {
	intents []Intent
}

// Add records an intent.
func (b *CommandBuffer) Add(in Intent) {
	b.intents = append(b.intents, in)
}

// Len returns the number of recorded intents.
func (b *CommandBuffer) Len() int {
	return len(b.intents)
}

// Intents returns the recorded intents in insertion order.
func (b *CommandBuffer) Intents() []Intent {
	return b.intents
}

// Merge concatenates buffers in order. Jobs cover contiguous slices of the
// target list, so the result follows target input order.
func Merge(buffers []*CommandBuffer) *CommandBuffer {
	n := 0
	for _, b := range buffers {
		n += b.Len()
	}

	out := &CommandBuffer{intents: make([]Intent, 0, n)}
	for _, b := range buffers {
		out.intents = append(out.intents, b.intents...)
	}

	return out
}

// playback is the single-goroutine applier of merged intents.
type playback struct {
	store    *colorstate.Store
	bindings *binding.Manager
	world    *scene.World
	log      *zap.Logger
}

// run applies every intent and counts mutated objects.
func (p playback) run(buf *CommandBuffer) Result {
	var res Result
	touched := map[scene.ID]struct{}{}

	for _, in := range buf.intents {
		var err error
		switch in.Kind {
		case IntentApply:
			err = p.store.Apply(in.Target, in.Colors, in.Mask)
		case IntentReset:
			err = p.store.Reset(in.Target, in.Mask)
		case IntentAssign:
			err = p.bindings.Assign(in.Target, in.Channel, in.Palette)
		case IntentUnassign:
			err = p.bindings.Unassign(in.Target, in.Channel)
		case IntentMark:
			p.world.MarkUpdated(in.Target)
			res.Marked++
			continue
		}

		if err != nil {
			// targets may lose their buffer between the job and playback
			if !errors.Is(err, colorstate.ErrNoColorBuffer) {
				p.log.Debug("intent skipped",
					zap.Uint32("target", uint32(in.Target)),
					zap.Int("kind", int(in.Kind)),
					zap.Error(err))
			}
			res.Skipped++
			continue
		}

		if _, ok := touched[in.Target]; !ok {
			touched[in.Target] = struct{}{}
			res.Mutated++
		}
	}

	return res
}
