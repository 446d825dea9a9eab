package painter

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/yenyang/Recolor-sub000/internal/binding"
	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

const (
	// minChunk is the smallest number of targets worth a separate job.
	minChunk   = 64
	maxWorkers = 12
)

// ErrNoTarget is returned by Pick when the object has no colors.
var ErrNoTarget = errors.New("no target")

// Result summarizes one batch.
type Result struct {
	Targets int // objects in scope
	Mutated int // objects whose state was written
	Skipped int // intents dropped at playback
	Marked  int // refresh markers set
}

// Mutator runs scoped batch color mutations.
type Mutator struct {
	world    *scene.World
	store    *colorstate.Store
	bindings *binding.Manager
	workers  int
}

// NewMutator creates a mutator. workers <= 0 picks a default from GOMAXPROCS.
func NewMutator(world *scene.World, store *colorstate.Store, bindings *binding.Manager, workers int) *Mutator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) - 1
		if workers < 1 {
			workers = 1
		}
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	return &Mutator{
		world:    world,
		store:    store,
		bindings: bindings,
		workers:  workers,
	}
}

// Targets returns the objects in scope of tool, in ascending id order.
func (m *Mutator) Targets(tool Tool) []scene.ID {
	if tool.Scope == ScopeSingle {
		if tool.Target == 0 {
			return nil
		}
		if _, ok := m.world.Get(tool.Target); !ok {
			return nil
		}
		return []scene.ID{tool.Target}
	}

	candidates := m.world.Candidates(tool.Categories)
	keep := make([]bool, len(candidates))
	m.parallel(len(candidates), func(_, start, end int) {
		for i := start; i < end; i++ {
			e, ok := m.world.Get(candidates[i])
			keep[i] = ok && tool.InRadius(e.Position)
		}
	})

	out := candidates[:0]
	for i, id := range candidates {
		if keep[i] {
			out = append(out, id)
		}
	}

	return out
}

// Run performs tool.Mode on every object in scope. Jobs compute intents in
// parallel against read-only state; intents are played back on the calling
// goroutine once every job finished.
//
// A cancelled ctx prevents scheduling. Once jobs run their intents are
// always played back.
func (m *Mutator) Run(ctx context.Context, tool Tool) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !tool.Mode.Mutates() {
		return Result{}, nil
	}

	targets := m.Targets(tool)
	buffers := m.compute(tool, targets)

	res := playback{
		store:    m.store,
		bindings: m.bindings,
		world:    m.world,
		log:      logger.FromContext(ctx),
	}.run(Merge(buffers))
	res.Targets = len(targets)

	return res, nil
}

// Pick returns the live colors of id for the picker mode.
func (m *Mutator) Pick(id scene.ID) (colorstate.ColorSet, error) {
	set, ok := m.store.Primary(id)
	if !ok {
		return colorstate.ColorSet{}, ErrNoTarget
	}

	return set, nil
}

// compute runs the parallel pass and returns one buffer per job.
func (m *Mutator) compute(tool Tool, targets []scene.ID) []*CommandBuffer {
	jobs := m.jobCount(len(targets))
	buffers := make([]*CommandBuffer, jobs)
	for i := range buffers {
		buffers[i] = &CommandBuffer{}
	}

	m.parallel(len(targets), func(job, start, end int) {
		buf := buffers[job]
		for _, id := range targets[start:end] {
			m.intentsFor(tool, id, buf)
		}
	})

	return buffers
}

// intentsFor records the mutation and cascade of one target.
func (m *Mutator) intentsFor(tool Tool, id scene.ID, buf *CommandBuffer) {
	live, ok := m.store.Primary(id)
	if !ok {
		return
	}
	before := buf.Len()

	switch tool.Mode {
	case ModePaint:
		// Palette choices take their channels; explicit colors fill the rest.
		colorMask := tool.Toggles
		var assigns []Intent
		for ch, pid := range tool.Palettes {
			if pid != "" && tool.Toggles[ch] {
				assigns = append(assigns, Intent{Kind: IntentAssign, Target: id, Channel: ch, Palette: pid})
				colorMask[ch] = false
			}
		}

		// An explicit color replaces the palette bound to its channel.
		unbound := 0
		for _, e := range m.bindings.Bindings(id) {
			if colorMask[e.Channel] {
				buf.Add(Intent{Kind: IntentUnassign, Target: id, Channel: e.Channel})
				unbound++
			}
		}

		if colorMask != (colorstate.Mask{}) {
			compiled := colorstate.Compile(live, tool.Colors, colorMask)
			if compiled != live || unbound > 0 || m.store.IsCustomized(id) {
				buf.Add(Intent{Kind: IntentApply, Target: id, Colors: compiled, Mask: colorMask})
			}
		}

		if len(assigns) == 0 && buf.Len() == before {
			return
		}
		for _, in := range assigns {
			buf.Add(in)
		}

	case ModeReset:
		bound := m.bindings.Bindings(id)
		for _, e := range bound {
			if tool.Toggles[e.Channel] {
				buf.Add(Intent{Kind: IntentUnassign, Target: id, Channel: e.Channel})
			}
		}
		if !m.store.IsCustomized(id) && len(bound) == 0 {
			return
		}
		buf.Add(Intent{Kind: IntentReset, Target: id, Mask: tool.Toggles})

	default:
		return
	}

	for _, dep := range scene.Cascade(id, m.world, m.store) {
		buf.Add(Intent{Kind: IntentMark, Target: dep})
	}
}

// jobCount returns the number of jobs for n targets.
func (m *Mutator) jobCount(n int) int {
	jobs := (n + minChunk - 1) / minChunk
	if jobs > m.workers {
		jobs = m.workers
	}
	if jobs < 1 {
		jobs = 1
	}

	return jobs
}

// parallel splits [0, n) into contiguous chunks and runs fn on each.
func (m *Mutator) parallel(n int, fn func(job, start, end int)) {
	jobs := m.jobCount(n)
	if jobs == 1 {
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	for job := 0; job < jobs; job++ {
		start, end := splitRange(n, jobs, job)
		wg.Add(1)
		go func(job, start, end int) {
			defer wg.Done()
			fn(job, start, end)
		}(job, start, end)
	}

	wg.Wait()
}

// splitRange returns the bounds of part index of n items split into parts.
func splitRange(n, parts, index int) (int, int) {
	size := n / parts
	rest := n % parts

	start := index*size + min(index, rest)
	end := start + size
	if index < rest {
		end++
	}

	return start, end
}
