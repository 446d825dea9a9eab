package swatch

// Random is a xorshift32 generator bit-compatible with Unity.Mathematics.Random.
//
// Saved games depend on the exact sequence it produces. Do not change the
// recurrence, the constructor step or the NextInt scaling.
type Random struct {
	state uint32
}

// NewRandom seeds a generator. A zero seed is promoted to 1 because the
// xorshift recurrence never leaves the zero state.
func NewRandom(seed uint32) *Random {
	if seed == 0 {
		seed = 1
	}

	r := &Random{state: seed}
	r.nextState()

	return r
}

// nextState advances the generator and returns the state before the step.
func (r *Random) nextState() uint32 {
	t := r.state
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5

	return t
}

// NextUint32 returns the next raw 32-bit draw.
func (r *Random) NextUint32() uint32 {
	return r.nextState()
}

// Discard advances the generator n draws.
func (r *Random) Discard(n int) {
	for i := 0; i < n; i++ {
		r.nextState()
	}
}

// NextInt returns a draw in [0, max). max must be positive.
func (r *Random) NextInt(max uint64) uint64 {
	return (uint64(r.nextState()) * max) >> 32
}
