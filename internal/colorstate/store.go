package colorstate

import (
	"fmt"
	"sync"

	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// Store holds the color buffers of all objects.
//
// Reads are safe from parallel jobs. Mutations are expected to be played
// back on the controlling goroutine.
type Store struct {
	records map[scene.ID]*record
	marker  Marker
	mu      sync.RWMutex
}

// NewStore creates an empty store. marker may be nil.
func NewStore(marker Marker) *Store {
	return &Store{
		records: map[scene.ID]*record{},
		marker:  marker,
	}
}

// Register sets the vanilla colors of an object, one ColorSet per mesh slot.
//
// For a customized object with the same slot count the baseline is replaced
// and the override kept. A different slot count leaves the customization
// stale; the next mutation fully resets it.
func (s *Store) Register(id scene.ID, vanilla []ColorSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.custom == nil {
		s.records[id] = &record{live: cloneSets(vanilla)}
		return
	}

	if len(vanilla) == len(r.custom.baseline) {
		r.custom.baseline = cloneSets(vanilla)
		s.settle(r)
		return
	}

	r.live = cloneSets(vanilla)
}

// Delete drops the color buffer of id.
func (s *Store) Delete(id scene.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
}

// HasColors reports whether id has a color buffer.
func (s *Store) HasColors(id scene.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[id]
	return ok
}

// IsCustomized reports whether id carries an override.
func (s *Store) IsCustomized(id scene.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	return ok && r.custom != nil
}

// Live returns a copy of the rendered colors of id.
func (s *Store) Live(id scene.ID) ([]ColorSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	if r.custom != nil && !r.stale() {
		return cloneSets(r.custom.override), true
	}

	return cloneSets(r.live), true
}

// Primary returns the rendered colors of the first mesh slot.
func (s *Store) Primary(id scene.ID) (ColorSet, bool) {
	live, ok := s.Live(id)
	if !ok || len(live) == 0 {
		return ColorSet{}, false
	}

	return live[0], true
}

// Baseline returns the pre-customization colors of id. Objects that are not
// customized report their live colors.
func (s *Store) Baseline(id scene.ID) ([]ColorSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	if r.custom != nil && !r.stale() {
		return cloneSets(r.custom.baseline), true
	}

	return cloneSets(r.live), true
}

// MatchesBaseline reports whether every override channel equals the baseline.
// Stale or uncustomized records never match.
func (s *Store) MatchesBaseline(id scene.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return false
	}

	return matches(r, AllChannels)
}

// ChannelMatchesBaseline reports whether channel ch equals the baseline on
// every mesh slot. Objects that are not customized always match.
func (s *Store) ChannelMatchesBaseline(id scene.ID, ch int) bool {
	if !swatch.ValidChannel(ch) {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return false
	}
	if r.custom == nil {
		return true
	}

	return matches(r, Only(ch))
}

// ApplyOverride writes color into channel ch on every mesh slot of id.
func (s *Store) ApplyOverride(id scene.ID, ch int, color swatch.Color) error {
	if !swatch.ValidChannel(ch) {
		return ErrInvalidChannel
	}

	var set ColorSet
	set[ch] = color

	return s.Apply(id, set, Only(ch))
}

// Apply writes the channels of colors selected by mask on every mesh slot.
// The baseline is captured from the live colors on the first write.
func (s *Store) Apply(id scene.ID, colors ColorSet, mask Mask) error {
	s.mu.Lock()
	r, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return ErrNoColorBuffer
	}

	if r.stale() {
		r.custom = nil
	}

	if r.custom == nil {
		r.custom = &customization{
			baseline: cloneSets(r.live),
			override: cloneSets(r.live),
		}
	}

	for i := range r.custom.override {
		r.custom.override[i] = Compile(r.custom.override[i], colors, mask)
	}
	s.settle(r)
	s.mu.Unlock()

	s.mark(id)
	return nil
}

// SetOverride replaces the override of id with one ColorSet per mesh slot.
// The baseline is captured from the live colors when id is not customized yet.
func (s *Store) SetOverride(id scene.ID, override []ColorSet) error {
	s.mu.Lock()
	r, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return ErrNoColorBuffer
	}
	if len(override) != len(r.live) {
		s.mu.Unlock()
		return fmt.Errorf("%w: got %d want %d", ErrSlotCount, len(override), len(r.live))
	}

	if r.stale() {
		r.custom = nil
	}
	if r.custom == nil {
		r.custom = &customization{baseline: cloneSets(r.live)}
	}
	r.custom.override = cloneSets(override)
	s.settle(r)
	s.mu.Unlock()

	s.mark(id)
	return nil
}

// ResetChannel reverts channel ch to the baseline. When the override then
// equals the baseline the customization is dropped entirely.
func (s *Store) ResetChannel(id scene.ID, ch int) error {
	if !swatch.ValidChannel(ch) {
		return ErrInvalidChannel
	}

	return s.Reset(id, Only(ch))
}

// Reset reverts the channels selected by mask to the baseline. Unselected
// channels keep their override.
func (s *Store) Reset(id scene.ID, mask Mask) error {
	s.mu.Lock()
	r, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return ErrNoColorBuffer
	}
	if r.custom == nil {
		s.mu.Unlock()
		return nil
	}

	if !r.stale() {
		for i := range r.custom.override {
			r.custom.override[i] = Compile(r.custom.override[i], r.custom.baseline[i], mask)
		}
	}
	s.settle(r)
	s.mu.Unlock()

	s.mark(id)
	return nil
}

// ResetAll drops the customization of id.
func (s *Store) ResetAll(id scene.ID) error {
	return s.Reset(id, AllChannels)
}

// settle performs the complete reset when the override converged back to the
// baseline or the record is stale, then syncs the live colors. Callers hold mu.
func (s *Store) settle(r *record) {
	if r.custom == nil {
		return
	}

	if r.stale() {
		r.custom = nil
		return
	}

	if matches(r, AllChannels) {
		r.live = cloneSets(r.custom.baseline)
		r.custom = nil
		return
	}

	r.live = cloneSets(r.custom.override)
}

// mark reports id to the marker.
func (s *Store) mark(id scene.ID) {
	if s.marker != nil {
		s.marker.MarkUpdated(id)
	}
}

// matches compares override and baseline for channels in mask.
func matches(r *record, mask Mask) bool {
	if r.custom == nil || r.stale() {
		return false
	}

	for i := range r.custom.override {
		for ch := range mask {
			if mask[ch] && r.custom.override[i][ch] != r.custom.baseline[i][ch] {
				return false
			}
		}
	}

	return true
}
