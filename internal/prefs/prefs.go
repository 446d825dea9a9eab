// Package prefs stores per-prefab palette preferences in a versioned binary blob.
//
// Layout (little endian):
//
//	u16 version | u32 prefab count | prefab...
//	prefab v1:  str prefab | str palette x3 (channels 0..2)
//	prefab v2+: str prefab | u8 count | (u8 channel | str palette) x count
//	str:        u16 length | bytes
package prefs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

const (
	// Version1 always stored three channel entries.
	Version1 uint16 = 1
	// Version2 stores a count and supports partial assignment.
	Version2 uint16 = 2
	// CurrentVersion is the version written by Encode.
	CurrentVersion = Version2
)

var (
	// ErrTruncated is returned when the blob ends inside a record.
	ErrTruncated = errors.New("preference blob truncated")
	// ErrUnsupportedVersion is returned for unknown versions.
	ErrUnsupportedVersion = errors.New("unsupported preference version")
)

// Preference is one channel to palette choice.
type Preference struct {
	Palette palette.ID `json:"palette"` // palette identity
	Channel int        `json:"channel"` // material channel 0..2
}

// Assignment is the list of preferences of one prefab, at most one per channel.
type Assignment []Preference

// Preferences maps prefab identities to their palette preferences.
type Preferences map[string]Assignment

// Assigner binds palettes to object channels.
type Assigner interface {
	Assign(id scene.ID, ch int, pid palette.ID) error
}

// Set upserts the preference for ch. Invalid channels are ignored.
func (p Preferences) Set(prefab string, ch int, pid palette.ID) {
	if !swatch.ValidChannel(ch) {
		return
	}

	a := p[prefab]
	for i := range a {
		if a[i].Channel == ch {
			a[i].Palette = pid
			p[prefab] = a
			return
		}
	}

	p[prefab] = append(a, Preference{Channel: ch, Palette: pid})
}

// Unset removes the preference for ch and drops empty prefabs.
func (p Preferences) Unset(prefab string, ch int) {
	a := p[prefab]
	for i := range a {
		if a[i].Channel == ch {
			a = append(a[:i], a[i+1:]...)
			break
		}
	}

	if len(a) == 0 {
		delete(p, prefab)
		return
	}
	p[prefab] = a
}

// Prefabs returns the prefab identities in sorted order.
func (p Preferences) Prefabs() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// ApplyTo assigns every non-empty preference to object id and returns the
// number of channels bound. Unusable palettes are skipped.
func (a Assignment) ApplyTo(b Assigner, id scene.ID) int {
	n := 0
	for _, pref := range a {
		if pref.Palette == "" {
			continue
		}
		if err := b.Assign(id, pref.Channel, pref.Palette); err == nil {
			n++
		}
	}

	return n
}

// Decode parses a preference blob. Every version from 2 on uses the counted
// layout.
func Decode(data []byte) (Preferences, uint16, error) {
	r := &reader{buf: data}

	version, err := r.u16()
	if err != nil {
		return nil, 0, err
	}
	if version < Version1 {
		return nil, version, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	count, err := r.u32()
	if err != nil {
		return nil, version, err
	}

	out := Preferences{}
	for i := uint32(0); i < count; i++ {
		prefab, err := r.str()
		if err != nil {
			return nil, version, fmt.Errorf("prefab %d: %w", i, err)
		}

		var a Assignment
		if version == Version1 {
			a, err = decodeV1(r)
		} else {
			a, err = decodeV2(r)
		}
		if err != nil {
			return nil, version, fmt.Errorf("prefab %q: %w", prefab, err)
		}

		out[prefab] = a
	}

	return out, version, nil
}

// decodeV1 reads three palette ids, one per channel.
func decodeV1(r *reader) (Assignment, error) {
	a := make(Assignment, 0, swatch.Channels)
	for ch := 0; ch < swatch.Channels; ch++ {
		pid, err := r.str()
		if err != nil {
			return nil, err
		}
		a = append(a, Preference{Channel: ch, Palette: palette.ID(pid)})
	}

	return a, nil
}

// decodeV2 reads a counted list of channel preferences.
func decodeV2(r *reader) (Assignment, error) {
	n, err := r.u8()
	if err != nil {
		return nil, err
	}

	a := make(Assignment, 0, n)
	seen := [swatch.Channels]bool{}
	for i := 0; i < int(n); i++ {
		ch, err := r.u8()
		if err != nil {
			return nil, err
		}
		pid, err := r.str()
		if err != nil {
			return nil, err
		}

		if !swatch.ValidChannel(int(ch)) || seen[ch] {
			continue
		}
		seen[ch] = true
		a = append(a, Preference{Channel: int(ch), Palette: palette.ID(pid)})
	}

	return a, nil
}

// Encode writes prefs in the current version.
func Encode(p Preferences) ([]byte, error) {
	w := &writer{}
	w.u16(CurrentVersion)
	if err := w.u32FromInt(len(p)); err != nil {
		return nil, err
	}

	for _, prefab := range p.Prefabs() {
		if err := w.str(prefab); err != nil {
			return nil, fmt.Errorf("prefab %q: %w", prefab, err)
		}

		var valid Assignment
		for _, pref := range p[prefab] {
			if swatch.ValidChannel(pref.Channel) {
				valid = append(valid, pref)
			}
		}
		if len(valid) > swatch.Channels {
			return nil, fmt.Errorf("prefab %q: %d preferences", prefab, len(valid))
		}

		w.u8(byte(len(valid)))
		for _, pref := range valid {
			w.u8(byte(pref.Channel))
			if err := w.str(string(pref.Palette)); err != nil {
				return nil, fmt.Errorf("prefab %q: %w", prefab, err)
			}
		}
	}

	return w.buf, nil
}
