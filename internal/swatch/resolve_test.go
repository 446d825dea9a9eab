package swatch

import "testing"

var (
	red   = Color{R: 255, A: 255}
	green = Color{G: 255, A: 255}
	blue  = Color{B: 255, A: 255}
)

func TestRandomSequence(t *testing.T) {
	t.Parallel()

	rng := NewRandom(5)
	want := []uint32{1351845, 336141829, 3472693697}
	for i, w := range want {
		if got := rng.NextUint32(); got != w {
			t.Fatalf("draw %d: got=%d want=%d", i, got, w)
		}
	}
}

func TestRandomZeroSeed(t *testing.T) {
	t.Parallel()

	a := NewRandom(0)
	b := NewRandom(1)
	for i := 0; i < 8; i++ {
		if x, y := a.NextUint32(), b.NextUint32(); x != y {
			t.Fatalf("draw %d: zero seed=%d one seed=%d", i, x, y)
		}
	}
}

func TestResolveGolden(t *testing.T) {
	t.Parallel()

	redBlue := []Swatch{{Color: red, Weight: 100}, {Color: blue, Weight: 100}}
	three := []Swatch{{Color: red, Weight: 10}, {Color: green, Weight: 30}, {Color: blue, Weight: 60}}

	tests := []struct {
		name     string
		swatches []Swatch
		seed     uint16
		want     [Channels]Color
	}{
		{name: "red_blue_seed_5", swatches: redBlue, seed: 5, want: [Channels]Color{red, blue, blue}},
		{name: "red_blue_seed_2", swatches: redBlue, seed: 2, want: [Channels]Color{red, red, blue}},
		{name: "red_blue_seed_1000", swatches: redBlue, seed: 1000, want: [Channels]Color{red, blue, blue}},
		{name: "red_blue_seed_12345", swatches: redBlue, seed: 12345, want: [Channels]Color{blue, red, red}},
		{name: "red_blue_seed_65535", swatches: redBlue, seed: 65535, want: [Channels]Color{blue, red, red}},
		{name: "three_seed_777", swatches: three, seed: 777, want: [Channels]Color{red, green, green}},
		{name: "three_seed_42", swatches: three, seed: 42, want: [Channels]Color{red, blue, blue}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for ch := 0; ch < Channels; ch++ {
				got, ok := Resolve(tt.swatches, tt.seed, ch)
				if !ok {
					t.Fatalf("channel %d: no resolution", ch)
				}
				if got != tt.want[ch] {
					t.Fatalf("channel %d: got=%v want=%v", ch, got, tt.want[ch])
				}
			}
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	t.Parallel()

	swatches := []Swatch{{Color: red, Weight: 3}, {Color: green, Weight: 5}, {Color: blue, Weight: 7}}
	for seed := 0; seed < 512; seed++ {
		for ch := 0; ch < Channels; ch++ {
			a, okA := Resolve(swatches, uint16(seed), ch)
			b, okB := Resolve(swatches, uint16(seed), ch)
			if a != b || okA != okB {
				t.Fatalf("seed=%d channel=%d: %v/%v vs %v/%v", seed, ch, a, okA, b, okB)
			}
		}
	}
}

func TestResolveAggregatesDuplicates(t *testing.T) {
	t.Parallel()

	split := []Swatch{{Color: red, Weight: 50}, {Color: blue, Weight: 100}, {Color: red, Weight: 50}}
	merged := []Swatch{{Color: red, Weight: 100}, {Color: blue, Weight: 100}}

	for seed := 0; seed <= 0xFFFF; seed += 97 {
		for ch := 0; ch < Channels; ch++ {
			a, _ := Resolve(split, uint16(seed), ch)
			b, _ := Resolve(merged, uint16(seed), ch)
			if a != b {
				t.Fatalf("seed=%d channel=%d: split=%v merged=%v", seed, ch, a, b)
			}
		}
	}
}

func TestResolveNoSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		swatches []Swatch
		channel  int
	}{
		{name: "empty", swatches: nil, channel: 0},
		{name: "zero_weight", swatches: []Swatch{{Color: red}, {Color: blue}}, channel: 1},
		{name: "channel_negative", swatches: []Swatch{{Color: red, Weight: 1}, {Color: blue, Weight: 1}}, channel: -1},
		{name: "channel_too_high", swatches: []Swatch{{Color: red, Weight: 1}, {Color: blue, Weight: 1}}, channel: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for seed := 0; seed < 64; seed++ {
				if c, ok := Resolve(tt.swatches, uint16(seed), tt.channel); ok {
					t.Fatalf("seed=%d: expected no resolution, got %v", seed, c)
				}
			}
		})
	}
}

func TestResolveSkipsZeroWeightEntry(t *testing.T) {
	t.Parallel()

	swatches := []Swatch{{Color: red, Weight: 0}, {Color: blue, Weight: 10}}
	for seed := 0; seed < 256; seed++ {
		got, ok := Resolve(swatches, uint16(seed), 0)
		if !ok || got != blue {
			t.Fatalf("seed=%d: got=%v ok=%v want blue", seed, got, ok)
		}
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{in: "#f00", want: Color{R: 255, A: 255}, ok: true},
		{in: "#00FF00", want: Color{G: 255, A: 255}, ok: true},
		{in: "#0000ff80", want: Color{B: 255, A: 128}, ok: true},
		{in: "red", want: Color{R: 255, A: 255}, ok: true},
		{in: "Navy", want: Color{B: 128, A: 255}, ok: true},
		{in: "#12", ok: false},
		{in: "nocolor", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("err=%v want ok=%v", err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Fatalf("got=%v want %v", got, tt.want)
			}
		})
	}
}
