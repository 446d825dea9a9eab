package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yenyang/Recolor-sub000/internal/colorstate"
	"github.com/yenyang/Recolor-sub000/internal/painter"
	"github.com/yenyang/Recolor-sub000/internal/scene"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

// splitChannel splits "ch=value".
func splitChannel(s string) (int, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("expected CHANNEL=VALUE: %q", s)
	}

	ch, err := strconv.Atoi(strings.TrimSpace(k))
	if err != nil || !swatch.ValidChannel(ch) {
		return 0, "", fmt.Errorf("bad channel in %q", s)
	}

	return ch, strings.TrimSpace(v), nil
}

// parseColors applies "ch=color" items on top of set.
func parseColors(set colorstate.ColorSet, items []string) (colorstate.ColorSet, error) {
	for _, item := range items {
		ch, v, err := splitChannel(item)
		if err != nil {
			return set, err
		}

		c, err := swatch.ParseColor(v)
		if err != nil {
			return set, fmt.Errorf("%q: %w", item, err)
		}
		set[ch] = c
	}

	return set, nil
}

// parseToggles parses a channel list such as "02".
func parseToggles(s string) (colorstate.Mask, error) {
	var m colorstate.Mask
	for _, r := range strings.TrimSpace(s) {
		ch := int(r - '0')
		if !swatch.ValidChannel(ch) {
			return m, fmt.Errorf("bad channel %q in %q", r, s)
		}
		m[ch] = true
	}

	return m, nil
}

// parseAnchor parses "x,z" or "x,y,z".
func parseAnchor(s string) (scene.Vec3, error) {
	parts := strings.Split(s, ",")
	vals := make([]float32, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return scene.Vec3{}, fmt.Errorf("bad anchor %q: %w", s, err)
		}
		vals = append(vals, float32(f))
	}

	switch len(vals) {
	case 2:
		return scene.Vec3{X: vals[0], Z: vals[1]}, nil
	case 3:
		return scene.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	default:
		return scene.Vec3{}, fmt.Errorf("bad anchor %q: want x,z or x,y,z", s)
	}
}

// parseCategories builds a mask from names; empty means every category.
func parseCategories(names []string) (scene.CategoryMask, error) {
	if len(names) == 0 {
		return scene.AllCategories, nil
	}

	cats := make([]scene.Category, 0, len(names))
	for _, n := range names {
		c, err := scene.ParseCategory(n)
		if err != nil {
			return 0, err
		}
		cats = append(cats, c)
	}

	return scene.MaskOf(cats...), nil
}

// printPaintStats prints the batch statistics.
func printPaintStats(res painter.Result, outPath string) {
	fmt.Printf("wrote %s\n", outPath)
	fmt.Printf("targets: %d\n", res.Targets)
	fmt.Printf("mutated: %d\n", res.Mutated)
	fmt.Printf("refreshed: %d\n", res.Marked)
	if res.Skipped > 0 {
		fmt.Printf("skipped: %d\n", res.Skipped)
	}
}

// formatOf picks yaml or json from a file extension.
func formatOf(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return fallback
	}
}
