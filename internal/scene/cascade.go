package scene

// MaxCascadeDepth is the deepest sub-object level a refresh reaches.
const MaxCascadeDepth = 5

// Graph exposes the hierarchy walked by a cascade.
type Graph interface {
	SubObjects(id ID) []ID
	SubLanes(id ID) []ID
}

// Buffers exposes the color buffer state consulted by a cascade.
type Buffers interface {
	HasColors(id ID) bool
	IsCustomized(id ID) bool
}

// Cascade returns the objects that need a visual refresh after root changed:
// root itself, its sub-objects down to MaxCascadeDepth levels and its
// sub-lanes that have colors but no customization of their own. Objects
// without a color buffer are skipped but their children are still visited.
func Cascade(root ID, g Graph, b Buffers) []ID {
	seen := map[ID]struct{}{root: {}}
	out := []ID{root}

	frontier := []ID{root}
	for depth := 1; depth <= MaxCascadeDepth && len(frontier) > 0; depth++ {
		var next []ID
		for _, id := range frontier {
			for _, sub := range g.SubObjects(id) {
				if _, ok := seen[sub]; ok {
					continue
				}
				seen[sub] = struct{}{}
				next = append(next, sub)

				if b.HasColors(sub) {
					out = append(out, sub)
				}
			}
		}
		frontier = next
	}

	for _, lane := range g.SubLanes(root) {
		if _, ok := seen[lane]; ok {
			continue
		}
		seen[lane] = struct{}{}

		if b.HasColors(lane) && !b.IsCustomized(lane) {
			out = append(out, lane)
		}
	}

	return out
}
