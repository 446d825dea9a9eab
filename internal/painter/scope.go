package painter

// Scope controls which objects a paint action targets.
type Scope string

const (
	// ScopeSingle targets exactly the object chosen by the selection layer.
	ScopeSingle Scope = "single"
	// ScopeRadius targets every object of the filtered categories around the anchor.
	ScopeRadius Scope = "radius"
)

// Continuous returns true if the scope re-applies every tick while input is held.
func (s Scope) Continuous() bool {
	return s == ScopeRadius
}

// Valid returns true for known scopes.
func (s Scope) Valid() bool {
	return s == ScopeSingle || s == ScopeRadius
}

// Mode is the operation a tool performs.
type Mode string

const (
	// ModePaint applies the tool colors or palette choices.
	ModePaint Mode = "paint"
	// ModeReset reverts toggled channels to the baseline.
	ModeReset Mode = "reset"
	// ModePicker samples the live colors of the hovered object into the tool.
	ModePicker Mode = "picker"
)

// Mutates returns true if the mode writes colors.
func (m Mode) Mutates() bool {
	return m == ModePaint || m == ModeReset
}

// Valid returns true for known modes.
func (m Mode) Valid() bool {
	return m == ModePaint || m == ModeReset || m == ModePicker
}
