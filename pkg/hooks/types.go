package hooks

// HookType represents the type of hooks.
type HookType string

// Supported hooks types.
const (
	PreFetch  HookType = "pre-fetch"
	PostFetch HookType = "post-fetch"
)

// Types lists the supported hooks types in the order they run for a tile.
var Types = []HookType{PreFetch, PostFetch}

// Valid reports whether t is a supported hooks type.
func (t HookType) Valid() bool {
	return t == PreFetch || t == PostFetch
}

// Hook represents a hooks script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	Zoom   int
	Column int
	Row    int
	URL    string
	Path   string
	Vars   map[string]interface{}
}

// Outcome is what a script asked for.
type Outcome struct {
	Skip bool
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hooks type with the given context
	Execute(hookType HookType, ctx HookContext) (Outcome, error)

	// AddHook adds a new hooks
	AddHook(hook Hook) error

	// RemoveHook removes a hooks of the specified type
	RemoveHook(hookType HookType) error

	// HasHook checks if a hooks of the specified type exists
	HasHook(hookType HookType) bool
}
