package hooks

import (
	"fmt"

	"github.com/glorpus-work/tilegrab/pkg/errutils"
)

// Common hooks errors.
var (
	// ErrHookTypeEmpty is returned when a hooks type is empty.
	ErrHookTypeEmpty = fmt.Errorf("hooks type cannot be empty")

	// ErrHookExecution is returned when there's an error executing a hooks.
	ErrHookExecution = fmt.Errorf("error executing hooks")

	// ErrHookScript is returned when a hooks script sets err.
	ErrHookScript = fmt.Errorf("hooks script error")

	// ErrHookLoad is returned when there's an error loading a hooks.
	ErrHookLoad = fmt.Errorf("failed to load hooks")
)

// ErrUnsupportedHookType is returned when a hooks type other than pre-fetch or post-fetch is used.
func ErrUnsupportedHookType(hookType HookType) error {
	return errutils.Wrapf(ErrHookExecution, "unsupported hooks type: %s", hookType)
}
