package cli

import "fmt"

// Default values for CLI flags and formatted output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// DefaultArchiveName is the archive written when -o is not given.
	DefaultArchiveName = "tiles"
)

// ErrIncomplete is returned by --strict runs in which some tiles produced no output.
var ErrIncomplete = fmt.Errorf("download incomplete")
