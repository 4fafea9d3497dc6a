package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/tilegrab/pkg/errutils"
)

// HookFileExtensions lists the supported hooks file extensions.
var HookFileExtensions = map[string]bool{
	".tengo": true,
}

// LoadHooksFromDir loads <hooks-type>.tengo files from dir into manager.
// Files with other names or extensions are ignored. A missing dir is not an error.
func LoadHooksFromDir(manager HookManager, dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errutils.Wrapf(ErrHookLoad, "failed to read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if _, ok := HookFileExtensions[ext]; !ok {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ext))
		if !hookType.Valid() {
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errutils.Wrapf(ErrHookLoad, "error reading hooks file %s: %v", hookPath, err)
		}

		if err := manager.AddHook(Hook{
			Type:    hookType,
			Content: string(content),
		}); err != nil {
			return errutils.Wrapf(err, "error adding hooks %s", hookType)
		}
	}

	return nil
}

// HookTemplate generates a template for a hooks script.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreFetch:
		return `// Pre-fetch hook
// This script runs before a tile is downloaded
// Available variables:
// - zoom, column, row: int - the tile
// - url: string - the resolved tile URL
// - path: string - zoom_levels/{z}/{x}/{y.ext}
// - skip: bool - set to true to leave the tile out
// - vars passed on the command line

// Example: only fetch the western half of zoom 3
/*
if zoom == 3 && column > 3 {
    skip = true
}
*/`

	case PostFetch:
		return `// Post-fetch hook
// This script runs after a tile has been stored
// Available variables: same as pre-fetch hook

// Example: report an error for a suspicious tile
/*
fmt := import("fmt")
err := zoom > 18 ? fmt.sprintf("unexpected zoom %d for %s", zoom, url) : ""
*/`

	default:
		return "// Unknown hooks type: " + string(hookType)
	}
}
