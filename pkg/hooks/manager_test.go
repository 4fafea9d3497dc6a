package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/tilegrab/pkg/hooks"
	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

func TestNewHookManager(t *testing.T) {
	manager := hooks.NewHookManager(nil)
	assert.NotNil(t, manager, "NewHookManager should return a non-nil manager")
	assert.True(t, manager.Empty())
}

func TestAddHook(t *testing.T) {
	manager := hooks.NewHookManager(nil)

	tests := []struct {
		name          string
		hook          hooks.Hook
		expectedError string
	}{
		{
			name: "valid hooks",
			hook: hooks.Hook{Type: hooks.PreFetch, Content: `// nothing`},
		},
		{
			name:          "empty hooks type",
			hook:          hooks.Hook{Type: "", Content: "test content"},
			expectedError: hooks.ErrHookTypeEmpty.Error(),
		},
		{
			name:          "unsupported hooks type",
			hook:          hooks.Hook{Type: "pre-install", Content: "test content"},
			expectedError: "unsupported hooks type: pre-install",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := manager.AddHook(testCase.hook)
			if testCase.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", testCase.expectedError)
				}
				if !strings.Contains(err.Error(), testCase.expectedError) {
					t.Fatalf("expected error to contain %q, got %v", testCase.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	assert.True(t, manager.HasHook(hooks.PreFetch))
	assert.False(t, manager.Empty())

	require.NoError(t, manager.RemoveHook(hooks.PreFetch))
	assert.False(t, manager.HasHook(hooks.PreFetch), "Should not have hooks after removal")
	assert.ErrorIs(t, manager.RemoveHook(""), hooks.ErrHookTypeEmpty)
}

func TestManagerAsScripts(t *testing.T) {
	manager := hooks.NewHookManager(map[string]interface{}{"maxColumn": 0})
	require.NoError(t, manager.AddHook(hooks.Hook{
		Type:    hooks.PreFetch,
		Content: `skip = column > maxColumn`,
	}))
	require.NoError(t, manager.AddHook(hooks.Hook{
		Type:    hooks.PostFetch,
		Content: `err := url == "" ? "missing url" : ""`,
	}))

	keep := tiles.Task{Tile: tiles.ID{Zoom: 1, Column: 0, Row: 1}, URL: "https://t/1/0/1.png", RowFile: "1.png"}
	drop := tiles.Task{Tile: tiles.ID{Zoom: 1, Column: 1, Row: 1}, URL: "https://t/1/1/1.png", RowFile: "1.png"}

	skip, err := manager.BeforeFetch(context.Background(), keep)
	require.NoError(t, err)
	assert.False(t, skip)

	skip, err = manager.BeforeFetch(context.Background(), drop)
	require.NoError(t, err)
	assert.True(t, skip)

	assert.NoError(t, manager.AfterStore(context.Background(), keep))
	assert.Error(t, manager.AfterStore(context.Background(), tiles.Task{RowFile: "0.png"}))
}

func TestLoadHooksFromDir(t *testing.T) {
	hooksDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "pre-fetch.tengo"), []byte(`skip = zoom > 4`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "post-fetch.tengo"), []byte(`// noop`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "pre-install.tengo"), []byte(`// ignored`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "notes.txt"), []byte(`ignored`), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(hooksDir, "sub"), 0o755))

	manager := hooks.NewHookManager(nil)
	require.NoError(t, hooks.LoadHooksFromDir(manager, hooksDir))

	assert.True(t, manager.HasHook(hooks.PreFetch))
	assert.True(t, manager.HasHook(hooks.PostFetch))

	out, err := manager.Execute(hooks.PreFetch, hooks.HookContext{Zoom: 5})
	require.NoError(t, err)
	assert.True(t, out.Skip)
}

func TestLoadHooksFromDir_Missing(t *testing.T) {
	manager := hooks.NewHookManager(nil)
	assert.NoError(t, hooks.LoadHooksFromDir(manager, filepath.Join(t.TempDir(), "nope")))
	assert.NoError(t, hooks.LoadHooksFromDir(manager, ""))
	assert.True(t, manager.Empty())
}

func TestHookTemplate(t *testing.T) {
	for _, hookType := range hooks.Types {
		tmpl := hooks.HookTemplate(hookType)
		assert.True(t, strings.HasPrefix(tmpl, "//"), "template should be a comment block")

		executor := hooks.NewTengoExecutor()
		executor.AddScript(hookType, tmpl)
		_, err := executor.Execute(hookType, hooks.HookContext{})
		assert.NoError(t, err, "template for %s should compile", hookType)
	}
	assert.Contains(t, hooks.HookTemplate("other"), "Unknown hooks type")
}
