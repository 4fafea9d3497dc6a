package hooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/tilegrab/pkg/hooks"
)

func TestTengoExecutor(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	ctx := hooks.HookContext{
		Zoom:   3,
		Column: 5,
		Row:    2,
		URL:    "https://a.tile.example/3/5/2.png",
		Path:   "zoom_levels/3/5/2.png",
		Vars: map[string]interface{}{
			"customVar": "customValue",
		},
	}

	t.Run("Execute empty script", func(t *testing.T) {
		executor.AddScript(hooks.PreFetch, `// This is a valid script that does nothing`)

		out, err := executor.Execute(hooks.PreFetch, ctx)
		require.NoError(t, err, "Execute should not return an error for valid script")
		assert.False(t, out.Skip)
	})

	t.Run("Execute script with runtime error", func(t *testing.T) {
		executor.AddScript(hooks.PostFetch, `non_existent_function()`)

		_, err := executor.Execute(hooks.PostFetch, ctx)
		require.Error(t, err, "Execute should return an error for invalid script")
		assert.ErrorIs(t, err, hooks.ErrHookExecution)
	})

	t.Run("Script sets err", func(t *testing.T) {
		executor.AddScript(hooks.PostFetch, `err := "tile rejected"`)

		_, err := executor.Execute(hooks.PostFetch, ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, hooks.ErrHookScript)
		assert.Contains(t, err.Error(), "tile rejected")
	})

	t.Run("Execute non-existent script", func(t *testing.T) {
		out, err := executor.Execute("non-existent-hooks", ctx)
		assert.NoError(t, err, "Execute should not return an error for non-existent hooks")
		assert.False(t, out.Skip)
	})

	t.Run("HasScript check", func(t *testing.T) {
		hookType := hooks.HookType("test-hooks")
		assert.False(t, executor.HasScript(hookType), "Should not have script before adding")

		executor.AddScript(hookType, "// test script")
		assert.True(t, executor.HasScript(hookType), "Should have script after adding")

		executor.RemoveScript(hookType)
		assert.False(t, executor.HasScript(hookType), "Should not have script after removal")
	})

	t.Run("Tile variables drive skip", func(t *testing.T) {
		executor.AddScript(hooks.PreFetch, `
			text := import("text")
			if zoom == 3 && column == 5 && row == 2 && text.has_prefix(path, "zoom_levels/") && customVar == "customValue" {
				skip = true
			}
		`)

		out, err := executor.Execute(hooks.PreFetch, ctx)
		require.NoError(t, err)
		assert.True(t, out.Skip)

		other := ctx
		other.Column = 6
		out, err = executor.Execute(hooks.PreFetch, other)
		require.NoError(t, err)
		assert.False(t, out.Skip)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		executor.AddScript(hooks.PreFetch, `for {}`)

		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := executor.ExecuteContext(cctx, hooks.PreFetch, ctx)
		assert.Error(t, err)
	})
}

func TestTengoExecutor_CompiledCache(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	executor.AddScript(hooks.PreFetch, `skip = column % 2 == 1`)

	for column := 0; column < 4; column++ {
		out, err := executor.Execute(hooks.PreFetch, hooks.HookContext{Zoom: 2, Column: column})
		require.NoError(t, err)
		assert.Equal(t, column%2 == 1, out.Skip, "column %d", column)
	}
	assert.Equal(t, 1, executor.CachedPrograms(), "one compile per script and variable set")

	executor.AddScript(hooks.PreFetch, `skip = column == 0`)
	out, err := executor.Execute(hooks.PreFetch, hooks.HookContext{Zoom: 2, Column: 0})
	require.NoError(t, err)
	assert.True(t, out.Skip, "replaced script is compiled afresh")
	assert.Equal(t, 2, executor.CachedPrograms())

	out, err = executor.Execute(hooks.PreFetch, hooks.HookContext{
		Zoom: 2, Column: 1, Vars: map[string]interface{}{"mode": "base"},
	})
	require.NoError(t, err)
	assert.False(t, out.Skip)
	assert.Equal(t, 3, executor.CachedPrograms(), "extra variables need their own program")
}
