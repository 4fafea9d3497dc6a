package hooks

import (
	"context"
	"sync"

	"github.com/glorpus-work/tilegrab/pkg/download"
	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

// DefaultHookManager is the default implementation of HookManager.
type DefaultHookManager struct {
	executor *TengoExecutor
	vars     map[string]interface{}
	mutex    sync.RWMutex
}

var (
	_ download.Scripts = (*DefaultHookManager)(nil)
	_ HookManager      = (*DefaultHookManager)(nil)
)

// NewHookManager creates a new hooks manager. vars are passed to every script.
func NewHookManager(vars map[string]interface{}) *DefaultHookManager {
	return &DefaultHookManager{
		executor: NewTengoExecutor(),
		vars:     vars,
	}
}

// Execute runs the specified hooks type with the given context.
func (m *DefaultHookManager) Execute(hookType HookType, ctx HookContext) (Outcome, error) {
	return m.execute(context.Background(), hookType, ctx)
}

func (m *DefaultHookManager) execute(ctx context.Context, hookType HookType, hctx HookContext) (Outcome, error) {
	if !m.HasHook(hookType) {
		return Outcome{}, nil
	}

	merged := make(map[string]interface{}, len(m.vars)+len(hctx.Vars))
	for k, v := range m.vars {
		merged[k] = v
	}
	for k, v := range hctx.Vars {
		merged[k] = v
	}
	hctx.Vars = merged

	return m.executor.ExecuteContext(ctx, hookType, hctx)
}

// AddHook adds a new hooks.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !hook.Type.Valid() {
		return ErrUnsupportedHookType(hook.Type)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook removes a hooks of the specified type.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hooks of the specified type exists.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.executor.HasScript(hookType)
}

// Empty reports whether no hooks are registered.
func (m *DefaultHookManager) Empty() bool {
	for _, t := range Types {
		if m.HasHook(t) {
			return false
		}
	}
	return true
}

// BeforeFetch runs the pre-fetch hooks for task.
func (m *DefaultHookManager) BeforeFetch(ctx context.Context, task tiles.Task) (bool, error) {
	out, err := m.execute(ctx, PreFetch, contextFor(task))
	if err != nil {
		return false, err
	}
	return out.Skip, nil
}

// AfterStore runs the post-fetch hooks for task.
func (m *DefaultHookManager) AfterStore(ctx context.Context, task tiles.Task) error {
	_, err := m.execute(ctx, PostFetch, contextFor(task))
	return err
}

func contextFor(task tiles.Task) HookContext {
	return HookContext{
		Zoom:   task.Zoom(),
		Column: task.Column(),
		Row:    task.Tile.Row,
		URL:    task.URL,
		Path:   task.Path(),
	}
}
