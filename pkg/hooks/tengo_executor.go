package hooks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/glorpus-work/tilegrab/internal/logger"
)

// DefaultCompiledCacheSize bounds how many compiled scripts an executor keeps.
const DefaultCompiledCacheSize = 64

// TengoExecutor handles the execution of Tengo scripts. Compiled programs are cached by
// script content and variable names; every run works on a clone.
type TengoExecutor struct {
	scripts  map[HookType]string
	mutex    sync.RWMutex
	compiled *lru.Cache[string, *tengo.Compiled]
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	c, _ := lru.New[string, *tengo.Compiled](DefaultCompiledCacheSize)
	return &TengoExecutor{
		scripts:  make(map[HookType]string),
		compiled: c,
	}
}

// Execute runs the specified hooks type with the given context.
func (e *TengoExecutor) Execute(hookType HookType, hctx HookContext) (Outcome, error) {
	return e.ExecuteContext(context.Background(), hookType, hctx)
}

// ExecuteContext is Execute with cancellation. A script can read zoom, column, row,
// url and path, set skip = true to drop the tile, or set err to report a failure.
func (e *TengoExecutor) ExecuteContext(ctx context.Context, hookType HookType, hctx HookContext) (Outcome, error) {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return Outcome{}, nil
	}

	vars := map[string]interface{}{
		"zoom":   hctx.Zoom,
		"column": hctx.Column,
		"row":    hctx.Row,
		"url":    hctx.URL,
		"path":   hctx.Path,
		"skip":   false,
	}
	for k, v := range hctx.Vars {
		vars[k] = v
	}

	program, err := e.program(hookType, script, vars)
	if err != nil {
		return Outcome{}, err
	}

	compiled := program.Clone()
	for k, v := range vars {
		if err := compiled.Set(k, v); err != nil {
			return Outcome{}, fmt.Errorf("failed to set variable '%s' in script: %w", k, err)
		}
	}
	if err := compiled.RunContext(ctx); err != nil {
		return Outcome{}, fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return Outcome{}, fmt.Errorf("%w: %w", ErrHookScript, v)
		case string:
			if v != "" {
				return Outcome{}, fmt.Errorf("%w: %s", ErrHookScript, v)
			}
		}
	}

	return Outcome{Skip: compiled.Get("skip").Bool()}, nil
}

// program returns the compiled script for the given variable names, compiling on a cache miss.
// The cached value is never run directly.
func (e *TengoExecutor) program(hookType HookType, script string, vars map[string]interface{}) (*tengo.Compiled, error) {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	key := fmt.Sprintf("%s:%016x:%s", hookType, xxhash.Sum64String(script), strings.Join(names, ","))

	if program, ok := e.compiled.Get(key); ok {
		return program, nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "text", "times", "math", "json"))
	for _, k := range names {
		if err := scriptInstance.Add(k, vars[k]); err != nil {
			return nil, fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	program, err := scriptInstance.Compile()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}
	e.compiled.Add(key, program)
	logger.Debug("Compiled hook script", logger.Fields{"type": string(hookType), "cached": e.CachedPrograms()})
	return program, nil
}

// CachedPrograms reports how many compiled scripts are held.
func (e *TengoExecutor) CachedPrograms() int {
	return e.compiled.Len()
}

// AddScript adds or updates a script for the specified hooks type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the specified hooks type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hooks type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
