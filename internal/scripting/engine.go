package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the wave balance hooks.
// Single-goroutine access only (simulation loop). Every hook must be a
// pure function of its arguments: the director relies on that for
// replay determinism.
//
// Expected globals (all optional, built-in fallbacks apply):
//
//	spawn_budget(wave) -> integer
//	health_scale(wave) -> number
//	weight_scale(wave, type_id) -> number
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all .lua files from the
// given directory. A missing directory is not an error — the caller
// runs with built-in balance.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// SpawnBudget returns the number of entities to spawn for a wave.
func (e *Engine) SpawnBudget(wave int) int {
	v, ok := e.call1("spawn_budget", lua.LNumber(wave))
	if !ok {
		return 8 + 4*(wave-1)
	}
	n := int(v)
	if n < 1 {
		n = 1
	}
	return n
}

// HealthScale returns the health multiplier applied at spawn time.
func (e *Engine) HealthScale(wave int) float64 {
	v, ok := e.call1("health_scale", lua.LNumber(wave))
	if !ok {
		return 1 + 0.15*float64(wave-1)
	}
	if v <= 0 {
		return 1
	}
	return float64(v)
}

// WeightScale returns the spawn weight multiplier for one archetype.
func (e *Engine) WeightScale(wave int, typeID string) float64 {
	v, ok := e.call1("weight_scale", lua.LNumber(wave), lua.LString(typeID))
	if !ok {
		return 1
	}
	if v < 0 {
		return 0
	}
	return float64(v)
}

// call1 invokes a global Lua function expecting one numeric return.
// Missing function or script error falls back to the built-in —
// balance scripts can never take the simulation down.
func (e *Engine) call1(name string, args ...lua.LValue) (lua.LNumber, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call failed", zap.String("fn", name), zap.Error(err))
		return 0, false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("fn", name))
		return 0, false
	}
	return n, true
}
