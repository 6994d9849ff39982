package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/rng"
)

// globalPackID is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no pack VM is found.
const globalPackID = "__global__"

// Manager owns one sandboxed LState per script pack and exposes hook
// dispatch.
//
// Manager is safe for concurrent CallHook after all LoadPack calls complete.
// Each pack's LState is single-threaded; the read lock serializes concurrent
// calls to the same pack while allowing different packs to run concurrently.
type Manager struct {
	mu      sync.RWMutex
	states  map[string]*lua.LState
	cancels map[string]func()
	roller  *rng.Roller
	logger  *zap.Logger

	// TypeEffectiveness backs the engine.effectiveness Lua module. Injected
	// after construction; nil means the module always reports 1.0.
	TypeEffectiveness func(moveType, primary, secondary string) float64
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty pack map.
func NewManager(roller *rng.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states:  make(map[string]*lua.LState),
		cancels: make(map[string]func()),
		roller:  roller,
		logger:  logger,
	}
}

// LoadPack creates a sandboxed VM for packID, registers all engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: packID must be non-empty; scriptDir must be a readable directory.
// Postcondition: Pack VM is registered; returns error on Lua load failure.
func (m *Manager) LoadPack(packID, scriptDir string, instLimit int) error {
	return m.loadInto(packID, scriptDir, instLimit)
}

// LoadGlobal creates the "__global__" VM for shared scripts accessible as a
// CallHook fallback from any pack.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(globalPackID, scriptDir, instLimit)
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		if oldCancel := m.cancels[key]; oldCancel != nil {
			oldCancel()
		}
		old.Close()
	}
	m.states[key] = L
	m.cancels[key] = cancel
	m.mu.Unlock()
	return nil
}

// CallHook calls the named Lua global function in packID's VM. The build
// callback constructs the call arguments inside the owning VM, so callers
// can pass tables without holding an LState of their own. If the pack has
// no VM, the __global__ VM is tried as a fallback. Returns (LNil, nil) if
// the hook is not defined or no VM exists. Lua runtime errors are logged at
// Warn level and never propagated.
//
// Precondition: build must return values created from the LState it is given.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(packID, hook string, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	L, ok := m.states[packID]
	if !ok {
		L = m.states[globalPackID]
	}
	m.mu.RUnlock()

	if L == nil {
		m.logger.Info("scripting: no VM for pack",
			zap.String("pack", packID),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	var args []lua.LValue
	if build != nil {
		args = build(L)
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("pack", packID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close tears down every loaded VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, L := range m.states {
		if cancel := m.cancels[key]; cancel != nil {
			cancel()
		}
		L.Close()
		delete(m.states, key)
		delete(m.cancels, key)
	}
}
