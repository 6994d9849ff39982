package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := rng.NewRoller(rng.NewSeededSource(1), logger)
	return scripting.NewManager(roller, logger), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

// args wraps plain values as a CallHook builder.
func args(vals ...lua.LValue) func(L *lua.LState) []lua.LValue {
	return func(*lua.LState) []lua.LValue { return vals }
}

func TestManager_LoadPack_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function test_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))
	ret, err := mgr.CallHook("cpu", "test_hook", args(lua.LNumber(3), lua.LNumber(4)))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_CallHook_TableArgsBuiltInOwningVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function pick(state)
			return state.moves[1]
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))
	ret, err := mgr.CallHook("cpu", "pick", func(L *lua.LState) []lua.LValue {
		moves := L.NewTable()
		moves.Append(lua.LString("tackle"))
		state := L.NewTable()
		state.RawSetString("moves", moves)
		return []lua.LValue{state}
	})
	require.NoError(t, err)
	assert.Equal(t, lua.LString("tackle"), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "empty.lua", `-- no functions`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))
	ret, err := mgr.CallHook("cpu", "nonexistent_hook", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_UnknownPack_LogsInfoReturnsNil(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret, err := mgr.CallHook("no_such_pack", "some_hook", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	found := false
	for _, e := range logs.All() {
		if e.Level == zap.InfoLevel {
			found = true
			break
		}
	}
	assert.True(t, found, "expected Info log for missing pack")
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		function bad_hook()
			error("intentional error")
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))
	ret, err := mgr.CallHook("cpu", "bad_hook", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	found := false
	for _, e := range logs.All() {
		if e.Level == zap.WarnLevel {
			found = true
			break
		}
	}
	assert.True(t, found, "expected Warn log for Lua runtime error")
}

func TestManager_LoadGlobal_CallHookFallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "global.lua", `
		function global_hook()
			return 42
		end
	`)
	require.NoError(t, mgr.LoadGlobal(dir, 0))
	// "unknownpack" has no VM; falls back to __global__.
	ret, err := mgr.CallHook("unknownpack", "global_hook", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(42), ret)
}

func TestManager_LoadPack_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir() // no .lua files
	require.NoError(t, mgr.LoadPack("emptypack", dir, 0))
	ret, err := mgr.CallHook("emptypack", "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_LoadPack_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	err := mgr.LoadPack("badpack", dir, 0)
	assert.Error(t, err)
}

func TestProperty_CallHookMissingPackNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	rapid.Check(t, func(rt *rapid.T) {
		packID := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "pack")
		hook := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "hook")
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		for i := 0; i < count; i++ {
			mgr.CallHook(packID, hook, nil) //nolint:errcheck
		}
	})
}

func TestProperty_CallHookConcurrentSamePack_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function concurrent_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.LoadPack("concpack", dir, 0))

	const goroutines = 10
	const callsEach = 5
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				ret, err := mgr.CallHook("concpack", "concurrent_hook", args(lua.LNumber(1), lua.LNumber(2)))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}
		}()
	}
	wg.Wait()
}

func TestManager_LoadPack_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`base_val = 10`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function get_val() return base_val end
	`), 0644))
	require.NoError(t, mgr.LoadPack("ordered", dir, 0))
	ret, err := mgr.CallHook("ordered", "get_val", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(10), ret)
}

func TestNewManager_PanicsOnNilRoller(t *testing.T) {
	logger := zap.NewNop()
	assert.Panics(t, func() {
		scripting.NewManager(nil, logger)
	})
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	roller := rng.NewRoller(rng.NewSeededSource(1), zap.NewNop())
	assert.Panics(t, func() {
		scripting.NewManager(roller, nil)
	})
}

func TestManager_Close_ReleasesPacks(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte(`function get_x() return x end`), 0644))
	require.NoError(t, mgr.LoadPack("closepack", dir, 0))
	mgr.Close()
	// After Close the pack is removed; CallHook returns LNil with no error.
	ret, err := mgr.CallHook("closepack", "get_x", nil)
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}
