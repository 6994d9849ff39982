package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/scripting"
)

func TestModules_Roll_InRange(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "roll.lua", `
		function roll_twenty()
			return engine.roll(20)
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))

	for i := 0; i < 50; i++ {
		ret, err := mgr.CallHook("cpu", "roll_twenty", nil)
		require.NoError(t, err)
		n, ok := ret.(lua.LNumber)
		require.True(t, ok)
		assert.GreaterOrEqual(t, int(n), 1)
		assert.LessOrEqual(t, int(n), 20)
	}
}

func TestModules_Roll_RejectsNonPositiveBound(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "roll.lua", `
		function bad_roll()
			return engine.roll(0)
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))

	ret, err := mgr.CallHook("cpu", "bad_roll", nil)
	require.NoError(t, err, "Lua errors surface as warnings, not Go errors")
	assert.Equal(t, lua.LNil, ret)
	assert.NotEmpty(t, logs.FilterLevelExact(zap.WarnLevel).All())
}

func TestModules_Chance_Extremes(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "chance.lua", `
		function always() return engine.chance(100) end
		function never() return engine.chance(0) end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))

	ret, err := mgr.CallHook("cpu", "always", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LTrue, ret)

	ret, err = mgr.CallHook("cpu", "never", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LFalse, ret)
}

func TestModules_Effectiveness_UsesInjectedCallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	mgr.TypeEffectiveness = func(moveType, primary, secondary string) float64 {
		mt, err := content.ParseType(moveType)
		require.NoError(t, err)
		p, err := content.ParseType(primary)
		require.NoError(t, err)
		s := content.TypeNone
		if secondary != "" {
			s, err = content.ParseType(secondary)
			require.NoError(t, err)
		}
		return content.Effectiveness(mt, p, s)
	}
	dir := writeTempLua(t, "eff.lua", `
		function electric_vs_gyarados()
			return engine.effectiveness("Electric", "Water", "Flying")
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))

	ret, err := mgr.CallHook("cpu", "electric_vs_gyarados", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(4), ret)
}

func TestModules_Effectiveness_DefaultsToNeutral(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "eff.lua", `
		function anything()
			return engine.effectiveness("Fire", "Grass")
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))

	ret, err := mgr.CallHook("cpu", "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret, "no callback injected means neutral")
}

func TestModules_Log_WritesToGoLogger(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "log.lua", `
		function speak()
			engine.log("choosing thunderbolt")
		end
	`)
	require.NoError(t, mgr.LoadPack("cpu", dir, 0))

	_, err := mgr.CallHook("cpu", "speak", nil)
	require.NoError(t, err)

	found := false
	for _, e := range logs.All() {
		for _, f := range e.Context {
			if f.Key == "msg" && f.String == "choosing thunderbolt" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected the script message in the Go log")
}

func TestModules_Roll_DeterministicWithSeed(t *testing.T) {
	run := func() []int {
		logger := zap.NewNop()
		mgr := scripting.NewManager(rng.NewRoller(rng.NewSeededSource(99), logger), logger)
		dir := writeTempLua(t, "roll.lua", `
			function roll_six() return engine.roll(6) end
		`)
		require.NoError(t, mgr.LoadPack("cpu", dir, 0))
		defer mgr.Close()
		var out []int
		for i := 0; i < 10; i++ {
			ret, err := mgr.CallHook("cpu", "roll_six", nil)
			require.NoError(t, err)
			out = append(out, int(ret.(lua.LNumber)))
		}
		return out
	}
	assert.Equal(t, run(), run(), "same seed replays the same rolls")
}
