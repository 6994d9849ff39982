package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.roll(n)                         -> integer in [1, n]
//	engine.chance(pct)                     -> boolean, true with pct% odds
//	engine.effectiveness(move, t1, t2)     -> type multiplier as a number
//	engine.log(msg)                        -> writes msg to the Go log
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	engine.RawSetString("roll", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "bound must be positive")
			return 0
		}
		L.Push(lua.LNumber(m.roller.Between(1, n)))
		return 1
	}))

	engine.RawSetString("chance", L.NewFunction(func(L *lua.LState) int {
		pct := L.CheckInt(1)
		L.Push(lua.LBool(m.roller.Percent(pct)))
		return 1
	}))

	engine.RawSetString("effectiveness", L.NewFunction(func(L *lua.LState) int {
		moveType := L.CheckString(1)
		primary := L.CheckString(2)
		secondary := L.OptString(3, "")
		eff := 1.0
		if m.TypeEffectiveness != nil {
			eff = m.TypeEffectiveness(moveType, primary, secondary)
		}
		L.Push(lua.LNumber(eff))
		return 1
	}))

	engine.RawSetString("log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Info("script log", zap.String("msg", L.CheckString(1)))
		return 0
	}))

	L.SetGlobal("engine", engine)
}
