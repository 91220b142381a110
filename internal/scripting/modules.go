package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L with log, dice, message,
// set_flag, and has_flag.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	logTbl := L.NewTable()
	for level, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		logFn := fn
		L.SetField(logTbl, level, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)

	diceTbl := L.NewTable()
	L.SetField(diceTbl, "chance", L.NewFunction(func(L *lua.LState) int {
		p := float64(L.CheckNumber(1))
		label := L.OptString(2, "script")
		L.Push(lua.LBool(m.roller.Check(label, p).Success))
		return 1
	}))
	L.SetField(diceTbl, "roll", L.NewFunction(func(L *lua.LState) int {
		sides := L.CheckInt(1)
		if sides < 1 {
			L.ArgError(1, "sides must be at least 1")
			return 0
		}
		L.Push(lua.LNumber(m.roller.Roll(L.OptString(2, "script"), sides)))
		return 1
	}))
	L.SetField(engine, "dice", diceTbl)

	L.SetField(engine, "message", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if m.Message != nil {
			m.Message(text)
		}
		return 0
	}))
	L.SetField(engine, "set_flag", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if m.SetFlag != nil {
			m.SetFlag(name)
		}
		return 0
	}))
	L.SetField(engine, "has_flag", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(lua.LBool(m.HasFlag != nil && m.HasFlag(name)))
		return 1
	}))

	L.SetGlobal("engine", engine)
}
