package scripting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/dice"
	"github.com/cory-johannsen/archadium/internal/game/event"
)

// Manager owns one sandboxed LState and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook; calls are serialized on the VM.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel context.CancelFunc
	limit  int
	subs   []event.Subscription
	bus    *event.Bus
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	Message func(text string)
	SetFlag func(name string)
	HasFlag func(name string) bool
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VM loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{roller: roller, logger: logger}
}

// Load creates a sandboxed VM, registers all engine.* modules, then executes
// every *.lua file in scriptDir in lexicographic order. A missing scriptDir
// leaves scripting disabled.
//
// Precondition: instLimit >= 0.
// Postcondition: The VM replaces any previously loaded one; returns error on
// Lua load failure, leaving the previous VM in place.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if errors.Is(err, os.ErrNotExist) {
		m.logger.Info("scripting: no script dir, scripting disabled", zap.String("dir", scriptDir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	m.closeLocked()
	m.state = L
	m.cancel = cancel
	m.limit = effectiveLimit(instLimit)
	m.mu.Unlock()

	m.logger.Info("scripts loaded", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// Loaded reports whether a VM is available.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != nil
}

// CallHook calls the named Lua global function with a fresh instruction
// budget. Returns (LNil, nil) if the hook is not defined or no VM exists.
// Lua runtime errors are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return lua.LNil, nil
	}
	return m.callLocked(hook, args...), nil
}

func (m *Manager) callLocked(hook string, args ...lua.LValue) lua.LValue {
	L := m.state
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}

	ctx, cancel := newCountingContext(m.limit)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// Attach subscribes every battle event on bus. An event named x invokes the
// Lua global on_x with an event table.
//
// Precondition: bus must be non-nil.
// Postcondition: Any earlier attachment is detached first.
func (m *Manager) Attach(bus *event.Bus) {
	m.Detach()
	subs := make([]event.Subscription, 0, len(event.BattleEvents))
	for _, name := range event.BattleEvents {
		hook := HookName(name)
		subs = append(subs, bus.Subscribe(name, func(ev event.Event) {
			m.dispatch(hook, ev)
		}))
	}
	m.mu.Lock()
	m.bus = bus
	m.subs = subs
	m.mu.Unlock()
}

// Detach removes the subscriptions made by Attach.
func (m *Manager) Detach() {
	m.mu.Lock()
	bus, subs := m.bus, m.subs
	m.bus, m.subs = nil, nil
	m.mu.Unlock()
	for _, s := range subs {
		bus.Unsubscribe(s)
	}
}

// RoomEnterHook is the Lua global called with the room ID each time the
// player walks into a room.
const RoomEnterHook = "on_enter_room"

// EnterRoom runs RoomEnterHook for roomID.
func (m *Manager) EnterRoom(roomID string) {
	m.logger.Debug("scripting: entering room", zap.String("room", roomID))
	_, _ = m.CallHook(RoomEnterHook, lua.LString(roomID))
}

// HookName returns the Lua global invoked for an event.
func HookName(name event.Name) string {
	return "on_" + string(name)
}

func (m *Manager) dispatch(hook string, ev event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return
	}
	m.logger.Debug("scripting: dispatching event", zap.String("hook", hook), zap.String("battle_id", ev.BattleID))
	m.callLocked(hook, eventTable(m.state, ev))
}

func eventTable(L *lua.LState, ev event.Event) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(ev.Name))
	t.RawSetString("battle_id", lua.LString(ev.BattleID))
	t.RawSetString("enemy_id", lua.LString(ev.EnemyID))
	t.RawSetString("enemy_name", lua.LString(ev.EnemyName))
	t.RawSetString("damage", lua.LNumber(ev.Damage))
	t.RawSetString("xp", lua.LNumber(ev.XP))
	t.RawSetString("gold", lua.LNumber(ev.Gold))
	return t
}

// Close detaches from the bus and releases the VM.
func (m *Manager) Close() {
	m.Detach()
	m.mu.Lock()
	m.closeLocked()
	m.mu.Unlock()
}

func (m *Manager) closeLocked() {
	if m.state == nil {
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.state.Close()
	m.state = nil
	m.cancel = nil
}
