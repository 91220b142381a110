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
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/archadium/internal/game/dice"
	"github.com/cory-johannsen/archadium/internal/game/event"
	"github.com/cory-johannsen/archadium/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewFixedSource(0.25), logger)
	mgr := scripting.NewManager(roller, logger)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func hasLevel(logs *observer.ObservedLogs, level zapcore.Level) bool {
	for _, e := range logs.All() {
		if e.Level == level {
			return true
		}
	}
	return false
}

func TestManager_Load_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function test_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	assert.True(t, mgr.Loaded())
	ret, err := mgr.CallHook("test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "empty.lua", `-- no functions`)
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_NotLoaded_ReturnsNil(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.False(t, mgr.Loaded())
	ret, err := mgr.CallHook("some_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_Load_MissingDir_DisablesScripting(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.Load(filepath.Join(t.TempDir(), "absent"), 0))
	assert.False(t, mgr.Loaded())
	assert.True(t, hasLevel(logs, zapcore.InfoLevel))
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		function bad_hook()
			error("intentional error")
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("bad_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zapcore.WarnLevel), "expected Warn log for Lua runtime error")
}

func TestManager_CallHook_BudgetIsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "loop.lua", `
		function spin(n)
			local s = 0
			for i = 1, n do s = s + i end
			return s
		end
	`)
	require.NoError(t, mgr.Load(dir, 500))
	for i := 0; i < 20; i++ {
		ret, err := mgr.CallHook("spin", lua.LNumber(10))
		require.NoError(t, err)
		assert.Equal(t, lua.LNumber(55), ret, "call %d", i)
	}
	ret, err := mgr.CallHook("spin", lua.LNumber(100000))
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret, "runaway call is cut off")
}

func TestManager_Load_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(t.TempDir(), 0))
	ret, err := mgr.CallHook("anything")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_Load_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	err := mgr.Load(dir, 0)
	assert.Error(t, err)
	assert.False(t, mgr.Loaded())
}

func TestManager_Load_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`base_val = 10`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function get_val() return base_val end
	`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0644))
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("get_val")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(10), ret)
}

func TestManager_Attach_DispatchesBattleEvents(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "battle.lua", `
		seen = {}
		function on_battle_start(ev)
			table.insert(seen, "start:" .. ev.enemy_id)
		end
		function on_player_attack(ev)
			table.insert(seen, "hit:" .. ev.damage)
		end
		function on_battle_victory(ev)
			table.insert(seen, "win:" .. ev.enemy_name .. ":" .. ev.xp .. ":" .. ev.gold)
		end
		function summary()
			return table.concat(seen, ",")
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	bus := event.NewBus()
	mgr.Attach(bus)

	bus.Publish(event.Event{Name: event.BattleStart, EnemyID: "goblin", EnemyName: "Goblin"})
	bus.Publish(event.Event{Name: event.PlayerAttack, EnemyID: "goblin", Damage: 8})
	bus.Publish(event.Event{Name: event.EnemyAttack, EnemyID: "goblin", Damage: 3})
	bus.Publish(event.Event{Name: event.BattleVictory, EnemyID: "goblin", EnemyName: "Goblin", XP: 25, Gold: 10})

	ret, err := mgr.CallHook("summary")
	require.NoError(t, err)
	assert.Equal(t, lua.LString("start:goblin,hit:8,win:Goblin:25:10"), ret)
}

func TestManager_Detach_StopsDispatch(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "count.lua", `
		n = 0
		function on_battle_start(ev) n = n + 1 end
		function count() return n end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	bus := event.NewBus()
	mgr.Attach(bus)
	bus.Publish(event.Event{Name: event.BattleStart})
	mgr.Detach()
	bus.Publish(event.Event{Name: event.BattleStart})

	ret, err := mgr.CallHook("count")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret)
}

func TestHookName(t *testing.T) {
	assert.Equal(t, "on_battle_defeat", scripting.HookName(event.BattleDefeat))
}

func TestProperty_CallHookUnknownNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "x.lua", `x = 1`), 0))
	rapid.Check(t, func(rt *rapid.T) {
		hook := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "hook")
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		for i := 0; i < count; i++ {
			mgr.CallHook(hook) //nolint:errcheck
		}
	})
}

func TestProperty_CallHookConcurrent_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function concurrent_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	const goroutines = 10
	const callsEach = 5
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				ret, err := mgr.CallHook("concurrent_hook", lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}
		}()
	}
	wg.Wait()
}

func TestNewManager_PanicsOnNilRoller(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, zap.NewNop())
	})
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop())
	assert.Panics(t, func() {
		scripting.NewManager(roller, nil)
	})
}

func TestManager_Close_ReleasesVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "init.lua", `function get_x() return 1 end`), 0))
	mgr.Close()
	ret, err := mgr.CallHook("get_x")
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_EnterRoom_PassesRoomID(t *testing.T) {
	mgr, _ := newTestManager(t)
	var got []string
	mgr.SetFlag = func(name string) { got = append(got, name) }
	require.NoError(t, mgr.Load(writeTempLua(t, "rooms.lua", `
		function on_enter_room(room_id)
			engine.set_flag(room_id)
		end
	`), 0))

	mgr.EnterRoom("wolf_den")
	mgr.EnterRoom("old_cellar")
	assert.Equal(t, []string{"wolf_den", "old_cellar"}, got)
}

func TestManager_EnterRoom_WithoutHookIsQuiet(t *testing.T) {
	mgr, logs := newTestManager(t)
	mgr.EnterRoom("wolf_den")
	require.NoError(t, mgr.Load(writeTempLua(t, "none.lua", `-- nothing`), 0))
	mgr.EnterRoom("wolf_den")
	assert.False(t, hasLevel(logs, zapcore.WarnLevel))
}
