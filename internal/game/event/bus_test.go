package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/archadium/internal/game/event"
)

func TestBus_RegistrationOrder(t *testing.T) {
	bus := event.NewBus()
	var calls []string
	bus.Subscribe(event.PlayerAttack, func(event.Event) { calls = append(calls, "first") })
	bus.Subscribe(event.PlayerAttack, func(event.Event) { calls = append(calls, "second") })
	bus.Subscribe(event.EnemyAttack, func(event.Event) { calls = append(calls, "other") })

	bus.Publish(event.Event{Name: event.PlayerAttack, Damage: 7})
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBus_PayloadDelivered(t *testing.T) {
	bus := event.NewBus()
	var got event.Event
	bus.Subscribe(event.BattleVictory, func(ev event.Event) { got = ev })
	bus.Publish(event.Event{Name: event.BattleVictory, EnemyID: "goblin", XP: 15, Gold: 3})
	assert.Equal(t, "goblin", got.EnemyID)
	assert.Equal(t, 15, got.XP)
	assert.Equal(t, 3, got.Gold)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := event.NewBus()
	n := 0
	sub := bus.Subscribe(event.BattleStart, func(event.Event) { n++ })
	bus.Publish(event.Event{Name: event.BattleStart})
	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)
	bus.Publish(event.Event{Name: event.BattleStart})
	assert.Equal(t, 1, n)
}

func TestBus_UnsubscribeDuringDispatch(t *testing.T) {
	bus := event.NewBus()
	var calls []string
	var second event.Subscription
	bus.Subscribe(event.BattleFlee, func(event.Event) {
		calls = append(calls, "first")
		bus.Unsubscribe(second)
	})
	second = bus.Subscribe(event.BattleFlee, func(event.Event) { calls = append(calls, "second") })

	bus.Publish(event.Event{Name: event.BattleFlee})
	bus.Publish(event.Event{Name: event.BattleFlee})
	assert.Equal(t, []string{"first", "second", "first"}, calls)
}

func TestProperty_EveryHandlerCalledOnceInOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bus := event.NewBus()
		n := rapid.IntRange(0, 30).Draw(rt, "handlers")
		var order []int
		for i := 0; i < n; i++ {
			bus.Subscribe(event.EnemyAttack, func(event.Event) { order = append(order, i) })
		}
		bus.Publish(event.Event{Name: event.EnemyAttack})
		assert.Len(rt, order, n)
		for i, v := range order {
			assert.Equal(rt, i, v)
		}
	})
}
