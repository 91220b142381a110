// Package event provides a synchronous publish/subscribe bus for battle
// lifecycle notifications.
package event

import (
	"sync"
)

// Name identifies an event type.
type Name string

// Battle lifecycle events.
const (
	BattleStart   Name = "battle_start"
	PlayerAttack  Name = "player_attack"
	EnemyAttack   Name = "enemy_attack"
	BattleFlee    Name = "battle_flee"
	BattleVictory Name = "battle_victory"
	BattleDefeat  Name = "battle_defeat"
)

// BattleEvents lists every battle event name in lifecycle order.
var BattleEvents = []Name{BattleStart, PlayerAttack, EnemyAttack, BattleFlee, BattleVictory, BattleDefeat}

// Event is a single notification. Fields not meaningful for a given Name are zero.
type Event struct {
	Name      Name
	BattleID  string
	EnemyID   string
	EnemyName string
	Damage    int
	XP        int
	Gold      int
}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies one registered handler for Unsubscribe.
type Subscription struct {
	name Name
	id   uint64
}

type entry struct {
	id uint64
	fn Handler
}

// Bus dispatches events to handlers keyed by event name.
//
// Handlers run synchronously on the publishing goroutine in registration order.
// A handler may subscribe or unsubscribe during dispatch; the change applies
// from the next Publish.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[Name][]entry
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]entry)}
}

// Subscribe registers fn for events named name.
//
// Precondition: fn must be non-nil.
// Postcondition: Returns a Subscription accepted by Unsubscribe.
func (b *Bus) Subscribe(name Name, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[name] = append(b.handlers[name], entry{id: b.nextID, fn: fn})
	return Subscription{name: name, id: b.nextID}
}

// Unsubscribe removes a handler. Unknown or already removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[sub.name]
	for i, e := range list {
		if e.id == sub.id {
			b.handlers[sub.name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every handler subscribed to ev.Name.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	list := append([]entry(nil), b.handlers[ev.Name]...)
	b.mu.Unlock()
	for _, e := range list {
		e.fn(ev)
	}
}
