package render

import (
	"strconv"

	"github.com/cory-johannsen/archadium/internal/game/combat"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
)

// Printer is the output side of the console.
type Printer interface {
	Println(a ...any)
	Typewriter(text string)
}

// BattlePresenter shows a battle on a Printer. It implements combat.Presenter.
type BattlePresenter struct {
	r   *Renderer
	out Printer
}

var _ combat.Presenter = (*BattlePresenter)(nil)

// NewBattlePresenter creates a BattlePresenter.
//
// Precondition: r and out must be non-nil.
func NewBattlePresenter(r *Renderer, out Printer) *BattlePresenter {
	return &BattlePresenter{r: r, out: out}
}

// Portrait prints the enemy's art, if it has any.
func (p *BattlePresenter) Portrait(b *combat.Battle) {
	for _, line := range b.Enemy.Art {
		p.out.Println(p.r.enemyName.Render(line))
	}
	p.out.Println()
}

// Status prints the combat panel.
func (p *BattlePresenter) Status(b *combat.Battle) {
	p.out.Println()
	p.out.Println(p.r.BattleStatus(
		b.Player.PlayerName, b.Player.HP, b.Player.MaxHP,
		b.Enemy.Name, b.Enemy.HP, b.Enemy.MaxHP,
		b.Enemy.HealthDescription(),
	))
}

// Actions prints the numbered action menu.
func (p *BattlePresenter) Actions() {
	for i, label := range []string{"Attack", "Defend", "Use Item", "Flee"} {
		p.out.Println(p.r.choice.Render(strconv.Itoa(i+1)+".") + " " + label)
	}
}

// Items prints the consumable menu with a cancel entry.
func (p *BattlePresenter) Items(options []*inventory.ItemDef) {
	p.out.Println(p.r.Info("Consumables:"))
	for i, def := range options {
		p.out.Println("  " + p.r.choice.Render(strconv.Itoa(i+1)+".") + " " + def.Name)
	}
	p.out.Println("  " + p.r.choice.Render("0.") + " Cancel")
}

// Narrate prints messages styled by tone. Announcements are typed out and
// framed by a separator.
func (p *BattlePresenter) Narrate(msgs ...combat.Message) {
	for _, m := range msgs {
		switch m.Tone {
		case combat.ToneAnnounce:
			p.out.Println()
			p.out.Println(p.r.Separator())
			p.out.Typewriter(p.r.enemyName.Render(m.Text))
		case combat.ToneDamage:
			p.out.Println(p.r.damage.Render(m.Text))
		case combat.ToneHeal:
			p.out.Println(p.r.heal.Render(m.Text))
		case combat.ToneError:
			p.out.Println(p.r.Error(m.Text))
		case combat.ToneSuccess:
			p.out.Println(p.r.Success(m.Text))
		case combat.ToneReward:
			p.out.Println(p.r.gold.Render(m.Text))
		default:
			p.out.Println(p.r.Info(m.Text))
		}
	}
}
