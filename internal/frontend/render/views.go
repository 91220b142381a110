package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cory-johannsen/archadium/internal/game/command"
)

// HealthBarWidth is the default number of cells in a health bar.
const HealthBarWidth = 20

// HealthBar renders "label: ██████░░░░ current/maximum". The bar is green
// above 60%, yellow above 30%, and red otherwise.
//
// Postcondition: The bar has exactly width cells; ratio is clamped to [0,1].
func (r *Renderer) HealthBar(label string, current, maximum, width int) string {
	ratio := 1.0
	if maximum > 0 {
		ratio = max(0, min(1, float64(current)/float64(maximum)))
	}
	filled := int(ratio * float64(width))

	color := colorRed
	switch {
	case ratio > 0.6:
		color = colorGreen
	case ratio > 0.3:
		color = colorYellow
	}
	bar := r.lg.NewStyle().Bold(true).Foreground(color).Render(strings.Repeat("█", filled)) +
		r.dim.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s %s", r.label.Render(label+":"), bar, r.value.Render(fmt.Sprintf("%d/%d", current, maximum)))
}

// HUD is the player summary shown above a room.
type HUD struct {
	Name   string
	Level  int
	HP     int
	MaxHP  int
	Gold   int
	Weapon string
	Room   string
}

// HUD renders the status panel. The room name heads the panel, or
// "Archadium" outside a room.
func (r *Renderer) HUD(h HUD) string {
	heading := h.Room
	if heading == "" {
		heading = "Archadium"
	}
	lines := []string{
		r.roomName.Render(heading),
		fmt.Sprintf("%s   %s   %s %s",
			r.label.Render("Name:"), r.value.Render(h.Name),
			r.label.Render("Level:"), r.value.Render(strconv.Itoa(h.Level))),
		r.HealthBar("HP", h.HP, h.MaxHP, HealthBarWidth),
		fmt.Sprintf("%s    %s %s",
			r.gold.Render(fmt.Sprintf("Gold: %d", h.Gold)),
			r.label.Render("Weapon:"), r.itemName.Render(h.Weapon)),
	}
	return r.panel(colorBrightBlue).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// BattleStatus renders both combatants' health inside a combat panel.
func (r *Renderer) BattleStatus(player string, hp, maxHP int, enemy string, enemyHP, enemyMaxHP int, condition string) string {
	lines := []string{
		r.enemyName.Render("Combat"),
		r.HealthBar(enemy, enemyHP, enemyMaxHP, HealthBarWidth),
	}
	if condition != "" {
		lines = append(lines, r.Info("It looks "+condition+"."))
	}
	lines = append(lines, "", r.HealthBar(player, hp, maxHP, HealthBarWidth))
	return r.panel(colorBrightRed).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) panel(border lipgloss.Color) lipgloss.Style {
	return r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// ExitView is one exit as the player sees it.
type ExitView struct {
	Direction   string
	Description string
	Locked      bool
}

// RoomView is everything a look shows. Names are already resolved for display.
type RoomView struct {
	Description string
	Ambient     string
	Items       []string
	Enemies     []string
	NPCs        []string
	Exits       []ExitView
}

// Room renders a room description with its contents and exits.
func (r *Renderer) Room(v RoomView) string {
	var b strings.Builder
	b.WriteString(r.roomDesc.Render(v.Description))
	b.WriteString("\n")
	if v.Ambient != "" {
		b.WriteString(r.flavor.Render(v.Ambient))
		b.WriteString("\n")
	}

	if len(v.Items) > 0 {
		b.WriteString("\n")
		for _, name := range v.Items {
			fmt.Fprintf(&b, "  %s is here.\n", r.itemName.Render(name))
		}
	}
	if len(v.Enemies) > 0 {
		b.WriteString("\n")
		for _, name := range v.Enemies {
			fmt.Fprintf(&b, "  %s lurks here.\n", r.enemyName.Render(name))
		}
	}
	if len(v.NPCs) > 0 {
		b.WriteString("\n")
		for _, name := range v.NPCs {
			fmt.Fprintf(&b, "  %s is here.\n", r.npc.Render(name))
		}
	}

	if len(v.Exits) > 0 {
		exits := make([]string, 0, len(v.Exits))
		for _, e := range v.Exits {
			s := r.roomExit.Render(r.TitleCase(e.Direction))
			if e.Description != "" {
				s += " - " + e.Description
			}
			if e.Locked {
				s += " " + r.locked.Render("(locked)")
			}
			exits = append(exits, s)
		}
		b.WriteString("\n")
		b.WriteString(r.label.Render("Exits:"))
		b.WriteString(" ")
		b.WriteString(strings.Join(exits, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// InventoryRow is one stack in the inventory table.
type InventoryRow struct {
	Name        string
	Type        string
	Quantity    int
	Description string
	Equipped    bool
}

// Inventory renders the carried items as a table. Equipped stacks are
// marked "[E]".
func (r *Renderer) Inventory(rows []InventoryRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.lg.NewStyle().Foreground(colorBrightBlue)).
		BorderRow(true).
		Headers("Item", "Type", "Qty", "Description").
		StyleFunc(func(row, col int) lipgloss.Style {
			base := r.lg.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true)
			}
			switch col {
			case 0:
				return base.Inherit(r.itemName)
			case 1:
				return base.Inherit(r.info)
			case 2:
				return base.Inherit(r.value).Align(lipgloss.Right)
			default:
				return base.Inherit(r.itemDesc)
			}
		})

	if len(rows) == 0 {
		t.Row("(empty)", "-", "-", "You carry nothing.")
	}
	for _, row := range rows {
		name := row.Name
		if row.Equipped {
			name += " [E]"
		}
		t.Row(name, r.TitleCase(row.Type), strconv.Itoa(row.Quantity), row.Description)
	}
	return r.title.Render("Inventory") + "\n" + t.Render()
}

// Stats is the character sheet shown by the stats command.
type Stats struct {
	Name      string
	Level     int
	XP        int
	XPToLevel int
	HP        int
	MaxHP     int
	Attack    int
	Defense   int
	Gold      int
	Weapon    string
	Armor     string
}

// Stats renders the character sheet between separators.
func (r *Renderer) Stats(s Stats) string {
	row := func(label, value string) string {
		return r.label.Width(9).Render(label) + r.value.Render(value)
	}
	lines := []string{
		r.Separator(),
		row("Name:", s.Name),
		row("Level:", strconv.Itoa(s.Level)),
		row("XP:", fmt.Sprintf("%d/%d", s.XP, s.XPToLevel)),
		row("HP:", fmt.Sprintf("%d/%d", s.HP, s.MaxHP)),
		row("Attack:", strconv.Itoa(s.Attack)),
		row("Defense:", strconv.Itoa(s.Defense)),
		r.gold.Render(fmt.Sprintf("Gold: %d", s.Gold)),
		row("Weapon:", s.Weapon),
		row("Armor:", s.Armor),
		r.Separator(),
	}
	return strings.Join(lines, "\n")
}

// Help lists commands with their usage under a heading per category.
func (r *Renderer) Help(cmds []*command.Command) string {
	width := 0
	for _, c := range cmds {
		if n := len(c.Name) + len(c.Usage) + 1; n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString(r.title.Render("Commands"))
	b.WriteString("\n")
	for _, g := range command.CommandsByCategory(cmds) {
		b.WriteString(r.subtitle.Render(r.caser.String(g.Category)))
		b.WriteString("\n")
		for _, c := range g.Commands {
			plain := c.Name
			styled := r.command.Render(c.Name)
			if c.Usage != "" {
				plain += " " + c.Usage
				styled += " " + r.info.Render(c.Usage)
			}
			pad := strings.Repeat(" ", width-len(plain))
			fmt.Fprintf(&b, "  %s%s - %s\n", styled, pad, c.Help)
		}
	}
	return b.String()
}

// Menu renders a numbered list of choices under a prompt.
func (r *Renderer) Menu(prompt string, choices []string) string {
	var b strings.Builder
	b.WriteString(r.npc.Render(prompt))
	b.WriteString("\n")
	for i, c := range choices {
		fmt.Fprintf(&b, "  %s %s\n", r.choice.Render(strconv.Itoa(i+1)+"."), c)
	}
	return b.String()
}
