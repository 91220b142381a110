// Package render builds the styled text shown on the game console.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SeparatorWidth is the width of separator rules and panels.
const SeparatorWidth = 60

// ANSI 16-colour palette indices.
const (
	colorRed           = lipgloss.Color("1")
	colorGreen         = lipgloss.Color("2")
	colorYellow        = lipgloss.Color("3")
	colorCyan          = lipgloss.Color("6")
	colorWhite         = lipgloss.Color("7")
	colorBrightRed     = lipgloss.Color("9")
	colorBrightGreen   = lipgloss.Color("10")
	colorBrightYellow  = lipgloss.Color("11")
	colorBrightBlue    = lipgloss.Color("12")
	colorBrightMagenta = lipgloss.Color("13")
	colorBrightCyan    = lipgloss.Color("14")
	colorBrightWhite   = lipgloss.Color("15")
)

// Renderer holds the game's theme bound to one output's colour profile.
type Renderer struct {
	lg    *lipgloss.Renderer
	caser cases.Caser

	title     lipgloss.Style
	subtitle  lipgloss.Style
	roomName  lipgloss.Style
	roomDesc  lipgloss.Style
	roomExit  lipgloss.Style
	itemName  lipgloss.Style
	itemDesc  lipgloss.Style
	enemyName lipgloss.Style
	enemyDesc lipgloss.Style
	damage    lipgloss.Style
	heal      lipgloss.Style
	gold      lipgloss.Style
	npc       lipgloss.Style
	choice    lipgloss.Style
	flavor    lipgloss.Style
	command   lipgloss.Style
	prompt    lipgloss.Style
	errorText lipgloss.Style
	success   lipgloss.Style
	info      lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	dim       lipgloss.Style
	locked    lipgloss.Style
}

// New creates a Renderer for lg. A renderer over a non-terminal writer emits
// plain text.
//
// Precondition: lg must be non-nil.
func New(lg *lipgloss.Renderer) *Renderer {
	s := lg.NewStyle
	return &Renderer{
		lg:        lg,
		caser:     cases.Title(language.English),
		title:     s().Bold(true).Foreground(colorBrightMagenta),
		subtitle:  s().Faint(true).Foreground(colorCyan),
		roomName:  s().Bold(true).Foreground(colorBrightYellow),
		roomDesc:  s().Foreground(colorWhite),
		roomExit:  s().Foreground(colorCyan),
		itemName:  s().Bold(true).Foreground(colorBrightGreen),
		itemDesc:  s().Foreground(colorGreen),
		enemyName: s().Bold(true).Foreground(colorBrightRed),
		enemyDesc: s().Foreground(colorRed),
		damage:    s().Bold(true).Foreground(colorRed),
		heal:      s().Bold(true).Foreground(colorGreen),
		gold:      s().Bold(true).Foreground(colorYellow),
		npc:       s().Bold(true).Foreground(colorBrightCyan),
		choice:    s().Foreground(colorBrightWhite),
		flavor:    s().Faint(true).Italic(true),
		command:   s().Bold(true).Foreground(colorWhite),
		prompt:    s().Bold(true).Foreground(colorBrightYellow),
		errorText: s().Bold(true).Foreground(colorRed),
		success:   s().Bold(true).Foreground(colorGreen),
		info:      s().Faint(true).Foreground(colorWhite),
		label:     s().Faint(true).Foreground(colorCyan),
		value:     s().Bold(true).Foreground(colorWhite),
		dim:       s().Faint(true),
		locked:    s().Faint(true),
	}
}

// Title styles a heading.
func (r *Renderer) Title(text string) string { return r.title.Render(text) }

// Subtitle styles secondary heading text.
func (r *Renderer) Subtitle(text string) string { return r.subtitle.Render(text) }

// Error styles a refusal or failure.
func (r *Renderer) Error(text string) string { return r.errorText.Render(text) }

// Success styles a completed action.
func (r *Renderer) Success(text string) string { return r.success.Render(text) }

// Info styles neutral feedback.
func (r *Renderer) Info(text string) string { return r.info.Render(text) }

// Flavor styles ambient description.
func (r *Renderer) Flavor(text string) string { return r.flavor.Render(text) }

// Prompt styles an input prompt.
func (r *Renderer) Prompt(text string) string { return r.prompt.Render(text) }

// NPC styles a character name.
func (r *Renderer) NPC(text string) string { return r.npc.Render(text) }

// Reply styles a command reply as success or error.
func (r *Renderer) Reply(text string, ok bool) string {
	if ok {
		return r.Success(text)
	}
	return r.Error(text)
}

// Separator returns a horizontal rule.
func (r *Renderer) Separator() string {
	return r.dim.Render(strings.Repeat("─", SeparatorWidth))
}

// Art styles each line of a picture.
func (r *Renderer) Art(lines []string, danger bool) []string {
	style := r.title
	if danger {
		style = r.errorText
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = style.Render(line)
	}
	return out
}

// TitleCase capitalises each word of s for display.
func (r *Renderer) TitleCase(s string) string {
	return r.caser.String(s)
}
