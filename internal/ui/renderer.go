package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pymon/internal/game"
	"github.com/samdwyer/pymon/internal/gamedata"
)

const (
	statusWidth    = 24 // Status panel columns, excluding the divider
	minPanelScreen = 60 // Narrower screens drop the panel
)

// EntryKind selects how a log entry is drawn.
type EntryKind int

const (
	EntryText EntryKind = iota
	EntryTitle
	EntryInput
)

// Entry is one printed block of the scrolling log.
type Entry struct {
	Kind EntryKind
	Text string
}

// View is everything one frame shows.
type View struct {
	Log    []Entry
	Status game.Status
	Label  string
	Input  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	accent tcell.Color
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, accent gamedata.RGB) *Renderer {
	return &Renderer{
		screen: screen,
		accent: tcell.NewRGBColor(int32(accent.R), int32(accent.G), int32(accent.B)),
	}
}

// Render draws the log, the status panel and the input line.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h < 3 {
		r.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Background(r.accent).Foreground(tcell.ColorBlack).Bold(true)
	r.fill(0, 0, w, titleStyle)
	r.drawText(1, 0, w-1, "Pymon", titleStyle)

	logW := w
	if w >= minPanelScreen {
		logW = w - statusWidth - 1
		r.drawStatus(logW+1, 1, statusWidth, h-2, v.Status)
		divider := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		for y := 1; y < h-1; y++ {
			r.screen.SetContent(logW, y, '│', divider)
		}
	}

	rows := h - 2
	lines := layoutLog(v.Log, logW)
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, l := range lines {
		r.drawText(0, 1+i, logW, l.Text, r.entryStyle(l.Kind))
	}

	prompt := v.Label + ": " + v.Input
	inputStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.drawText(0, h-1, w, prompt, inputStyle)
	if v.Label != "" {
		r.screen.ShowCursor(min(len([]rune(prompt)), w-1), h-1)
	}

	r.screen.Show()
}

func (r *Renderer) entryStyle(k EntryKind) tcell.Style {
	switch k {
	case EntryTitle:
		return tcell.StyleDefault.Foreground(r.accent).Bold(true)
	case EntryInput:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// drawStatus draws the status panel at (x, y).
func (r *Renderer) drawStatus(x, y, w, h int, s game.Status) {
	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	value := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	energyStyle := value.Foreground(energyColor(s.Energy, s.MaxEnergy))

	rows := []struct {
		label string
		value string
		style tcell.Style
	}{
		{"", s.Nickname, tcell.StyleDefault.Foreground(r.accent).Bold(true)},
		{"at", s.Location, value},
		{"Energy", energyBar(s.Energy, s.MaxEnergy), energyStyle},
		{"Immune", yesNo(s.Immunity), value},
		{"Moves", fmt.Sprint(s.MoveCount), value},
		{"Bench", fmt.Sprint(s.Bench), value},
	}
	for i, row := range rows {
		if i >= h {
			return
		}
		col := x + 1
		if row.label != "" {
			r.drawText(col, y+i, 7, row.label, label)
			col += 8
		}
		r.drawText(col, y+i, x+w-col, row.value, row.style)
	}

	if s.State == game.StatePendingSwitch && len(rows)+1 < h {
		warn := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		r.drawText(x+1, y+len(rows)+1, w-1, "SWITCH REQUIRED", warn)
	}
}

func (r *Renderer) drawText(x, y, maxW int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= maxW {
			return
		}
		r.screen.SetContent(x+col, y, ch, style)
		col++
	}
}

func (r *Renderer) fill(x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		r.screen.SetContent(x+i, y, ' ', style)
	}
}

// layoutLog wraps every entry to width, keeping the entry kind per line.
func layoutLog(log []Entry, width int) []Entry {
	var lines []Entry
	for _, e := range log {
		for _, l := range wrap(e.Text, width) {
			lines = append(lines, Entry{Kind: e.Kind, Text: l})
		}
	}
	return lines
}

// wrap breaks text at spaces so no line exceeds width runes. Words longer
// than width are cut.
func wrap(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := []rune{}
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			for len(w) > width {
				if len(line) > 0 {
					out = append(out, string(line))
					line = line[:0]
				}
				out = append(out, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(line) == 0:
				line = append(line, w...)
			case len(line)+1+len(w) <= width:
				line = append(line, ' ')
				line = append(line, w...)
			default:
				out = append(out, string(line))
				line = append(line[:0], w...)
			}
		}
		out = append(out, string(line))
	}
	return out
}

func energyBar(energy, maxEnergy int) string {
	if maxEnergy <= 0 {
		return fmt.Sprint(energy)
	}
	return strings.Repeat("●", energy) + strings.Repeat("○", max(maxEnergy-energy, 0)) +
		fmt.Sprintf(" %d/%d", energy, maxEnergy)
}

func energyColor(energy, maxEnergy int) tcell.Color {
	switch {
	case energy <= 0:
		return tcell.ColorRed
	case energy < maxEnergy/2+1 && energy < maxEnergy:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
