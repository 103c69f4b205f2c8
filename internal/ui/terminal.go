package ui

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pymon/internal/game"
	"github.com/samdwyer/pymon/internal/gamedata"
)

// maxLogEntries bounds the scrollback kept in memory.
const maxLogEntries = 500

// Terminal is the full-screen console.
type Terminal struct {
	screen   *Screen
	renderer *Renderer
	view     View
}

var _ game.Console = (*Terminal)(nil)

// NewTerminal opens the terminal screen. Close must be called to restore the
// terminal.
func NewTerminal(accent gamedata.RGB) (*Terminal, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen, accent), nil
}

func newTerminal(screen *Screen, accent gamedata.RGB) *Terminal {
	return &Terminal{
		screen:   screen,
		renderer: NewRenderer(screen, accent),
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Close()
}

// Title implements game.Console.
func (t *Terminal) Title(text string) {
	t.append(Entry{Kind: EntryTitle, Text: text})
}

// Print implements game.Console.
func (t *Terminal) Print(text string) {
	t.append(Entry{Kind: EntryText, Text: text})
}

// Status implements game.Console.
func (t *Terminal) Status(s game.Status) {
	t.view.Status = s
	t.render()
}

// Prompt implements game.Console. Escape, Ctrl-C and Ctrl-D end the session.
func (t *Terminal) Prompt(ctx context.Context, label string) (string, error) {
	t.view.Label = label
	t.view.Input = ""
	defer func() {
		t.view.Label = ""
		t.view.Input = ""
	}()

	input := []rune{}
	for {
		t.view.Input = string(input)
		t.render()

		if err := ctx.Err(); err != nil {
			return "", err
		}
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return "", io.EOF
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				line := string(input)
				t.append(Entry{Kind: EntryInput, Text: label + ": " + line})
				return line, nil
			case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
				return "", io.EOF
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyCtrlU:
				input = input[:0]
			case tcell.KeyRune:
				input = append(input, ev.Rune())
			}
		}
	}
}

// Finish shows a closing notice and waits for a key so the final messages
// stay readable.
func (t *Terminal) Finish() {
	t.view.Label = "Press any key to exit"
	t.render()
	for {
		switch t.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			t.screen.Sync()
			t.render()
		}
	}
}

func (t *Terminal) append(e Entry) {
	t.view.Log = append(t.view.Log, e)
	if n := len(t.view.Log); n > maxLogEntries {
		t.view.Log = append([]Entry(nil), t.view.Log[n-maxLogEntries:]...)
	}
	t.render()
}

func (t *Terminal) render() {
	t.renderer.Render(t.view)
}
