package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pymon/internal/game"
	"github.com/samdwyer/pymon/internal/gamedata"
)

func TestStreamPrompt(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader("1\r\n\nlast"), &out, gamedata.DefaultAccent)
	ctx := context.Background()

	want := []string{"1", "", "last"}
	for i, w := range want {
		got, err := s.Prompt(ctx, "Choice")
		if err != nil {
			t.Fatalf("prompt %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("prompt %d = %q, want %q", i, got, w)
		}
	}
	if _, err := s.Prompt(ctx, "Choice"); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after input ends, got %v", err)
	}
	if !strings.Contains(out.String(), "Choice:") {
		t.Errorf("prompt label not written: %q", out.String())
	}
}

func TestStreamPromptCancelled(t *testing.T) {
	s := NewStream(strings.NewReader("1\n"), io.Discard, gamedata.DefaultAccent)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Prompt(ctx, "Choice"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStreamPrint(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader(""), &out, gamedata.DefaultAccent)
	s.Title("Welcome")
	s.Print("line one\nline two")
	s.Status(game.Status{Nickname: "Kimimon", Energy: 2})

	got := out.String()
	for _, want := range []string{"Welcome", "line one\nline two\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if s.LastStatus().Nickname != "Kimimon" {
		t.Errorf("status not recorded: %+v", s.LastStatus())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "a short line", 20, []string{"a short line"}},
		{"breaks at space", "one two three", 7, []string{"one two", "three"}},
		{"keeps newlines", "a\nb", 10, []string{"a", "b"}},
		{"cuts long words", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"empty", "", 5, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestEnergyBar(t *testing.T) {
	if got := energyBar(2, 3); got != "●●○ 2/3" {
		t.Errorf("energyBar(2, 3) = %q", got)
	}
	if energyColor(0, 3) != tcell.ColorRed {
		t.Error("empty energy should be red")
	}
	if energyColor(3, 3) != tcell.ColorGreen {
		t.Error("full energy should be green")
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := newScreen(sim)
	if err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	sim.SetSize(80, 24)
	term := newTerminal(screen, gamedata.RGB{R: 0xFF, G: 0xA5})
	t.Cleanup(term.Close)
	return term, sim
}

func TestTerminalPrompt(t *testing.T) {
	term, sim := newSimTerminal(t)
	term.Print("Welcome to Pymon")
	term.Status(game.Status{Nickname: "Kimimon", Location: "School", Energy: 3, MaxEnergy: 3})

	sim.InjectKey(tcell.KeyRune, '1', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, '2', tcell.ModNone)
	sim.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, '4', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	got, err := term.Prompt(context.Background(), "Choice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "14" {
		t.Errorf("Prompt = %q, want %q", got, "14")
	}
	last := term.view.Log[len(term.view.Log)-1]
	if last.Kind != EntryInput || last.Text != "Choice: 14" {
		t.Errorf("echoed entry = %+v", last)
	}
}

func TestTerminalPromptEscape(t *testing.T) {
	term, sim := newSimTerminal(t)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if _, err := term.Prompt(context.Background(), "Choice"); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF on escape, got %v", err)
	}
}

func TestLayoutLogTrimsScrollback(t *testing.T) {
	term, _ := newSimTerminal(t)
	for i := 0; i < maxLogEntries+10; i++ {
		term.Print("x")
	}
	if len(term.view.Log) != maxLogEntries {
		t.Errorf("log length = %d, want %d", len(term.view.Log), maxLogEntries)
	}
}
