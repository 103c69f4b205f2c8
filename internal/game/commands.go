package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// command is one numbered menu entry. Every key has exactly one handler.
type command struct {
	key     string
	name    string
	label   string
	blocked bool // Refused while a switch is pending
	run     func(g *Game, ctx context.Context) error
}

var commands = []command{
	{key: "1", name: "inspect", label: "Inspect Pymon", run: (*Game).cmdInspect},
	{key: "2", name: "inspect_location", label: "Inspect current location", run: (*Game).cmdInspectLocation},
	{key: "3", name: "move", label: "Move", blocked: true, run: (*Game).cmdMove},
	{key: "4", name: "pick", label: "Pick an item", blocked: true, run: (*Game).cmdPick},
	{key: "5", name: "inventory", label: "View inventory", blocked: true, run: (*Game).cmdInventory},
	{key: "6", name: "challenge", label: "Challenge a creature", blocked: true, run: (*Game).cmdChallenge},
	{key: "7", name: "stats", label: "Generate stats", run: (*Game).cmdStats},
	{key: "8", name: "save", label: "Save game", run: (*Game).cmdSave},
	{key: "9", name: "load", label: "Load game", run: (*Game).cmdLoad},
	{key: "10", name: "add_location", label: "Add custom location", run: (*Game).cmdAddLocation},
	{key: "11", name: "add_creature", label: "Add custom creature", run: (*Game).cmdAddCreature},
	{key: "12", name: "bench", label: "View bench Pymons", run: (*Game).cmdViewBench},
	{key: "13", name: "switch", label: "Switch active Pymon", run: (*Game).cmdSwitch},
	{key: "14", name: "exit", label: "Exit the program", run: (*Game).cmdExit},
}

func lookupCommand(key string) *command {
	for i := range commands {
		if commands[i].key == key {
			return &commands[i]
		}
	}
	return nil
}

func menuText() string {
	var b strings.Builder
	b.WriteString("Please issue a command to your Pymon:")
	for _, c := range commands {
		fmt.Fprintf(&b, "\n%s) %s", c.key, c.label)
	}
	return b.String()
}

// ask prompts once and trims the answer.
func (g *Game) ask(ctx context.Context, label string) (string, error) {
	in, err := g.console.Prompt(ctx, label)
	return strings.TrimSpace(in), err
}

// askOr prompts and falls back to def on an empty answer.
func (g *Game) askOr(ctx context.Context, label, def string) (string, error) {
	in, err := g.ask(ctx, fmt.Sprintf("%s (default: %s)", label, def))
	if err != nil {
		return "", err
	}
	if in == "" {
		return def, nil
	}
	return in, nil
}

// parseChoice converts a 1-based menu number to an index.
func parseChoice(in string, n int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(in))
	if err != nil {
		return 0, fmt.Errorf("invalid input, please enter a number")
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("invalid number %d, choose 1 to %d", v, n)
	}
	return v - 1, nil
}

func (g *Game) cmdExit(ctx context.Context) error {
	g.console.Print("Exiting the program.")
	g.running = false
	return nil
}
