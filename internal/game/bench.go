package game

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/telemetry"
)

// Switch swaps the active Pymon with bench entry index (0-based). Entries
// without energy are rejected, whether or not the switch was forced.
// A successful switch ends a pending-switch state.
func (g *Game) Switch(ctx context.Context, index int) error {
	_, span := telemetry.Tracer("bench").Start(ctx, "bench.switch")
	defer span.End()
	span.SetAttributes(
		attribute.Int("bench.index", index),
		attribute.Bool("forced", g.state == StatePendingSwitch),
	)

	if g.state == StateTerminated {
		return fmt.Errorf("the game is over")
	}

	prev := g.active
	next, err := g.bench.Switch(index, prev, g.world)
	if err != nil {
		span.RecordError(err)
		return err
	}
	g.active = next
	g.setState(StateActive)

	span.SetAttributes(
		attribute.String("pymon.out", prev.Nickname()),
		attribute.String("pymon.in", next.Nickname()),
		attribute.Int("energy", next.GetEnergy()),
	)
	g.log.Info("switched",
		zap.String("out", prev.Nickname()),
		zap.String("in", next.Nickname()),
		zap.Int("energy", next.GetEnergy()),
	)

	g.printf("Switched to %s! Energy: %d/%d", next.Nickname(), next.GetEnergy(), entity.MaxEnergy)
	if len(next.Inventory) == 0 {
		g.console.Print("Current inventory is empty.")
	} else {
		names := make([]string, len(next.Inventory))
		for i, it := range next.Inventory {
			names[i] = it.Name
		}
		g.printf("Current inventory: %s", strings.Join(names, ", "))
	}
	return nil
}

// forceSwitch prompts until the player picks a benched Pymon with energy.
func (g *Game) forceSwitch(ctx context.Context) error {
	g.console.Title("Choose a Pymon to continue")
	g.console.Print(g.benchText())

	for g.state == StatePendingSwitch {
		in, err := g.ask(ctx, "Enter the number of the Pymon you want to switch to")
		if err != nil {
			return err
		}
		idx, err := parseChoice(in, g.bench.Len())
		if err != nil {
			g.console.Print(err.Error())
			continue
		}
		if err := g.Switch(ctx, idx); err != nil {
			g.report("switch", err)
		}
	}
	return nil
}

func (g *Game) benchText() string {
	if g.bench.Len() == 0 {
		return "Your bench is empty. Capture some Pymons in battle!"
	}
	var b strings.Builder
	b.WriteString("Your bench Pymons:")
	for i, e := range g.bench.Entries {
		fmt.Fprintf(&b, "\n%d) %s - %s\n   Energy: %d/%d", i+1, e.Nickname, e.Description, e.Stats.Energy, entity.MaxEnergy)
		if len(e.Inventory) > 0 {
			names := make([]string, len(e.Inventory))
			for j, ref := range e.Inventory {
				names[j] = ref.Name
			}
			fmt.Fprintf(&b, "\n   Inventory: %s", strings.Join(names, ", "))
		}
	}
	return b.String()
}

func (g *Game) cmdViewBench(ctx context.Context) error {
	g.console.Print(g.benchText())
	return nil
}

func (g *Game) cmdSwitch(ctx context.Context) error {
	g.console.Print(g.benchText())
	if g.bench.Len() == 0 {
		return nil
	}

	in, err := g.ask(ctx, "Enter the number of the Pymon you want to switch to (Enter to cancel)")
	if err != nil || in == "" {
		return err
	}
	idx, err := parseChoice(in, g.bench.Len())
	if err != nil {
		return err
	}
	return g.Switch(ctx, idx)
}
