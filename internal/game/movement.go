package game

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/telemetry"
	"github.com/samdwyer/pymon/internal/world"
)

// Move walks the active Pymon through the door in direction d and reports
// whether it ran out of energy and must be switched out. A failed move
// changes nothing.
func (g *Game) Move(ctx context.Context, d world.Direction) (bool, error) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.move")
	defer span.End()
	span.SetAttributes(attribute.String("direction", d.String()))

	if g.state != StateActive {
		return false, ErrPendingSwitch
	}

	before := g.active.GetEnergy()
	to, err := g.active.Move(d)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	span.SetAttributes(
		attribute.String("location", to.Name),
		attribute.Int("energy", g.active.GetEnergy()),
		attribute.Int("move_count", g.active.MoveCount()),
	)

	g.printf("You traveled %s and arrived at %s.", d, to.Name)
	if lost := before - g.active.GetEnergy(); lost > 0 {
		g.printf("%s lost %d energy due to movement. Energy: %d/%d", g.active.Nickname(), lost, g.active.GetEnergy(), entity.MaxEnergy)
	}
	g.log.Info("moved",
		zap.String("direction", d.String()),
		zap.String("location", to.Name),
		zap.Int("energy", g.active.GetEnergy()),
		zap.Int("move_count", g.active.MoveCount()),
	)

	return g.checkEnergy(), nil
}

// checkEnergy handles a depleted active Pymon: with a benched Pymon that
// still has energy the session waits for a switch, otherwise it is over.
// It reports whether a switch is now required.
func (g *Game) checkEnergy() bool {
	if !g.active.Depleted() || g.state == StateTerminated {
		return false
	}

	g.printf("%s is out of energy and escaped into the wild!", g.active.Nickname())
	if g.bench.HasAvailable() {
		g.console.Print("You must switch to a Pymon that still has energy!")
		g.setState(StatePendingSwitch)
		return true
	}

	g.console.Title("Game over")
	g.console.Print("No Pymons with energy available.")
	g.setState(StateTerminated)
	g.running = false
	return false
}

func (g *Game) cmdMove(ctx context.Context) error {
	in, err := g.ask(ctx, "Moving to which direction?")
	if err != nil {
		return err
	}
	d, err := world.ParseDirection(in)
	if err != nil {
		return err
	}
	_, err = g.Move(ctx, d)
	return err
}

func (g *Game) cmdInspect(ctx context.Context) error {
	p := g.active
	g.printf("Hi Player, my name is %s, I am at %s. %s.", p.Nickname(), locationName(p.Location()), p.Description())
	g.printf("My energy level is %d/%d. What can I do to help you?", p.GetEnergy(), entity.MaxEnergy)
	return nil
}

func (g *Game) cmdInspectLocation(ctx context.Context) error {
	loc := g.active.Location()
	if loc == nil {
		return fmt.Errorf("%s is not on the map", g.active.Nickname())
	}
	g.console.Print(describeLocation(loc))
	return nil
}

// describeLocation lists what is at loc and where its doors lead.
func describeLocation(loc *world.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are at %s, %s.", loc.Name, loc.Description)

	if len(loc.Creatures) == 0 {
		b.WriteString("\nNo creatures here.")
	}
	for _, o := range loc.Creatures {
		if c, ok := o.(entity.Creature); ok {
			fmt.Fprintf(&b, "\nCreature present: %s - %s", c.Nickname(), c.Description())
		}
	}

	if len(loc.Items) == 0 {
		b.WriteString("\nNo items here.")
	}
	for _, it := range loc.Items {
		fmt.Fprintf(&b, "\nItem present: %s - %s", it.Name, it.Description)
	}

	for _, d := range world.Directions {
		if to := loc.Door(d); to != nil {
			fmt.Fprintf(&b, "\nIn the %s is %s.", d, to.Name)
		}
	}
	return b.String()
}

func locationName(loc *world.Location) string {
	if loc == nil {
		return "None"
	}
	return loc.Name
}
