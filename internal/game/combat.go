package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/telemetry"
)

// handPrompt asks the player for a hand each round until the answer parses.
type handPrompt struct {
	g *Game
}

func (h handPrompt) NextSymbol(ctx context.Context) (combat.Symbol, error) {
	for {
		in, err := h.g.ask(ctx, "Your choice (r)ock, (p)aper, or (s)cissors")
		if err != nil {
			return 0, err
		}
		s, err := combat.ParseSymbol(in)
		if err == nil {
			return s, nil
		}
		h.g.console.Print(err.Error())
	}
}

var _ combat.SymbolSource = handPrompt{}

// =============================================================================
// Challenge flow
// =============================================================================

// Challenge battles the creature with the given nickname at the active
// Pymon's location. Winning captures it onto the bench. Energy lost in
// battle can trigger the same depletion handling as movement.
func (g *Game) Challenge(ctx context.Context, nickname string, src combat.SymbolSource) error {
	ctx, span := telemetry.Tracer("combat").Start(ctx, "battle.challenge")
	defer span.End()
	span.SetAttributes(attribute.String("opponent", nickname))

	if g.state != StateActive {
		return ErrPendingSwitch
	}
	loc := g.active.Location()
	if loc == nil {
		return fmt.Errorf("%s is not on the map", g.active.Nickname())
	}
	occ := loc.FindCreature(nickname)
	if occ == nil {
		return fmt.Errorf("there is no creature named %s here", nickname)
	}
	target, ok := occ.(entity.Creature)
	if !ok || !target.Capabilities().Battleable {
		return entity.ErrCaptureNotAllowed
	}

	g.printf("%s gladly accepted your challenge! Ready for battle!", target.Nickname())
	g.console.Print("The first to win 2 encounters wins the battle.")

	result, err := g.resolver.Challenge(ctx, g.active, target, src, g.showRound)
	if err != nil {
		span.RecordError(err)
		return err
	}

	rec := result.Record
	span.SetAttributes(
		attribute.Int("wins", rec.Wins),
		attribute.Int("draws", rec.Draws),
		attribute.Int("losses", rec.Losses),
		attribute.Int("energy", g.active.GetEnergy()),
		attribute.Bool("immunity_used", result.ImmunityUsed),
		attribute.Bool("captured", result.Captured != nil),
	)
	g.log.Info("battle",
		zap.String("opponent", rec.Opponent),
		zap.Int("wins", rec.Wins),
		zap.Int("draws", rec.Draws),
		zap.Int("losses", rec.Losses),
		zap.Int("energy", g.active.GetEnergy()),
	)

	if result.ImmunityUsed {
		g.console.Print("Your magic potion has been used up.")
	}
	if result.Captured != nil {
		g.capture(ctx, target)
	} else {
		g.printf("You lost the battle against %s.", target.Nickname())
	}

	g.checkEnergy()
	return nil
}

func (g *Game) showRound(r combat.Round) {
	switch r.Outcome {
	case combat.Win:
		g.printf("You chose %s, your opponent chose %s. You won 1 encounter!", r.Attacker, r.Opponent)
	case combat.Draw:
		g.printf("You chose %s, your opponent chose %s. It's a draw.", r.Attacker, r.Opponent)
	case combat.Lose:
		if r.Shielded {
			g.printf("You chose %s, your opponent chose %s. You lost 1 encounter but your immunity protected you. Energy: %d/%d",
				r.Attacker, r.Opponent, r.Energy, entity.MaxEnergy)
		} else {
			g.printf("You chose %s, your opponent chose %s. You lost 1 encounter and 1 energy. Energy: %d/%d",
				r.Attacker, r.Opponent, r.Energy, entity.MaxEnergy)
		}
	}
}

// capture benches a defeated Pymon with baseline stats.
func (g *Game) capture(ctx context.Context, c entity.Creature) {
	_, span := telemetry.Tracer("bench").Start(ctx, "bench.capture")
	defer span.End()

	if err := g.bench.Add(c); err != nil {
		span.RecordError(err)
		g.report("capture", err)
		return
	}
	span.SetAttributes(
		attribute.String("pymon", c.Nickname()),
		attribute.Int("bench.size", g.bench.Len()),
	)
	g.printf("Congrats! You have won the battle and captured %s.", c.Nickname())
	g.printf("%s has been added to your bench.", c.Nickname())
	g.log.Info("captured", zap.String("pymon", c.Nickname()), zap.Int("bench", g.bench.Len()))
}

func (g *Game) cmdChallenge(ctx context.Context) error {
	name, err := g.ask(ctx, "Challenge who?")
	if err != nil {
		return err
	}
	return g.Challenge(ctx, name, handPrompt{g: g})
}
