package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/telemetry"
	"github.com/samdwyer/pymon/internal/world"
)

// ErrPendingSwitch is returned for movement and battle commands while the
// active Pymon is out of energy and waiting to be switched out.
var ErrPendingSwitch = errors.New("your Pymon is out of energy, switch to another one first")

// Game holds the entire session state.
type Game struct {
	cfg      *Config
	console  Console
	log      *zap.Logger
	rng      *rand.Rand
	resolver *combat.Resolver

	world    *world.World
	registry *entity.Registry
	active   *entity.Pymon
	bench    *entity.Bench

	state   State
	running bool
}

// Option customises a new game.
type Option func(*Game)

// WithResolver replaces the battle resolver, e.g. to fix the opponent's hands.
func WithResolver(r *combat.Resolver) Option {
	return func(g *Game) { g.resolver = r }
}

// New builds a session from the world definitions: creatures and items are
// scattered over random locations and the starter Pymon is dropped at one.
func New(ctx context.Context, cfg *Config, defs *gamedata.Defs, console Console, logger *zap.Logger, opts ...Option) (*Game, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:      cfg,
		console:  console,
		log:      logger,
		rng:      rng,
		resolver: combat.NewResolver(combat.RandomOpponent(rng)),
		bench:    entity.NewBench(),
		state:    StateActive,
		running:  true,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.populate(ctx, defs); err != nil {
		return nil, err
	}
	g.log.Info("game created",
		zap.Int64("seed", seed),
		zap.Int("locations", g.world.Count()),
		zap.Int("creatures", g.registry.Count()),
		zap.String("start", g.active.Location().Name),
	)
	return g, nil
}

// populate builds the world graph and places everything on it.
func (g *Game) populate(ctx context.Context, defs *gamedata.Defs) error {
	_, span := telemetry.Tracer("world").Start(ctx, "world.load")
	defer span.End()

	w, err := world.NewWorldFromDefs(defs.Locations)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if w.Count() == 0 {
		return fmt.Errorf("%w: no locations defined", gamedata.ErrInvalidInputFileFormat)
	}
	items := w.ScatterItems(defs.Items, g.rng)

	reg, err := entity.NewRegistryFromDefs(defs.Creatures, w, g.rng)
	if err != nil {
		span.RecordError(err)
		return err
	}

	active := entity.NewPymon(gamedata.Starter.Nickname, gamedata.Starter.Description)
	active.SetLocation(w.RandomLocation(g.rng))

	g.world, g.registry, g.active = w, reg, active

	span.SetAttributes(
		attribute.Int("world.locations", w.Count()),
		attribute.Int("world.items", len(items)),
		attribute.Int("world.creatures", reg.Count()),
		attribute.String("world.start", active.Location().Name),
	)
	return nil
}

// Run executes the command loop until the player quits, input ends or the
// session terminates. Game over is a normal return.
func (g *Game) Run(ctx context.Context) error {
	g.console.Title("Welcome to Pymon World")
	g.printf("It's just you and your loyal Pymon %s roaming around to find more Pymons to capture and adopt.", g.active.Nickname())
	g.printf("You started at %s.", g.active.Location().Name)

	for g.running {
		g.refresh()

		if g.state == StatePendingSwitch {
			if err := g.forceSwitch(ctx); err != nil {
				return g.stop(err)
			}
			continue
		}

		g.console.Print(menuText())
		input, err := g.console.Prompt(ctx, "Your command")
		if err != nil {
			return g.stop(err)
		}
		g.dispatch(ctx, input)
	}

	g.refresh()
	return nil
}

// stop ends the loop. Running out of input counts as quitting.
func (g *Game) stop(err error) error {
	g.running = false
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		g.log.Info("input closed", zap.String("state", g.state.String()))
		return nil
	}
	return err
}

// dispatch runs the command for one menu entry.
func (g *Game) dispatch(ctx context.Context, input string) {
	cmd := lookupCommand(strings.TrimSpace(input))
	if cmd == nil {
		g.console.Print("Invalid command, please try again.")
		return
	}

	g.log.Debug("command", zap.String("command", cmd.name), zap.String("state", g.state.String()))
	if cmd.blocked && g.state != StateActive {
		g.report(cmd.name, ErrPendingSwitch)
		return
	}
	if err := cmd.run(g, ctx); err != nil {
		g.report(cmd.name, err)
	}
}

// report surfaces a recoverable command error.
func (g *Game) report(command string, err error) {
	g.console.Print(err.Error())
	g.log.Info("command failed", zap.String("command", command), zap.Error(err))
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Info("state change", zap.String("from", g.state.String()), zap.String("to", s.String()))
	g.state = s
}

func (g *Game) refresh() {
	g.console.Status(g.Status())
}

func (g *Game) printf(format string, args ...any) {
	g.console.Print(fmt.Sprintf(format, args...))
}

// Status summarises the session for the console.
func (g *Game) Status() Status {
	s := Status{
		Nickname:  g.active.Nickname(),
		Energy:    g.active.GetEnergy(),
		MaxEnergy: entity.MaxEnergy,
		Immunity:  g.active.HasImmunity(),
		MoveCount: g.active.MoveCount(),
		Bench:     g.bench.Len(),
		State:     g.state,
	}
	if loc := g.active.Location(); loc != nil {
		s.Location = loc.Name
	}
	return s
}

// State returns the session state.
func (g *Game) State() State { return g.state }

// Active returns the active Pymon.
func (g *Game) Active() *entity.Pymon { return g.active }

// Bench returns the bench.
func (g *Game) Bench() *entity.Bench { return g.bench }

// World returns the world graph.
func (g *Game) World() *world.World { return g.world }

// Registry returns the wild creature registry.
func (g *Game) Registry() *entity.Registry { return g.registry }

// Running reports whether the command loop would continue.
func (g *Game) Running() bool { return g.running }
