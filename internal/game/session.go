package game

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/persistence"
)

// Save writes the session to path.
func (g *Game) Save(ctx context.Context, path string) error {
	err := persistence.Save(ctx, path, &persistence.Session{
		World:    g.world,
		Registry: g.registry,
		Active:   g.active,
		Bench:    g.bench,
	})
	if err != nil {
		return err
	}
	g.log.Info("saved", zap.String("path", path))
	return nil
}

// Load replaces the session with the one saved at path. On error the
// current session is kept as it was.
func (g *Game) Load(ctx context.Context, path string) error {
	s, err := persistence.Load(ctx, path)
	if err != nil {
		return err
	}

	g.world, g.registry, g.active, g.bench = s.World, s.Registry, s.Active, s.Bench
	g.state = StateActive
	g.log.Info("loaded", zap.String("path", path), zap.String("active", g.active.Nickname()))

	// A game saved just before running dry still needs its switch.
	g.checkEnergy()
	return nil
}

func (g *Game) cmdSave(ctx context.Context) error {
	path, err := g.askOr(ctx, "Enter save file name", g.cfg.SaveFile)
	if err != nil {
		return err
	}
	if err := g.Save(ctx, path); err != nil {
		return err
	}
	g.printf("Game progress saved to %s.", path)
	return nil
}

func (g *Game) cmdLoad(ctx context.Context) error {
	path, err := g.askOr(ctx, "Enter save file name to load", g.cfg.SaveFile)
	if err != nil {
		return err
	}
	if err := g.Load(ctx, path); err != nil {
		g.console.Print("Continuing with the current game.")
		return err
	}
	g.printf("Game progress loaded from %s.", path)
	return g.cmdStats(ctx)
}

func (g *Game) cmdStats(ctx context.Context) error {
	p := g.active
	g.printf("Pymon %s stats:", p.Nickname())
	g.printf("Description: %s", p.Description())
	g.printf("Energy: %d/%d", p.GetEnergy(), entity.MaxEnergy)
	g.printf("Location: %s", locationName(p.Location()))
	g.printf("Has immunity: %s", yesNo(p.HasImmunity()))
	g.printf("Move count: %d", p.MoveCount())

	if len(p.Inventory) > 0 {
		names := make([]string, len(p.Inventory))
		for i, it := range p.Inventory {
			names[i] = it.Name
		}
		g.printf("Inventory: %s", strings.Join(names, ", "))
	}

	if len(p.History) == 0 {
		g.console.Print("No battles fought yet.")
		return nil
	}
	wins, draws, losses := p.TotalRecord()
	g.printf("%s\nTotal: W: %d D: %d L: %d", historyText(p.History), wins, draws, losses)
	return nil
}

// historyText lists each match on its own line.
func historyText(history []combat.BattleRecord) string {
	var b strings.Builder
	b.WriteString("Battle history:")
	for i, rec := range history {
		fmt.Fprintf(&b, "\nBattle %d, %s Opponent: %s, W: %d D: %d L: %d",
			i+1, rec.Timestamp.Format("02/01/2006 03:04PM"), rec.Opponent, rec.Wins, rec.Draws, rec.Losses)
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
