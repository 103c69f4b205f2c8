package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/persistence"
	"github.com/samdwyer/pymon/internal/world"
)

func TestSaveAndLoadRestoresSession(t *testing.T) {
	g, _ := newTestGame(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "save2024.csv")

	apple := world.NewItemFromDef(gamedata.ItemDef{Name: "Apple", Pickable: true, Consumable: true})
	g.Active().Inventory = append(g.Active().Inventory, apple)
	g.Active().SetLocation(g.World().Find("Beach"))
	g.Active().SetStats(entity.Stats{Energy: 2, MoveCount: 5})

	if err := g.Save(ctx, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if _, err := g.Move(ctx, world.South); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if err := g.Load(ctx, path); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	p := g.Active()
	if p.Nickname() != "Kimimon" || p.GetEnergy() != 2 || p.MoveCount() != 5 || p.Location().Name != "Beach" {
		t.Errorf("loaded %s energy %d moves %d at %s", p.Nickname(), p.GetEnergy(), p.MoveCount(), p.Location().Name)
	}
	if len(p.Inventory) != 1 || p.Inventory[0].Name != "Apple" {
		t.Errorf("inventory = %v, want [Apple]", p.Inventory)
	}
	if p.Location() != g.World().Find("Beach") {
		t.Error("active Pymon should point into the loaded world")
	}
}

func TestFailedLoadKeepsSession(t *testing.T) {
	g, con := newTestGame(t, "9", "", "14")
	dir := t.TempDir()
	g.cfg.SaveFile = filepath.Join(dir, "broken.csv")
	if err := os.WriteFile(g.cfg.SaveFile, []byte("[Items]\nnot an item\n"), 0644); err != nil {
		t.Fatal(err)
	}

	before, w := g.Active(), g.World()
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if g.Active() != before || g.World() != w {
		t.Error("a failed load must leave the session untouched")
	}
	if !strings.Contains(con.out.String(), "Continuing with the current game") {
		t.Error("failed load not reported")
	}

	err := g.Load(context.Background(), filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, persistence.ErrGame) {
		t.Errorf("Load(missing) error = %v, want ErrGame", err)
	}
}

func TestStatsShowsHistoryTotals(t *testing.T) {
	g, con := newTestGame(t, "7")
	g.Active().RecordBattle(combatRecord("Kitimon", 2, 1, 0))
	g.Active().RecordBattle(combatRecord("Marimon", 1, 0, 2))

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	out := con.out.String()
	if !strings.Contains(out, "Battle 2") || !strings.Contains(out, "Total: W: 3 D: 1 L: 2") {
		t.Errorf("stats output missing history:\n%s", out)
	}
}

func combatRecord(opponent string, wins, draws, losses int) combat.BattleRecord {
	return combat.BattleRecord{Opponent: opponent, Wins: wins, Draws: draws, Losses: losses}
}
