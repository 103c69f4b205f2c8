package game

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/world"
)

func (g *Game) cmdPick(ctx context.Context) error {
	name, err := g.ask(ctx, "Picking what item?")
	if err != nil {
		return err
	}
	it, err := g.active.Pick(name)
	if err != nil {
		return err
	}
	g.printf("You picked up %s from the ground.", it.Name)
	g.log.Info("picked", zap.String("item", it.Name), zap.String("item_id", it.ID))
	return nil
}

func (g *Game) cmdInventory(ctx context.Context) error {
	inv := g.active.Inventory
	if len(inv) == 0 {
		g.console.Print("You are carrying nothing.")
		return nil
	}

	var b strings.Builder
	b.WriteString("You are carrying:")
	for i, it := range inv {
		fmt.Fprintf(&b, "\n%d) %s - %s", i+1, it.Name, it.Description)
	}
	g.console.Print(b.String())

	in, err := g.ask(ctx, "Use which item? (number, Enter to skip)")
	if err != nil || in == "" {
		return err
	}
	idx, err := parseChoice(in, len(inv))
	if err != nil {
		return err
	}
	return g.UseItem(ctx, inv[idx])
}

// UseItem applies an inventory item's effect to the active Pymon.
func (g *Game) UseItem(ctx context.Context, it *world.Item) error {
	p := g.active
	def, _ := gamedata.LookupEffect(it.Name)

	switch gamedata.Effect(it.Effect) {
	case gamedata.EffectEnergy:
		if p.GetEnergy() >= entity.MaxEnergy {
			g.printf("%s is already at full energy.", p.Nickname())
			return nil
		}
		p.RestoreEnergy(def.Power)
		p.RemoveItem(it)
		g.printf("%s ate the %s. Energy: %d/%d", p.Nickname(), it.Name, p.GetEnergy(), entity.MaxEnergy)

	case gamedata.EffectImmunity:
		if !p.GrantImmunity() {
			g.printf("%s already has immunity active.", p.Nickname())
			return nil
		}
		g.printf("%s used the %s and is now immune for one battle.", p.Nickname(), it.Name)

	case gamedata.EffectScout:
		return g.scout(ctx)

	case gamedata.EffectDecoration:
		g.printf("The %s is just for decoration and cannot be used.", it.Name)

	default:
		g.printf("%s cannot be used.", it.Name)
		return nil
	}

	g.log.Info("used item", zap.String("item", it.Name), zap.String("effect", it.Effect))
	return nil
}

// scout describes the current location or the one behind a door.
func (g *Game) scout(ctx context.Context) error {
	in, err := g.ask(ctx, "Use binocular to view (current/west/north/east/south)")
	if err != nil {
		return err
	}
	loc := g.active.Location()

	if strings.EqualFold(in, "current") {
		var parts []string
		for _, o := range loc.Creatures {
			parts = append(parts, o.Nickname())
		}
		for _, d := range world.Directions {
			if to := loc.Door(d); to != nil {
				parts = append(parts, fmt.Sprintf("in the %s is %s", d, to.Name))
			}
		}
		if len(parts) == 0 {
			g.console.Print("Nothing notable in the current location.")
			return nil
		}
		g.console.Print(strings.Join(parts, ", "))
		return nil
	}

	d, err := world.ParseDirection(in)
	if err != nil {
		return err
	}
	to := loc.Door(d)
	if to == nil {
		g.console.Print("This direction leads nowhere.")
		return nil
	}
	if len(to.Items) == 0 {
		g.printf("In the %s, there seems to be %s.", d, to.Name)
		return nil
	}
	names := make([]string, len(to.Items))
	for i, it := range to.Items {
		names[i] = it.Name
	}
	g.printf("In the %s, there seems to be %s with %s.", d, to.Name, strings.Join(names, ", "))
	return nil
}
