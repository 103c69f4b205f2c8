package world

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/pymon/internal/gamedata"
)

// NewWorldFromDefs creates every location first and wires the doors in a
// second pass, so a door may lead to a location defined further down.
func NewWorldFromDefs(defs []gamedata.LocationDef) (*World, error) {
	w := NewWorld()
	for _, def := range defs {
		if err := w.Add(NewLocation(def.Name, def.Description)); err != nil {
			return nil, err
		}
	}

	for _, def := range defs {
		from := w.Find(def.Name)
		for _, d := range Directions {
			target := def.Doors[d]
			if target == "" {
				continue
			}
			to := w.Find(target)
			if to == nil {
				return nil, fmt.Errorf("%s: %s door leads to unknown location %s", def.Name, d, target)
			}
			from.Connect(d, to)
		}
	}
	return w, nil
}

// NewItemFromDef creates an item with a fresh identity and the effect its
// name maps to.
func NewItemFromDef(def gamedata.ItemDef) *Item {
	it := NewItem(def.Name, def.Description, def.Pickable, def.Consumable)
	it.Effect = string(gamedata.EffectFor(def.Name))
	return it
}

// ScatterItems drops one instance of each definition at a random location.
func (w *World) ScatterItems(defs []gamedata.ItemDef, rng *rand.Rand) []*Item {
	items := make([]*Item, 0, len(defs))
	for _, def := range defs {
		it := NewItemFromDef(def)
		if loc := w.RandomLocation(rng); loc != nil {
			loc.AddItem(it)
		}
		items = append(items, it)
	}
	return items
}

// LocationDef renders loc back into its world-file definition.
func LocationDef(loc *Location) gamedata.LocationDef {
	def := gamedata.LocationDef{Name: loc.Name, Description: loc.Description}
	for _, d := range Directions {
		if to := loc.Door(d); to != nil {
			def.Doors[d] = to.Name
		}
	}
	return def
}
