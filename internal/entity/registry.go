package entity

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/world"
)

// Registry holds every wild creature of the session, including captured
// ones that are now off the map.
type Registry struct {
	creatures []Creature
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{creatures: make([]Creature, 0)}
}

// NewRegistryFromDefs creates creatures from definitions and scatters them
// uniformly over the world's locations.
func NewRegistryFromDefs(defs []gamedata.CreatureDef, w *world.World, rng *rand.Rand) (*Registry, error) {
	r := NewRegistry()
	for _, def := range defs {
		c := NewCreatureFromDef(def)
		if err := r.Add(c); err != nil {
			return nil, err
		}
		Place(c, w.RandomLocation(rng))
	}
	return r, nil
}

// Add registers a creature. Nicknames are unique, ignoring case.
func (r *Registry) Add(c Creature) error {
	if c.Nickname() == "" {
		return fmt.Errorf("creature nickname must be specified")
	}
	if r.GetByNickname(c.Nickname()) != nil {
		return fmt.Errorf("creature nickname must be unique: %s", c.Nickname())
	}
	r.creatures = append(r.creatures, c)
	return nil
}

// GetByNickname returns the creature with the given nickname, or nil.
func (r *Registry) GetByNickname(nickname string) Creature {
	for _, c := range r.creatures {
		if strings.EqualFold(c.Nickname(), nickname) {
			return c
		}
	}
	return nil
}

// All returns all creatures in registration order.
func (r *Registry) All() []Creature {
	return r.creatures
}

// Count returns the number of creatures.
func (r *Registry) Count() int {
	return len(r.creatures)
}
