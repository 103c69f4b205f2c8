// Package entity provides the creatures of the game: wild animals, Pymons,
// the creature registry and the bench of captured Pymons.
package entity

import (
	"errors"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/world"
)

// ErrCaptureNotAllowed is returned when challenging, capturing or benching an animal.
var ErrCaptureNotAllowed = combat.ErrCaptureNotAllowed

// Errors rejecting a bench switch.
var (
	ErrBenchIndex = errors.New("invalid Pymon number")
	ErrNoEnergy   = errors.New("that Pymon has no energy")
)

// Kind tags the creature variant.
type Kind int

const (
	KindAnimal Kind = iota
	KindPymon
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindAnimal:
		return "Animal"
	case KindPymon:
		return "Pymon"
	default:
		return "Unknown"
	}
}

// Capabilities lists what the game may do with a creature.
type Capabilities struct {
	Capturable bool
	Battleable bool
}

// Creature is any entity living on the world graph.
type Creature interface {
	combat.Target
	Description() string
	Kind() Kind
	Capabilities() Capabilities
	Location() *world.Location
	SetLocation(loc *world.Location)
}

// identity is the state shared by all creature variants.
type identity struct {
	nickname    string
	description string
	location    *world.Location // Nil when off the map, e.g. after capture
}

// Nickname returns the creature's nickname.
func (c *identity) Nickname() string { return c.nickname }

// Description returns the creature's description.
func (c *identity) Description() string { return c.description }

// Location returns where the creature stands, or nil.
func (c *identity) Location() *world.Location { return c.location }

// SetLocation updates the location reference only; it does not touch
// creature lists. Use Place for that.
func (c *identity) SetLocation(loc *world.Location) { c.location = loc }

// Place moves c into loc's creature list, leaving its previous location's
// list. A nil loc takes c off the map.
func Place(c Creature, loc *world.Location) {
	if old := c.Location(); old != nil {
		old.RemoveCreature(c)
	}
	c.SetLocation(loc)
	if loc != nil {
		loc.AddCreature(c)
	}
}

// NewCreatureFromDef creates a wild creature from a world-file definition.
func NewCreatureFromDef(def gamedata.CreatureDef) Creature {
	if def.Adoptable {
		return NewPymon(def.Nickname, def.Description)
	}
	return NewAnimal(def.Nickname, def.Description)
}
