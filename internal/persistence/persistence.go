// Package persistence saves and restores a whole game session as a flat
// text file of bracketed sections:
//
//	[Items]        id, name, description, pickable, consumable, location
//	[Locations]    name, description, west = X, north = X, east = X, south = X
//	[Creatures]    nickname, description, adoptable, location|None
//	[UserPymon]    nickname, description
//	               location
//	               energy, immunity, moveCount
//	               inventory refs separated by ';', or None
//	               timestamp, opponent, wins, draws, losses   (zero or more)
//	[BenchPymons]  nickname, description, energy, immunity, moveCount, refs, history
//
// Bench history is a ';' separated list of records whose fields are joined
// with '|'. Inventory refs are Name#id.
package persistence

import (
	"errors"
	"fmt"

	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/world"
)

// Section headers in file order.
const (
	SectionItems     = "Items"
	SectionLocations = "Locations"
	SectionCreatures = "Creatures"
	SectionUser      = "UserPymon"
	SectionBench     = "BenchPymons"
)

var sectionOrder = []string{SectionItems, SectionLocations, SectionCreatures, SectionUser, SectionBench}

const (
	none         = "None"
	listSep      = ";"
	recordSep    = "|"
	userFixedLen = 4
)

// ErrGame marks any failed save or load.
var ErrGame = errors.New("game error")

// GameError describes a failed save or load. The session that attempted it
// is left untouched.
type GameError struct {
	Op   string // "save" or "load"
	Path string
	Line int // 1-based, 0 when not tied to a line
	Err  error
}

func (e *GameError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to %s %s: line %d: %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrGame) match.
func (e *GameError) Is(target error) bool { return target == ErrGame }

// Session is the aggregate a save file holds.
type Session struct {
	World    *world.World
	Registry *entity.Registry
	Active   *entity.Pymon
	Bench    *entity.Bench
}
