// Package world provides the location graph the creatures live on.
package world

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the four door slots of a location.
type Direction int

const (
	West Direction = iota
	North
	East
	South
)

// Directions lists every direction in door-slot order.
var Directions = [...]Direction{West, North, East, South}

// ErrInvalidDirection is returned when there is no door in the requested direction.
var ErrInvalidDirection = errors.New("invalid direction")

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case West:
		return "west"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "unknown"
	}
}

// Opposite returns the direction a door leads back through.
func (d Direction) Opposite() Direction {
	switch d {
	case West:
		return East
	case North:
		return South
	case East:
		return West
	default:
		return North
	}
}

// Valid reports whether d is one of the four door slots.
func (d Direction) Valid() bool {
	return d >= West && d <= South
}

// ParseDirection converts a direction name (any case, surrounding space ignored).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "west":
		return West, nil
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	}
	return 0, fmt.Errorf("%w: %q, please choose from west, north, east, or south", ErrInvalidDirection, s)
}
