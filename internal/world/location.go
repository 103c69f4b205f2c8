package world

import (
	"fmt"
	"strings"
)

// Occupant is anything that can stand in a location's creature list.
type Occupant interface {
	Nickname() string
}

// Location is a named node of the world graph with four door slots.
type Location struct {
	Name        string
	Description string
	Creatures   []Occupant // Present creatures, in arrival order
	Items       []*Item    // Items lying here, in drop order
	doors       [len(Directions)]*Location
}

// NewLocation creates a location with no doors.
func NewLocation(name, description string) *Location {
	return &Location{
		Name:        name,
		Description: description,
		Creatures:   make([]Occupant, 0),
		Items:       make([]*Item, 0),
	}
}

// Door returns the location behind the door in direction d, or nil.
func (l *Location) Door(d Direction) *Location {
	if !d.Valid() {
		return nil
	}
	return l.doors[d]
}

// Exit returns the destination through d or ErrInvalidDirection.
func (l *Location) Exit(d Direction) (*Location, error) {
	to := l.Door(d)
	if to == nil {
		return nil, fmt.Errorf("%w: there is no door to the %s", ErrInvalidDirection, d)
	}
	return to, nil
}

// SetDoor sets a single door slot without touching the other end.
// Only save restoration uses this; gameplay goes through Connect.
func (l *Location) SetDoor(d Direction, to *Location) {
	if d.Valid() {
		l.doors[d] = to
	}
}

// Connect links l to other through d and other back to l through the
// opposite door. Doors that pointed at either end before are detached so the
// graph stays symmetric. A nil other closes the door on both sides.
func (l *Location) Connect(d Direction, other *Location) {
	if !d.Valid() {
		return
	}
	back := d.Opposite()

	if old := l.doors[d]; old != nil && old.doors[back] == l {
		old.doors[back] = nil
	}
	l.doors[d] = other
	if other == nil {
		return
	}
	if old := other.doors[back]; old != nil && old != l && old.doors[d] == other {
		old.doors[d] = nil
	}
	other.doors[back] = l
}

// HasDoors reports whether at least one door is open.
func (l *Location) HasDoors() bool {
	for _, to := range l.doors {
		if to != nil {
			return true
		}
	}
	return false
}

// AddCreature places o at the end of the creature list.
func (l *Location) AddCreature(o Occupant) {
	l.Creatures = append(l.Creatures, o)
}

// RemoveCreature removes o and reports whether it was present.
func (l *Location) RemoveCreature(o Occupant) bool {
	for i, c := range l.Creatures {
		if c == o {
			l.Creatures = append(l.Creatures[:i], l.Creatures[i+1:]...)
			return true
		}
	}
	return false
}

// FindCreature returns the first creature whose nickname matches, ignoring case.
func (l *Location) FindCreature(nickname string) Occupant {
	for _, c := range l.Creatures {
		if strings.EqualFold(c.Nickname(), nickname) {
			return c
		}
	}
	return nil
}

// AddItem drops it here.
func (l *Location) AddItem(it *Item) {
	l.Items = append(l.Items, it)
}

// RemoveItem removes it and reports whether it was present.
func (l *Location) RemoveItem(it *Item) bool {
	for i, existing := range l.Items {
		if existing == it {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return true
		}
	}
	return false
}

// FindItem returns the first item whose name matches, ignoring case.
func (l *Location) FindItem(name string) *Item {
	for _, it := range l.Items {
		if strings.EqualFold(it.Name, name) {
			return it
		}
	}
	return nil
}

func (l *Location) findRef(ref ItemRef) *Item {
	for _, it := range l.Items {
		if ref.ID != "" && it.ID == ref.ID {
			return it
		}
	}
	if ref.ID != "" {
		return nil
	}
	for _, it := range l.Items {
		if it.Name == ref.Name {
			return it
		}
	}
	return nil
}
