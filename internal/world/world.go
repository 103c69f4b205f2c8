package world

import (
	"fmt"
	"math/rand"
)

// World is the set of locations connected by doors.
type World struct {
	Locations []*Location // In load order
	byName    map[string]*Location
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		Locations: make([]*Location, 0),
		byName:    make(map[string]*Location),
	}
}

// Add registers a location. Names must be unique.
func (w *World) Add(loc *Location) error {
	if loc.Name == "" {
		return fmt.Errorf("location name must be specified")
	}
	if _, exists := w.byName[loc.Name]; exists {
		return fmt.Errorf("location name must be unique: %s", loc.Name)
	}
	w.Locations = append(w.Locations, loc)
	w.byName[loc.Name] = loc
	return nil
}

// Find returns the location with the given name, or nil.
func (w *World) Find(name string) *Location {
	return w.byName[name]
}

// Count returns the number of locations.
func (w *World) Count() int {
	return len(w.Locations)
}

// RandomLocation picks a location uniformly, or nil for an empty world.
func (w *World) RandomLocation(rng *rand.Rand) *Location {
	if len(w.Locations) == 0 {
		return nil
	}
	return w.Locations[rng.Intn(len(w.Locations))]
}

// FindItem locates the item a ref points to. A ref with an ID only matches
// that exact item. Name-only refs look in prefer first, then in world order.
func (w *World) FindItem(ref ItemRef, prefer *Location) (*Item, *Location) {
	if ref.ID != "" {
		for _, loc := range w.Locations {
			if it := loc.findRef(ref); it != nil {
				return it, loc
			}
		}
		return nil, nil
	}
	if prefer != nil {
		if it := prefer.findRef(ref); it != nil {
			return it, prefer
		}
	}
	for _, loc := range w.Locations {
		if it := loc.findRef(ref); it != nil {
			return it, loc
		}
	}
	return nil, nil
}

// TakeItem removes the referenced item from the location holding it.
// It returns nil when no location holds a match.
func (w *World) TakeItem(ref ItemRef, prefer *Location) *Item {
	it, loc := w.FindItem(ref, prefer)
	if it == nil {
		return nil
	}
	loc.RemoveItem(it)
	return it
}

// AllItems returns every item lying in the world with its location, in world order.
func (w *World) AllItems() []Placed {
	var placed []Placed
	for _, loc := range w.Locations {
		for _, it := range loc.Items {
			placed = append(placed, Placed{Item: it, Location: loc})
		}
	}
	return placed
}

// Placed pairs an item with the location it lies in.
type Placed struct {
	Item     *Item
	Location *Location
}
