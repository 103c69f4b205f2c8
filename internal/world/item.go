package world

import "github.com/google/uuid"

// Item is an object lying in a location or carried in an inventory.
// Exactly one container owns an item at a time.
type Item struct {
	ID          string
	Name        string
	Description string
	Pickable    bool
	Consumable  bool
	Effect      string // Effect tag resolved by gamedata.EffectFor
}

// NewItem creates an item with a fresh opaque identity.
func NewItem(name, description string, pickable, consumable bool) *Item {
	return &Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Pickable:    pickable,
		Consumable:  consumable,
	}
}

// Ref returns the reference used to find this item again after it has been
// deposited in the world.
func (it *Item) Ref() ItemRef {
	return ItemRef{ID: it.ID, Name: it.Name}
}
