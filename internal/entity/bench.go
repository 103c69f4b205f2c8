package entity

import (
	"fmt"

	"github.com/samdwyer/pymon/internal/world"
)

// BenchEntry is a snapshot of a Pymon that is not in play. It is turned
// back into a live Pymon only when switched in.
type BenchEntry struct {
	Nickname    string
	Description string
	Stats       Stats
	Inventory   []world.ItemRef
}

// Snapshot captures p as a bench entry.
func Snapshot(p *Pymon) BenchEntry {
	return BenchEntry{
		Nickname:    p.Nickname(),
		Description: p.Description(),
		Stats:       p.Stats(),
		Inventory:   world.Refs(p.Inventory),
	}
}

// Restore builds a live Pymon standing at loc with the entry's stats and
// pulls its inventory back out of w. Items that can no longer be found are
// skipped.
func (e BenchEntry) Restore(loc *world.Location, w *world.World) *Pymon {
	p := NewPymon(e.Nickname, e.Description)
	p.SetLocation(loc)
	p.SetStats(e.Stats)
	for _, ref := range e.Inventory {
		if it := w.TakeItem(ref, loc); it != nil {
			p.Inventory = append(p.Inventory, it)
		}
	}
	return p
}

// Bench holds captured Pymons that are not currently active.
type Bench struct {
	Entries []BenchEntry
}

// NewBench creates an empty bench.
func NewBench() *Bench {
	return &Bench{Entries: make([]BenchEntry, 0)}
}

// Len returns the number of benched Pymons.
func (b *Bench) Len() int {
	return len(b.Entries)
}

// Add benches a captured creature with baseline stats. Only Pymons may be benched.
func (b *Bench) Add(c Creature) error {
	if c.Kind() != KindPymon || !c.Capabilities().Capturable {
		return ErrCaptureNotAllowed
	}
	b.Entries = append(b.Entries, BenchEntry{
		Nickname:    c.Nickname(),
		Description: c.Description(),
		Stats:       BaselineStats(),
		Inventory:   []world.ItemRef{},
	})
	return nil
}

// Available returns the indexes of entries with energy left.
func (b *Bench) Available() []int {
	var idx []int
	for i, e := range b.Entries {
		if e.Stats.Energy > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// HasAvailable reports whether any entry has energy left.
func (b *Bench) HasAvailable() bool {
	return len(b.Available()) > 0
}

// Switch swaps the active Pymon with the entry at index. The new Pymon
// takes the outgoing one's place and the outgoing one fills the vacated
// slot. The outgoing Pymon's items are left at its location, from where the
// snapshot's refs can find them again. An out-of-range index or an entry
// without energy is rejected without changes.
func (b *Bench) Switch(index int, active *Pymon, w *world.World) (*Pymon, error) {
	if index < 0 || index >= len(b.Entries) {
		return nil, fmt.Errorf("%w: %d", ErrBenchIndex, index+1)
	}
	if b.Entries[index].Stats.Energy <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEnergy, b.Entries[index].Nickname)
	}

	at := active.Location()
	outgoing := Snapshot(active)

	// Deposit first so the incoming unit can reclaim its own items from
	// what the outgoing unit was carrying.
	if at != nil {
		for _, it := range active.Inventory {
			at.AddItem(it)
		}
	}
	active.Inventory = active.Inventory[:0]
	active.SetLocation(nil)

	incoming := b.Entries[index].Restore(at, w)

	b.Entries[index] = outgoing
	return incoming, nil
}
