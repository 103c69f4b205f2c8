package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/world"
)

// MaxEnergy is the energy cap of every Pymon.
const MaxEnergy = 3

// Errors returned when picking items.
var (
	ErrNoSuchItem  = errors.New("no such item here")
	ErrNotPickable = errors.New("item cannot be picked up")
)

// Pymon is the capturable creature variant. The player's active unit is a
// Pymon; wild Pymons are too. The active unit is not listed in its
// location's creature list, so it can never challenge itself.
type Pymon struct {
	identity

	Inventory []*world.Item
	History   []combat.BattleRecord

	energy    int
	immunity  bool
	moveCount int
}

// NewPymon creates a Pymon with full energy off the map.
func NewPymon(nickname, description string) *Pymon {
	return &Pymon{
		identity:  identity{nickname: nickname, description: description},
		Inventory: make([]*world.Item, 0),
		History:   make([]combat.BattleRecord, 0),
		energy:    MaxEnergy,
	}
}

// Kind returns KindPymon.
func (p *Pymon) Kind() Kind { return KindPymon }

// Capabilities reports that Pymons can be battled and captured.
func (p *Pymon) Capabilities() Capabilities {
	return Capabilities{Capturable: true, Battleable: true}
}

// Capturable returns true.
func (p *Pymon) Capturable() bool { return true }

// Capture takes the Pymon off the map.
func (p *Pymon) Capture() error {
	Place(p, nil)
	return nil
}

// =============================================================================
// combat.Combatant implementation
// =============================================================================

// GetName returns the nickname.
func (p *Pymon) GetName() string { return p.nickname }

// GetEnergy returns current energy.
func (p *Pymon) GetEnergy() int { return p.energy }

// DrainEnergy lowers energy, stopping at 0, and returns the actual loss.
func (p *Pymon) DrainEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.energy {
		actual = p.energy
	}
	p.energy -= actual
	return actual
}

// HasImmunity reports whether the next battle loss is absorbed.
func (p *Pymon) HasImmunity() bool { return p.immunity }

// ConsumeImmunity clears immunity and reports whether it was set.
func (p *Pymon) ConsumeImmunity() bool {
	had := p.immunity
	p.immunity = false
	return had
}

// DiscardItem removes the first inventory item with the given name, ignoring case.
func (p *Pymon) DiscardItem(name string) bool {
	for _, it := range p.Inventory {
		if strings.EqualFold(it.Name, name) {
			return p.RemoveItem(it)
		}
	}
	return false
}

// RecordBattle appends a match tally to the battle history.
func (p *Pymon) RecordBattle(rec combat.BattleRecord) {
	p.History = append(p.History, rec)
}

var _ combat.Combatant = (*Pymon)(nil)

// =============================================================================
// Energy, movement and inventory
// =============================================================================

// RestoreEnergy raises energy, stopping at MaxEnergy, and returns the actual gain.
func (p *Pymon) RestoreEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.energy+actual > MaxEnergy {
		actual = MaxEnergy - p.energy
	}
	p.energy += actual
	return actual
}

// GrantImmunity sets immunity and reports false if it was already set.
func (p *Pymon) GrantImmunity() bool {
	if p.immunity {
		return false
	}
	p.immunity = true
	return true
}

// MoveCount returns the number of successful moves.
func (p *Pymon) MoveCount() int { return p.moveCount }

// Depleted reports whether the Pymon has run out of energy.
func (p *Pymon) Depleted() bool { return p.energy == 0 }

// Move walks through the door in direction d. Every second move costs one
// energy. On error nothing changes.
func (p *Pymon) Move(d world.Direction) (*world.Location, error) {
	if p.location == nil {
		return nil, fmt.Errorf("%s is not on the map", p.nickname)
	}
	to, err := p.location.Exit(d)
	if err != nil {
		return nil, err
	}

	p.location = to
	p.moveCount++
	if p.moveCount%2 == 0 {
		p.DrainEnergy(1)
	}
	return to, nil
}

// Pick moves the named item from the current location into the inventory.
func (p *Pymon) Pick(name string) (*world.Item, error) {
	if p.location == nil {
		return nil, fmt.Errorf("%s is not on the map", p.nickname)
	}
	it := p.location.FindItem(name)
	if it == nil {
		return nil, fmt.Errorf("%w: there is no %s in this location", ErrNoSuchItem, name)
	}
	if !it.Pickable || gamedata.Effect(it.Effect) == gamedata.EffectDecoration {
		return nil, fmt.Errorf("%w: the %s cannot be picked up", ErrNotPickable, it.Name)
	}
	p.location.RemoveItem(it)
	p.Inventory = append(p.Inventory, it)
	return it, nil
}

// RemoveItem drops it from the inventory without placing it anywhere.
func (p *Pymon) RemoveItem(it *world.Item) bool {
	for i, existing := range p.Inventory {
		if existing == it {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Stats is the restorable state of a Pymon beyond its identity.
type Stats struct {
	Energy    int
	Immunity  bool
	MoveCount int
	History   []combat.BattleRecord
}

// BaselineStats are the stats of a freshly captured Pymon.
func BaselineStats() Stats {
	return Stats{Energy: MaxEnergy, History: []combat.BattleRecord{}}
}

// Stats returns a copy of the Pymon's stats.
func (p *Pymon) Stats() Stats {
	history := make([]combat.BattleRecord, len(p.History))
	copy(history, p.History)
	return Stats{
		Energy:    p.energy,
		Immunity:  p.immunity,
		MoveCount: p.moveCount,
		History:   history,
	}
}

// SetStats restores stats verbatim, clamping energy into [0, MaxEnergy].
func (p *Pymon) SetStats(s Stats) {
	p.energy = clampEnergy(s.Energy)
	p.immunity = s.Immunity
	p.moveCount = s.MoveCount
	p.History = make([]combat.BattleRecord, len(s.History))
	copy(p.History, s.History)
}

func clampEnergy(e int) int {
	if e < 0 {
		return 0
	}
	if e > MaxEnergy {
		return MaxEnergy
	}
	return e
}

// TotalRecord sums the battle history.
func (p *Pymon) TotalRecord() (wins, draws, losses int) {
	for _, rec := range p.History {
		wins += rec.Wins
		draws += rec.Draws
		losses += rec.Losses
	}
	return wins, draws, losses
}

var _ Creature = (*Pymon)(nil)
