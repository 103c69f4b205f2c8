package gamedata

import "strings"

// =============================================================================
// ITEM EFFECTS
// =============================================================================
//
// The world files do not carry an effect column; effects are keyed by item
// name (case-insensitive):
//
//   apple        energy     +1 energy, eaten on use, refused at full energy
//   magic potion immunity   next battle loss costs no energy; the potion is
//                           removed after the battle that used the immunity
//   binocular    scout      describes the current location or one behind a door
//   tree         decoration cannot be picked up or used
//
// Anything else is inert.

// Effect is the effect tag of an item.
type Effect string

const (
	EffectNone       Effect = ""
	EffectEnergy     Effect = "energy"
	EffectImmunity   Effect = "immunity"
	EffectScout      Effect = "scout"
	EffectDecoration Effect = "decoration"
)

// ImmunityItem is the consumable backing an immunity grant.
const ImmunityItem = "magic potion"

// EffectDef describes an item effect.
type EffectDef struct {
	Item   string
	Effect Effect
	Power  int // Energy restored for EffectEnergy
}

var effectTable = []EffectDef{
	{Item: "apple", Effect: EffectEnergy, Power: 1},
	{Item: ImmunityItem, Effect: EffectImmunity},
	{Item: "binocular", Effect: EffectScout},
	{Item: "tree", Effect: EffectDecoration},
}

// LookupEffect returns the effect definition for an item name.
func LookupEffect(name string) (EffectDef, bool) {
	for _, def := range effectTable {
		if strings.EqualFold(def.Item, strings.TrimSpace(name)) {
			return def, true
		}
	}
	return EffectDef{Item: name, Effect: EffectNone}, false
}

// EffectFor returns just the effect tag for an item name.
func EffectFor(name string) Effect {
	def, _ := LookupEffect(name)
	return def.Effect
}
