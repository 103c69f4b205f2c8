package gamedata

// StarterDef defines the unit the player starts with.
type StarterDef struct {
	Nickname    string
	Description string
}

// Starter is the default starting unit.
var Starter = StarterDef{
	Nickname:    "Kimimon",
	Description: "White and yellow Pymon with a square face",
}
