package combat

import (
	"fmt"
	"strings"
)

// Symbol is a rock-paper-scissors hand.
type Symbol int

const (
	Rock Symbol = iota
	Paper
	Scissors
)

// Symbols lists every hand, used for uniform opponent picks.
var Symbols = [...]Symbol{Rock, Paper, Scissors}

// String returns the hand name.
func (s Symbol) String() string {
	switch s {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unknown"
	}
}

// ParseSymbol accepts "r", "rock", "p", "paper", "s", "scissor(s)".
func ParseSymbol(input string) (Symbol, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "r", "rock":
		return Rock, nil
	case "p", "paper":
		return Paper, nil
	case "s", "scissor", "scissors":
		return Scissors, nil
	}
	return 0, fmt.Errorf("invalid choice %q, please choose r, p, or s", input)
}

// Outcome is a round result from the attacker's point of view.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// beats maps each hand to the hand it defeats.
var beats = map[Symbol]Symbol{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Judge decides a single round.
func Judge(attacker, opponent Symbol) Outcome {
	switch {
	case attacker == opponent:
		return Draw
	case beats[attacker] == opponent:
		return Win
	default:
		return Lose
	}
}
