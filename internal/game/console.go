package game

import "context"

// Console is the player's terminal. The session is single-threaded: the
// game only ever calls one Console method at a time.
type Console interface {
	// Title prints a heading.
	Title(text string)
	// Print prints text, which may span several lines.
	Print(text string)
	// Prompt shows label and blocks until the player enters a line. It
	// returns io.EOF once input is exhausted.
	Prompt(ctx context.Context, label string) (string, error)
	// Status refreshes the status panel. Line-oriented consoles may ignore it.
	Status(s Status)
}

// Status is the summary shown next to the log.
type Status struct {
	Nickname  string
	Location  string
	Energy    int
	MaxEnergy int
	Immunity  bool
	MoveCount int
	Bench     int
	State     State
}
