// Package combat provides the rock-paper-scissors battle system.
package combat

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/samdwyer/pymon/internal/gamedata"
)

const (
	// WinsToCapture ends a match with a capture.
	WinsToCapture = 2
	// LossesToFlee ends a match with the defender unaffected.
	LossesToFlee = 2
)

// ErrCaptureNotAllowed is returned when the defender cannot be battled or captured.
var ErrCaptureNotAllowed = errors.New("animals cannot be captured or added to the bench, only Pymons can be captured in battle")

// Combatant is the challenging side of a match. The active unit implements it.
type Combatant interface {
	GetName() string
	GetEnergy() int
	DrainEnergy(amount int) int // Returns actual energy lost
	HasImmunity() bool
	ConsumeImmunity() bool
	DiscardItem(name string) bool
	RecordBattle(rec BattleRecord)
}

// Target is the challenged side of a match.
type Target interface {
	Nickname() string
	Capturable() bool
	Capture() error // Takes the target off the map
}

// SymbolSource supplies the attacker's hand for each round. It blocks on
// player input in the interactive game.
type SymbolSource interface {
	NextSymbol(ctx context.Context) (Symbol, error)
}

// OpponentFunc supplies the defender's hand.
type OpponentFunc func() Symbol

// RandomOpponent picks uniformly among the three hands.
func RandomOpponent(rng *rand.Rand) OpponentFunc {
	return func() Symbol {
		return Symbols[rng.Intn(len(Symbols))]
	}
}

// BattleRecord is the tally of one match. It is not cumulative.
type BattleRecord struct {
	Timestamp time.Time
	Opponent  string
	Wins      int
	Draws     int
	Losses    int
}

// Round describes what happened in one round.
type Round struct {
	Attacker Symbol
	Opponent Symbol
	Outcome  Outcome
	Shielded bool // Loss absorbed by immunity
	Energy   int  // Attacker energy after the round
}

// MatchResult is the outcome of a full match.
type MatchResult struct {
	Record       BattleRecord
	ImmunityUsed bool
	Captured     Target // Nil unless the attacker reached WinsToCapture
}

// Resolver runs matches.
type Resolver struct {
	opponent OpponentFunc
	now      func() time.Time
}

// NewResolver creates a resolver. A nil opponent falls back to a time-seeded random one.
func NewResolver(opponent OpponentFunc) *Resolver {
	if opponent == nil {
		opponent = RandomOpponent(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return &Resolver{
		opponent: opponent,
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source for battle records.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Challenge plays rounds until the attacker has WinsToCapture wins,
// LossesToFlee losses, or no energy left. The first loss while immune
// costs no energy and uses the immunity up along with its potion. onRound
// may be nil.
//
// A SymbolSource error aborts the match: no record is written and nothing
// is captured, but energy or immunity already spent stays spent.
func (r *Resolver) Challenge(ctx context.Context, attacker Combatant, defender Target, src SymbolSource, onRound func(Round)) (MatchResult, error) {
	if !defender.Capturable() {
		return MatchResult{}, ErrCaptureNotAllowed
	}

	var result MatchResult
	rec := &result.Record
	rec.Opponent = defender.Nickname()

	for rec.Wins < WinsToCapture && rec.Losses < LossesToFlee && attacker.GetEnergy() > 0 {
		hand, err := src.NextSymbol(ctx)
		if err != nil {
			return MatchResult{}, err
		}

		round := Round{Attacker: hand, Opponent: r.opponent()}
		round.Outcome = Judge(round.Attacker, round.Opponent)

		switch round.Outcome {
		case Win:
			rec.Wins++
		case Lose:
			rec.Losses++
			if attacker.HasImmunity() {
				attacker.ConsumeImmunity()
				attacker.DiscardItem(gamedata.ImmunityItem)
				result.ImmunityUsed = true
				round.Shielded = true
			} else {
				attacker.DrainEnergy(1)
			}
		case Draw:
			rec.Draws++
		}

		round.Energy = attacker.GetEnergy()
		if onRound != nil {
			onRound(round)
		}
	}

	rec.Timestamp = r.now()
	attacker.RecordBattle(*rec)

	if rec.Wins >= WinsToCapture {
		if err := defender.Capture(); err != nil {
			return result, err
		}
		result.Captured = defender
	}

	return result, nil
}
