package combat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/pymon/internal/gamedata"
)

// mockCombatant implements Combatant for testing.
type mockCombatant struct {
	name     string
	energy   int
	immunity bool
	items    []string
	history  []BattleRecord
}

func (m *mockCombatant) GetName() string { return m.name }
func (m *mockCombatant) GetEnergy() int  { return m.energy }
func (m *mockCombatant) DrainEnergy(amount int) int {
	if amount > m.energy {
		amount = m.energy
	}
	m.energy -= amount
	return amount
}
func (m *mockCombatant) HasImmunity() bool { return m.immunity }
func (m *mockCombatant) ConsumeImmunity() bool {
	had := m.immunity
	m.immunity = false
	return had
}
func (m *mockCombatant) DiscardItem(name string) bool {
	for i, it := range m.items {
		if strings.EqualFold(it, name) {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}
func (m *mockCombatant) RecordBattle(rec BattleRecord) { m.history = append(m.history, rec) }

// mockTarget implements Target for testing.
type mockTarget struct {
	name       string
	capturable bool
	captured   bool
}

func (m *mockTarget) Nickname() string { return m.name }
func (m *mockTarget) Capturable() bool { return m.capturable }
func (m *mockTarget) Capture() error {
	if !m.capturable {
		return ErrCaptureNotAllowed
	}
	m.captured = true
	return nil
}

// scripted replays a fixed sequence of hands.
type scripted struct {
	hands []Symbol
	err   error
}

func (s *scripted) NextSymbol(ctx context.Context) (Symbol, error) {
	if len(s.hands) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, errors.New("script exhausted")
	}
	h := s.hands[0]
	s.hands = s.hands[1:]
	return h, nil
}

// always makes the opponent throw the same hand every round.
func always(s Symbol) OpponentFunc {
	return func() Symbol { return s }
}

var fixedTime = time.Date(2024, 10, 22, 14, 3, 0, 0, time.UTC)

func newTestResolver(opponent OpponentFunc) *Resolver {
	return NewResolver(opponent).WithClock(func() time.Time { return fixedTime })
}

func TestJudge(t *testing.T) {
	tests := []struct {
		attacker, opponent Symbol
		expected           Outcome
	}{
		{Rock, Rock, Draw},
		{Rock, Paper, Lose},
		{Rock, Scissors, Win},
		{Paper, Rock, Win},
		{Paper, Paper, Draw},
		{Paper, Scissors, Lose},
		{Scissors, Rock, Lose},
		{Scissors, Paper, Win},
		{Scissors, Scissors, Draw},
	}

	for _, tt := range tests {
		if got := Judge(tt.attacker, tt.opponent); got != tt.expected {
			t.Errorf("Judge(%s, %s) = %s, want %s", tt.attacker, tt.opponent, got, tt.expected)
		}
	}
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected Symbol
		wantErr  bool
	}{
		{"r", Rock, false},
		{"Rock", Rock, false},
		{" p ", Paper, false},
		{"s", Scissors, false},
		{"scissor", Scissors, false},
		{"lizard", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSymbol(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSymbol(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("ParseSymbol(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestChallengeCapturesAfterTwoWins(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	src := &scripted{hands: []Symbol{Paper, Rock, Paper}}

	var rounds []Round
	result, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, src, func(r Round) {
		rounds = append(rounds, r)
	})
	if err != nil {
		t.Fatalf("Challenge returned error: %v", err)
	}

	// paper beats rock, rock draws, paper beats rock.
	if len(rounds) != 3 {
		t.Fatalf("played %d rounds, want 3", len(rounds))
	}
	rec := result.Record
	if rec.Wins != 2 || rec.Draws != 1 || rec.Losses != 0 {
		t.Errorf("record = %d/%d/%d, want 2/1/0", rec.Wins, rec.Draws, rec.Losses)
	}
	if result.Captured != defender || !defender.captured {
		t.Error("defender should be captured")
	}
	if attacker.energy != 3 {
		t.Errorf("attacker energy = %d, want 3", attacker.energy)
	}
	if len(attacker.history) != 1 || attacker.history[0].Opponent != "Kitimon" || !attacker.history[0].Timestamp.Equal(fixedTime) {
		t.Errorf("history = %+v, want one record against Kitimon at the fixed time", attacker.history)
	}
}

func TestChallengeStopsAfterTwoLosses(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	src := &scripted{hands: []Symbol{Scissors, Scissors, Scissors}}

	result, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, src, nil)
	if err != nil {
		t.Fatalf("Challenge returned error: %v", err)
	}
	if result.Record.Losses != 2 {
		t.Errorf("losses = %d, want 2", result.Record.Losses)
	}
	if len(src.hands) != 1 {
		t.Errorf("match should stop after two losses, %d hands left", len(src.hands))
	}
	if attacker.energy != 1 {
		t.Errorf("attacker energy = %d, want 1", attacker.energy)
	}
	if result.Captured != nil || defender.captured {
		t.Error("defender should not be captured")
	}
}

func TestChallengeStopsAtZeroEnergy(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 1}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	src := &scripted{hands: []Symbol{Scissors, Scissors}}

	result, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, src, nil)
	if err != nil {
		t.Fatalf("Challenge returned error: %v", err)
	}
	if result.Record.Losses != 1 || attacker.energy != 0 {
		t.Errorf("losses = %d energy = %d, want 1 and 0", result.Record.Losses, attacker.energy)
	}
	if len(attacker.history) != 1 {
		t.Errorf("a match ending on energy should still be recorded")
	}
}

func TestImmunityAbsorbsExactlyOneLoss(t *testing.T) {
	attacker := &mockCombatant{
		name:     "Kimimon",
		energy:   3,
		immunity: true,
		items:    []string{"apple", "Magic Potion"},
	}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	src := &scripted{hands: []Symbol{Scissors, Scissors}}

	var rounds []Round
	result, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, src, func(r Round) {
		rounds = append(rounds, r)
	})
	if err != nil {
		t.Fatalf("Challenge returned error: %v", err)
	}

	if !rounds[0].Shielded || rounds[0].Energy != 3 {
		t.Errorf("first loss should be shielded at energy 3, got %+v", rounds[0])
	}
	if rounds[1].Shielded || rounds[1].Energy != 2 {
		t.Errorf("second loss should cost energy, got %+v", rounds[1])
	}
	if !result.ImmunityUsed || attacker.immunity {
		t.Error("immunity should be used up")
	}
	if len(attacker.items) != 1 || attacker.items[0] != "apple" {
		t.Errorf("%s should be discarded after the battle, items = %v", gamedata.ImmunityItem, attacker.items)
	}
}

func TestUnusedImmunityKeepsPotion(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3, immunity: true, items: []string{"magic potion"}}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	src := &scripted{hands: []Symbol{Paper, Paper}}

	result, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, src, nil)
	if err != nil {
		t.Fatalf("Challenge returned error: %v", err)
	}
	if result.ImmunityUsed || !attacker.immunity || len(attacker.items) != 1 {
		t.Error("immunity and potion should survive a match without losses")
	}
}

func TestEachMatchStartsFromZero(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3}
	r := newTestResolver(always(Rock))

	first := &mockTarget{name: "Marimon", capturable: true}
	if _, err := r.Challenge(context.Background(), attacker, first, &scripted{hands: []Symbol{Rock, Scissors, Paper, Paper}}, nil); err != nil {
		t.Fatalf("first Challenge returned error: %v", err)
	}
	second := &mockTarget{name: "Kitimon", capturable: true}
	result, err := r.Challenge(context.Background(), attacker, second, &scripted{hands: []Symbol{Paper, Paper}}, nil)
	if err != nil {
		t.Fatalf("second Challenge returned error: %v", err)
	}

	if result.Record.Wins != 2 || result.Record.Draws != 0 || result.Record.Losses != 0 {
		t.Errorf("second record = %+v, want a fresh 2/0/0", result.Record)
	}
	if len(attacker.history) != 2 {
		t.Fatalf("history length = %d, want 2", len(attacker.history))
	}
	if h := attacker.history[0]; h.Wins != 2 || h.Draws != 1 || h.Losses != 1 {
		t.Errorf("first record = %+v, want 2/1/1", h)
	}
}

func TestChallengeRejectsAnimals(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3}
	defender := &mockTarget{name: "Sheep"}

	_, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, &scripted{}, nil)
	if !errors.Is(err, ErrCaptureNotAllowed) {
		t.Errorf("Challenge(animal) error = %v, want ErrCaptureNotAllowed", err)
	}
	if len(attacker.history) != 0 {
		t.Error("rejected challenge should not be recorded")
	}
}

func TestChallengeAbortsOnSourceError(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	quit := errors.New("input closed")

	_, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, &scripted{hands: []Symbol{Paper}, err: quit}, nil)
	if !errors.Is(err, quit) {
		t.Fatalf("Challenge error = %v, want %v", err, quit)
	}
	if len(attacker.history) != 0 || defender.captured {
		t.Error("aborted match should leave no record and no capture")
	}
}

func TestChallengeAbortAfterShieldedLossDiscardsPotion(t *testing.T) {
	attacker := &mockCombatant{name: "Kimimon", energy: 3, immunity: true, items: []string{"apple", "Magic Potion"}}
	defender := &mockTarget{name: "Kitimon", capturable: true}
	quit := errors.New("input closed")

	// Scissors loses to Rock, then input ends.
	src := &scripted{hands: []Symbol{Scissors}, err: quit}
	_, err := newTestResolver(always(Rock)).Challenge(context.Background(), attacker, defender, src, nil)
	if !errors.Is(err, quit) {
		t.Fatalf("Challenge error = %v, want %v", err, quit)
	}
	if attacker.immunity {
		t.Error("immunity should be used up by the shielded loss")
	}
	if len(attacker.items) != 1 || attacker.items[0] != "apple" {
		t.Errorf("items = %v, want the potion gone with the immunity", attacker.items)
	}
	if attacker.energy != 3 {
		t.Errorf("energy = %d, shielded loss should cost nothing", attacker.energy)
	}
}
