package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/pymon/internal/gamedata"
)

type stub string

func (s stub) Nickname() string { return string(s) }

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{West, East},
		{East, West},
		{North, South},
		{South, North},
	}

	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.want {
			t.Errorf("%s.Opposite() = %s, want %s", tt.dir, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"west", " North ", "EAST", "south"} {
		if _, err := ParseDirection(name); err != nil {
			t.Errorf("ParseDirection(%q) returned error: %v", name, err)
		}
	}

	_, err := ParseDirection("up")
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(up) error = %v, want ErrInvalidDirection", err)
	}
}

func TestConnectIsSymmetric(t *testing.T) {
	a := NewLocation("A", "")
	b := NewLocation("B", "")

	a.Connect(West, b)

	if a.Door(West) != b {
		t.Fatalf("A.west = %v, want B", a.Door(West))
	}
	if b.Door(East) != a {
		t.Fatalf("B.east = %v, want A", b.Door(East))
	}
}

func TestConnectDetachesPreviousNeighbours(t *testing.T) {
	a := NewLocation("A", "")
	b := NewLocation("B", "")
	c := NewLocation("C", "")

	a.Connect(North, b)
	a.Connect(North, c)

	if b.Door(South) != nil {
		t.Errorf("B.south should be cleared after A.north was rewired, got %s", b.Door(South).Name)
	}
	if c.Door(South) != a {
		t.Errorf("C.south should point back at A")
	}

	// C's south slot currently belongs to A.
	b.Connect(North, c)
	if a.Door(North) != nil {
		t.Errorf("A.north should be cleared once C.south points at B")
	}
	if c.Door(South) != b || b.Door(North) != c {
		t.Errorf("B and C should be linked")
	}

	b.Connect(North, nil)
	if b.Door(North) != nil || c.Door(South) != nil {
		t.Errorf("closing a door should clear both ends")
	}
}

func TestExitWithoutDoor(t *testing.T) {
	a := NewLocation("A", "")
	if _, err := a.Exit(South); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Exit(south) error = %v, want ErrInvalidDirection", err)
	}
}

func TestCreatureList(t *testing.T) {
	loc := NewLocation("Beach", "")
	a, b := stub("Rocky"), stub("Sheep")
	loc.AddCreature(a)
	loc.AddCreature(b)

	if got := loc.FindCreature("rocky"); got != a {
		t.Errorf("FindCreature(rocky) = %v, want Rocky", got)
	}
	if !loc.RemoveCreature(a) {
		t.Fatal("RemoveCreature(Rocky) = false")
	}
	if loc.RemoveCreature(a) {
		t.Error("second RemoveCreature(Rocky) should report false")
	}
	if len(loc.Creatures) != 1 || loc.Creatures[0] != b {
		t.Errorf("Creatures = %v, want [Sheep]", loc.Creatures)
	}
}

func TestWorldAddRejectsDuplicates(t *testing.T) {
	w := NewWorld()
	if err := w.Add(NewLocation("School", "")); err != nil {
		t.Fatalf("Add(School) returned error: %v", err)
	}
	if err := w.Add(NewLocation("School", "")); err == nil {
		t.Error("duplicate location name should be rejected")
	}
	if err := w.Add(NewLocation("", "")); err == nil {
		t.Error("empty location name should be rejected")
	}
}

func TestTakeItemPrefersID(t *testing.T) {
	w := NewWorld()
	beach := NewLocation("Beach", "")
	school := NewLocation("School", "")
	_ = w.Add(beach)
	_ = w.Add(school)

	first := NewItem("Apple", "", true, true)
	second := NewItem("Apple", "", true, true)
	beach.AddItem(first)
	school.AddItem(second)

	got := w.TakeItem(second.Ref(), beach)
	if got != second {
		t.Fatalf("TakeItem by id returned %v, want the School apple", got)
	}
	if len(school.Items) != 0 {
		t.Errorf("School should be empty after take, has %d items", len(school.Items))
	}

	// Name-only refs prefer the given location.
	third := NewItem("Apple", "", true, true)
	school.AddItem(third)
	got = w.TakeItem(ItemRef{Name: "Apple"}, school)
	if got != third {
		t.Errorf("name-only TakeItem should prefer School")
	}

	if w.TakeItem(ItemRef{Name: "Pear"}, nil) != nil {
		t.Error("TakeItem for a missing item should return nil")
	}
}

func TestTakeItemIDNeverMatchesByName(t *testing.T) {
	w := NewWorld()
	beach := NewLocation("Beach", "")
	_ = w.Add(beach)

	carried := NewItem("Apple", "", true, true)
	other := NewItem("Apple", "", true, true)
	beach.AddItem(other)

	if got := w.TakeItem(carried.Ref(), beach); got != nil {
		t.Errorf("TakeItem by a missing id returned %v, want nil", got)
	}
	if len(beach.Items) != 1 {
		t.Error("the other Apple should stay at Beach")
	}
}

func TestItemRefRoundTrip(t *testing.T) {
	it := NewItem("Magic Potion", "", true, true)
	ref := ParseItemRef(it.Ref().String())
	if ref != it.Ref() {
		t.Errorf("ParseItemRef(%q) = %+v, want %+v", it.Ref().String(), ref, it.Ref())
	}

	plain := ParseItemRef(" Apple ")
	if plain.ID != "" || plain.Name != "Apple" {
		t.Errorf("ParseItemRef(Apple) = %+v", plain)
	}

	odd := ParseItemRef("Room#12")
	if odd.Name != "Room#12" || odd.ID != "" {
		t.Errorf("non-uuid suffix should stay in the name, got %+v", odd)
	}
}

func TestRandomLocationReproducible(t *testing.T) {
	w := NewWorld()
	for _, name := range []string{"A", "B", "C", "D"} {
		_ = w.Add(NewLocation(name, ""))
	}

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		if w.RandomLocation(rng1) != w.RandomLocation(rng2) {
			t.Fatalf("pick %d differs for the same seed", i)
		}
	}

	if NewWorld().RandomLocation(rng1) != nil {
		t.Error("RandomLocation on an empty world should be nil")
	}
}

func TestNewWorldFromDefs(t *testing.T) {
	defs := []gamedata.LocationDef{
		{Name: "School", Description: "a school", Doors: [4]string{"", "", "Playground", ""}},
		{Name: "Playground", Description: "swings", Doors: [4]string{"", "Beach", "", ""}},
		{Name: "Beach", Description: "sand"},
	}

	w, err := NewWorldFromDefs(defs)
	if err != nil {
		t.Fatalf("NewWorldFromDefs returned error: %v", err)
	}
	if w.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", w.Count())
	}

	school, playground, beach := w.Find("School"), w.Find("Playground"), w.Find("Beach")
	if school.Door(East) != playground || playground.Door(West) != school {
		t.Error("School and Playground should be linked both ways")
	}
	if playground.Door(North) != beach || beach.Door(South) != playground {
		t.Error("Playground and Beach should be linked both ways")
	}

	def := LocationDef(playground)
	if def.Doors[West] != "School" || def.Doors[North] != "Beach" || def.Doors[East] != "" {
		t.Errorf("LocationDef(Playground) doors = %v", def.Doors)
	}
}

func TestNewItemFromDefSetsEffect(t *testing.T) {
	apple := NewItemFromDef(gamedata.ItemDef{Name: "Apple", Pickable: true, Consumable: true})
	if gamedata.Effect(apple.Effect) != gamedata.EffectEnergy {
		t.Errorf("apple effect = %q, want %q", apple.Effect, gamedata.EffectEnergy)
	}
	other := NewItemFromDef(gamedata.ItemDef{Name: "Apple"})
	if apple.ID == "" || apple.ID == other.ID {
		t.Error("each item should get its own id")
	}
}

func TestScatterItemsIsReproducible(t *testing.T) {
	defs := []gamedata.ItemDef{{Name: "apple"}, {Name: "tree"}, {Name: "binocular"}}
	build := func() []string {
		w := NewWorld()
		for _, name := range []string{"A", "B", "C", "D"} {
			_ = w.Add(NewLocation(name, ""))
		}
		w.ScatterItems(defs, rand.New(rand.NewSource(3)))
		var where []string
		for _, p := range w.AllItems() {
			where = append(where, p.Item.Name+"@"+p.Location.Name)
		}
		return where
	}

	first, second := build(), build()
	if len(first) != 3 {
		t.Fatalf("placed %d items, want 3", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("placement differs with the same seed: %v vs %v", first, second)
			break
		}
	}
}
