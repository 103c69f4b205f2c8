package persistence

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/telemetry"
	"github.com/samdwyer/pymon/internal/world"
)

// Load reads a session from path. On any error nothing is returned, so the
// caller's current session stays as it was.
func Load(ctx context.Context, path string) (*Session, error) {
	_, span := telemetry.Tracer("persistence").Start(ctx, "save.read")
	defer span.End()
	span.SetAttributes(attribute.String("save.path", path))

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		return nil, &GameError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		span.RecordError(err)
		ge := &GameError{Op: "load", Path: path, Err: err}
		var le *lineError
		if errors.As(err, &le) {
			ge.Line, ge.Err = le.line, le.err
		}
		return nil, ge
	}

	span.SetAttributes(
		attribute.Int("save.locations", s.World.Count()),
		attribute.Int("save.bench", s.Bench.Len()),
	)
	return s, nil
}

// lineError ties a decode failure to a line of the file.
type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string { return fmt.Sprintf("line %d: %v", e.line, e.err) }
func (e *lineError) Unwrap() error { return e.err }

func errorf(line int, format string, args ...any) error {
	return &lineError{line: line, err: fmt.Errorf(format, args...)}
}

type sourceLine struct {
	n    int
	text string
}

type section struct {
	header int
	lines  []sourceLine
}

// Decode parses a save file. Locations are built in two passes: every
// location first, then the doors by name.
func Decode(r io.Reader) (*Session, error) {
	sections, err := splitSections(r)
	if err != nil {
		return nil, err
	}

	d := &decoder{}
	steps := []struct {
		name string
		fn   func(*section) error
	}{
		{SectionLocations, d.locations},
		{SectionItems, d.items},
		{SectionCreatures, d.creatures},
		{SectionUser, d.user},
		{SectionBench, d.bench},
	}
	for _, step := range steps {
		if err := step.fn(sections[step.name]); err != nil {
			return nil, err
		}
	}
	if len(d.loose) > 0 {
		return nil, fmt.Errorf("item %s lies nowhere and is carried by no one", d.loose[0].Name)
	}
	return &Session{World: d.w, Registry: d.reg, Active: d.active, Bench: d.b}, nil
}

func splitSections(r io.Reader) (map[string]*section, error) {
	sections := make(map[string]*section, len(sectionOrder))
	var current *section
	next := 0

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			name := strings.TrimSpace(text[1 : len(text)-1])
			idx := sectionIndex(name)
			if idx < 0 {
				return nil, errorf(n, "unknown section [%s]", name)
			}
			if _, dup := sections[name]; dup {
				return nil, errorf(n, "section [%s] appears twice", name)
			}
			if idx != next {
				return nil, errorf(n, "section [%s] out of order, expected [%s]", name, sectionOrder[next])
			}
			next++
			current = &section{header: n}
			sections[name] = current
			continue
		}
		if current == nil {
			return nil, errorf(n, "data before the first section")
		}
		current.lines = append(current.lines, sourceLine{n: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, name := range sectionOrder {
		if _, ok := sections[name]; !ok {
			return nil, fmt.Errorf("missing section [%s]", name)
		}
	}
	return sections, nil
}

// sectionIndex returns the position of name in sectionOrder, or -1.
func sectionIndex(name string) int {
	for i, s := range sectionOrder {
		if s == name {
			return i
		}
	}
	return -1
}

// fields splits l and checks it has exactly want fields.
func fields(l sourceLine, want int) ([]string, error) {
	f, err := gamedata.SplitFields(l.text)
	if err != nil {
		return nil, errorf(l.n, "%v", err)
	}
	if len(f) != want {
		return nil, errorf(l.n, "expected %d fields, got %d", want, len(f))
	}
	return f, nil
}

type decoder struct {
	w      *world.World
	reg    *entity.Registry
	active *entity.Pymon
	b      *entity.Bench
	loose  []*world.Item // Items saved without a location, claimable by the active unit
}

func (d *decoder) locations(sec *section) error {
	if len(sec.lines) == 0 {
		return errorf(sec.header, "no locations")
	}

	defs := make([]gamedata.LocationDef, len(sec.lines))
	d.w = world.NewWorld()
	for i, l := range sec.lines {
		f, err := gamedata.SplitFields(l.text)
		if err != nil {
			return errorf(l.n, "%v", err)
		}
		def, err := gamedata.ParseLocationFields(f)
		if err != nil {
			return errorf(l.n, "%v", err)
		}
		if err := d.w.Add(world.NewLocation(def.Name, def.Description)); err != nil {
			return errorf(l.n, "%v", err)
		}
		defs[i] = def
	}

	for i, def := range defs {
		from := d.w.Find(def.Name)
		for _, dir := range world.Directions {
			target := def.Doors[dir]
			if target == "" {
				continue
			}
			to := d.w.Find(target)
			if to == nil {
				return errorf(sec.lines[i].n, "%s door leads to unknown location %s", dir, target)
			}
			from.SetDoor(dir, to)
		}
	}
	return nil
}

func (d *decoder) location(l sourceLine, name string, allowNone bool) (*world.Location, error) {
	if name == none {
		if allowNone {
			return nil, nil
		}
		return nil, errorf(l.n, "location is required")
	}
	loc := d.w.Find(name)
	if loc == nil {
		return nil, errorf(l.n, "unknown location %s", name)
	}
	return loc, nil
}

func (d *decoder) items(sec *section) error {
	seen := make(map[string]bool, len(sec.lines))
	for _, l := range sec.lines {
		f, err := fields(l, 6)
		if err != nil {
			return err
		}
		id, err := uuid.Parse(f[0])
		if err != nil {
			return errorf(l.n, "bad item id %q", f[0])
		}
		if seen[id.String()] {
			return errorf(l.n, "duplicate item id %s", id)
		}
		seen[id.String()] = true

		pickable, ok1 := gamedata.ParseYesNo(f[3])
		consumable, ok2 := gamedata.ParseYesNo(f[4])
		if !ok1 || !ok2 {
			return errorf(l.n, "item flags must be yes or no")
		}
		it := &world.Item{
			ID:          id.String(),
			Name:        f[1],
			Description: f[2],
			Pickable:    pickable,
			Consumable:  consumable,
			Effect:      string(gamedata.EffectFor(f[1])),
		}

		loc, err := d.location(l, f[5], true)
		if err != nil {
			return err
		}
		if loc == nil {
			d.loose = append(d.loose, it)
			continue
		}
		loc.AddItem(it)
	}
	return nil
}

func (d *decoder) creatures(sec *section) error {
	d.reg = entity.NewRegistry()
	for _, l := range sec.lines {
		f, err := fields(l, 4)
		if err != nil {
			return err
		}
		adoptable, ok := gamedata.ParseYesNo(f[2])
		if !ok {
			return errorf(l.n, "adoptable must be yes or no, got %q", f[2])
		}
		c := entity.NewCreatureFromDef(gamedata.CreatureDef{Nickname: f[0], Description: f[1], Adoptable: adoptable})
		if err := d.reg.Add(c); err != nil {
			return errorf(l.n, "%v", err)
		}
		loc, err := d.location(l, f[3], true)
		if err != nil {
			return err
		}
		entity.Place(c, loc)
	}
	return nil
}

func (d *decoder) user(sec *section) error {
	if len(sec.lines) < userFixedLen {
		return errorf(sec.header, "expected at least %d lines, got %d", userFixedLen, len(sec.lines))
	}
	lines := sec.lines

	id, err := fields(lines[0], 2)
	if err != nil {
		return err
	}
	at, err := fields(lines[1], 1)
	if err != nil {
		return err
	}
	loc, err := d.location(lines[1], at[0], false)
	if err != nil {
		return err
	}
	raw, err := fields(lines[2], 3)
	if err != nil {
		return err
	}
	stats, err := parseStats(lines[2], raw[0], raw[1], raw[2])
	if err != nil {
		return err
	}
	refs, err := fields(lines[3], 1)
	if err != nil {
		return err
	}

	for _, l := range lines[userFixedLen:] {
		f, err := fields(l, 5)
		if err != nil {
			return err
		}
		rec, err := parseRecord(f)
		if err != nil {
			return errorf(l.n, "%v", err)
		}
		stats.History = append(stats.History, rec)
	}

	p := entity.NewPymon(id[0], id[1])
	p.SetLocation(loc)
	p.SetStats(stats)
	for _, ref := range parseRefs(refs[0]) {
		it := d.claim(ref, loc)
		if it == nil {
			return errorf(lines[3].n, "inventory item %s not found", ref.Name)
		}
		p.Inventory = append(p.Inventory, it)
	}
	d.active = p
	return nil
}

// claim takes the referenced item from the loose pool or the world.
func (d *decoder) claim(ref world.ItemRef, prefer *world.Location) *world.Item {
	for i, it := range d.loose {
		if (ref.ID != "" && it.ID == ref.ID) || (ref.ID == "" && it.Name == ref.Name) {
			d.loose = append(d.loose[:i], d.loose[i+1:]...)
			return it
		}
	}
	return d.w.TakeItem(ref, prefer)
}

func (d *decoder) bench(sec *section) error {
	d.b = entity.NewBench()
	for _, l := range sec.lines {
		f, err := fields(l, 7)
		if err != nil {
			return err
		}
		stats, err := parseStats(l, f[2], f[3], f[4])
		if err != nil {
			return err
		}
		history, err := parseHistory(f[6])
		if err != nil {
			return errorf(l.n, "%v", err)
		}
		stats.History = history
		d.b.Entries = append(d.b.Entries, entity.BenchEntry{
			Nickname:    f[0],
			Description: f[1],
			Stats:       stats,
			Inventory:   parseRefs(f[5]),
		})
	}
	return nil
}

func parseStats(l sourceLine, energy, immunity, moves string) (entity.Stats, error) {
	e, err := strconv.Atoi(energy)
	if err != nil || e < 0 || e > entity.MaxEnergy {
		return entity.Stats{}, errorf(l.n, "energy must be 0 to %d, got %q", entity.MaxEnergy, energy)
	}
	immune, ok := gamedata.ParseYesNo(immunity)
	if !ok {
		return entity.Stats{}, errorf(l.n, "immunity must be yes or no, got %q", immunity)
	}
	m, err := strconv.Atoi(moves)
	if err != nil || m < 0 {
		return entity.Stats{}, errorf(l.n, "bad move count %q", moves)
	}
	return entity.Stats{Energy: e, Immunity: immune, MoveCount: m, History: []combat.BattleRecord{}}, nil
}

func parseRecord(f []string) (combat.BattleRecord, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(f[0]))
	if err != nil {
		return combat.BattleRecord{}, fmt.Errorf("bad timestamp %q", f[0])
	}
	var counts [3]int
	for i, raw := range f[2:5] {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return combat.BattleRecord{}, fmt.Errorf("bad battle count %q", raw)
		}
		counts[i] = n
	}
	return combat.BattleRecord{
		Timestamp: ts,
		Opponent:  strings.TrimSpace(f[1]),
		Wins:      counts[0],
		Draws:     counts[1],
		Losses:    counts[2],
	}, nil
}

func parseHistory(s string) ([]combat.BattleRecord, error) {
	history := []combat.BattleRecord{}
	if s == none || s == "" {
		return history, nil
	}
	for _, raw := range strings.Split(s, listSep) {
		f := strings.Split(raw, recordSep)
		if len(f) != 5 {
			return nil, fmt.Errorf("battle record %q: expected 5 fields, got %d", raw, len(f))
		}
		rec, err := parseRecord(f)
		if err != nil {
			return nil, err
		}
		history = append(history, rec)
	}
	return history, nil
}

func parseRefs(s string) []world.ItemRef {
	refs := []world.ItemRef{}
	if s == none || s == "" {
		return refs
	}
	for _, raw := range strings.Split(s, listSep) {
		if raw = strings.TrimSpace(raw); raw != "" {
			refs = append(refs, world.ParseItemRef(raw))
		}
	}
	return refs
}
