package persistence

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pymon/internal/combat"
	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/telemetry"
	"github.com/samdwyer/pymon/internal/world"
)

// Save writes s to path. The file is written next to path under a temporary
// name and renamed into place, so an existing save survives a failed write.
func Save(ctx context.Context, path string, s *Session) error {
	_, span := telemetry.Tracer("persistence").Start(ctx, "save.write")
	defer span.End()
	span.SetAttributes(attribute.String("save.path", path))

	if s == nil || s.World == nil || s.Active == nil {
		return &GameError{Op: "save", Path: path, Err: fmt.Errorf("no game in progress")}
	}

	var buf bytes.Buffer
	Encode(&buf, s)

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		span.RecordError(err)
		return &GameError{Op: "save", Path: path, Err: err}
	}
	span.SetAttributes(attribute.Int("save.bytes", buf.Len()))
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name) // No-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(name, path)
}

// Encode renders s in the save format.
func Encode(buf *bytes.Buffer, s *Session) {
	line := func(fields ...string) {
		buf.WriteString(gamedata.JoinFields(fields...))
		buf.WriteByte('\n')
	}
	header := func(name string) {
		buf.WriteString("[" + name + "]\n")
	}

	active := s.Active
	activeAt := locationName(active.Location())

	header(SectionItems)
	for _, p := range s.World.AllItems() {
		line(itemFields(p.Item, p.Location.Name)...)
	}
	// Carried items are saved where their carrier stands and picked back up on load.
	for _, it := range active.Inventory {
		line(itemFields(it, activeAt)...)
	}

	header(SectionLocations)
	for _, loc := range s.World.Locations {
		buf.WriteString(gamedata.FormatLocation(world.LocationDef(loc)))
		buf.WriteByte('\n')
	}

	header(SectionCreatures)
	if s.Registry != nil {
		for _, c := range s.Registry.All() {
			line(c.Nickname(), c.Description(), gamedata.YesNo(c.Kind() == entity.KindPymon), locationName(c.Location()))
		}
	}

	header(SectionUser)
	stats := active.Stats()
	line(active.Nickname(), active.Description())
	line(activeAt)
	line(strconv.Itoa(stats.Energy), gamedata.YesNo(stats.Immunity), strconv.Itoa(stats.MoveCount))
	line(formatRefs(world.Refs(active.Inventory)))
	for _, rec := range stats.History {
		line(recordFields(rec)...)
	}

	header(SectionBench)
	if s.Bench != nil {
		for _, e := range s.Bench.Entries {
			line(
				e.Nickname,
				e.Description,
				strconv.Itoa(e.Stats.Energy),
				gamedata.YesNo(e.Stats.Immunity),
				strconv.Itoa(e.Stats.MoveCount),
				formatRefs(e.Inventory),
				formatHistory(e.Stats.History),
			)
		}
	}
}

func itemFields(it *world.Item, at string) []string {
	return []string{it.ID, it.Name, it.Description, gamedata.YesNo(it.Pickable), gamedata.YesNo(it.Consumable), at}
}

func recordFields(rec combat.BattleRecord) []string {
	return []string{
		rec.Timestamp.Format(time.RFC3339),
		rec.Opponent,
		strconv.Itoa(rec.Wins),
		strconv.Itoa(rec.Draws),
		strconv.Itoa(rec.Losses),
	}
}

func locationName(loc *world.Location) string {
	if loc == nil {
		return none
	}
	return loc.Name
}

func formatRefs(refs []world.ItemRef) string {
	if len(refs) == 0 {
		return none
	}
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.String()
	}
	return strings.Join(parts, listSep)
}

func formatHistory(history []combat.BattleRecord) string {
	if len(history) == 0 {
		return none
	}
	parts := make([]string, len(history))
	for i, rec := range history {
		parts[i] = strings.Join(recordFields(rec), recordSep)
	}
	return strings.Join(parts, listSep)
}
