package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/entity"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/world"
)

// reservedChars are kept out of typed descriptions as well as names.
const reservedChars = gamedata.ReservedNameChars

// ErrReservedChar is returned for names or descriptions that could not be saved.
var ErrReservedChar = errors.New("names and descriptions may not contain any of , ; | # [ ] =")

func checkText(field, s string, required bool) error {
	if required && strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if strings.ContainsAny(s, reservedChars) {
		return fmt.Errorf("%s: %w", field, ErrReservedChar)
	}
	return nil
}

// AddLocation adds a location with doors to existing locations. Every door
// is connected both ways, replacing whatever the target had on that side.
// Nothing changes unless every door is valid.
func (g *Game) AddLocation(name, description string, doors [4]string) (*world.Location, error) {
	if err := checkText("location name", name, true); err != nil {
		return nil, err
	}
	if err := checkText("description", description, false); err != nil {
		return nil, err
	}
	if g.world.Find(name) != nil {
		return nil, fmt.Errorf("location %s already exists", name)
	}

	var targets [4]*world.Location
	open := 0
	for _, d := range world.Directions {
		if doors[d] == "" {
			continue
		}
		to := g.world.Find(doors[d])
		if to == nil {
			return nil, fmt.Errorf("%s door leads to unknown location %s", d, doors[d])
		}
		targets[d] = to
		open++
	}
	if open == 0 {
		return nil, fmt.Errorf("a new location needs at least one door")
	}

	loc := world.NewLocation(name, description)
	if err := g.world.Add(loc); err != nil {
		return nil, err
	}
	for _, d := range world.Directions {
		if targets[d] != nil {
			loc.Connect(d, targets[d])
		}
	}

	g.log.Info("location added", zap.String("name", name), zap.Int("doors", open))
	if g.cfg.LocationsFile != "" {
		if err := gamedata.AppendLine(g.cfg.LocationsFile, gamedata.FormatLocation(world.LocationDef(loc))); err != nil {
			g.log.Warn("location not written", zap.String("file", g.cfg.LocationsFile), zap.Error(err))
			return loc, err
		}
	}
	return loc, nil
}

// AddCreature adds a wild creature at a random location.
func (g *Game) AddCreature(def gamedata.CreatureDef) (entity.Creature, error) {
	if err := checkText("nickname", def.Nickname, true); err != nil {
		return nil, err
	}
	if err := checkText("description", def.Description, false); err != nil {
		return nil, err
	}
	if g.nicknameTaken(def.Nickname) {
		return nil, fmt.Errorf("creature nickname must be unique: %s", def.Nickname)
	}

	c := entity.NewCreatureFromDef(def)
	if err := g.registry.Add(c); err != nil {
		return nil, err
	}
	entity.Place(c, g.world.RandomLocation(g.rng))

	g.log.Info("creature added", zap.String("nickname", def.Nickname), zap.Bool("adoptable", def.Adoptable))
	if g.cfg.CreaturesFile != "" {
		if err := gamedata.AppendLine(g.cfg.CreaturesFile, gamedata.FormatCreature(def)); err != nil {
			g.log.Warn("creature not written", zap.String("file", g.cfg.CreaturesFile), zap.Error(err))
			return c, err
		}
	}
	return c, nil
}

func (g *Game) nicknameTaken(nickname string) bool {
	if g.registry.GetByNickname(nickname) != nil || strings.EqualFold(g.active.Nickname(), nickname) {
		return true
	}
	for _, e := range g.bench.Entries {
		if strings.EqualFold(e.Nickname, nickname) {
			return true
		}
	}
	return false
}

func (g *Game) cmdAddLocation(ctx context.Context) error {
	name, err := g.ask(ctx, "Enter location name")
	if err != nil {
		return err
	}
	desc, err := g.ask(ctx, "Enter location description")
	if err != nil {
		return err
	}

	var doors [4]string
	for _, d := range world.Directions {
		target, err := g.ask(ctx, fmt.Sprintf("Location to the %s (Enter for none)", d))
		if err != nil {
			return err
		}
		if !strings.EqualFold(target, "none") {
			doors[d] = target
		}
	}

	loc, err := g.AddLocation(name, desc, doors)
	if loc == nil {
		return err
	}
	g.printf("Location %s added.", loc.Name)
	return err
}

func (g *Game) cmdAddCreature(ctx context.Context) error {
	nick, err := g.ask(ctx, "Enter creature nickname")
	if err != nil {
		return err
	}
	desc, err := g.ask(ctx, "Enter creature description")
	if err != nil {
		return err
	}
	raw, err := g.ask(ctx, "Is this creature adoptable? (yes/no)")
	if err != nil {
		return err
	}
	adoptable, ok := gamedata.ParseYesNo(raw)
	if !ok {
		return fmt.Errorf("please answer yes or no")
	}

	c, err := g.AddCreature(gamedata.CreatureDef{Nickname: nick, Description: desc, Adoptable: adoptable})
	if c == nil {
		return err
	}
	g.printf("%s %s added somewhere in the world.", c.Kind(), c.Nickname())
	return err
}
