package gamedata

import (
	"fmt"
	"io"
	"strings"
)

// doorNames are the door slots in file order.
var doorNames = [...]string{"west", "north", "east", "south"}

// LocationDef defines a location read from the locations file.
// Door targets are location names; empty means no door.
type LocationDef struct {
	Name        string
	Description string
	Doors       [4]string // west, north, east, south
}

// Door returns the target for the named slot, or "" when closed or unknown.
func (d LocationDef) Door(direction string) string {
	for i, name := range doorNames {
		if name == direction {
			return d.Doors[i]
		}
	}
	return ""
}

// ParseLocations reads lines of the form
//
//	name, description, west = X, north = X, east = X, south = X
//
// where X is a location name or None. Door tokens may omit "key =" and are
// then taken in west, north, east, south order.
func ParseLocations(r io.Reader, file string) ([]LocationDef, error) {
	records, err := readRecords(r, file, "name", "location")
	if err != nil {
		return nil, err
	}

	defs := make([]LocationDef, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		def, err := ParseLocationFields(rec.fields)
		if err != nil {
			return nil, &FormatError{File: file, Line: rec.line, Reason: err.Error()}
		}
		if seen[def.Name] {
			return nil, &FormatError{File: file, Line: rec.line, Reason: "duplicate location " + def.Name}
		}
		seen[def.Name] = true
		defs = append(defs, def)
	}

	// Door targets can only be checked once every name is known.
	for _, def := range defs {
		for i, target := range def.Doors {
			if target != "" && !seen[target] {
				return nil, &FormatError{File: file,
					Reason: fmt.Sprintf("%s: %s door leads to unknown location %s", def.Name, doorNames[i], target)}
			}
		}
	}
	return defs, nil
}

// ParseLocationFields builds a definition from the six fields of one
// locations line. Door targets are not checked.
func ParseLocationFields(fields []string) (LocationDef, error) {
	if len(fields) != 2+len(doorNames) {
		return LocationDef{}, fmt.Errorf("expected %d fields, got %d", 2+len(doorNames), len(fields))
	}
	def := LocationDef{Name: fields[0], Description: fields[1]}
	if def.Name == "" {
		return LocationDef{}, fmt.Errorf("location name is empty")
	}
	if err := CheckName(def.Name); err != nil {
		return LocationDef{}, err
	}
	for i, token := range fields[2:] {
		slot, target, err := parseDoor(token, i)
		if err != nil {
			return LocationDef{}, err
		}
		def.Doors[slot] = target
	}
	return def, nil
}

// parseDoor reads "west = Beach", "west=None" or a bare positional "Beach".
func parseDoor(token string, position int) (int, string, error) {
	key, value, found := strings.Cut(token, "=")
	slot := position
	if found {
		key = strings.ToLower(strings.TrimSpace(key))
		slot = -1
		for i, name := range doorNames {
			if name == key {
				slot = i
			}
		}
		if slot < 0 {
			return 0, "", fmt.Errorf("unknown direction %q", key)
		}
		token = value
	}
	target := strings.TrimSpace(token)
	if strings.EqualFold(target, "none") {
		target = ""
	}
	return slot, target, nil
}

// FormatLocation renders a locations-file line.
func FormatLocation(def LocationDef) string {
	parts := []string{def.Name, def.Description}
	for i, name := range doorNames {
		target := def.Doors[i]
		if target == "" {
			target = "None"
		}
		parts = append(parts, name+" = "+target)
	}
	return JoinFields(parts...)
}
