package gamedata

import (
	"fmt"
	"io"
)

// CreatureDef defines a creature read from the creatures file.
type CreatureDef struct {
	Nickname    string
	Description string
	Adoptable   bool // Adoptable creatures are Pymons, the rest are animals
}

// ParseCreatures reads "nickname, description, adoptable" lines.
func ParseCreatures(r io.Reader, file string) ([]CreatureDef, error) {
	records, err := readRecords(r, file, "nickname")
	if err != nil {
		return nil, err
	}

	defs := make([]CreatureDef, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) != 3 {
			return nil, &FormatError{File: file, Line: rec.line,
				Reason: fmt.Sprintf("expected 3 fields, got %d", len(rec.fields))}
		}
		adoptable, ok := ParseYesNo(rec.fields[2])
		if !ok {
			return nil, &FormatError{File: file, Line: rec.line,
				Reason: fmt.Sprintf("adoptable must be yes or no, got %q", rec.fields[2])}
		}
		if rec.fields[0] == "" {
			return nil, &FormatError{File: file, Line: rec.line, Reason: "creature nickname is empty"}
		}
		if err := CheckName(rec.fields[0]); err != nil {
			return nil, &FormatError{File: file, Line: rec.line, Reason: err.Error()}
		}
		defs = append(defs, CreatureDef{
			Nickname:    rec.fields[0],
			Description: rec.fields[1],
			Adoptable:   adoptable,
		})
	}
	return defs, nil
}

// FormatCreature renders a creatures-file line.
func FormatCreature(def CreatureDef) string {
	return JoinFields(def.Nickname, def.Description, YesNo(def.Adoptable))
}
