package gamedata

import (
	"fmt"
	"io"
)

// ItemDef defines an item read from the items file.
type ItemDef struct {
	Name        string
	Description string
	Pickable    bool
	Consumable  bool
}

// ParseItems reads "name, description[, pickable[, consumable]]" lines.
// Pickable defaults to yes and consumable to no.
func ParseItems(r io.Reader, file string) ([]ItemDef, error) {
	records, err := readRecords(r, file, "name", "item")
	if err != nil {
		return nil, err
	}

	defs := make([]ItemDef, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) < 2 || len(rec.fields) > 4 {
			return nil, &FormatError{File: file, Line: rec.line,
				Reason: fmt.Sprintf("expected 2 to 4 fields, got %d", len(rec.fields))}
		}
		def := ItemDef{Name: rec.fields[0], Description: rec.fields[1], Pickable: true}
		if def.Name == "" {
			return nil, &FormatError{File: file, Line: rec.line, Reason: "item name is empty"}
		}
		if err := CheckName(def.Name); err != nil {
			return nil, &FormatError{File: file, Line: rec.line, Reason: err.Error()}
		}

		flags := []*bool{&def.Pickable, &def.Consumable}
		for i, raw := range rec.fields[2:] {
			v, ok := ParseYesNo(raw)
			if !ok {
				return nil, &FormatError{File: file, Line: rec.line,
					Reason: fmt.Sprintf("flag must be yes or no, got %q", raw)}
			}
			*flags[i] = v
		}
		defs = append(defs, def)
	}
	return defs, nil
}
