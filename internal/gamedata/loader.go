// Package gamedata loads the world definition files and holds the static
// game tables.
package gamedata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/samdwyer/pymon/data"
)

// ErrInvalidInputFileFormat marks a malformed world file.
var ErrInvalidInputFileFormat = errors.New("invalid input file format")

// FormatError locates a problem in a world file.
type FormatError struct {
	File   string
	Line   int // 1-based, 0 when the whole file is at fault
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s line %d: %s", ErrInvalidInputFileFormat, e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInputFileFormat, e.File, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInputFileFormat) match.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidInputFileFormat
}

// Files names the three world files. Empty entries use the embedded defaults.
type Files struct {
	Locations string
	Creatures string
	Items     string
}

// Defs is everything read from the world files.
type Defs struct {
	Locations []LocationDef
	Creatures []CreatureDef
	Items     []ItemDef
}

// Load reads all three world files.
func Load(files Files) (*Defs, error) {
	locations, err := loadFile(files.Locations, data.LocationsFile, ParseLocations)
	if err != nil {
		return nil, err
	}
	creatures, err := loadFile(files.Creatures, data.CreaturesFile, ParseCreatures)
	if err != nil {
		return nil, err
	}
	items, err := loadFile(files.Items, data.ItemsFile, ParseItems)
	if err != nil {
		return nil, err
	}
	return &Defs{Locations: locations, Creatures: creatures, Items: items}, nil
}

// loadFile opens path, or the embedded fallback when path is empty, and parses it.
func loadFile[T any](path, fallback string, parse func(io.Reader, string) ([]T, error)) ([]T, error) {
	var (
		f    io.ReadCloser
		err  error
		name = path
	)
	if path == "" {
		name = fallback
		f, err = data.FS().Open(fallback)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FormatError{File: name, Reason: "file not found"}
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	return parse(f, name)
}

// record is one non-empty line of a world file with trimmed fields.
type record struct {
	line   int
	fields []string
}

// readRecords splits a comma-separated world file. Fields may be padded
// with spaces. Lines whose first field equals one of headers (any case) are
// treated as a header and skipped when they are the first record.
func readRecords(r io.Reader, file string, headers ...string) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var records []record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &FormatError{File: file, Line: perr.Line, Reason: perr.Err.Error()}
			}
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		line, _ := cr.FieldPos(0)

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) == 1 && fields[0] == "" {
			continue
		}
		if len(records) == 0 && isHeader(fields[0], headers) {
			continue
		}
		records = append(records, record{line: line, fields: fields})
	}
	return records, nil
}

func isHeader(first string, headers []string) bool {
	for _, h := range headers {
		if strings.EqualFold(first, h) {
			return true
		}
	}
	return false
}

// ParseYesNo reads a yes/no flag. The second result is false for anything else.
func ParseYesNo(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return true, true
	case "no", "n", "false":
		return false, true
	}
	return false, false
}

// YesNo formats a flag the way the world and save files spell it.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
