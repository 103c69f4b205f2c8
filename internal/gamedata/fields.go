package gamedata

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ReservedNameChars separate item refs, battle records and sections in save
// files, so names may not contain them.
const ReservedNameChars = ",;|#[]=\r\n"

// CheckName rejects a name that a save file could not carry back.
func CheckName(name string) error {
	if strings.ContainsAny(name, ReservedNameChars) {
		return fmt.Errorf("name %q contains one of , ; | # [ ] =", name)
	}
	return nil
}

// SplitFields splits one comma-separated line into trimmed fields. Fields
// may be quoted to carry a comma.
func SplitFields(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	fields, err := r.Read()
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// JoinFields renders fields as one line, quoting any field SplitFields
// would otherwise cut apart. Surrounding spaces are dropped, as SplitFields
// drops them anyway.
func JoinFields(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if strings.ContainsAny(f, ",\"\r\n") {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		quoted[i] = f
	}
	return strings.Join(quoted, ", ")
}
