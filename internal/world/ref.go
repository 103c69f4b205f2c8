package world

import (
	"strings"

	"github.com/google/uuid"
)

// ItemRef identifies an item that is not currently held by a live container,
// e.g. the inventory of a benched unit. ID may be empty for hand-written refs.
type ItemRef struct {
	ID   string
	Name string
}

// String encodes the ref as "Name#id", or just "Name" without an id.
func (r ItemRef) String() string {
	if r.ID == "" {
		return r.Name
	}
	return r.Name + "#" + r.ID
}

// ParseItemRef decodes the String form. A suffix that is not a UUID is kept
// as part of the name.
func ParseItemRef(s string) ItemRef {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "#"); i >= 0 {
		if id, err := uuid.Parse(s[i+1:]); err == nil {
			return ItemRef{ID: id.String(), Name: strings.TrimSpace(s[:i])}
		}
	}
	return ItemRef{Name: s}
}

// Refs returns the refs of items in order.
func Refs(items []*Item) []ItemRef {
	refs := make([]ItemRef, len(items))
	for i, it := range items {
		refs[i] = it.Ref()
	}
	return refs
}
