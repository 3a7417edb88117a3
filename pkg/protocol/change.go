package protocol

import "github.com/enliven-dev/enliven/pkg/dom"

// Change is the wire form of one change record.
//
// Type is the record kind ("update", "added", "moved", "removed"); Name is
// an attribute name or the literal "children"; Value carries the new
// attribute value, rendered markup (added) or a child id (moved, removed);
// Before, when present, names the sibling id to insert before.
type Change struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
	Before string `json:"before,omitempty"`
}

// FromDOM converts a dom change record to its wire form.
func FromDOM(ch dom.Change) Change {
	return Change{
		ID:     ch.ID,
		Type:   ch.Kind.String(),
		Name:   ch.Name,
		Value:  ch.Value,
		Before: ch.Before,
	}
}
