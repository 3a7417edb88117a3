package dom

import "github.com/oklog/ulid/v2"

// Node is a tree entity with identity. Concrete node types are *Tag (a
// renderable element) and *Pattern (a placeholder that renders nothing and
// is transparent to diff and anchor computation).
type Node interface {
	// ID returns the node's identity, unique within its tree.
	ID() string

	arena() *Arena
	setArena(*Arena)
	kids() []Node
}

// newID returns a process-unique token for nodes without an explicit id.
func newID() string {
	return ulid.Make().String()
}

// Pattern is a non-tag child: a placeholder or control-flow marker that is
// never rendered and never participates in change records or anchors.
type Pattern struct {
	id string
	ar *Arena
}

// NewPattern creates a standalone pattern node.
func NewPattern() *Pattern {
	p := &Pattern{id: newID()}
	p.ar = newArena(p)
	return p
}

// ID returns the pattern node's identity.
func (p *Pattern) ID() string { return p.id }

func (p *Pattern) arena() *Arena     { return p.ar }
func (p *Pattern) setArena(a *Arena) { p.ar = a }
func (p *Pattern) kids() []Node      { return nil }
