package dom

// ChangeKind discriminates the four mutation record types.
type ChangeKind uint8

const (
	ChangeUpdate  ChangeKind = iota // Attribute value changed
	ChangeAdded                     // Child tag inserted
	ChangeMoved                     // Child tag reordered
	ChangeRemoved                   // Child tag detached
)

// String returns the wire name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeUpdate:
		return "update"
	case ChangeAdded:
		return "added"
	case ChangeMoved:
		return "moved"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is the minimal description of one mutation, delivered to the
// owning Document's subscribers.
//
// For attribute updates, ID names the mutated tag, Name the attribute and
// Value its new serialized value. For structural changes, ID names the
// affected child, Name is the literal "children", and Value carries either
// the child's rendered markup (added) or its id (moved, removed). Before,
// when set, names the next tag sibling after the affected position so the
// consumer can anchor an insertion or move; empty Before means append.
type Change struct {
	ID     string
	Kind   ChangeKind
	Name   string
	Value  string
	Before string
}
