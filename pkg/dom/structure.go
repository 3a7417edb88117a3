package dom

// Structural mutations. Each call updates the model, executes the physical
// operation on the proxy when the parent is active, and emits at most one
// change record. Non-tag (pattern) children mutate the model only: they
// never produce records and are skipped when resolving anchors.

// AppendChild attaches child at the end of the child sequence.
func (t *Tag) AppendChild(child Node) error {
	return t.InsertChild(len(t.children), child)
}

// InsertChild attaches child at index i. The child must not already have a
// parent.
func (t *Tag) InsertChild(i int, child Node) error {
	if i < 0 || i > len(t.children) {
		return ErrIndexRange
	}
	if err := t.ar.adopt(t.id, child); err != nil {
		return err
	}
	t.children = append(t.children, nil)
	copy(t.children[i+1:], t.children[i:])
	t.children[i] = child
	return t.childAdded(child)
}

// childAdded renders a newly attached tag child and emits its record. The
// rendered markup travels in the record so the consumer can materialize
// the subtree without a round trip.
func (t *Tag) childAdded(child Node) error {
	ct, ok := child.(*Tag)
	if !ok || !t.active {
		return nil
	}
	markup, err := ct.Render(t.backend)
	if err != nil {
		return err
	}
	before := t.anchorAfter(ct)
	var beforeProxy Proxy
	if before != nil {
		beforeProxy = before.proxy
	}
	if err := t.proxy.ChildAdded(ct.proxy, beforeProxy); err != nil {
		return err
	}
	ch := Change{ID: ct.id, Kind: ChangeAdded, Name: "children", Value: markup}
	if before != nil {
		ch.Before = before.id
	}
	t.notify(ch)
	return nil
}

// MoveChild repositions child at index i within the child sequence. If the
// proxy reports the physical move failed, the model reorder stands but no
// record is emitted; the remote side is not informed.
func (t *Tag) MoveChild(child Node, i int) error {
	cur := t.indexOf(child)
	if cur < 0 {
		return ErrNotChild
	}
	if i < 0 || i >= len(t.children) {
		return ErrIndexRange
	}
	copy(t.children[cur:], t.children[cur+1:])
	copy(t.children[i+1:], t.children[i:])
	t.children[i] = child

	ct, ok := child.(*Tag)
	if !ok || !t.active {
		return nil
	}
	if !t.proxy.ChildMoved(ct.proxy) {
		return nil
	}
	ch := Change{ID: ct.id, Kind: ChangeMoved, Name: "children", Value: ct.id}
	if before := t.anchorAfter(ct); before != nil {
		ch.Before = before.id
	}
	t.notify(ch)
	return nil
}

// RemoveChild detaches child from the child sequence. The detached subtree
// becomes a standalone fragment again; no records referencing it are
// accepted after the removal record itself.
func (t *Tag) RemoveChild(child Node) error {
	cur := t.indexOf(child)
	if cur < 0 {
		return ErrNotChild
	}
	t.children = append(t.children[:cur], t.children[cur+1:]...)
	t.ar.release(child)

	ct, ok := child.(*Tag)
	if !ok || !t.active {
		return nil
	}
	if ct.proxy != nil {
		if err := t.proxy.ChildRemoved(ct.proxy); err != nil {
			return err
		}
	}
	t.notify(Change{ID: ct.id, Kind: ChangeRemoved, Name: "children", Value: ct.id})
	return nil
}

// anchorAfter resolves the insertion anchor for child: the nearest
// following tag sibling, skipping pattern nodes. Nil means append.
func (t *Tag) anchorAfter(child Node) *Tag {
	idx := t.indexOf(child)
	if idx < 0 {
		return nil
	}
	for _, n := range t.children[idx+1:] {
		if tag, ok := n.(*Tag); ok {
			return tag
		}
	}
	return nil
}

func (t *Tag) indexOf(child Node) int {
	for i, n := range t.children {
		if n == child {
			return i
		}
	}
	return -1
}
