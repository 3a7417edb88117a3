package dom

import "github.com/enliven-dev/enliven/internal/errors"

// Arena indexes every node of one tree fragment by id and records parent
// links as ids rather than object references. Each standalone node starts
// as the root of its own arena; attaching it under a parent merges its
// arena into the parent's, and detaching splits the subtree back out into
// a fresh one. Finding the enclosing root is an index walk, never a live
// back-pointer.
type Arena struct {
	nodes   map[string]Node
	parents map[string]string
	root    string
}

func newArena(root Node) *Arena {
	return &Arena{
		nodes:   map[string]Node{root.ID(): root},
		parents: make(map[string]string),
		root:    root.ID(),
	}
}

// Root returns the root node of the fragment this arena indexes.
func (a *Arena) Root() Node {
	return a.nodes[a.root]
}

// Node returns the node with the given id, or nil.
func (a *Arena) Node(id string) Node {
	return a.nodes[id]
}

// Parent returns the parent of the node with the given id, or nil for the
// root and for unknown ids.
func (a *Arena) Parent(id string) Node {
	pid, ok := a.parents[id]
	if !ok {
		return nil
	}
	return a.nodes[pid]
}

// adopt merges child's fragment into this arena under parentID. The child
// must be the root of its own fragment; a node appears in exactly one
// parent's children sequence at a time.
func (a *Arena) adopt(parentID string, child Node) error {
	ca := child.arena()
	if ca == a || ca.root != child.ID() {
		return errors.Newf(errors.CategoryDOM, "E_DOM_ATTACHED",
			"node %s is already attached", child.ID())
	}
	for id := range ca.nodes {
		if _, dup := a.nodes[id]; dup {
			return errors.Newf(errors.CategoryDOM, "E_DOM_DUPLICATE_ID",
				"duplicate node id %s", id)
		}
	}
	for id, n := range ca.nodes {
		a.nodes[id] = n
		n.setArena(a)
	}
	for id, pid := range ca.parents {
		a.parents[id] = pid
	}
	a.parents[child.ID()] = parentID
	return nil
}

// release splits child's subtree out of this arena into a fresh one rooted
// at child.
func (a *Arena) release(child Node) {
	na := &Arena{
		nodes:   make(map[string]Node),
		parents: make(map[string]string),
		root:    child.ID(),
	}
	delete(a.parents, child.ID())

	var move func(n Node)
	move = func(n Node) {
		delete(a.nodes, n.ID())
		na.nodes[n.ID()] = n
		n.setArena(na)
		for _, c := range n.kids() {
			delete(a.parents, c.ID())
			na.parents[c.ID()] = n.ID()
			move(c)
		}
	}
	move(child)
}
