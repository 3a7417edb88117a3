package dom

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tag is a markup node with observable attributes and an optionally bound
// renderer proxy. A tag is constructed unattached and inactive; mutations
// on an inactive tag update the model silently. Once prepared, every
// mutation updates the proxy and emits exactly one change record.
type Tag struct {
	id   string
	name string

	text      string
	tail      string
	classes   []string
	styles    map[string]string
	attrs     map[string]any
	clickable bool
	draggable bool

	children []Node
	ar       *Arena

	backend Backend
	proxy   Proxy
	active  bool
	setters map[string]setterFunc
}

// TagOption configures a tag at construction time.
type TagOption func(*Tag)

// WithID assigns an explicit id. Ids are immutable once the tag is part of
// a document; without this option a process-unique token is generated.
func WithID(id string) TagOption {
	return func(t *Tag) { t.id = id }
}

// WithText sets the initial text.
func WithText(text string) TagOption {
	return func(t *Tag) { t.text = text }
}

// WithClass sets the initial CSS class list.
func WithClass(classes ...string) TagOption {
	return func(t *Tag) { t.classes = classes }
}

// WithAttr sets an initial custom attribute.
func WithAttr(name string, value any) TagOption {
	return func(t *Tag) {
		if t.attrs == nil {
			t.attrs = make(map[string]any)
		}
		t.attrs[name] = value
	}
}

// NewTag creates a standalone tag with the given element name.
func NewTag(name string, opts ...TagOption) *Tag {
	t := newTag(name, opts...)
	t.ar = newArena(t)
	return t
}

func newTag(name string, opts ...TagOption) *Tag {
	t := &Tag{name: name}
	for _, opt := range opts {
		opt(t)
	}
	if t.id == "" {
		t.id = newID()
	}
	return t
}

// ID returns the tag's identity, unique within its tree.
func (t *Tag) ID() string { return t.id }

// Name returns the element name, e.g. "div".
func (t *Tag) Name() string { return t.name }

// Text returns the element text.
func (t *Tag) Text() string { return t.text }

// Tail returns the text trailing the element.
func (t *Tag) Tail() string { return t.tail }

// Classes returns the CSS class list.
func (t *Tag) Classes() []string { return t.classes }

// Styles returns the inline style map.
func (t *Tag) Styles() map[string]string { return t.styles }

// Clickable reports whether click events are forwarded to the server.
func (t *Tag) Clickable() bool { return t.clickable }

// Draggable reports whether drag events are forwarded to the server.
func (t *Tag) Draggable() bool { return t.draggable }

// Attr returns a custom attribute value.
func (t *Tag) Attr(name string) (any, bool) {
	v, ok := t.attrs[name]
	return v, ok
}

// Attrs returns the custom attribute map.
func (t *Tag) Attrs() map[string]any { return t.attrs }

// Children returns the ordered child sequence.
func (t *Tag) Children() []Node { return t.children }

// Parent returns the parent node, or nil for a fragment root.
func (t *Tag) Parent() Node {
	if t.ar == nil {
		return nil
	}
	return t.ar.Parent(t.id)
}

// Active reports whether the renderer proxy is bound and activated.
func (t *Tag) Active() bool { return t.active }

// Proxy returns the bound renderer proxy, or nil before activation.
func (t *Tag) Proxy() Proxy { return t.proxy }

// Arena returns the index of the tree fragment this tag belongs to.
func (t *Tag) Arena() *Arena { return t.ar }

func (t *Tag) arena() *Arena     { return t.ar }
func (t *Tag) setArena(a *Arena) { t.ar = a }
func (t *Tag) kids() []Node      { return t.children }

// SetText sets the element text.
func (t *Tag) SetText(text string) error {
	t.text = text
	return t.updated("text", text)
}

// SetTail sets the text trailing the element.
func (t *Tag) SetTail(tail string) error {
	t.tail = tail
	return t.updated("tail", tail)
}

// SetClass replaces the CSS class list.
func (t *Tag) SetClass(classes ...string) error {
	t.classes = classes
	return t.updated("class", classes)
}

// SetStyle replaces the inline style map.
func (t *Tag) SetStyle(styles map[string]string) error {
	t.styles = styles
	return t.updated("style", styles)
}

// SetClickable toggles forwarding of click events.
func (t *Tag) SetClickable(v bool) error {
	t.clickable = v
	return t.updated("clickable", v)
}

// SetDraggable toggles forwarding of drag events.
func (t *Tag) SetDraggable(v bool) error {
	t.draggable = v
	return t.updated("draggable", v)
}

// SetAttr sets a custom attribute by name.
func (t *Tag) SetAttr(name string, value any) error {
	if t.attrs == nil {
		t.attrs = make(map[string]any)
	}
	t.attrs[name] = value
	return t.updated(name, value)
}

// updated applies one attribute mutation to the proxy and emits its change
// record, as a single synchronous step. Inactive tags apply the mutation
// to the model only. A backend that supports neither the capability setter
// nor the attribute absorbs the mutation silently: the model stays
// authoritative and no record is emitted.
func (t *Tag) updated(name string, value any) error {
	if !t.active {
		return nil
	}
	set, ok := t.setters[name]
	if !ok {
		set = func(v any) error { return t.proxy.SetAttribute(name, v) }
	}
	if err := set(value); err != nil {
		if errors.Is(err, ErrNotSupported) {
			return nil
		}
		return err
	}
	t.notify(Change{
		ID:    t.id,
		Kind:  ChangeUpdate,
		Name:  name,
		Value: AttrString(value),
	})
	return nil
}

// Prepare binds and activates the renderer proxy, recursively preparing
// the subtree and attaching child elements in document order. Preparing an
// already active tag is a no-op.
func (t *Tag) Prepare(b Backend) error {
	if t.active {
		return nil
	}
	if b == nil {
		return ErrNoBackend
	}
	t.backend = b
	if t.proxy == nil {
		p, err := b.NewProxy(t)
		if err != nil {
			return err
		}
		t.proxy = p
		t.setters = resolveSetters(p)
	}
	for _, c := range t.children {
		ct, ok := c.(*Tag)
		if !ok {
			continue
		}
		if err := ct.Prepare(b); err != nil {
			return err
		}
		if err := t.proxy.ChildAdded(ct.proxy, nil); err != nil {
			return err
		}
	}
	t.active = true
	return nil
}

// Render prepares the tag and delegates markup production to the proxy.
func (t *Tag) Render(b Backend) (string, error) {
	if err := t.Prepare(b); err != nil {
		return "", err
	}
	return t.proxy.Render()
}

// XPath runs a structural query against the rendered subtree and maps the
// matches back to their owning tags. A query with no matches returns an
// empty slice.
func (t *Tag) XPath(query string) ([]*Tag, error) {
	if t.proxy == nil {
		return nil, ErrNotActive
	}
	handles, err := t.proxy.XPath(query)
	if err != nil {
		return nil, err
	}
	tags := make([]*Tag, 0, len(handles))
	for _, h := range handles {
		if h == nil {
			continue
		}
		if tag := h.Tag(); tag != nil {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// notify dispatches one change record by walking the arena's parent-id
// chain to the fragment root. Records from fragments not rooted at a
// Document are dropped.
func (t *Tag) notify(ch Change) {
	a := t.ar
	if a == nil {
		return
	}
	if d, ok := a.Root().(*Document); ok {
		d.deliver(ch)
	}
}

// AttrString serializes an attribute value the way it travels in change
// records: class lists join with spaces, style maps as "k:v" pairs joined
// with semicolons in sorted key order, booleans as "true"/"false".
func AttrString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, " ")
	case map[string]string:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(k)
			b.WriteByte(':')
			b.WriteString(x[k])
		}
		return b.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
