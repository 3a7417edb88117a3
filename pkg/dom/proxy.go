package dom

// Proxy is the renderer capability bound 1:1 to an active Tag. It turns
// the tag's model state into markup and executes structural operations on
// a concrete rendering backend. Model state is authoritative; proxy state
// is a projection of it.
//
// An operation a backend cannot perform returns an error satisfying
// errors.Is(err, ErrNotSupported). Callers treat that as fatal for the
// specific operation only, never for the tree.
type Proxy interface {
	// Tag returns the tag this proxy is bound to.
	Tag() *Tag

	// Render serializes the tag and its subtree to markup.
	Render() (string, error)

	// SetAttribute is the generic fallback for attributes without a
	// dedicated capability setter.
	SetAttribute(name string, value any) error

	// ChildAdded attaches child's backing element before the given
	// sibling proxy, or appends when before is nil.
	ChildAdded(child, before Proxy) error

	// ChildRemoved detaches child's backing element.
	ChildRemoved(child Proxy) error

	// ChildMoved physically relocates child's backing element to match
	// the model order and reports whether the move succeeded.
	ChildMoved(child Proxy) bool

	// XPath runs a structural query and returns the matching proxies.
	// A query with no matches returns an empty slice, not an error.
	XPath(query string) ([]Proxy, error)
}

// Backend creates proxies. A Document is configured with one backend and
// every tag prepared under it binds a proxy from the same backend.
type Backend interface {
	NewProxy(t *Tag) (Proxy, error)
}

// Optional per-attribute capability setters. A proxy implementing one of
// these gets it resolved into the tag's setter table at bind time; all
// other attributes go through SetAttribute.
type (
	// TextSetter updates the element text.
	TextSetter interface{ SetText(string) error }

	// TailSetter updates the text trailing the element.
	TailSetter interface{ SetTail(string) error }

	// ClassSetter updates the CSS class list.
	ClassSetter interface{ SetClass([]string) error }

	// StyleSetter updates the inline style map.
	StyleSetter interface{ SetStyle(map[string]string) error }
)

// setterFunc applies one attribute value to a proxy.
type setterFunc func(value any) error

// resolveSetters builds the capability table for a proxy. Resolution
// happens once at bind time; lookups during mutation are map hits.
func resolveSetters(p Proxy) map[string]setterFunc {
	m := make(map[string]setterFunc)
	if s, ok := p.(TextSetter); ok {
		m["text"] = func(v any) error { return s.SetText(v.(string)) }
	}
	if s, ok := p.(TailSetter); ok {
		m["tail"] = func(v any) error { return s.SetTail(v.(string)) }
	}
	if s, ok := p.(ClassSetter); ok {
		m["class"] = func(v any) error { return s.SetClass(v.([]string)) }
	}
	if s, ok := p.(StyleSetter); ok {
		m["style"] = func(v any) error { return s.SetStyle(v.(map[string]string)) }
	}
	return m
}
