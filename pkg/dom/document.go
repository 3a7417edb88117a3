package dom

// Document is the tree root. It is itself a tag (element name "html") and
// adds one responsibility: acting as the sink for change records bubbled
// up from its descendants, fanning each record out to subscribers exactly
// once. Records are not retained.
type Document struct {
	Tag

	subs []func(Change)
}

// NewDocument creates a document root using the given rendering backend.
func NewDocument(b Backend, opts ...TagOption) *Document {
	d := &Document{}
	d.Tag = *newTag("html", opts...)
	d.backend = b
	d.ar = newArena(d)
	return d
}

// OnModified subscribes fn to the document's notification stream. Every
// change record from a descendant tag with an active renderer is delivered
// synchronously, in mutation order.
func (d *Document) OnModified(fn func(Change)) {
	d.subs = append(d.subs, fn)
}

// Render prepares and renders the whole document.
func (d *Document) Render() (string, error) {
	return d.Tag.Render(d.backend)
}

// Backend returns the document's rendering backend.
func (d *Document) Backend() Backend {
	return d.backend
}

func (d *Document) deliver(ch Change) {
	for _, fn := range d.subs {
		fn(ch)
	}
}
