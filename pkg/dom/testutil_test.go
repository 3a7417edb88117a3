package dom

import (
	"fmt"
	"strings"
)

// fakeBackend builds fakeProxy instances for tests. moveOK controls what
// ChildMoved reports, so tests can exercise the failed-move path.
type fakeBackend struct {
	moveOK   bool
	proxies  int
	failNext bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{moveOK: true}
}

func (b *fakeBackend) NewProxy(t *Tag) (Proxy, error) {
	if b.failNext {
		b.failNext = false
		return nil, ErrNotSupported
	}
	b.proxies++
	return &fakeProxy{
		backend: b,
		tag:     t,
		text:    t.Text(),
		attrs:   make(map[string]string),
	}, nil
}

// fakeProxy is a minimal renderer capability for tests. It implements the
// TextSetter capability and routes everything else through SetAttribute.
// The attribute named "volatile" is reported as unsupported.
type fakeProxy struct {
	backend  *fakeBackend
	tag      *Tag
	attrs    map[string]string
	text     string
	children []*fakeProxy
}

func (p *fakeProxy) Tag() *Tag { return p.tag }

func (p *fakeProxy) Render() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s id=%q>%s", p.tag.Name(), p.tag.ID(), p.text)
	for _, c := range p.children {
		markup, err := c.Render()
		if err != nil {
			return "", err
		}
		b.WriteString(markup)
	}
	fmt.Fprintf(&b, "</%s>", p.tag.Name())
	return b.String(), nil
}

func (p *fakeProxy) SetText(text string) error {
	p.text = text
	return nil
}

func (p *fakeProxy) SetAttribute(name string, value any) error {
	if name == "volatile" {
		return ErrNotSupported
	}
	p.attrs[name] = AttrString(value)
	return nil
}

func (p *fakeProxy) ChildAdded(child, before Proxy) error {
	cp, ok := child.(*fakeProxy)
	if !ok {
		return ErrNotSupported
	}
	p.detach(cp)
	if before == nil {
		p.children = append(p.children, cp)
		return nil
	}
	bp, ok := before.(*fakeProxy)
	if !ok {
		return ErrNotSupported
	}
	for i, c := range p.children {
		if c == bp {
			p.children = append(p.children[:i], append([]*fakeProxy{cp}, p.children[i:]...)...)
			return nil
		}
	}
	p.children = append(p.children, cp)
	return nil
}

func (p *fakeProxy) ChildRemoved(child Proxy) error {
	cp, ok := child.(*fakeProxy)
	if !ok {
		return ErrNotSupported
	}
	p.detach(cp)
	return nil
}

func (p *fakeProxy) ChildMoved(child Proxy) bool {
	if !p.backend.moveOK {
		return false
	}
	cp, ok := child.(*fakeProxy)
	if !ok {
		return false
	}
	// Rebuild physical order from the model.
	p.detach(cp)
	ordered := make([]*fakeProxy, 0, len(p.children)+1)
	for _, n := range p.tag.Children() {
		ct, ok := n.(*Tag)
		if !ok {
			continue
		}
		if fp, ok := ct.proxy.(*fakeProxy); ok {
			ordered = append(ordered, fp)
		}
	}
	p.children = ordered
	return true
}

func (p *fakeProxy) XPath(query string) ([]Proxy, error) {
	// Supports descendant queries of the form "//name".
	name, ok := strings.CutPrefix(query, "//")
	if !ok {
		return nil, ErrNotSupported
	}
	var out []Proxy
	var walk func(*fakeProxy)
	walk = func(fp *fakeProxy) {
		for _, c := range fp.children {
			if c.tag.Name() == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(p)
	return out, nil
}

func (p *fakeProxy) detach(cp *fakeProxy) {
	for i, c := range p.children {
		if c == cp {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// collect subscribes to a document and accumulates delivered records.
func collect(d *Document) *[]Change {
	var got []Change
	d.OnModified(func(ch Change) { got = append(got, ch) })
	return &got
}
