package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/enliven-dev/enliven/pkg/dom"
)

// Backend builds HTML-node proxies. Use one backend per document: it keeps
// the element-to-proxy index that XPath queries resolve through.
type Backend struct {
	index map[*html.Node]*Proxy
}

// New creates a backend.
func New() *Backend {
	return &Backend{index: make(map[*html.Node]*Proxy)}
}

// NewProxy creates the backing element for t and projects the tag's
// current attribute state onto it.
func (b *Backend) NewProxy(t *dom.Tag) (dom.Proxy, error) {
	name := t.Name()
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	p := &Proxy{backend: b, tag: t, el: el}
	b.index[el] = p

	setAttr(el, "id", t.ID())
	if err := p.SetText(t.Text()); err != nil {
		return nil, err
	}
	if cls := t.Classes(); len(cls) > 0 {
		if err := p.SetClass(cls); err != nil {
			return nil, err
		}
	}
	if st := t.Styles(); len(st) > 0 {
		if err := p.SetStyle(st); err != nil {
			return nil, err
		}
	}
	for name, value := range t.Attrs() {
		if err := p.SetAttribute(name, value); err != nil {
			return nil, err
		}
	}
	if t.Clickable() {
		if err := p.SetAttribute("clickable", true); err != nil {
			return nil, err
		}
	}
	if t.Draggable() {
		if err := p.SetAttribute("draggable", true); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// attribute helpers over html.Node

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
