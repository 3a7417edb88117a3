package render

import (
	"bytes"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/enliven-dev/enliven/internal/errors"
	"github.com/enliven-dev/enliven/pkg/dom"
)

// Proxy binds one tag to one backing *html.Node element.
type Proxy struct {
	backend *Backend
	tag     *dom.Tag
	el      *html.Node

	textNode *html.Node // first-child text node, nil while text is empty
	tailNode *html.Node // text node trailing el, nil while detached or empty
}

// Tag returns the owning tag.
func (p *Proxy) Tag() *dom.Tag { return p.tag }

// Element returns the backing HTML node.
func (p *Proxy) Element() *html.Node { return p.el }

// Render serializes the element subtree, plus the tag's tail text.
func (p *Proxy) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, p.el); err != nil {
		return "", errors.Wrap(err, errors.CategoryRender, "E_RENDER_SERIALIZE", "serialize element")
	}
	if tail := p.tag.Tail(); tail != "" {
		buf.WriteString(escapeHTML(tail))
	}
	return buf.String(), nil
}

// SetText updates the element's leading text node.
func (p *Proxy) SetText(text string) error {
	if text == "" {
		if p.textNode != nil {
			p.el.RemoveChild(p.textNode)
			p.textNode = nil
		}
		return nil
	}
	if p.textNode == nil {
		p.textNode = &html.Node{Type: html.TextNode, Data: text}
		p.el.InsertBefore(p.textNode, p.el.FirstChild)
		return nil
	}
	p.textNode.Data = text
	return nil
}

// SetTail updates the text node trailing the element. While the element is
// detached the tail lives only in the model and is materialized on attach.
func (p *Proxy) SetTail(string) error {
	p.syncTail()
	return nil
}

// SetClass updates the class attribute.
func (p *Proxy) SetClass(classes []string) error {
	if len(classes) == 0 {
		removeAttr(p.el, "class")
		return nil
	}
	setAttr(p.el, "class", dom.AttrString(classes))
	return nil
}

// SetStyle updates the style attribute.
func (p *Proxy) SetStyle(styles map[string]string) error {
	if len(styles) == 0 {
		removeAttr(p.el, "style")
		return nil
	}
	setAttr(p.el, "style", dom.AttrString(styles))
	return nil
}

// SetAttribute is the generic fallback. Event-forwarding flags render as
// data attributes the thin client reads; false booleans remove the
// attribute entirely.
func (p *Proxy) SetAttribute(name string, value any) error {
	if name == "clickable" {
		name = "data-clickable"
	}
	if v, ok := value.(bool); ok {
		if !v {
			removeAttr(p.el, name)
			return nil
		}
		setAttr(p.el, name, "true")
		return nil
	}
	setAttr(p.el, name, dom.AttrString(value))
	return nil
}

// ChildAdded attaches child's element before the given sibling, or appends.
func (p *Proxy) ChildAdded(child, before dom.Proxy) error {
	cp, ok := child.(*Proxy)
	if !ok {
		return errors.Wrap(dom.ErrNotSupported, errors.CategoryRender,
			"E_RENDER_UNSUPPORTED", "foreign child proxy")
	}
	cp.detach()
	var ref *html.Node
	if bp, ok := before.(*Proxy); ok && bp != nil && bp.el.Parent == p.el {
		ref = bp.el
	}
	p.el.InsertBefore(cp.el, ref)
	cp.syncTail()
	return nil
}

// ChildRemoved detaches child's element.
func (p *Proxy) ChildRemoved(child dom.Proxy) error {
	cp, ok := child.(*Proxy)
	if !ok {
		return errors.Wrap(dom.ErrNotSupported, errors.CategoryRender,
			"E_RENDER_UNSUPPORTED", "foreign child proxy")
	}
	cp.detach()
	return nil
}

// ChildMoved relocates child's element to match the model order. Reports
// false when the child is not physically attached to this element.
func (p *Proxy) ChildMoved(child dom.Proxy) bool {
	cp, ok := child.(*Proxy)
	if !ok || cp.el.Parent != p.el {
		return false
	}
	var ref *html.Node
	siblings := p.tag.Children()
	for i, n := range siblings {
		if n.ID() != cp.tag.ID() {
			continue
		}
		for _, after := range siblings[i+1:] {
			at, ok := after.(*dom.Tag)
			if !ok {
				continue
			}
			ap, ok := at.Proxy().(*Proxy)
			if ok && ap.el.Parent == p.el {
				ref = ap.el
				break
			}
		}
		break
	}
	cp.detach()
	p.el.InsertBefore(cp.el, ref)
	cp.syncTail()
	return true
}

// XPath evaluates an xpath expression against the backing subtree.
func (p *Proxy) XPath(query string) ([]dom.Proxy, error) {
	nodes, err := htmlquery.QueryAll(p.el, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryRender, "E_RENDER_XPATH", "xpath query")
	}
	out := make([]dom.Proxy, 0, len(nodes))
	for _, n := range nodes {
		if hp, ok := p.backend.index[n]; ok {
			out = append(out, hp)
		}
	}
	return out, nil
}

// detach removes the element and its tail text from the backing tree.
func (p *Proxy) detach() {
	if p.tailNode != nil && p.tailNode.Parent != nil {
		p.tailNode.Parent.RemoveChild(p.tailNode)
		p.tailNode = nil
	}
	if p.el.Parent != nil {
		p.el.Parent.RemoveChild(p.el)
	}
}

// syncTail reconciles the trailing text node with the model tail. Requires
// the element to be attached; detached tails stay model-only.
func (p *Proxy) syncTail() {
	parent := p.el.Parent
	tail := p.tag.Tail()
	if parent == nil {
		p.tailNode = nil
		return
	}
	if tail == "" {
		if p.tailNode != nil && p.tailNode.Parent != nil {
			p.tailNode.Parent.RemoveChild(p.tailNode)
		}
		p.tailNode = nil
		return
	}
	if p.tailNode == nil || p.tailNode.Parent == nil {
		p.tailNode = &html.Node{Type: html.TextNode, Data: tail}
		parent.InsertBefore(p.tailNode, p.el.NextSibling)
		return
	}
	p.tailNode.Data = tail
}
