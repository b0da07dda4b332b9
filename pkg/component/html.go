package component

import (
	"fmt"
	"strings"

	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/reactive"
)

// Html builds one element.
//
// Metadata collected before the first render is applied when the element
// is materialized. Methods called afterwards (ApplyStyle, ApplyAttr,
// PropNode and the Prop bindings) act on the live element directly.
type Html struct {
	tag      string
	name     string
	classes  []string
	attrs    []dom.Attr
	styles   []dom.Attr
	handlers []handler
	children []Component
	onRender []func(*dom.Element)

	// bindings re-apply property values to each newly built element.
	bindings []func(*dom.Element)
	subs     reactive.Subscriptions

	el *dom.Element
}

type handler struct {
	event string
	fn    dom.Listener
}

// HtmlOption configures an Html builder.
type HtmlOption func(*Html)

// Tag starts an element builder.
func Tag(tag string, opts ...HtmlOption) *Html {
	h := &Html{tag: tag}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Div is Tag("div", ...).
func Div(opts ...HtmlOption) *Html { return Tag("div", opts...) }

// Span is Tag("span", ...).
func Span(opts ...HtmlOption) *Html { return Tag("span", opts...) }

// Button is Tag("button", ...).
func Button(opts ...HtmlOption) *Html { return Tag("button", opts...) }

// Ul is Tag("ul", ...).
func Ul(opts ...HtmlOption) *Html { return Tag("ul", opts...) }

// Li is Tag("li", ...).
func Li(opts ...HtmlOption) *Html { return Tag("li", opts...) }

// Name sets a diagnostic name.
func Name(name string) HtmlOption {
	return func(h *Html) { h.name = name }
}

// Class adds class names.
func Class(names ...string) HtmlOption {
	return func(h *Html) {
		for _, n := range names {
			h.classes = append(h.classes, strings.Fields(n)...)
		}
	}
}

// ID sets the id attribute.
func ID(id string) HtmlOption {
	return Attr("id", id)
}

// Attr sets an attribute.
func Attr(name, value string) HtmlOption {
	return func(h *Html) { h.attrs = setPair(h.attrs, name, value) }
}

// Style sets an inline style property.
func Style(prop, value string) HtmlOption {
	return func(h *Html) { h.styles = setPair(h.styles, prop, value) }
}

// On registers an event handler.
func On(event string, fn dom.Listener) HtmlOption {
	return func(h *Html) { h.handlers = append(h.handlers, handler{event: event, fn: fn}) }
}

// OnClick is On("click", ...).
func OnClick(fn dom.Listener) HtmlOption {
	return On("click", fn)
}

// Children appends child components.
func Children(children ...Component) HtmlOption {
	return func(h *Html) {
		for _, c := range children {
			if c != nil {
				h.children = append(h.children, c)
			}
		}
	}
}

// Content appends a text child.
func Content(s string) HtmlOption {
	return Children(NewText(s))
}

// OnRender registers fn to run once the element is attached to a document.
func OnRender(fn func(*dom.Element)) HtmlOption {
	return func(h *Html) { h.onRender = append(h.onRender, fn) }
}

func setPair(pairs []dom.Attr, name, value string) []dom.Attr {
	for i := range pairs {
		if pairs[i].Name == name {
			pairs[i].Value = value
			return pairs
		}
	}
	return append(pairs, dom.Attr{Name: name, Value: value})
}

// Render implements Component. Only Render(true, h) rebuilds an element
// that already exists; the new element replaces the old one in its parent.
func (h *Html) Render(update bool, source Component) dom.Node {
	if h.el != nil && !(update && source == h) {
		return h.el
	}

	old := h.el
	h.el = h.build(update, source)
	if old != nil {
		dom.Replace(old, h.el)
	}
	observer().Rendered("html", label(h.name, h.tag), old != nil)
	return h.el
}

func (h *Html) build(update bool, source Component) *dom.Element {
	el := dom.NewElement(h.tag)
	for _, a := range h.attrs {
		el.SetAttribute(a.Name, a.Value)
	}
	el.AddClass(h.classes...)
	for _, s := range h.styles {
		el.SetStyle(s.Name, s.Value)
	}
	for _, hd := range h.handlers {
		el.AddEventListener(hd.event, hd.fn)
	}
	for _, c := range h.children {
		if n := c.Render(update, source); n != nil {
			el.AppendChild(n)
		}
	}
	for _, apply := range h.bindings {
		apply(el)
	}
	for _, fn := range h.onRender {
		el.OnConnected(fn)
	}
	return el
}

// Node implements Component.
func (h *Html) Node() dom.Node {
	if h.el == nil {
		return nil
	}
	return h.el
}

// Element returns the materialized element, or nil.
func (h *Html) Element() *dom.Element {
	return h.el
}

// Add appends children. If the element exists they are rendered into it.
func (h *Html) Add(children ...Component) *Html {
	for _, c := range children {
		if c == nil {
			continue
		}
		h.children = append(h.children, c)
		if h.el != nil {
			if n := c.Render(false, nil); n != nil {
				h.el.AppendChild(n)
			}
		}
	}
	return h
}

// ApplyStyle sets an inline style property on the builder and on the live
// element.
func (h *Html) ApplyStyle(prop, value string) *Html {
	h.styles = setPair(h.styles, prop, value)
	if h.el != nil {
		h.el.SetStyle(prop, value)
	}
	return h
}

// ApplyAttr sets an attribute on the builder and on the live element.
func (h *Html) ApplyAttr(name, value string) *Html {
	if name == "class" {
		h.classes = strings.Fields(value)
	} else {
		h.attrs = setPair(h.attrs, name, value)
	}
	if h.el != nil {
		h.el.SetAttribute(name, value)
	}
	return h
}

// PropNode runs fn against the element now (if it exists), on every later
// build, and whenever src changes.
func (h *Html) PropNode(src reactive.Source, fn func(*dom.Element)) *Html {
	h.bindings = append(h.bindings, fn)
	if h.el != nil {
		fn(h.el)
	}
	h.subs.Add(src.OnAnyChange(func() {
		if h.el != nil {
			fn(h.el)
		}
	}))
	return h
}

// PropClass keeps class present on the element while p is true.
func (h *Html) PropClass(class string, p reactive.Value[bool]) *Html {
	return h.PropNode(p, func(el *dom.Element) {
		el.ToggleClass(class, p.Peek())
	})
}

// PropClassName adds the space-separated classes held by p, replacing the
// classes it added before. Static classes are left alone.
func (h *Html) PropClassName(p reactive.Value[string]) *Html {
	var added []string
	return h.PropNode(p, func(el *dom.Element) {
		el.RemoveClass(added...)
		added = strings.Fields(p.Peek())
		el.AddClass(added...)
	})
}

// PropAttr keeps attribute name equal to p. An empty value removes it.
func (h *Html) PropAttr(name string, p reactive.Value[string]) *Html {
	return h.PropNode(p, func(el *dom.Element) {
		if v := p.Peek(); v != "" {
			el.SetAttribute(name, v)
		} else {
			el.RemoveAttribute(name)
		}
	})
}

// Dispose releases property bindings and disposes the children. A child
// whose node now lives under another parent belongs to that parent and is
// left alone.
func (h *Html) Dispose() {
	h.subs.UnsubscribeAll()
	for _, c := range h.children {
		if h.el != nil {
			if n := c.Node(); n != nil && n.Parent() != nil && n.Parent() != h.el {
				continue
			}
		}
		Dispose(c)
	}
}

func (h *Html) String() string {
	if h.name != "" {
		return fmt.Sprintf("Html(<%s> %s)", h.tag, h.name)
	}
	return fmt.Sprintf("Html(<%s>)", h.tag)
}
