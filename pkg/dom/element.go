package dom

import (
	"fmt"
	"strings"
	"sync/atomic"
)

var refCounter uint64

// Attr is one attribute.
type Attr struct {
	Name  string
	Value string
}

type styleEntry struct {
	prop  string
	value string
}

// Element is an element node.
type Element struct {
	node

	// ref identifies the element in serialized output when it has event
	// listeners (data-ref), so remote events can be routed back to it.
	ref uint64

	tag      string
	attrs    []Attr
	classes  []string
	styles   []styleEntry
	children []Node

	listeners    map[string][]*listener
	connectHooks []func(*Element)

	// doc is set on a document's body only.
	doc *Document
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{
		ref: atomic.AddUint64(&refCounter, 1),
		tag: strings.ToLower(tag),
	}
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.tag
}

// Ref returns the element's routing reference.
func (e *Element) Ref() uint64 {
	return e.ref
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attribute("id")
	return v
}

// TextContent implements Node.
func (e *Element) TextContent() string {
	return textOf(e.children)
}

// Connected implements Node.
func (e *Element) Connected() bool {
	return e.document() != nil
}

// Document returns the document the element belongs to, or nil.
func (e *Element) Document() *Document {
	return e.document()
}

func (e *Element) document() *Document {
	cur := e
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.doc
}

func (e *Element) String() string {
	if id := e.ID(); id != "" {
		return fmt.Sprintf("<%s#%s>", e.tag, id)
	}
	return fmt.Sprintf("<%s>", e.tag)
}

// =============================================================================
// Attributes
// =============================================================================

// SetAttribute sets an attribute, keeping its original position if it
// already exists. "class" and "style" are routed to the class list and the
// style map.
func (e *Element) SetAttribute(name, value string) {
	switch name {
	case "class":
		e.classes = strings.Fields(value)
		e.mutated()
		return
	case "style":
		e.styles = parseStyle(value)
		e.mutated()
		return
	}
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			if e.attrs[i].Value == value {
				return
			}
			e.attrs[i].Value = value
			e.mutated()
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	e.mutated()
}

// Attribute returns an attribute value.
func (e *Element) Attribute(name string) (string, bool) {
	switch name {
	case "class":
		return e.ClassName(), len(e.classes) > 0
	case "style":
		return e.StyleText(), len(e.styles) > 0
	}
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// RemoveAttribute deletes an attribute.
func (e *Element) RemoveAttribute(name string) {
	switch name {
	case "class":
		e.classes = nil
		e.mutated()
		return
	case "style":
		e.styles = nil
		e.mutated()
		return
	}
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			e.mutated()
			return
		}
	}
}

// Attrs returns a copy of the plain attributes in order.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// =============================================================================
// Classes
// =============================================================================

// AddClass adds class names that are not yet present.
func (e *Element) AddClass(names ...string) {
	changed := false
	for _, n := range names {
		if n == "" || e.HasClass(n) {
			continue
		}
		e.classes = append(e.classes, n)
		changed = true
	}
	if changed {
		e.mutated()
	}
}

// RemoveClass removes class names.
func (e *Element) RemoveClass(names ...string) {
	changed := false
	for _, n := range names {
		for i, c := range e.classes {
			if c == n {
				e.classes = append(e.classes[:i], e.classes[i+1:]...)
				changed = true
				break
			}
		}
	}
	if changed {
		e.mutated()
	}
}

// ToggleClass adds or removes name according to on.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// ClassName returns the space-separated class list.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// =============================================================================
// Styles
// =============================================================================

// SetStyle sets one inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	for i := range e.styles {
		if e.styles[i].prop == prop {
			if value == "" {
				e.styles = append(e.styles[:i], e.styles[i+1:]...)
			} else if e.styles[i].value == value {
				return
			} else {
				e.styles[i].value = value
			}
			e.mutated()
			return
		}
	}
	if value == "" {
		return
	}
	e.styles = append(e.styles, styleEntry{prop: prop, value: value})
	e.mutated()
}

// Style returns one inline style property.
func (e *Element) Style(prop string) string {
	for _, s := range e.styles {
		if s.prop == prop {
			return s.value
		}
	}
	return ""
}

// StyleText returns the inline style attribute text.
func (e *Element) StyleText() string {
	parts := make([]string, len(e.styles))
	for i, s := range e.styles {
		parts[i] = s.prop + ": " + s.value
	}
	return strings.Join(parts, "; ")
}

func parseStyle(text string) []styleEntry {
	var out []styleEntry
	for _, decl := range strings.Split(text, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop, value = strings.TrimSpace(prop), strings.TrimSpace(value)
		if prop != "" && value != "" {
			out = append(out, styleEntry{prop: prop, value: value})
		}
	}
	return out
}

// =============================================================================
// Children
// =============================================================================

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// ChildAt returns the child at index, or nil.
func (e *Element) ChildAt(index int) Node {
	if index < 0 || index >= len(e.children) {
		return nil
	}
	return e.children[index]
}

// IndexOf returns the position of child, or -1.
func (e *Element) IndexOf(child Node) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild moves n to the end of e's children.
func (e *Element) AppendChild(n Node) Node {
	return e.InsertBefore(n, nil)
}

// InsertBefore moves n immediately before ref. A nil ref, or a ref that is
// not a child of e, appends. Inserting an ancestor of e is refused and
// returns nil.
func (e *Element) InsertBefore(n, ref Node) Node {
	if n == nil || e.isSelfOrDescendantOf(n) {
		return nil
	}
	if n == ref {
		return n
	}
	detach(n)

	index := len(e.children)
	if ref != nil {
		if i := e.IndexOf(ref); i >= 0 {
			index = i
		}
	}
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = n
	n.base().parent = e

	e.mutated()
	if e.Connected() {
		fireConnected(n)
	}
	return n
}

// RemoveChild detaches child from e. It returns nil if child is not a
// child of e.
func (e *Element) RemoveChild(child Node) Node {
	i := e.IndexOf(child)
	if i < 0 {
		return nil
	}
	e.removeAt(i)
	e.mutated()
	return child
}

// ReplaceChild puts replacement where old is. It returns old, or nil when
// old is not a child of e.
func (e *Element) ReplaceChild(replacement, old Node) Node {
	if replacement == old {
		return old
	}
	if e.IndexOf(old) < 0 || e.isSelfOrDescendantOf(replacement) {
		return nil
	}
	detach(replacement)
	i := e.IndexOf(old)
	e.children[i] = replacement
	old.base().parent = nil
	replacement.base().parent = e

	e.mutated()
	if e.Connected() {
		fireConnected(replacement)
	}
	return old
}

// ReplaceChildren removes every child and appends nodes.
func (e *Element) ReplaceChildren(nodes ...Node) {
	for _, c := range e.children {
		c.base().parent = nil
	}
	e.children = nil
	for _, n := range nodes {
		e.AppendChild(n)
	}
	e.mutated()
}

func (e *Element) removeAt(i int) {
	c := e.children[i]
	copy(e.children[i:], e.children[i+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	c.base().parent = nil
}

func detach(n Node) {
	if p := n.base().parent; p != nil {
		if i := p.IndexOf(n); i >= 0 {
			p.removeAt(i)
			p.mutated()
		}
	}
}

// isSelfOrDescendantOf reports whether e is n or inside n.
func (e *Element) isSelfOrDescendantOf(n Node) bool {
	anc, ok := n.(*Element)
	if !ok {
		return false
	}
	for cur := e; cur != nil; cur = cur.parent {
		if cur == anc {
			return true
		}
	}
	return false
}

// =============================================================================
// Connected callbacks
// =============================================================================

// OnConnected runs fn once the element is part of a Document. If it
// already is, fn runs immediately.
func (e *Element) OnConnected(fn func(*Element)) {
	if e.Connected() {
		fn(e)
		return
	}
	e.connectHooks = append(e.connectHooks, fn)
}

// fireConnected runs and clears pending hooks in the subtree rooted at n.
func fireConnected(n Node) {
	el, ok := n.(*Element)
	if !ok {
		return
	}
	if hooks := el.connectHooks; len(hooks) > 0 {
		el.connectHooks = nil
		for _, fn := range hooks {
			fn(el)
		}
	}
	for _, c := range el.Children() {
		fireConnected(c)
	}
}

// mutated reports a change to the owning document, if any.
func (e *Element) mutated() {
	if doc := e.document(); doc != nil {
		doc.notify()
	}
}

// =============================================================================
// Queries
// =============================================================================

// Walk calls fn for e and every descendant element, depth first. Walking
// stops when fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if ce, ok := c.(*Element); ok {
			if !ce.Walk(fn) {
				return false
			}
		}
	}
	return true
}

// Find returns the first descendant (or e) matching pred.
func (e *Element) Find(pred func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if pred(el) {
			found = el
			return false
		}
		return true
	})
	return found
}
