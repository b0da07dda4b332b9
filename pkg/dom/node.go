package dom

import "strings"

// Node is an element or a text node.
type Node interface {
	// Parent returns the parent element, or nil when detached.
	Parent() *Element

	// TextContent returns the concatenated text of the node and its
	// descendants.
	TextContent() string

	// Connected reports whether the node is inside a Document.
	Connected() bool

	base() *node
}

type node struct {
	parent *Element
}

func (n *node) base() *node {
	return n
}

// Parent implements Node.
func (n *node) Parent() *Element {
	return n.parent
}

// Text is a text node.
type Text struct {
	node
	data string
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	return &Text{data: data}
}

// Data returns the text.
func (t *Text) Data() string {
	return t.data
}

// SetData replaces the text.
func (t *Text) SetData(data string) {
	if t.data == data {
		return
	}
	t.data = data
	if t.parent != nil {
		t.parent.mutated()
	}
}

// TextContent implements Node.
func (t *Text) TextContent() string {
	return t.data
}

// Connected implements Node.
func (t *Text) Connected() bool {
	return t.parent != nil && t.parent.Connected()
}

func (t *Text) String() string {
	return "#text " + t.data
}

// Replace swaps old for replacement in old's parent. It reports false when
// old is detached, in which case nothing happens.
func Replace(old, replacement Node) bool {
	p := old.Parent()
	if p == nil {
		return false
	}
	return p.ReplaceChild(replacement, old) != nil
}

// Remove detaches n from its parent, if any.
func Remove(n Node) {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
}

func textOf(children []Node) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
