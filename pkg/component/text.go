package component

import (
	"strconv"

	"github.com/vango-dev/storefront/pkg/dom"
)

// Text is an immutable text component.
type Text struct {
	text string
	node *dom.Text
}

// NewText creates a text component. Its node is created immediately and
// never changes.
func NewText(s string) *Text {
	return &Text{text: s, node: dom.NewText(s)}
}

// Number is NewText for an integer.
func Number(n int) *Text {
	return NewText(strconv.Itoa(n))
}

// Render implements Component.
func (t *Text) Render(bool, Component) dom.Node {
	return t.node
}

// Node implements Component.
func (t *Text) Node() dom.Node {
	return t.node
}

// Value returns the text.
func (t *Text) Value() string {
	return t.text
}

func (t *Text) String() string {
	return "Text(" + strconv.Quote(t.text) + ")"
}
