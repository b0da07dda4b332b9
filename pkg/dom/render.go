package dom

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Render writes n as HTML. Elements with event listeners carry a
// data-ref attribute so remote events can be routed back to them.
func Render(w io.Writer, n Node) error {
	switch v := n.(type) {
	case nil:
		return nil
	case *Text:
		_, err := io.WriteString(w, escapeHTML(v.data))
		return err
	case *Element:
		return renderElement(w, v)
	default:
		return nil
	}
}

// RenderString renders n to a string.
func RenderString(n Node) string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}

func renderElement(w io.Writer, e *Element) error {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		writeAttr(&b, a.Name, a.Value)
	}
	if len(e.classes) > 0 {
		writeAttr(&b, "class", e.ClassName())
	}
	if len(e.styles) > 0 {
		writeAttr(&b, "style", e.StyleText())
	}
	if e.HasListeners() {
		writeAttr(&b, "data-ref", strconv.FormatUint(e.ref, 10))
	}
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if isVoidElement(e.tag) {
		return nil
	}

	for _, c := range e.children {
		if err := Render(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+e.tag+">")
	return err
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(escapeAttr(value))
	b.WriteByte('"')
}

// isVoidElement reports whether tag has no closing tag.
func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}
