package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/storefront/pkg/component"
	"github.com/vango-dev/storefront/pkg/dom"
)

// Harness is a document with one mounted component.
type Harness struct {
	t    testing.TB
	doc  *dom.Document
	root component.Component
}

// Mount mounts root into a new document titled after the test. The root is
// unmounted when the test ends.
//
// Example:
//
//	h := vtest.Mount(t, shop.View(store))
func Mount(t testing.TB, root component.Component) *Harness {
	t.Helper()
	doc := dom.NewDocument(t.Name())
	if _, err := component.Mount(doc, root); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(func() { component.Unmount(doc) })
	return &Harness{t: t, doc: doc, root: root}
}

// Document returns the harness document.
func (h *Harness) Document() *dom.Document {
	return h.doc
}

// Element returns the element with id, failing the test if there is none.
func (h *Harness) Element(id string) *dom.Element {
	h.t.Helper()
	el := h.doc.ElementByID(id)
	if el == nil {
		h.t.Fatalf("no element with id %q in:\n%s", id, truncate(h.HTML(), 500))
	}
	return el
}

// Has reports whether an element with id is in the document.
func (h *Harness) Has(id string) bool {
	return h.doc.ElementByID(id) != nil
}

// Dispatch delivers an event to the element with id and fails the test if
// no listener handled it.
//
// Example:
//
//	h.Dispatch("search", "input", "tea")
func (h *Harness) Dispatch(id, event, value string) {
	h.t.Helper()
	if !h.Element(id).Dispatch(&dom.Event{Type: event, Value: value}) {
		h.t.Fatalf("%s on #%s was not handled", event, id)
	}
}

// Click dispatches a click to the element with id.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.Dispatch(id, "click", "")
}

// Text returns the text content of the element with id.
func (h *Harness) Text(id string) string {
	h.t.Helper()
	return h.Element(id).TextContent()
}

// HTML renders the mount container.
func (h *Harness) HTML() string {
	c := h.doc.Container()
	if c == nil {
		return ""
	}
	return dom.RenderString(c)
}

// RenderToString renders the current node of c.
//
// Example:
//
//	html := vtest.RenderToString(MyComponent())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(c component.Component) string {
	n := c.Node()
	if n == nil {
		n = c.Render(false, nil)
	}
	return dom.RenderString(n)
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, c component.Component, expected string) {
	t.Helper()
	html := RenderToString(c)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, c component.Component, unexpected string) {
	t.Helper()
	html := RenderToString(c)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, c component.Component, tag string) {
	t.Helper()
	html := RenderToString(c)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, c component.Component, attr, value string) {
	t.Helper()
	html := RenderToString(c)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
