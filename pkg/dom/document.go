package dom

import (
	"bytes"
	"strconv"
)

// ContainerID is the id of the element the page layer mounts into.
const ContainerID = "app"

// Document is the root of a connected tree.
type Document struct {
	title     string
	body      *Element
	container *Element

	observers []*observer

	// mutations counts every reported change.
	mutations uint64
}

type observer struct {
	fn      func()
	removed bool
}

// NewDocument creates a document with a body holding the #app container.
func NewDocument(title string) *Document {
	d := &Document{title: title}
	d.body = NewElement("body")
	d.body.doc = d
	d.container = NewElement("div")
	d.container.SetAttribute("id", ContainerID)
	d.body.AppendChild(d.container)
	d.mutations = 0
	return d
}

// Title returns the document title.
func (d *Document) Title() string {
	return d.title
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.body
}

// Container returns the mount container (#app). It is nil only if the page
// layer removed it.
func (d *Document) Container() *Element {
	if d.container != nil && d.container.document() == d {
		return d.container
	}
	return nil
}

// ElementByID returns the first element with the given id.
func (d *Document) ElementByID(id string) *Element {
	return d.body.Find(func(el *Element) bool { return el.ID() == id })
}

// ElementByRef returns the element with the given routing reference.
func (d *Document) ElementByRef(ref uint64) *Element {
	return d.body.Find(func(el *Element) bool { return el.ref == ref })
}

// Lookup resolves a target string: a numeric data-ref or an element id.
func (d *Document) Lookup(target string) *Element {
	if ref, err := strconv.ParseUint(target, 10, 64); err == nil {
		if el := d.ElementByRef(ref); el != nil {
			return el
		}
	}
	return d.ElementByID(target)
}

// OnMutation registers fn to run after every change inside the document.
// Observers must not mutate the document.
func (d *Document) OnMutation(fn func()) (cancel func()) {
	o := &observer{fn: fn}
	d.observers = append(d.observers, o)
	return func() {
		o.removed = true
		for i, x := range d.observers {
			if x == o {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// Mutations returns the number of changes reported so far.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

func (d *Document) notify() {
	d.mutations++
	if len(d.observers) == 0 {
		return
	}
	snapshot := make([]*observer, len(d.observers))
	copy(snapshot, d.observers)
	for _, o := range snapshot {
		if !o.removed {
			o.fn()
		}
	}
}

// HTML renders the complete page.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	buf.WriteString(escapeHTML(d.title))
	buf.WriteString("</title></head>")
	_ = Render(&buf, d.body)
	buf.WriteString("</html>\n")
	return buf.String()
}
