package reactive

import (
	"sort"
	"strings"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

// RecordFunc receives the dotted path of a changed field with its new and
// previous values.
type RecordFunc func(path string, value, previous any)

// Record is a compound value represented as a tree of named
// sub-properties. Writing any nested field notifies the record's watchers
// (and those of every enclosing record) with the field's full path.
//
// Writes must go through Set or a field property; mutating a value
// obtained from Get or Snapshot in place is not observed.
type Record struct {
	id      uint64
	name    string
	tracker *Tracker

	fields   map[string]*Property[any]
	children map[string]*Record

	// revision increments on every nested change.
	revision *IntProperty

	watchers handlerList[RecordFunc]

	parent *Record
	key    string
}

// NewRecord creates an empty record.
func NewRecord(opts ...Option) *Record {
	o := ApplyOptions(opts)
	return newRecord(o.Name, o.Tracker, nil, "")
}

func newRecord(name string, t *Tracker, parent *Record, key string) *Record {
	return &Record{
		id:       nextID(),
		name:     name,
		tracker:  t,
		fields:   make(map[string]*Property[any]),
		children: make(map[string]*Record),
		revision: &IntProperty{newProperty(0, Options{Name: name + "#rev", Tracker: t})},
		parent:   parent,
		key:      key,
	}
}

// Field returns the property for a direct field, creating it on first use.
func (r *Record) Field(name string) *Property[any] {
	if p, ok := r.fields[name]; ok {
		return p
	}
	p := newProperty[any](nil, Options{Name: r.name + "." + name, Tracker: r.tracker})
	p.OnChange(func(v, prev any, _ *Property[any]) {
		r.changed(name, v, prev)
	})
	r.fields[name] = p
	return p
}

// Child returns the nested record under name, creating it on first use.
func (r *Record) Child(name string) *Record {
	if c, ok := r.children[name]; ok {
		return c
	}
	c := newRecord(r.name+"."+name, r.tracker, r, name)
	r.children[name] = c
	return c
}

// Get returns the value at a dotted path ("address.city"). It is a tracked
// read of that field. A path that does not exist yet reads as nil without
// creating anything; the read tracks the revision of the deepest record
// on the path instead, so it is seen once the field appears. An invalid
// path reads as nil.
func (r *Record) Get(path string) any {
	owner, field, err := r.lookup(path)
	if err != nil {
		return nil
	}
	if p, ok := owner.fields[field]; ok {
		return p.Get()
	}
	owner.revision.Get()
	return nil
}

// Set writes the value at a dotted path, creating intermediate records.
func (r *Record) Set(path string, v any) error {
	owner, field, err := r.resolve(path)
	if err != nil {
		return err
	}
	owner.Field(field).Set(v)
	return nil
}

// Snapshot returns the record as nested maps. It is a tracked read of the
// record revision, so it changes whenever any nested field does.
func (r *Record) Snapshot() map[string]any {
	r.revision.Get()
	return r.snapshot()
}

func (r *Record) snapshot() map[string]any {
	out := make(map[string]any, len(r.fields)+len(r.children))
	for k, p := range r.fields {
		out[k] = p.value
	}
	for k, c := range r.children {
		out[k] = c.snapshot()
	}
	return out
}

// Keys returns the direct field and child names, sorted.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.fields)+len(r.children))
	for k := range r.fields {
		keys = append(keys, k)
	}
	for k := range r.children {
		if _, dup := r.fields[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Watch registers fn for every nested change.
func (r *Record) Watch(fn RecordFunc) *Subscription {
	return r.watchers.add(fn)
}

// Revision returns the change counter.
func (r *Record) Revision() *IntProperty {
	return r.revision
}

// ID implements Source.
func (r *Record) ID() uint64 {
	return r.id
}

// Name implements Source.
func (r *Record) Name() string {
	return r.name
}

// OnAnyChange implements Source.
func (r *Record) OnAnyChange(fn func()) *Subscription {
	return r.watchers.add(func(string, any, any) { fn() })
}

func (r *Record) changed(path string, v, prev any) {
	r.revision.Inc()
	r.watchers.each(func(fn RecordFunc) { fn(path, v, prev) })
	if r.parent != nil {
		r.parent.changed(r.key+"."+path, v, prev)
	}
}

func splitPath(path string) ([]string, error) {
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, storeerrors.New("E103").With("path", path)
		}
	}
	return parts, nil
}

// resolve walks path, creating intermediate records.
func (r *Record) resolve(path string) (*Record, string, error) {
	parts, err := splitPath(path)
	if err != nil {
		return nil, "", err
	}
	owner := r
	for _, p := range parts[:len(parts)-1] {
		owner = owner.Child(p)
	}
	return owner, parts[len(parts)-1], nil
}

// lookup walks path without creating anything. When an intermediate record
// is missing it returns the deepest existing one and an empty field name.
func (r *Record) lookup(path string) (*Record, string, error) {
	parts, err := splitPath(path)
	if err != nil {
		return nil, "", err
	}
	owner := r
	for _, p := range parts[:len(parts)-1] {
		c, ok := owner.children[p]
		if !ok {
			return owner, "", nil
		}
		owner = c
	}
	return owner, parts[len(parts)-1], nil
}
