package component

import (
	"errors"
	"strings"
	"testing"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/reactive"
)

func renderItem(p *reactive.Property[string]) Component {
	return Li(Content(p.Get()))
}

// texts returns the text of every child of el.
func texts(el *dom.Element) string {
	var parts []string
	for _, c := range el.Children() {
		parts = append(parts, c.TextContent())
	}
	return strings.Join(parts, ",")
}

func newTestList(t *testing.T, values ...string) (*reactive.List[string], *List[string]) {
	t.Helper()
	tr := reactive.NewTracker()
	items := reactive.NewList(values, reactive.WithTracker(tr), reactive.Named("items"))
	l, err := NewList(items, Ul(), renderItem)
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}
	return items, l
}

func TestListRendersExistingItems(t *testing.T) {
	_, l := newTestList(t, "a", "b", "c")
	if got := texts(l.Element()); got != "a,b,c" {
		t.Errorf("children = %q, want a,b,c", got)
	}
	if len(l.Children()) != 3 {
		t.Errorf("len(Children()) = %d, want 3", len(l.Children()))
	}
}

func TestListPushAndInsert(t *testing.T) {
	items, l := newTestList(t)

	items.Push("x1")
	items.Push("x2")
	if _, err := items.Insert(1, "y"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if got := texts(l.Element()); got != "x1,y,x2" {
		t.Errorf("children = %q, want x1,y,x2", got)
	}

	if _, err := items.Insert(3, "end"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := items.Insert(0, "start"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if got := texts(l.Element()); got != "start,x1,y,x2,end" {
		t.Errorf("children = %q", got)
	}
}

func TestListInsertBeforeEmptyItem(t *testing.T) {
	tr := reactive.NewTracker()
	items := reactive.NewList([]string{"a", "", "b"}, reactive.WithTracker(tr))
	l, err := NewList(items, Ul(), func(p *reactive.Property[string]) Component {
		if p.Get() == "" {
			return nil
		}
		return Li(Content(p.Get()))
	})
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}

	if _, err := items.Insert(1, "x"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if got := texts(l.Element()); got != "a,x,b" {
		t.Errorf("children = %q, want a,x,b", got)
	}

	// Nothing rendered after the insertion point, so the node goes last.
	items.Push("")
	if _, err := items.Insert(4, "y"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if got := texts(l.Element()); got != "a,x,b,y" {
		t.Errorf("children = %q, want a,x,b,y", got)
	}
}

func TestListRemoveLeavesNoListener(t *testing.T) {
	items, l := newTestList(t, "a", "b", "c")
	removed, _ := items.At(1)
	if removed.ListenerCount() != 1 {
		t.Fatalf("ListenerCount() = %d, want 1", removed.ListenerCount())
	}

	if err := items.Remove(1); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if l.Element().ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", l.Element().ChildCount())
	}
	if got := texts(l.Element()); got != "a,c" {
		t.Errorf("children = %q, want a,c", got)
	}
	if removed.ListenerCount() != 0 {
		t.Errorf("removed item still has %d listeners", removed.ListenerCount())
	}
	if len(l.Children()) != 2 {
		t.Errorf("len(Children()) = %d, want 2", len(l.Children()))
	}
}

func TestListPutRebuildsOnlyThatItem(t *testing.T) {
	items, l := newTestList(t, "a", "b")
	first := l.Element().ChildAt(0)
	second := l.Element().ChildAt(1)

	if err := items.Put(0, "z"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if l.Element().ChildAt(0) == first {
		t.Error("first item should be rebuilt")
	}
	if l.Element().ChildAt(1) != second {
		t.Error("second item should keep its node")
	}
	if got := texts(l.Element()); got != "z,b" {
		t.Errorf("children = %q, want z,b", got)
	}
}

func TestListClearAndFilter(t *testing.T) {
	items, l := newTestList(t, "apple", "bread", "avocado", "milk")

	items.Filter(func(s string) bool { return strings.HasPrefix(s, "a") })
	if got := texts(l.Element()); got != "apple,avocado" {
		t.Errorf("children = %q, want apple,avocado", got)
	}

	items.Clear()
	if l.Element().ChildCount() != 0 || len(l.Children()) != 0 {
		t.Error("Clear should remove every child")
	}
}

func TestListKeepsStaticChildren(t *testing.T) {
	tr := reactive.NewTracker()
	items := reactive.NewList([]string{"a"}, reactive.WithTracker(tr))
	container := Ul(Children(Li(Content("header"))))
	l, err := NewList(items, container, renderItem)
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}

	if _, err := items.Insert(0, "first"); err != nil {
		t.Fatal(err)
	}
	if got := texts(l.Element()); got != "header,first,a" {
		t.Errorf("children = %q, want header,first,a", got)
	}
}

func TestListNonElementContainer(t *testing.T) {
	items := reactive.NewList([]string{"a"}, reactive.WithTracker(reactive.NewTracker()))
	_, err := NewList(items, NewText("not an element"), renderItem)
	if !errors.Is(err, storeerrors.New("E203")) {
		t.Errorf("NewList() error = %v, want E203", err)
	}
}

func TestListDispose(t *testing.T) {
	items, l := newTestList(t, "a", "b")
	p, _ := items.At(0)

	l.Dispose()
	if items.HandlerCount() != 0 {
		t.Errorf("HandlerCount() = %d, want 0", items.HandlerCount())
	}
	if p.ListenerCount() != 0 {
		t.Errorf("item ListenerCount() = %d, want 0", p.ListenerCount())
	}

	items.Push("c")
	if l.Element().ChildCount() != 2 {
		t.Error("disposed list should not react")
	}
}
