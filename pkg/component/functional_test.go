package component

import (
	"testing"

	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/reactive"
)

func TestFunctionalSelfVersusForeignRender(t *testing.T) {
	tr := reactive.NewTracker()
	count := reactive.NewInt(0, reactive.WithTracker(tr))
	f := NewFunctional(func() Component {
		return Number(count.Get())
	}, reactive.WithTracker(tr))

	parent := dom.NewElement("div")
	parent.AppendChild(dom.NewText("before"))
	parent.AppendChild(f.Node())
	parent.AppendChild(dom.NewText("after"))

	old := f.Node()

	// An update on someone else's behalf returns the cached node.
	if got := f.Render(true, NewText("unrelated")); got != old {
		t.Error("foreign update should return the cached node")
	}
	if got := f.Render(false, nil); got != old {
		t.Error("plain render should return the cached node")
	}
	if f.Replacements() != 0 {
		t.Fatalf("Replacements() = %d, want 0", f.Replacements())
	}

	// Its own dependency changing rebuilds in place.
	count.Set(1)

	n := f.Node()
	if n == old {
		t.Fatal("node should be replaced")
	}
	if old.Parent() != nil {
		t.Error("old node should be detached")
	}
	if parent.ChildCount() != 3 || parent.ChildAt(1) != n {
		t.Errorf("new node not at the old position: %s", dom.RenderString(parent))
	}
	if n.TextContent() != "1" {
		t.Errorf("TextContent() = %q, want 1", n.TextContent())
	}
}

func TestCounterRendersThreeAfterThreeIncrements(t *testing.T) {
	tr := reactive.NewTracker()
	count := reactive.NewInt(0, reactive.WithTracker(tr), reactive.Named("count"))
	f := NewFunctional(func() Component {
		return Span(Content("count: "), Children(Number(count.Get())))
	}, reactive.WithTracker(tr), reactive.Named("counter"))

	doc := dom.NewDocument("counter")
	if _, err := Mount(doc, f); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	count.Inc()
	count.Inc()
	count.Inc()

	if got := f.Node().TextContent(); got != "count: 3" {
		t.Errorf("TextContent() = %q, want %q", got, "count: 3")
	}
	if f.Replacements() != 3 {
		t.Errorf("Replacements() = %d, want 3", f.Replacements())
	}
	if doc.Container().ChildCount() != 1 || doc.Container().ChildAt(0) != f.Node() {
		t.Error("container should hold exactly the current node")
	}
}

func TestFunctionalDispose(t *testing.T) {
	tr := reactive.NewTracker()
	name := reactive.NewString("a", reactive.WithTracker(tr))
	f := NewFunctional(func() Component {
		return NewText(name.Get())
	}, reactive.WithTracker(tr))

	if name.ListenerCount() != 1 {
		t.Fatalf("ListenerCount() = %d, want 1", name.ListenerCount())
	}

	f.Dispose()
	f.Dispose()
	if name.ListenerCount() != 0 {
		t.Errorf("ListenerCount() after Dispose = %d, want 0", name.ListenerCount())
	}

	name.Set("b")
	if f.Replacements() != 0 {
		t.Error("disposed component should not rebuild")
	}
	if f.Render(true, f) != f.Node() {
		t.Error("disposed component should return its cached node")
	}
}

func TestFunctionalNestedDependenciesStayInner(t *testing.T) {
	tr := reactive.NewTracker()
	title := reactive.NewString("Cart", reactive.WithTracker(tr))
	items := reactive.NewInt(0, reactive.WithTracker(tr))

	badge := NewFunctional(func() Component {
		return Number(items.Get())
	}, reactive.WithTracker(tr))

	header := NewFunctional(func() Component {
		return Div(Content(title.Get()), Children(badge))
	}, reactive.WithTracker(tr))

	if len(header.Dependencies()) != 1 {
		t.Fatalf("header deps = %v, want only title", header.Dependencies())
	}

	items.Set(2)
	if badge.Replacements() != 1 || header.Replacements() != 0 {
		t.Errorf("replacements badge=%d header=%d, want 1 and 0",
			badge.Replacements(), header.Replacements())
	}

	// Rebuilding the header keeps the badge alive and moves its node.
	title.Set("Basket")
	if header.Replacements() != 1 {
		t.Fatalf("header Replacements() = %d, want 1", header.Replacements())
	}
	if items.ListenerCount() != 1 {
		t.Errorf("badge should stay subscribed, ListenerCount() = %d", items.ListenerCount())
	}

	items.Set(5)
	if got := header.Node().TextContent(); got != "Basket5" {
		t.Errorf("TextContent() = %q, want Basket5", got)
	}
}

func TestFunctionalRebuildDisposesPreviousInner(t *testing.T) {
	tr := reactive.NewTracker()
	on := reactive.NewBool(false, reactive.WithTracker(tr))
	active := reactive.NewBool(true, reactive.WithTracker(tr))

	f := NewFunctional(func() Component {
		on.Get()
		return Div().PropClass("active", active)
	}, reactive.WithTracker(tr))

	if active.ListenerCount() != 1 {
		t.Fatalf("ListenerCount() = %d, want 1", active.ListenerCount())
	}

	on.Toggle()
	if f.Replacements() != 1 {
		t.Errorf("Replacements() = %d, want 1", f.Replacements())
	}
	if active.ListenerCount() != 1 {
		t.Errorf("old binding should be released, ListenerCount() = %d", active.ListenerCount())
	}
}

func TestFunctionalDependenciesFixedAtConstruction(t *testing.T) {
	tr := reactive.NewTracker()
	useB := reactive.NewBool(false, reactive.WithTracker(tr))
	a := reactive.NewString("a", reactive.WithTracker(tr))
	b := reactive.NewString("b", reactive.WithTracker(tr))

	f := NewFunctional(func() Component {
		if useB.Get() {
			return NewText(b.Get())
		}
		return NewText(a.Get())
	}, reactive.WithTracker(tr))

	useB.Enable()
	if f.Node().TextContent() != "b" {
		t.Fatalf("TextContent() = %q, want b", f.Node().TextContent())
	}

	// b was never read during construction, so it is not a dependency.
	b.Set("B")
	if f.Node().TextContent() != "b" {
		t.Errorf("untracked branch should not trigger a rebuild")
	}
}
