package reactive

import (
	"errors"
	"testing"
)

func TestDerivedTracksReadsAndIgnoresOthers(t *testing.T) {
	tr := NewTracker()
	a := New(1, WithTracker(tr))
	b := New(2, WithTracker(tr))
	c := New(100, WithTracker(tr))
	runs := 0

	sum := NewDerived(func() int {
		runs++
		return a.Get() + b.Get() + c.Peek()
	}, WithTracker(tr), Named("sum"))

	if sum.Get() != 103 {
		t.Fatalf("initial sum = %d", sum.Get())
	}

	a.Set(10)
	if sum.Peek() != 112 {
		t.Errorf("after a.Set: %d", sum.Peek())
	}
	b.Set(20)
	if sum.Peek() != 130 {
		t.Errorf("after b.Set: %d", sum.Peek())
	}

	before := runs
	c.Set(0)
	if runs != before {
		t.Errorf("untracked c triggered %d recomputes", runs-before)
	}
	if len(sum.Dependencies()) != 2 {
		t.Errorf("expected 2 deps, got %d", len(sum.Dependencies()))
	}
}

func TestDerivedIdenticalResultDoesNotCascade(t *testing.T) {
	tr := NewTracker()
	n := New(2, WithTracker(tr))
	parity := NewDerived(func() bool { return n.Get()%2 == 0 }, WithTracker(tr))
	calls := 0
	parity.OnChange(func(bool, bool, *Property[bool]) { calls++ })

	n.Set(4)
	n.Set(6)
	if calls != 0 {
		t.Errorf("same parity should not notify, got %d", calls)
	}
	n.Set(7)
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestDerivedChain(t *testing.T) {
	tr := NewTracker()
	price := New(5, WithTracker(tr))
	qty := NewInt(2, WithTracker(tr))
	subtotal := NewDerived(func() int { return price.Get() * qty.Get() }, WithTracker(tr))
	label := NewDerived(func() string {
		if subtotal.Get() > 20 {
			return "big"
		}
		return "small"
	}, WithTracker(tr))

	qty.Add(3)
	if subtotal.Peek() != 25 || label.Peek() != "big" {
		t.Errorf("subtotal=%d label=%q", subtotal.Peek(), label.Peek())
	}
}

func TestDerivedBuiltInsideUpdaterKeepsOwnDeps(t *testing.T) {
	tr := NewTracker()
	a := New(1, WithTracker(tr))
	b := New(2, WithTracker(tr))

	var inner *Derived[int]
	outer := NewDerived(func() int {
		if inner == nil {
			inner = NewDerived(func() int { return b.Get() * 2 }, WithTracker(tr))
		}
		return a.Get()
	}, WithTracker(tr))

	if len(outer.Dependencies()) != 1 || outer.Dependencies()[0].ID() != a.ID() {
		t.Errorf("outer deps = %v", outer.Dependencies())
	}
	if len(inner.Dependencies()) != 1 || inner.Dependencies()[0].ID() != b.ID() {
		t.Errorf("inner deps = %v", inner.Dependencies())
	}
}

// Dependencies are fixed at construction; a branch not taken on the first
// run is never tracked. This is a known limitation.
func TestDerivedUntakenBranchIsNotTracked(t *testing.T) {
	tr := NewTracker()
	useA := NewBool(true, WithTracker(tr))
	a := New("a", WithTracker(tr))
	b := New("b", WithTracker(tr))

	pick := NewDerived(func() string {
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	}, WithTracker(tr))

	useA.Disable()
	if pick.Peek() != "b" {
		t.Fatalf("expected b after switching, got %q", pick.Peek())
	}

	b.Set("b2")
	if pick.Peek() != "b" {
		t.Errorf("b was never tracked, expected stale \"b\", got %q", pick.Peek())
	}
}

func TestDerivedPanicPropagatesAndKeepsValue(t *testing.T) {
	tr := NewTracker()
	errNegative := errors.New("negative")
	n := New(1, WithTracker(tr))
	sqrtish := NewDerived(func() int {
		v := n.Get()
		if v < 0 {
			panic(errNegative)
		}
		return v * v
	}, WithTracker(tr))

	func() {
		defer func() {
			r := recover()
			if r != errNegative {
				t.Errorf("expected errNegative to reach Set caller, got %v", r)
			}
		}()
		n.Set(-1)
	}()

	if sqrtish.Peek() != 1 {
		t.Errorf("derived should keep its value on failure, got %d", sqrtish.Peek())
	}
	if n.Peek() != -1 {
		t.Errorf("upstream keeps its new value, got %d", n.Peek())
	}
	if tr.Depth() != 0 {
		t.Errorf("tracker left with %d open frames", tr.Depth())
	}

	n.Set(3)
	if sqrtish.Peek() != 9 {
		t.Errorf("derived should recover on next change, got %d", sqrtish.Peek())
	}
}

func TestDerivedPanicDuringConstruction(t *testing.T) {
	tr := NewTracker()
	defer func() {
		if recover() == nil {
			t.Error("expected construction panic to propagate")
		}
		if tr.Depth() != 0 {
			t.Errorf("frame leaked, depth %d", tr.Depth())
		}
	}()
	NewDerived(func() int { panic("bad") }, WithTracker(tr))
}

func TestDerivedDispose(t *testing.T) {
	tr := NewTracker()
	a := New(1, WithTracker(tr))
	d := NewDerived(func() int { return a.Get() + 1 }, WithTracker(tr))

	if a.ListenerCount() != 1 {
		t.Fatalf("expected derived to subscribe once, got %d", a.ListenerCount())
	}
	d.Dispose()
	a.Set(5)
	if d.Peek() != 2 {
		t.Errorf("disposed derived should not update, got %d", d.Peek())
	}
	if a.ListenerCount() != 0 {
		t.Errorf("expected no listeners after Dispose, got %d", a.ListenerCount())
	}
}
