package reactive

import (
	"errors"
	"reflect"
	"testing"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

func TestRecordNestedWriteNotifies(t *testing.T) {
	tr := NewTracker()
	user := NewRecord(WithTracker(tr), Named("user"))
	type event struct {
		path        string
		value, prev any
	}
	var events []event
	user.Watch(func(path string, v, prev any) {
		events = append(events, event{path, v, prev})
	})

	if err := user.Set("name", "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := user.Set("address.city", "London"); err != nil {
		t.Fatal(err)
	}
	user.Set("address.city", "London")

	want := []event{
		{"name", "Ada", nil},
		{"address.city", "London", nil},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v", events)
	}
	if user.Revision().Peek() != 2 {
		t.Errorf("revision = %d", user.Revision().Peek())
	}

	var childEvents []string
	user.Child("address").Watch(func(path string, _, _ any) { childEvents = append(childEvents, path) })
	user.Set("address.zip", "N1")
	if !reflect.DeepEqual(childEvents, []string{"zip"}) {
		t.Errorf("child saw %v", childEvents)
	}
}

func TestRecordGetAndSnapshot(t *testing.T) {
	tr := NewTracker()
	r := NewRecord(WithTracker(tr))
	r.Set("a", 1)
	r.Set("b.c", "x")

	if r.Get("a") != 1 || r.Get("b.c") != "x" {
		t.Errorf("Get returned %v, %v", r.Get("a"), r.Get("b.c"))
	}
	if r.Get("missing") != nil {
		t.Error("missing field should read nil")
	}
	if r.Get("bad..path") != nil {
		t.Error("invalid path should read nil")
	}

	if r.Get("x.y.z") != nil || r.Get("b.nope") != nil {
		t.Error("absent nested paths should read nil")
	}

	want := map[string]any{"a": 1, "b": map[string]any{"c": "x"}}
	if got := r.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot = %v", got)
	}
	if !reflect.DeepEqual(r.Keys(), []string{"a", "b"}) {
		t.Errorf("reads should not add keys, Keys = %v", r.Keys())
	}
}

func TestRecordDerivedOverAbsentPath(t *testing.T) {
	tr := NewTracker()
	r := NewRecord(WithTracker(tr))
	city := NewDerived(func() string {
		s, _ := r.Get("address.city").(string)
		return s
	}, WithTracker(tr))

	if len(r.Keys()) != 0 {
		t.Fatalf("reading an absent path changed the record: %v", r.Keys())
	}

	r.Set("address.city", "Paris")
	if city.Peek() != "Paris" {
		t.Errorf("city = %q, want Paris", city.Peek())
	}
}

func TestRecordDerivedOverField(t *testing.T) {
	tr := NewTracker()
	r := NewRecord(WithTracker(tr))
	r.Set("qty", 1)
	doubled := NewDerived(func() int {
		n, _ := r.Get("qty").(int)
		return n * 2
	}, WithTracker(tr))
	snapshots := 0
	NewDerived(func() int {
		snapshots++
		return len(r.Snapshot())
	}, WithTracker(tr))

	r.Set("qty", 4)
	if doubled.Peek() != 8 {
		t.Errorf("doubled = %d", doubled.Peek())
	}
	r.Set("other", true)
	if snapshots != 3 {
		t.Errorf("snapshot derived should rerun per change, ran %d", snapshots)
	}
}

func TestRecordInvalidPath(t *testing.T) {
	r := NewRecord(WithTracker(NewTracker()))
	for _, path := range []string{"", ".a", "a.", "a..b"} {
		if err := r.Set(path, 1); !errors.Is(err, storeerrors.New("E103")) {
			t.Errorf("Set(%q) = %v, want E103", path, err)
		}
	}
}

func TestRecordOnAnyChange(t *testing.T) {
	r := NewRecord(WithTracker(NewTracker()))
	calls := 0
	sub := r.OnAnyChange(func() { calls++ })
	r.Set("x", 1)
	sub.Unsubscribe()
	r.Set("x", 2)
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}
