package dom

import "testing"

func TestDispatchBubbles(t *testing.T) {
	outer := NewElement("div")
	button := NewElement("button")
	outer.AppendChild(button)

	var order []string
	outer.AddEventListener("click", func(ev *Event) {
		order = append(order, "outer")
		if ev.Target != button || ev.CurrentTarget != outer {
			t.Error("wrong targets on bubbled event")
		}
	})
	button.AddEventListener("click", func(*Event) { order = append(order, "button") })

	if !button.Dispatch(&Event{Type: "click"}) {
		t.Fatal("Dispatch should report handled")
	}
	if len(order) != 2 || order[0] != "button" || order[1] != "outer" {
		t.Errorf("order = %v", order)
	}
}

func TestStopPropagation(t *testing.T) {
	outer := NewElement("div")
	inner := NewElement("span")
	outer.AppendChild(inner)

	outerRan := false
	outer.AddEventListener("click", func(*Event) { outerRan = true })
	inner.AddEventListener("click", func(ev *Event) { ev.StopPropagation() })

	inner.Dispatch(&Event{Type: "click"})
	if outerRan {
		t.Error("propagation should have stopped")
	}
}

func TestRemoveEventListener(t *testing.T) {
	el := NewElement("button")
	count := 0
	remove := el.AddEventListener("click", func(*Event) { count++ })

	el.Dispatch(&Event{Type: "click"})
	remove()
	remove()
	if el.Dispatch(&Event{Type: "click"}) {
		t.Error("no listener should run after removal")
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if el.HasListeners() {
		t.Error("HasListeners() should be false")
	}
}
