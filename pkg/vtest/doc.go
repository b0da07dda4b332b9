// Package vtest provides testing helpers for components.
//
// A Harness mounts a component into a fresh document so tests can click
// elements by id and assert on the resulting text and HTML.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    count := reactive.NewInt(0)
//	    h := vtest.Mount(t, Counter(count))
//	    h.Click("inc")
//	    h.Click("inc")
//	    if got := h.Text("count"); got != "2" {
//	        t.Errorf("count = %q", got)
//	    }
//	}
//
// # Render Assertions
//
// Assert on the rendered HTML of a component:
//
//	vtest.ExpectContains(t, comp, "Welcome")
//	vtest.ExpectNotContains(t, comp, "Login")
//	vtest.ExpectAttribute(t, comp, "class", "btn-primary")
//
// Harness methods run on the test goroutine. Components whose work is
// posted to a host.Loop need the loop stepped by the test.
package vtest
