// Package errors provides coded, structured errors for the storefront UI core.
//
// Every error carries a short code (e.g. "E101") that maps to a registered
// template with a category, a one-line message and a longer detail. Coded
// errors compare equal under errors.Is when their codes match, so callers
// can test for a condition without holding a sentinel:
//
//	err := list.Remove(7)
//	if errors.Is(err, storeerrors.New("E101")) {
//	    // index out of range
//	}
//
// # Error Categories
//
//   - reactive: property, tracker and list misuse
//   - component: rendering and mounting failures
//   - config: storefront.json problems
//   - export: snapshot upload failures
package errors
