// Package dom is an in-memory model of the browser DOM.
//
// The UI core renders into these nodes instead of a real browser so it can
// run and be tested anywhere. The model keeps only what the core relies
// on: parent links, ordered children, attributes, a class list, inline
// styles, event listeners with bubbling, and "connected" callbacks fired
// when an element becomes part of a Document.
//
// A Document owns a body element and a well-known container (#app) that
// the page layer mounts into. Every change inside a Document is reported
// to its mutation observers, which is how the live preview server knows
// when to push a new snapshot.
//
// Render serializes any node to HTML.
package dom
