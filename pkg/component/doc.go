// Package component turns reactive properties into DOM nodes.
//
// Every component produces one node through Render(update, source):
//
//   - Render(false, nil) returns the cached node, materializing it on the
//     first call.
//   - Render(true, c) called with c as the source means one of c's own
//     dependencies changed and c must rebuild its subtree.
//   - Render(true, other) propagates an update on behalf of someone else;
//     components return their cached node.
//
// There is no diffing. A Functional swaps its own node in place when a
// property it read changes, a List mirrors structural list events into
// DOM child order by index, Html bindings (PropClass, PropAttr) mutate the
// live element without any render, and an Async swaps its placeholder
// when its producer settles on the UI goroutine.
//
// Components are not safe for concurrent use; see package host.
package component
