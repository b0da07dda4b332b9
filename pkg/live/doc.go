// Package live serves a document for development preview.
//
// The server renders the current document on GET / and keeps browsers in
// sync over a websocket at /live: every batch of document mutations is
// pushed as a full HTML snapshot, and DOM events from the browser are
// posted to the UI loop and dispatched to the target element.
//
// Protocol messages are JSON objects:
//
//	server -> client  {"type":"snapshot","html":"<body>...</body>"}
//	client -> server  {"type":"event","target":"12","event":"click","value":""}
//	server -> client  {"type":"error","error":"unknown target"}
//
// target is an element's data-ref or its id.
//
// Snapshots are whole documents, not patches. This is a preview tool for
// the storefront demo, not a production transport.
package live
