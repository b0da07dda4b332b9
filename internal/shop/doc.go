// Package shop is a small storefront assembled from the reactive core.
//
// It owns a static catalog and a cart held in a reactive.List. The cart
// total and item count are derived properties, and the recommendations
// panel is loaded asynchronously. The CLI mounts View into a document and
// serves it through the live preview server.
package shop
