package component

import (
	"sync"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/pkg/dom"
)

var (
	mountMu sync.Mutex
	mounted = map[*dom.Document]Component{}
)

// Mount clears the document's container and attaches root's node. The
// root mounted by the previous call on the same document is disposed
// first. Every call is a full reset.
func Mount(doc *dom.Document, root Component) (dom.Node, error) {
	container := doc.Container()
	if container == nil {
		return nil, storeerrors.New("E202").With("id", dom.ContainerID)
	}

	mountMu.Lock()
	prev := mounted[doc]
	mounted[doc] = root
	mountMu.Unlock()

	if prev != nil && prev != root {
		Dispose(prev)
	}
	container.ReplaceChildren()

	n := root.Render(false, nil)
	if n != nil {
		container.AppendChild(n)
	}
	return n, nil
}

// Unmount disposes the root mounted on doc and clears the container.
func Unmount(doc *dom.Document) {
	mountMu.Lock()
	prev := mounted[doc]
	delete(mounted, doc)
	mountMu.Unlock()

	if prev != nil {
		Dispose(prev)
	}
	if c := doc.Container(); c != nil {
		c.ReplaceChildren()
	}
}
