package shop

import (
	"context"
	"strconv"

	"github.com/vango-dev/storefront/pkg/component"
	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/host"
	"github.com/vango-dev/storefront/pkg/reactive"
)

// Page is a built storefront view.
type Page struct {
	// Root is the component to mount.
	Root component.Component

	// Recommendations is the async panel, nil when the page has none.
	Recommendations *component.Async
}

var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Ready is closed once the recommendations panel has settled.
func (p *Page) Ready() <-chan struct{} {
	if p.Recommendations == nil {
		return closed
	}
	return p.Recommendations.Done()
}

// View builds the storefront page for s. Recommendations are produced by
// rec on a background goroutine and applied through sched. A nil rec
// leaves the panel out.
func View(s *Store, sched host.Scheduler, rec Recommender) (*Page, error) {
	track := reactive.WithTracker(s.tracker)

	cart, err := component.NewList(s.Cart, component.Ul(component.ID("cart")), func(line *reactive.Property[CartLine]) component.Component {
		return lineView(s, line.Get())
	}, track, reactive.Named("cart"))
	if err != nil {
		return nil, err
	}

	total := component.NewFunctional(func() component.Component {
		return component.Span(component.ID("total"), component.Content(FormatPrice(s.Total.Get())))
	}, track, reactive.Named("total"))

	badge := component.Span(
		component.ID("badge"),
		component.Class("badge"),
		component.Children(component.NewFunctional(func() component.Component {
			return component.Number(s.Count.Get())
		}, track, reactive.Named("badge"))),
	).PropClass("empty", s.Empty)

	children := []component.Component{
		component.Tag("header", component.Children(
			component.Tag("h1", component.Content("Storefront")),
			badge,
		)),
		catalogView(s),
		component.Tag("section", component.Class("cart"), component.Children(
			component.Tag("h2", component.Content("Cart")),
			cart,
			component.Div(component.Class("total"), component.Children(component.NewText("Total: "), total)),
			component.Button(component.ID("clear"), component.Content("Clear"), component.OnClick(func(*dom.Event) {
				s.Clear()
			})),
		)),
	}
	page := &Page{}
	if rec != nil {
		var panel component.Component
		page.Recommendations, panel = recommendationsView(s, sched, rec)
		children = append(children, panel)
	}

	page.Root = component.Div(component.Class("shop"), component.Children(children...))
	return page, nil
}

func catalogView(s *Store) component.Component {
	items := make([]component.Component, 0, len(s.catalog))
	for _, p := range s.catalog {
		sku := p.SKU
		items = append(items, component.Li(component.Children(
			component.Span(component.Class("name"), component.Content(p.Name)),
			component.Span(component.Class("price"), component.Content(FormatPrice(p.Price))),
			component.Button(
				component.ID("add-"+sku),
				component.Attr("data-sku", sku),
				component.Content("Add"),
				component.OnClick(func(*dom.Event) {
					if err := s.Add(sku); err != nil {
						s.logger.Warn("add failed", "sku", sku, "error", err)
					}
				}),
			),
		)))
	}
	return component.Tag("section", component.Class("catalog"), component.Children(
		component.Tag("h2", component.Content("Catalog")),
		component.Ul(component.Children(items...)),
	))
}

func lineView(s *Store, line CartLine) component.Component {
	sku := line.SKU
	return component.Li(
		component.Attr("data-sku", sku),
		component.Children(
			component.Span(component.Class("name"), component.Content(line.Name)),
			component.Span(component.Class("qty"), component.Content("x"+strconv.Itoa(line.Qty))),
			component.Span(component.Class("subtotal"), component.Content(FormatPrice(line.Subtotal()))),
			component.Button(component.ID("remove-"+sku), component.Content("Remove"), component.OnClick(func(*dom.Event) {
				s.Remove(sku)
			})),
		),
	)
}

func recommendationsView(s *Store, sched host.Scheduler, rec Recommender) (*component.Async, component.Component) {
	// The producer runs off the UI goroutine, so it gets a copy of the cart.
	lines := s.Lines()

	panel := component.NewAsync(func(ctx context.Context) (component.Component, error) {
		products, err := rec(ctx, lines)
		if err != nil {
			return nil, err
		}
		items := make([]component.Component, 0, len(products))
		for _, p := range products {
			items = append(items, component.Li(component.Content(p.Name+" "+FormatPrice(p.Price))))
		}
		return component.Ul(component.Children(items...)), nil
	}, func() component.Component {
		return component.Span(component.Class("loading"), component.Content("Loading recommendations..."))
	}, func(err error) component.Component {
		s.logger.Warn("recommendations failed", "error", err)
		return component.Span(component.Class("error"), component.Content("Recommendations unavailable"))
	}, sched, reactive.Named("recommendations"))

	return panel, component.Tag("aside", component.ID("recommendations"), component.Children(
		component.Tag("h2", component.Content("You might also like")),
		panel,
	))
}
