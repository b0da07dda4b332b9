package shop

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownProduct is returned when a SKU is not in the catalog.
var ErrUnknownProduct = errors.New("shop: unknown product")

// Product is a catalog entry. Prices are in cents.
type Product struct {
	SKU   string
	Name  string
	Price int
	Tags  []string
}

// CartLine is one product in the cart.
type CartLine struct {
	SKU   string
	Name  string
	Price int
	Qty   int
}

// Subtotal returns Price * Qty.
func (l CartLine) Subtotal() int {
	return l.Price * l.Qty
}

// DefaultCatalog is the catalog the CLI serves.
var DefaultCatalog = []Product{
	{SKU: "tea-green", Name: "Green tea", Price: 650, Tags: []string{"tea"}},
	{SKU: "tea-black", Name: "Black tea", Price: 590, Tags: []string{"tea"}},
	{SKU: "mug", Name: "Stoneware mug", Price: 1400, Tags: []string{"tea", "coffee"}},
	{SKU: "beans", Name: "Coffee beans", Price: 1150, Tags: []string{"coffee"}},
	{SKU: "grinder", Name: "Hand grinder", Price: 3900, Tags: []string{"coffee"}},
}

// FormatPrice renders cents as a dollar amount.
func FormatPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Recommender suggests products for the current cart contents. It runs
// off the UI goroutine and must only use its arguments.
type Recommender func(ctx context.Context, cart []CartLine) ([]Product, error)

// TagRecommender suggests up to limit catalog products that share a tag
// with something in the cart and are not in it yet. An empty cart gets the
// first products of the catalog.
func TagRecommender(catalog []Product, limit int) Recommender {
	return func(ctx context.Context, cart []CartLine) ([]Product, error) {
		inCart := make(map[string]bool, len(cart))
		tags := make(map[string]bool)
		for _, line := range cart {
			inCart[line.SKU] = true
			if p, ok := find(catalog, line.SKU); ok {
				for _, t := range p.Tags {
					tags[t] = true
				}
			}
		}

		var out []Product
		for _, p := range catalog {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if len(out) == limit {
				break
			}
			if inCart[p.SKU] {
				continue
			}
			if len(tags) == 0 || slices.ContainsFunc(p.Tags, func(t string) bool { return tags[t] }) {
				out = append(out, p)
			}
		}
		return out, nil
	}
}

func find(catalog []Product, sku string) (Product, bool) {
	for _, p := range catalog {
		if p.SKU == sku {
			return p, true
		}
	}
	return Product{}, false
}
