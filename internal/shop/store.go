package shop

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/storefront/pkg/reactive"
)

// Store holds the cart state.
//
// Total, Count and Empty follow every change made through the Store
// methods. Writing to Cart directly bypasses them.
type Store struct {
	catalog []Product
	tracker *reactive.Tracker
	logger  *slog.Logger

	// Cart holds one line per SKU.
	Cart *reactive.List[CartLine]

	// Total is the cart total in cents.
	Total *reactive.Derived[int]

	// Count is the number of units in the cart.
	Count *reactive.Derived[int]

	// Empty is true while the cart has no lines.
	Empty *reactive.Derived[bool]

	revision *reactive.IntProperty
}

// Option configures a Store.
type Option func(*Store)

// WithTracker sets the tracker every store property records into.
func WithTracker(t *reactive.Tracker) Option {
	return func(s *Store) {
		s.tracker = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a store with an empty cart.
func NewStore(catalog []Product, opts ...Option) *Store {
	s := &Store{
		catalog: catalog,
		tracker: reactive.DefaultTracker(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "shop")

	track := reactive.WithTracker(s.tracker)
	s.Cart = reactive.NewList[CartLine](nil, track, reactive.Named("cart"))
	s.revision = reactive.NewInt(0, track, reactive.Named("cart.revision"))

	s.Total = reactive.NewDerived(func() int {
		s.revision.Get()
		total := 0
		for _, line := range s.Lines() {
			total += line.Subtotal()
		}
		return total
	}, track, reactive.Named("cart.total"))

	s.Count = reactive.NewDerived(func() int {
		s.revision.Get()
		n := 0
		for _, line := range s.Lines() {
			n += line.Qty
		}
		return n
	}, track, reactive.Named("cart.count"))

	s.Empty = reactive.NewDerived(func() bool {
		return s.Count.Get() == 0
	}, track, reactive.Named("cart.empty"))

	return s
}

// Catalog returns the products on sale.
func (s *Store) Catalog() []Product {
	return s.catalog
}

// Tracker returns the tracker the store records into.
func (s *Store) Tracker() *reactive.Tracker {
	return s.tracker
}

// Lines returns the cart lines without tracking.
func (s *Store) Lines() []CartLine {
	items := s.Cart.Items()
	out := make([]CartLine, len(items))
	for i, p := range items {
		out[i] = p.Peek()
	}
	return out
}

// Add puts one unit of sku in the cart.
func (s *Store) Add(sku string) error {
	p, ok := find(s.catalog, sku)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, sku)
	}

	s.change("add", func() {
		if i := s.indexOf(sku); i >= 0 {
			line := s.Lines()[i]
			line.Qty++
			_ = s.Cart.Put(i, line)
			return
		}
		s.Cart.Push(CartLine{SKU: p.SKU, Name: p.Name, Price: p.Price, Qty: 1})
	})
	s.logger.Debug("cart add", "sku", sku, "lines", s.Cart.Len())
	return nil
}

// SetQty changes the quantity of sku. A quantity of zero or less removes
// the line.
func (s *Store) SetQty(sku string, qty int) error {
	i := s.indexOf(sku)
	if i < 0 {
		return fmt.Errorf("%w: %s not in cart", ErrUnknownProduct, sku)
	}
	if qty <= 0 {
		s.Remove(sku)
		return nil
	}

	var err error
	s.change("qty", func() {
		line := s.Lines()[i]
		line.Qty = qty
		err = s.Cart.Put(i, line)
	})
	return err
}

// Remove deletes the line for sku and reports whether it was present.
func (s *Store) Remove(sku string) bool {
	i := s.indexOf(sku)
	if i < 0 {
		return false
	}
	s.change("remove", func() {
		_ = s.Cart.Remove(i)
	})
	s.logger.Debug("cart remove", "sku", sku, "lines", s.Cart.Len())
	return true
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.change("clear", s.Cart.Clear)
}

// change applies fn and bumps the revision inside one batch, so derived
// values recompute once per operation.
func (s *Store) change(op string, fn func()) {
	reactive.BatchNamed(s.tracker, "cart."+op, func() {
		fn()
		s.revision.Inc()
	})
}

func (s *Store) indexOf(sku string) int {
	for i, line := range s.Lines() {
		if line.SKU == sku {
			return i
		}
	}
	return -1
}
