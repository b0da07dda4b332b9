package shop

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/storefront/pkg/component"
	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/host"
	"github.com/vango-dev/storefront/pkg/reactive"
	"github.com/vango-dev/storefront/pkg/vtest"
)

func newTestStore() *Store {
	return NewStore(DefaultCatalog,
		WithTracker(reactive.NewTracker()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1400, "$14.00"},
		{3950, "$39.50"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.cents); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestStoreAdd(t *testing.T) {
	s := newTestStore()
	if !s.Empty.Peek() {
		t.Error("new cart should be empty")
	}

	for _, sku := range []string{"mug", "beans", "mug"} {
		if err := s.Add(sku); err != nil {
			t.Fatalf("Add(%s) error = %v", sku, err)
		}
	}

	if s.Cart.Len() != 2 {
		t.Errorf("Cart.Len() = %d, want 2 lines", s.Cart.Len())
	}
	if s.Total.Peek() != 2*1400+1150 {
		t.Errorf("Total = %d", s.Total.Peek())
	}
	if s.Count.Peek() != 3 || s.Empty.Peek() {
		t.Errorf("Count = %d, Empty = %v", s.Count.Peek(), s.Empty.Peek())
	}

	if err := s.Add("caviar"); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("Add(caviar) error = %v, want ErrUnknownProduct", err)
	}
}

func TestStoreTotalNotifiesOncePerOperation(t *testing.T) {
	s := newTestStore()
	var totals []int
	s.Total.Watch(func(v, _ int, _ *reactive.Property[int]) {
		totals = append(totals, v)
	})

	_ = s.Add("mug")
	_ = s.Add("mug")
	_ = s.SetQty("mug", 5)

	want := []int{1400, 2800, 7000}
	if len(totals) != len(want) {
		t.Fatalf("totals = %v, want %v", totals, want)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("totals = %v, want %v", totals, want)
			break
		}
	}
}

func TestStoreSetQtyAndRemove(t *testing.T) {
	s := newTestStore()
	_ = s.Add("tea-green")
	_ = s.Add("grinder")

	if err := s.SetQty("grinder", 2); err != nil {
		t.Fatalf("SetQty() error = %v", err)
	}
	if s.Total.Peek() != 650+2*3900 {
		t.Errorf("Total = %d", s.Total.Peek())
	}

	if err := s.SetQty("tea-green", 0); err != nil {
		t.Fatalf("SetQty(0) error = %v", err)
	}
	if s.Cart.Len() != 1 || s.Lines()[0].SKU != "grinder" {
		t.Errorf("Lines() = %+v", s.Lines())
	}

	if err := s.SetQty("mug", 1); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("SetQty(mug) error = %v", err)
	}
	if s.Remove("mug") {
		t.Error("Remove of a missing line should report false")
	}
	if !s.Remove("grinder") || !s.Empty.Peek() || s.Total.Peek() != 0 {
		t.Error("cart should be empty after removing the last line")
	}
}

func TestTagRecommender(t *testing.T) {
	rec := TagRecommender(DefaultCatalog, 3)

	got, err := rec(context.Background(), []CartLine{{SKU: "grinder", Qty: 1}})
	if err != nil {
		t.Fatal(err)
	}
	// grinder is tagged coffee: mug and beans share it.
	if len(got) != 2 || got[0].SKU != "mug" || got[1].SKU != "beans" {
		t.Errorf("recommendations = %+v", got)
	}

	got, _ = TagRecommender(DefaultCatalog, 2)(context.Background(), nil)
	if len(got) != 2 || got[0].SKU != "tea-green" {
		t.Errorf("empty cart recommendations = %+v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rec(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v", err)
	}
}

func TestViewReactsToClicks(t *testing.T) {
	s := newTestStore()

	page, err := View(s, host.Immediate{}, nil)
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	h := vtest.Mount(t, page.Root)
	select {
	case <-page.Ready():
	default:
		t.Error("a page without recommendations should be ready")
	}

	badge := h.Element("badge")
	if badge.TextContent() != "0" || !badge.HasClass("empty") {
		t.Errorf("badge = %s", dom.RenderString(badge))
	}

	h.Click("add-mug")
	h.Click("add-mug")
	h.Click("add-beans")

	if got := h.Text("total"); got != "$39.50" {
		t.Errorf("total = %q, want $39.50", got)
	}
	if got := h.Element("cart").ChildCount(); got != 2 {
		t.Errorf("cart lines = %d, want 2", got)
	}
	badge = h.Element("badge")
	if badge.TextContent() != "3" || badge.HasClass("empty") {
		t.Errorf("badge = %s", dom.RenderString(badge))
	}
	if !strings.Contains(h.Text("cart"), "x2") {
		t.Errorf("cart = %s", dom.RenderString(h.Element("cart")))
	}

	h.Click("remove-mug")
	if got := h.Text("total"); got != "$11.50" {
		t.Errorf("total after remove = %q", got)
	}
	if h.Has("remove-mug") {
		t.Error("removed line should leave the document")
	}

	h.Click("clear")
	if h.Element("cart").ChildCount() != 0 || !h.Element("badge").HasClass("empty") {
		t.Error("clear should empty the cart view")
	}
}

func TestViewRecommendations(t *testing.T) {
	s := newTestStore()
	_ = s.Add("tea-black")

	loop := host.NewLoop(8, slog.New(slog.NewTextHandler(io.Discard, nil)))
	doc := dom.NewDocument("shop")
	page, err := View(s, loop, TagRecommender(DefaultCatalog, 2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := component.Mount(doc, page.Root); err != nil {
		t.Fatal(err)
	}

	panel := doc.ElementByID("recommendations")
	if !strings.Contains(panel.TextContent(), "Loading") {
		t.Errorf("panel before settle = %q", panel.TextContent())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := loop.Step(ctx); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	<-page.Ready()

	text := panel.TextContent()
	if !strings.Contains(text, "Green tea $6.50") || !strings.Contains(text, "Stoneware mug") {
		t.Errorf("panel after settle = %q", text)
	}
	if page.Recommendations.State() != component.AsyncReady {
		t.Errorf("State() = %s", page.Recommendations.State())
	}
}

func TestViewRecommendationsFailure(t *testing.T) {
	s := newTestStore()
	loop := host.NewLoop(8, slog.New(slog.NewTextHandler(io.Discard, nil)))
	doc := dom.NewDocument("shop")

	page, err := View(s, loop, func(ctx context.Context, _ []CartLine) ([]Product, error) {
		return nil, errors.New("catalog service down")
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := component.Mount(doc, page.Root); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := loop.Step(ctx); err != nil {
		t.Fatal(err)
	}
	if got := doc.ElementByID("recommendations").TextContent(); !strings.Contains(got, "unavailable") {
		t.Errorf("panel = %q", got)
	}
}
