package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tempStore(t *testing.T) (*FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.json")
	return NewFileStore(path, nil), path
}

func sameLines(t *testing.T, got, want []CartLine) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Product.ID != w.Product.ID || g.Quantity != w.Quantity {
			t.Fatalf("line %d: got %+v, want %+v", i, g, w)
		}
		if !g.Product.Price.Equal(w.Product.Price) {
			t.Fatalf("line %d: got price %s, want %s", i, g.Product.Price, w.Product.Price)
		}
		if len(g.Product.Features) != len(w.Product.Features) {
			t.Fatalf("line %d: features %v vs %v", i, g.Product.Features, w.Product.Features)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, path := tempStore(t)

	lines := []CartLine{
		{Product: watch("1", "Chrono Master", 2499), Quantity: 2},
		{Product: watch("2", "Diver Pro", 1899), Quantity: 1},
	}
	if err := store.SaveCart(ctx, lines); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	o := Order{
		ID:            "order-1700000000000-deadbeef",
		Items:         cloneLines(lines),
		Total:         decimal.RequireFromString("6897"),
		Date:          time.Now().UTC(),
		Status:        StatusCompleted,
		PaymentMethod: "Credit Card",
		CustomerInfo:  &CustomerInfo{FullName: "Ada Lovelace", City: "London"},
	}
	if err := store.AppendOrder(ctx, o); err != nil {
		t.Fatalf("append order: %v", err)
	}

	// A second store over the same file sees equal state.
	reopened := NewFileStore(path, nil)

	gotLines, err := reopened.LoadCart(ctx)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	sameLines(t, gotLines, lines)

	gotOrders, err := reopened.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(gotOrders) != 1 {
		t.Fatalf("got %d orders", len(gotOrders))
	}
	g := gotOrders[0]
	if g.ID != o.ID || g.Status != o.Status || g.PaymentMethod != o.PaymentMethod {
		t.Fatalf("order mismatch: %+v", g)
	}
	if !g.Total.Equal(o.Total) {
		t.Fatalf("got total %s, want %s", g.Total, o.Total)
	}
	if !g.Date.Equal(o.Date) {
		t.Fatalf("got date %s, want %s", g.Date, o.Date)
	}
	if g.CustomerInfo == nil || g.CustomerInfo.City != "London" {
		t.Fatalf("customer info lost: %+v", g.CustomerInfo)
	}
	sameLines(t, g.Items, o.Items)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := tempStore(t)

	lines, err := store.LoadCart(ctx)
	if err != nil || len(lines) != 0 {
		t.Fatalf("got lines=%v err=%v, want empty", lines, err)
	}
	orders, err := store.LoadOrders(ctx)
	if err != nil || len(orders) != 0 {
		t.Fatalf("got orders=%v err=%v, want empty", orders, err)
	}
}

func TestFileStoreCorruptFileFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store, path := tempStore(t)

	if err := os.WriteFile(path, []byte(`{"cartItems": [{{nope`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Corruption is swallowed, not surfaced.
	lines, err := store.LoadCart(ctx)
	if err != nil || len(lines) != 0 {
		t.Fatalf("got lines=%v err=%v, want empty", lines, err)
	}

	// And the store recovers on the next write.
	if err := store.SaveCart(ctx, []CartLine{{Product: watch("1", "Chrono Master", 2499), Quantity: 1}}); err != nil {
		t.Fatalf("save after corruption: %v", err)
	}
	lines, err = store.LoadCart(ctx)
	if err != nil || len(lines) != 1 {
		t.Fatalf("store did not recover: lines=%v err=%v", lines, err)
	}
}

func TestFileStoreSaveCartKeepsOrders(t *testing.T) {
	ctx := context.Background()
	store, _ := tempStore(t)

	o := Order{ID: "order-1", Total: decimal.NewFromInt(10), Date: time.Now().UTC(), Status: StatusCompleted, PaymentMethod: "PayPal"}
	if err := store.AppendOrder(ctx, o); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.SaveCart(ctx, nil); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	orders, _ := store.LoadOrders(ctx)
	if len(orders) != 1 {
		t.Fatalf("cart write clobbered orders")
	}
}

func TestLedgerRoundTripThroughFile(t *testing.T) {
	ctx := context.Background()
	store, path := tempStore(t)

	l := New(ctx, store, nil, nil)
	l.AddToCart(ctx, watch("1", "Chrono Master", 2499))
	l.AddToCart(ctx, watch("1", "Chrono Master", 2499))
	l.AddToCart(ctx, watch("2", "Diver Pro", 1899))
	if _, err := l.Checkout(ctx, "Credit Card", nil); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	l.AddToCart(ctx, watch("2", "Diver Pro", 1899))

	// Simulated restart.
	restarted := New(ctx, NewFileStore(path, nil), nil, nil)

	sameLines(t, restarted.Items(), l.Items())

	a, b := l.Orders(), restarted.Orders()
	if len(a) != 1 || len(b) != 1 || a[0].ID != b[0].ID || !a[0].Total.Equal(b[0].Total) {
		t.Fatalf("orders differ after restart: %+v vs %+v", a, b)
	}
}
