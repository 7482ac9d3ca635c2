// Package ledger owns the live shopping cart and the history of placed
// orders. All mutations run under one lock and are mirrored to a Store
// after they apply; the in-memory state is authoritative.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"WatchWorks/internal/catalog"
	"WatchWorks/internal/notify"
)

type CartLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// CustomerInfo is the shipping snapshot captured at checkout.
type CustomerInfo struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes,omitempty"`
}

const (
	// StatusPending and StatusCancelled are reserved: checkout goes
	// straight to completed today, but stored orders may carry any of
	// the three.
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID            string          `json:"id"`
	Items         []CartLine      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	CustomerInfo  *CustomerInfo   `json:"customer_info,omitempty"`
}

var ErrEmptyCart = errors.New("cart is empty")

type Ledger struct {
	mu     sync.Mutex
	lines  []CartLine
	orders []Order

	store  Store
	log    *zap.Logger
	notify notify.Notifier
}

// New builds a ledger rehydrated from store. A failed load is logged
// and treated the same as an empty store.
func New(ctx context.Context, store Store, log *zap.Logger, n notify.Notifier) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	if n == nil {
		n = notify.Nop{}
	}

	l := &Ledger{store: store, log: log, notify: n}

	lines, err := store.LoadCart(ctx)
	if err != nil {
		log.Warn("cart load failed, starting empty", zap.Error(err))
	} else {
		l.lines = lines
	}

	orders, err := store.LoadOrders(ctx)
	if err != nil {
		log.Warn("order history load failed, starting empty", zap.Error(err))
	} else {
		l.orders = orders
	}

	return l
}

// AddToCart upserts a line for p: a product already in the cart gets
// its quantity bumped, anything else becomes a new line with quantity 1.
func (l *Ledger) AddToCart(ctx context.Context, p catalog.Product) {
	l.mu.Lock()

	found := false
	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID {
			l.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		l.lines = append(l.lines, CartLine{Product: p.Clone(), Quantity: 1})
	}

	l.persistCart(ctx)
	l.mu.Unlock()

	l.notify.Success(fmt.Sprintf("%s added to cart", p.Name))
}

// RemoveFromCart drops the line for productID. An id that is not in the
// cart is a no-op, not an error.
func (l *Ledger) RemoveFromCart(ctx context.Context, productID string) {
	l.mu.Lock()

	kept := l.lines[:0]
	for _, line := range l.lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	l.lines = kept

	l.persistCart(ctx)
	l.mu.Unlock()

	l.notify.Info("Item removed from cart")
}

// UpdateQuantity sets the quantity for productID. Quantities below 1
// are rejected as no-ops; removal is always explicit.
func (l *Ledger) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			l.lines[i].Quantity = quantity
			l.persistCart(ctx)
			return
		}
	}
}

func (l *Ledger) ClearCart(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = nil
	l.persistCart(ctx)
}

// Checkout freezes the current cart into a completed order, appends it
// to the history and empties the cart, all under one lock hold so the
// caller never observes the order recorded with the cart intact.
func (l *Ledger) Checkout(ctx context.Context, paymentMethod string, info *CustomerInfo) (Order, error) {
	l.mu.Lock()

	if len(l.lines) == 0 {
		l.mu.Unlock()
		l.notify.Error("Your cart is empty")
		return Order{}, ErrEmptyCart
	}

	now := time.Now().UTC()
	o := Order{
		ID:            orderID(now),
		Items:         cloneLines(l.lines),
		Total:         total(l.lines),
		Date:          now,
		Status:        StatusCompleted,
		PaymentMethod: paymentMethod,
	}
	if info != nil {
		c := *info
		o.CustomerInfo = &c
	}

	l.orders = append(l.orders, o)
	if err := l.store.AppendOrder(ctx, o); err != nil {
		l.log.Warn("order persist failed", zap.Error(err), zap.String("order_id", o.ID))
	}

	l.lines = nil
	l.persistCart(ctx)
	l.mu.Unlock()

	l.notify.Success("Order placed successfully!")
	return o, nil
}

// Items returns a snapshot of the cart.
func (l *Ledger) Items() []CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneLines(l.lines)
}

// Orders returns a snapshot of the order history, oldest first.
func (l *Ledger) Orders() []Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Order, 0, len(l.orders))
	for _, o := range l.orders {
		c := o
		c.Items = cloneLines(o.Items)
		if o.CustomerInfo != nil {
			ci := *o.CustomerInfo
			c.CustomerInfo = &ci
		}
		out = append(out, c)
	}
	return out
}

// CartTotal is recomputed from the lines on every call; it is never
// stored, so it cannot drift.
func (l *Ledger) CartTotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return total(l.lines)
}

func (l *Ledger) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines) == 0
}

// persistCart mirrors the cart to the store. Callers hold l.mu. A write
// failure leaves the in-memory state as the source of truth.
func (l *Ledger) persistCart(ctx context.Context) {
	if err := l.store.SaveCart(ctx, cloneLines(l.lines)); err != nil {
		l.log.Warn("cart persist failed", zap.Error(err))
	}
}

func total(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

func cloneLines(lines []CartLine) []CartLine {
	out := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, CartLine{Product: line.Product.Clone(), Quantity: line.Quantity})
	}
	return out
}

// orderID keeps the timestamp-derived shape of historical ids but adds
// a random suffix so two checkouts in the same millisecond cannot clash.
func orderID(now time.Time) string {
	return fmt.Sprintf("order-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
