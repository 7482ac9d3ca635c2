package ledger

import "context"

// Store is the single persistence boundary for cart and order state.
// The serialized layout is defined by each backend once, instead of
// being scattered across every mutator.
type Store interface {
	Ping(ctx context.Context) error

	LoadCart(ctx context.Context) ([]CartLine, error)
	SaveCart(ctx context.Context, lines []CartLine) error

	LoadOrders(ctx context.Context) ([]Order, error)
	AppendOrder(ctx context.Context, o Order) error
}
