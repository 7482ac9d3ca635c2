// Package payment isolates the checkout flow from how a payment is
// obtained. The ledger only ever sees a Result.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

type Result struct {
	Status      Status          `json:"status"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processed_at"`
}

var (
	ErrDeclined  = errors.New("payment declined")
	ErrCancelled = errors.New("payment cancelled")
)

// Provider initiates a payment for the given amount. Implementations
// must honor ctx cancellation and report it as a cancelled result.
type Provider interface {
	Initiate(ctx context.Context, amount decimal.Decimal) (Result, error)
}
