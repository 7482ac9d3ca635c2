package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Simulated stands in for a real gateway: it approves every positive
// amount after a fixed delay. No money moves anywhere.
type Simulated struct {
	Delay   time.Duration
	Decline bool
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

func (s *Simulated) Initiate(ctx context.Context, amount decimal.Decimal) (Result, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Result{Status: StatusCancelled, Amount: amount, ProcessedAt: time.Now().UTC()}, ErrCancelled
		case <-timer.C:
		}
	}

	res := Result{
		Reference:   "pay_" + uuid.NewString(),
		Amount:      amount,
		ProcessedAt: time.Now().UTC(),
	}

	if s.Decline || !amount.IsPositive() {
		res.Status = StatusDeclined
		return res, ErrDeclined
	}

	res.Status = StatusApproved
	return res, nil
}
