package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSimulatedApproves(t *testing.T) {
	p := NewSimulated(0)

	res, err := p.Initiate(context.Background(), decimal.NewFromInt(2499))
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if res.Status != StatusApproved {
		t.Fatalf("got status %q, want approved", res.Status)
	}
	if !strings.HasPrefix(res.Reference, "pay_") {
		t.Fatalf("got reference %q", res.Reference)
	}
	if !res.Amount.Equal(decimal.NewFromInt(2499)) {
		t.Fatalf("got amount %s", res.Amount)
	}
	if res.ProcessedAt.IsZero() {
		t.Fatalf("processed_at not set")
	}
}

func TestSimulatedDeclineFlag(t *testing.T) {
	p := &Simulated{Decline: true}

	res, err := p.Initiate(context.Background(), decimal.NewFromInt(100))
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("got err %v, want ErrDeclined", err)
	}
	if res.Status != StatusDeclined {
		t.Fatalf("got status %q, want declined", res.Status)
	}
}

func TestSimulatedDeclinesNonPositiveAmounts(t *testing.T) {
	p := NewSimulated(0)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		if _, err := p.Initiate(context.Background(), amount); !errors.Is(err, ErrDeclined) {
			t.Fatalf("amount %s: got err %v, want ErrDeclined", amount, err)
		}
	}
}

func TestSimulatedHonorsCancellation(t *testing.T) {
	p := NewSimulated(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := p.Initiate(ctx, decimal.NewFromInt(100))
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got err %v, want ErrCancelled", err)
	}
	if res.Status != StatusCancelled {
		t.Fatalf("got status %q, want cancelled", res.Status)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancellation not honored promptly")
	}
}

func TestSimulatedWaitsDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	p := NewSimulated(delay)

	start := time.Now()
	if _, err := p.Initiate(context.Background(), decimal.NewFromInt(100)); err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Fatalf("returned after %s, want at least %s", elapsed, delay)
	}
}
