package payment

import (
	"context"
	"errors"
	"math/rand/v2"
)

// ErrDeclined is returned when a charge does not go through.
var ErrDeclined = errors.New("payment declined")

type Provider interface {
	Charge(ctx context.Context, amount float64, method string) error
}

// Simulator stands in for a real payment gateway: it declines a configurable
// fraction of charges at random and accepts the rest.
type Simulator struct {
	failureRate float64
}

func NewSimulator(failureRate float64) *Simulator {
	return &Simulator{failureRate: failureRate}
}

func (s *Simulator) Charge(ctx context.Context, amount float64, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if amount <= 0 {
		return errors.New("charge amount must be positive")
	}

	if rand.Float64() < s.failureRate {
		return ErrDeclined
	}

	return nil
}
