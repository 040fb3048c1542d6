package services

import (
	"context"
	"errors"
	"time"

	"tosssim-backend/internal/models"
)

const (
	HourlyBonusAmount      = 1000.0
	ZeroBalanceBonusAmount = 500.0

	// Rolling window anchored to the previous successful claim, not to a
	// clock boundary.
	HourlyWindow = time.Hour
)

// Bonuses enforces the claim gates for the recurring bonuses. Two gate
// kinds exist here: the hourly bonus uses a rolling window, the zero-balance
// bonus is threshold-triggered (claimable whenever the balance is at or
// below zero — the payout itself removes the affordance, there is no
// cooldown).
type Bonuses struct {
	ledger *Ledger
	clock  Clock
}

func NewBonuses(ledger *Ledger, clock Clock) *Bonuses {
	return &Bonuses{ledger: ledger, clock: clock}
}

// ClaimHourly credits the fixed hourly bonus, or fails with a TooSoonError
// carrying the remaining wait. The credit and the claim marker persist in
// one step.
func (b *Bonuses) ClaimHourly(ctx context.Context, username string) (float64, error) {
	_, err := b.ledger.Apply(ctx, username, func(acc *models.Account) error {
		now := b.clock.Now()
		if remaining := hourlyRemaining(acc, now); remaining > 0 {
			return &TooSoonError{Remaining: remaining}
		}
		acc.Balance += HourlyBonusAmount
		acc.LastHourlyClaim = now.Unix()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return HourlyBonusAmount, nil
}

// HourlyRemaining reports how long until the next hourly claim is allowed,
// zero when it is claimable. Countdown displays recompute this every second;
// it reaches exactly zero without a reload.
func (b *Bonuses) HourlyRemaining(ctx context.Context, username string) (time.Duration, error) {
	acc, err := b.ledger.accounts.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return hourlyRemaining(acc, b.clock.Now()), nil
}

func hourlyRemaining(acc *models.Account, now time.Time) time.Duration {
	if acc.LastHourlyClaim == 0 {
		return 0
	}
	elapsed := now.Sub(time.Unix(acc.LastHourlyClaim, 0))
	if elapsed >= HourlyWindow {
		return 0
	}
	return HourlyWindow - elapsed
}

// ClaimZeroBalance credits the fixed rescue bonus when the balance is at or
// below zero, and fails with ErrBonusUnavailable otherwise.
func (b *Bonuses) ClaimZeroBalance(ctx context.Context, username string) (float64, error) {
	_, err := b.ledger.Apply(ctx, username, func(acc *models.Account) error {
		if acc.Balance > 0 {
			return ErrBonusUnavailable
		}
		acc.Balance += ZeroBalanceBonusAmount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ZeroBalanceBonusAmount, nil
}

// IsTooSoon reports whether err is a TooSoonError and, if so, the wait it
// carries.
func IsTooSoon(err error) (time.Duration, bool) {
	var tooSoon *TooSoonError
	if errors.As(err, &tooSoon) {
		return tooSoon.Remaining, true
	}
	return 0, false
}
