package services

import (
	"context"

	"tosssim-backend/internal/models"
)

// FreePlays tracks the no-wager plays each account holds per game type.
// Consumption happens strictly after an outcome is resolved, never before;
// the toss resolver decrements the count in the same step that settles the
// outcome.
type FreePlays struct {
	accounts *Accounts
}

func NewFreePlays(accounts *Accounts) *FreePlays {
	return &FreePlays{accounts: accounts}
}

func (f *FreePlays) Remaining(ctx context.Context, username string, game models.GameType) (int, error) {
	acc, err := f.accounts.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return acc.FreePlays[game], nil
}

func (f *FreePlays) Has(ctx context.Context, username string, game models.GameType) (bool, error) {
	remaining, err := f.Remaining(ctx, username, game)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

// Consume spends one free play, failing with ErrNoFreePlaysRemaining when
// none are left.
func (f *FreePlays) Consume(ctx context.Context, username string, game models.GameType) error {
	_, err := f.accounts.Update(ctx, username, func(acc *models.Account) error {
		if acc.FreePlays[game] <= 0 {
			return ErrNoFreePlaysRemaining
		}
		acc.FreePlays[game]--
		return nil
	})
	return err
}

// Grant adds free plays, e.g. as the referral reward.
func (f *FreePlays) Grant(ctx context.Context, username string, game models.GameType, n int) error {
	if n <= 0 {
		return ErrInvalidAmount
	}
	_, err := f.accounts.Update(ctx, username, func(acc *models.Account) error {
		acc.FreePlays[game] += n
		return nil
	})
	return err
}
