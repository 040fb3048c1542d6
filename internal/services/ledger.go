package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tosssim-backend/internal/models"
)

// BalanceListener is notified after every successful balance mutation, with
// the post-operation balance. Persistence has already happened by then, so a
// read issued from the listener observes the new value.
type BalanceListener func(username string, balance float64)

// Ledger owns the spendable coin balance. The solvency guard lives here, at
// the ledger boundary, even though calling screens pre-check too: the guard
// and the mutation run in one serialized step, so there is no race between
// check and apply.
type Ledger struct {
	accounts *Accounts

	mu        sync.Mutex
	listeners []BalanceListener
}

func NewLedger(accounts *Accounts) *Ledger {
	return &Ledger{accounts: accounts}
}

func (l *Ledger) Subscribe(fn BalanceListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *Ledger) Balance(ctx context.Context, username string) (float64, error) {
	acc, err := l.accounts.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (l *Ledger) Credit(ctx context.Context, username string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	acc, err := l.Apply(ctx, username, func(acc *models.Account) error {
		acc.Balance += amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Debit fails with ErrInsufficientFunds when amount exceeds the
// pre-operation balance; the balance is unchanged on failure. It never
// clamps to zero.
func (l *Ledger) Debit(ctx context.Context, username string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	acc, err := l.Apply(ctx, username, func(acc *models.Account) error {
		if amount > acc.Balance {
			return ErrInsufficientFunds
		}
		acc.Balance -= amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Apply runs fn against the account as one atomic write-through step and
// notifies listeners of the resulting balance. Staking, bonuses and the game
// resolvers mutate balances through this so a payout and its dependent
// markers always land in the same persisted write.
func (l *Ledger) Apply(ctx context.Context, username string, fn func(*models.Account) error) (*models.Account, error) {
	acc, err := l.accounts.Update(ctx, username, fn)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("balance updated",
		zap.String("username", username), zap.Float64("balance", acc.Balance))
	l.notify(username, acc.Balance)

	return acc, nil
}

func (l *Ledger) notify(username string, balance float64) {
	l.mu.Lock()
	listeners := make([]BalanceListener, len(l.listeners))
	copy(listeners, l.listeners)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(username, balance)
	}
}
