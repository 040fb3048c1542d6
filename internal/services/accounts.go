package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/store"
)

// Accounts owns loading and saving the per-user Account aggregate. All
// mutations go through Update, a serialized load-mutate-save step: with one
// active session per account that critical section is what makes "payout and
// claim marker in the same logical step" hold for every component built on
// top of it.
type Accounts struct {
	kv    store.KV
	clock Clock

	mu sync.Mutex
}

func NewAccounts(kv store.KV, clock Clock) *Accounts {
	return &Accounts{kv: kv, clock: clock}
}

// Get returns the account for username, creating it with the default
// balance and free plays on first load. Malformed stored state is repaired
// by falling back to the defaults rather than failing the load.
func (a *Accounts) Get(ctx context.Context, username string) (*models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load(ctx, username)
}

// Update applies fn to the account under the service lock and persists the
// result. If fn returns an error nothing is written and the stored state is
// unchanged.
func (a *Accounts) Update(ctx context.Context, username string, fn func(*models.Account) error) (*models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, err := a.load(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := fn(acc); err != nil {
		return nil, err
	}

	acc.UpdatedAt = a.clock.Now().Unix()
	if err := a.save(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// SetMuted persists the sound preference. It has no effect on any ledger
// state.
func (a *Accounts) SetMuted(ctx context.Context, username string, muted bool) error {
	_, err := a.Update(ctx, username, func(acc *models.Account) error {
		acc.Muted = muted
		return nil
	})
	return err
}

func (a *Accounts) load(ctx context.Context, username string) (*models.Account, error) {
	data, err := a.kv.Get(ctx, store.AccountKey(username))
	if errors.Is(err, store.ErrNotFound) {
		acc := models.NewAccount(username, a.clock.Now().Unix())
		if err := a.save(ctx, acc); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		return acc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	var acc models.Account
	if err := json.Unmarshal([]byte(data), &acc); err != nil {
		zap.L().Warn("repairing malformed account state",
			zap.String("username", username), zap.Error(err))
		repaired := models.NewAccount(username, a.clock.Now().Unix())
		if err := a.save(ctx, repaired); err != nil {
			return nil, fmt.Errorf("failed to repair account: %w", err)
		}
		return repaired, nil
	}

	if acc.FreePlays == nil {
		acc.FreePlays = map[models.GameType]int{}
	}

	return &acc, nil
}

func (a *Accounts) save(ctx context.Context, acc *models.Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	return a.kv.Set(ctx, store.AccountKey(acc.Username), string(data))
}
