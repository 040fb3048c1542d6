package services_test

import (
	"time"

	"tosssim-backend/internal/services"
	"tosssim-backend/internal/store"
)

// fakeClock drives the calendar-day and rolling-window gates through
// simulated time.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeRand replays a queued sequence of draws.
type fakeRand struct {
	values []int
	i      int
}

func (r *fakeRand) Intn(n int) int {
	if r.i >= len(r.values) {
		return 0
	}
	v := r.values[r.i] % n
	r.i++
	return v
}

type env struct {
	kv       *store.MemoryKV
	clock    *fakeClock
	accounts *services.Accounts
	ledger   *services.Ledger
	history  *services.History
}

func newEnv() *env {
	kv := store.NewMemoryKV()
	clock := newFakeClock()
	accounts := services.NewAccounts(kv, clock)
	return &env{
		kv:       kv,
		clock:    clock,
		accounts: accounts,
		ledger:   services.NewLedger(accounts),
		history:  services.NewHistory(kv, clock),
	}
}
