package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tosssim-backend/internal/services"
)

func TestStakeConservation(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	acc, err := staking.Stake(ctx, "alice", 400)
	require.NoError(t, err)
	assert.Equal(t, 600.0, acc.Balance)
	assert.Equal(t, 400.0, acc.StakedBalance)
	assert.Equal(t, 1000.0, acc.Balance+acc.StakedBalance)

	acc, err = staking.Unstake(ctx, "alice", 150)
	require.NoError(t, err)
	assert.Equal(t, 750.0, acc.Balance)
	assert.Equal(t, 250.0, acc.StakedBalance)
	assert.Equal(t, 1000.0, acc.Balance+acc.StakedBalance)
}

func TestStakeInsufficientFunds(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	_, err := staking.Stake(ctx, "alice", 5000)
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)

	acc, err := e.accounts.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, acc.Balance)
	assert.Equal(t, 0.0, acc.StakedBalance)
}

func TestUnstakeInsufficientStake(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	_, err := staking.Stake(ctx, "alice", 100)
	require.NoError(t, err)

	_, err = staking.Unstake(ctx, "alice", 200)
	assert.ErrorIs(t, err, services.ErrInsufficientStake)

	acc, err := e.accounts.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100.0, acc.StakedBalance)
}

func TestStakeRejectsNonPositiveAmounts(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	_, err := staking.Stake(ctx, "alice", 0)
	assert.ErrorIs(t, err, services.ErrInvalidAmount)
	_, err = staking.Unstake(ctx, "alice", -1)
	assert.ErrorIs(t, err, services.ErrInvalidAmount)
}

func TestClaimInterestIdempotentPerDay(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	_, err := staking.Stake(ctx, "alice", 100)
	require.NoError(t, err)

	granted, err := staking.ClaimInterest(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 78.0, granted) // floor(100 * 0.78)

	staked, err := staking.StakedBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 178.0, staked)

	// Same calendar day: rejected, nothing changes.
	e.clock.Advance(2 * time.Hour)
	_, err = staking.ClaimInterest(ctx, "alice")
	assert.ErrorIs(t, err, services.ErrAlreadyClaimedToday)

	staked, err = staking.StakedBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 178.0, staked)

	// Next calendar day: claimable again, on the new staked balance.
	e.clock.Advance(24 * time.Hour)
	granted, err = staking.ClaimInterest(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 138.0, granted) // floor(178 * 0.78)
}

func TestClaimInterestNothingStaked(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	_, err := staking.ClaimInterest(ctx, "alice")
	assert.ErrorIs(t, err, services.ErrNothingStaked)
}

func TestCanClaimInterestToday(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	// Nothing staked yet.
	can, err := staking.CanClaimInterestToday(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, can)

	_, err = staking.Stake(ctx, "alice", 50)
	require.NoError(t, err)

	can, err = staking.CanClaimInterestToday(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, can)

	_, err = staking.ClaimInterest(ctx, "alice")
	require.NoError(t, err)

	can, err = staking.CanClaimInterestToday(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, can)

	e.clock.Advance(24 * time.Hour)
	can, err = staking.CanClaimInterestToday(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, can)
}

func TestInterestStaysInStake(t *testing.T) {
	e := newEnv()
	staking := services.NewStaking(e.ledger, e.clock)
	ctx := context.Background()

	_, err := staking.Stake(ctx, "alice", 200)
	require.NoError(t, err)

	_, err = staking.ClaimInterest(ctx, "alice")
	require.NoError(t, err)

	// Interest lands in the stake, not in the spendable balance.
	balance, err := e.ledger.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 800.0, balance)
}
