package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

// Draw values: 0 forces heads, 1 forces tails for the toss; for the spin the
// first value picks the slot index and the second the cosmetic full turns.
const (
	drawHeads = 0
	drawTails = 1
)

func newEngine(e *env, draws ...int) *services.Engine {
	return services.NewEngine(e.ledger, e.history, &fakeRand{values: draws})
}

func TestTossWinPayout(t *testing.T) {
	e := newEnv()
	engine := newEngine(e, drawHeads)
	ctx := context.Background()

	result, err := engine.ResolveToss(ctx, "alice", &models.TossRequest{
		Choice: models.SideHeads,
		Wager:  100,
	})
	require.NoError(t, err)

	assert.True(t, result.Win)
	assert.Equal(t, models.SideHeads, result.Outcome)
	assert.Equal(t, 98.0, result.Payout) // round(100 * 0.98)
	assert.Equal(t, 1098.0, result.NewBalance)

	bets, err := e.history.Bets(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, bets, 1)
	assert.Equal(t, models.BetOutcomeWin, bets[0].Outcome)
	assert.Equal(t, 98.0, bets[0].Payout)
	assert.Equal(t, 100.0, bets[0].BetAmount)
}

func TestTossLossDebitsWager(t *testing.T) {
	e := newEnv()
	engine := newEngine(e, drawHeads)
	ctx := context.Background()

	result, err := engine.ResolveToss(ctx, "alice", &models.TossRequest{
		Choice: models.SideTails,
		Wager:  100,
	})
	require.NoError(t, err)

	assert.False(t, result.Win)
	assert.Equal(t, models.SideHeads, result.Outcome)
	assert.Equal(t, 0.0, result.Payout)
	assert.Equal(t, 900.0, result.NewBalance)

	bets, err := e.history.Bets(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, bets, 1)
	assert.Equal(t, models.BetOutcomeLoss, bets[0].Outcome)
	assert.Equal(t, 0.0, bets[0].Payout)
}

func TestTossRejectsBadRequests(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *models.TossRequest
		wantErr error
	}{
		{
			name:    "no choice",
			req:     &models.TossRequest{Wager: 10},
			wantErr: services.ErrNoActiveChoice,
		},
		{
			name:    "zero wager without free play",
			req:     &models.TossRequest{Choice: models.SideHeads, Wager: 0},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name:    "negative wager",
			req:     &models.TossRequest{Choice: models.SideHeads, Wager: -10},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name:    "wager above balance",
			req:     &models.TossRequest{Choice: models.SideHeads, Wager: 5000},
			wantErr: services.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(e, drawHeads)
			_, err := engine.ResolveToss(ctx, "alice", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			// Rejected requests leave no trace.
			balance, err := e.ledger.Balance(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, models.DefaultBalance, balance)
		})
	}
}

func TestTossFreePlay(t *testing.T) {
	e := newEnv()
	freePlays := services.NewFreePlays(e.accounts)
	ctx := context.Background()

	// Win on a free play pays the fixed reward, not a wager multiple.
	engine := newEngine(e, drawHeads)
	result, err := engine.ResolveToss(ctx, "alice", &models.TossRequest{
		Choice:      models.SideHeads,
		UseFreePlay: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Win)
	assert.Equal(t, services.FreePlayReward, result.Payout)
	assert.Equal(t, 0.0, result.Wager)
	assert.Equal(t, models.DefaultBalance+services.FreePlayReward, result.NewBalance)

	// Exactly one entitlement consumed, win or lose.
	remaining, err := freePlays.Remaining(ctx, "alice", models.GameTypeToss)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = engine.ResolveToss(ctx, "alice", &models.TossRequest{
		Choice:      models.SideHeads,
		UseFreePlay: true,
	})
	assert.ErrorIs(t, err, services.ErrNoFreePlaysRemaining)
}

func TestTossFreePlayLossCostsNothing(t *testing.T) {
	e := newEnv()
	freePlays := services.NewFreePlays(e.accounts)
	ctx := context.Background()

	engine := newEngine(e, drawTails)
	result, err := engine.ResolveToss(ctx, "alice", &models.TossRequest{
		Choice:      models.SideHeads,
		UseFreePlay: true,
	})
	require.NoError(t, err)
	assert.False(t, result.Win)
	assert.Equal(t, models.DefaultBalance, result.NewBalance)

	// The loss still consumed the free play.
	remaining, err := freePlays.Remaining(ctx, "alice", models.GameTypeToss)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestSpinPayoutTable(t *testing.T) {
	ctx := context.Background()

	for index, prize := range services.SpinSlots {
		e := newEnv()
		engine := newEngine(e, index, 0)

		result, err := engine.ResolveSpin(ctx, "alice")
		require.NoError(t, err)

		assert.Equal(t, index, result.Index)
		assert.Equal(t, prize, result.Prize)
		assert.Equal(t, prize > 0, result.Win)

		// The cost is debited exactly once per spin regardless of outcome.
		expected := models.DefaultBalance - services.SpinCost + prize
		assert.Equal(t, expected, result.NewBalance)

		bets, err := e.history.Bets(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, bets, 1)
		assert.Equal(t, services.SpinCost, bets[0].BetAmount)
		assert.Equal(t, prize, bets[0].Payout)
		if prize > 0 {
			assert.Equal(t, models.BetOutcomeWin, bets[0].Outcome)
		} else {
			assert.Equal(t, models.BetOutcomeLoss, bets[0].Outcome)
		}
	}
}

func TestSpinInsufficientFunds(t *testing.T) {
	e := newEnv()
	engine := newEngine(e, 0, 0)
	ctx := context.Background()

	_, err := e.ledger.Debit(ctx, "alice", models.DefaultBalance-10)
	require.NoError(t, err)

	_, err = engine.ResolveSpin(ctx, "alice")
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)

	balance, err := e.ledger.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)
}

func TestSpinRotationDerivesFromIndex(t *testing.T) {
	ctx := context.Background()

	for index := range services.SpinSlots {
		e := newEnv()
		engine := newEngine(e, index, 2) // 7 full turns

		result, err := engine.ResolveSpin(ctx, "alice")
		require.NoError(t, err)

		// Strip the cosmetic full turns; the resting angle must point at
		// the center of the chosen slot.
		resting := result.Rotation
		for resting >= 360 {
			resting -= 360
		}
		expected := 360 - (float64(index)*45 + 22.5)
		assert.InDelta(t, expected, resting, 1e-9)
	}
}

// blockingRand parks the resolution inside the draw so a second request can
// be issued while the first is still in flight.
type blockingRand struct {
	entered chan struct{}
	release chan struct{}
	blocked bool
}

func (r *blockingRand) Intn(n int) int {
	if !r.blocked {
		r.blocked = true
		close(r.entered)
		<-r.release
	}
	return 0
}

func TestSecondResolutionRejectedWhilePending(t *testing.T) {
	e := newEnv()
	rng := &blockingRand{entered: make(chan struct{}), release: make(chan struct{})}
	engine := services.NewEngine(e.ledger, e.history, rng)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := engine.ResolveToss(ctx, "alice", &models.TossRequest{
			Choice: models.SideHeads,
			Wager:  10,
		})
		done <- err
	}()

	<-rng.entered

	// Rejected, not queued.
	_, err := engine.ResolveToss(ctx, "alice", &models.TossRequest{
		Choice: models.SideHeads,
		Wager:  10,
	})
	assert.ErrorIs(t, err, services.ErrOperationInProgress)

	// A different account is unaffected.
	_, err = engine.ResolveSpin(ctx, "bob")
	require.NoError(t, err)

	close(rng.release)
	require.NoError(t, <-done)
}
