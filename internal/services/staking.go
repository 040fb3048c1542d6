package services

import (
	"context"
	"math"

	"tosssim-backend/internal/models"
)

// InterestRate is the fixed daily interest on the staked balance, truncated
// toward zero and added to the stake, not to the spendable balance.
const InterestRate = 0.78

const dateLayout = "2006-01-02"

// Staking moves coins between the spendable balance and the staked balance.
// Both sides of a move land in the same persisted write, so
// balance + stakedBalance is conserved by every stake and unstake.
type Staking struct {
	ledger *Ledger
	clock  Clock
}

func NewStaking(ledger *Ledger, clock Clock) *Staking {
	return &Staking{ledger: ledger, clock: clock}
}

func (s *Staking) StakedBalance(ctx context.Context, username string) (float64, error) {
	acc, err := s.ledger.accounts.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return acc.StakedBalance, nil
}

func (s *Staking) Stake(ctx context.Context, username string, amount float64) (*models.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.ledger.Apply(ctx, username, func(acc *models.Account) error {
		if amount > acc.Balance {
			return ErrInsufficientFunds
		}
		acc.Balance -= amount
		acc.StakedBalance += amount
		return nil
	})
}

func (s *Staking) Unstake(ctx context.Context, username string, amount float64) (*models.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.ledger.Apply(ctx, username, func(acc *models.Account) error {
		if amount > acc.StakedBalance {
			return ErrInsufficientStake
		}
		acc.StakedBalance -= amount
		acc.Balance += amount
		return nil
	})
}

// ClaimInterest grants floor(stakedBalance * InterestRate) into the stake,
// gated to once per local calendar date. The payout and the date marker are
// written in the same step, so a partial failure cannot leave one without
// the other.
func (s *Staking) ClaimInterest(ctx context.Context, username string) (float64, error) {
	var granted float64

	_, err := s.ledger.Apply(ctx, username, func(acc *models.Account) error {
		if acc.StakedBalance <= 0 {
			return ErrNothingStaked
		}

		today := s.clock.Now().Format(dateLayout)
		if acc.LastInterestClaimDate == today {
			return ErrAlreadyClaimedToday
		}

		granted = math.Floor(acc.StakedBalance * InterestRate)
		acc.StakedBalance += granted
		acc.LastInterestClaimDate = today
		return nil
	})
	if err != nil {
		return 0, err
	}

	return granted, nil
}

func (s *Staking) CanClaimInterestToday(ctx context.Context, username string) (bool, error) {
	acc, err := s.ledger.accounts.Get(ctx, username)
	if err != nil {
		return false, err
	}
	if acc.StakedBalance <= 0 {
		return false, nil
	}
	return acc.LastInterestClaimDate != s.clock.Now().Format(dateLayout), nil
}
