package services

import (
	"errors"
	"fmt"
	"time"
)

// Every condition below is expected and recoverable: the account stays valid
// and operable after any rejected operation. Handlers translate these into
// user-visible messages.
var (
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrInsufficientStake    = errors.New("insufficient staked balance")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrNoFreePlaysRemaining = errors.New("no free plays remaining")
	ErrAlreadyClaimedToday  = errors.New("already claimed today")
	ErrNothingStaked        = errors.New("nothing staked")
	ErrNoActiveChoice       = errors.New("no side selected")
	ErrOperationInProgress  = errors.New("another game is still resolving")
	ErrBonusUnavailable     = errors.New("bonus not available")
)

// TooSoonError rejects an hourly claim inside the rolling window and carries
// how long the caller has to wait.
type TooSoonError struct {
	Remaining time.Duration
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("bonus not ready, %s remaining", e.Remaining.Round(time.Second))
}
