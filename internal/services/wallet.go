package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tosssim-backend/internal/models"
)

// Withdrawals settle successfully at this rate; the simulation has no real
// payment rail behind it.
const withdrawalSuccessPercent = 80

// Wallet handles deposits and the simulated withdrawal flow. A withdrawal
// is recorded as Processing immediately; settlement happens after delay and
// transitions the record exactly once to Completed (debiting the balance) or
// Failed (leaving it untouched).
type Wallet struct {
	ledger  *Ledger
	history *History
	rng     Rand
	delay   time.Duration
}

func NewWallet(ledger *Ledger, history *History, rng Rand, delay time.Duration) *Wallet {
	if rng == nil {
		rng = newRand()
	}
	return &Wallet{ledger: ledger, history: history, rng: rng, delay: delay}
}

// Deposit credits the balance and records a Completed transaction.
func (w *Wallet) Deposit(ctx context.Context, username string, amount float64) (float64, *models.Transaction, error) {
	balance, err := w.ledger.Credit(ctx, username, amount)
	if err != nil {
		return 0, nil, err
	}

	tx, err := w.history.RecordTransaction(ctx, username, models.TransactionTypeDeposit, amount, "Added to wallet")
	if err != nil {
		zap.L().Error("failed to record deposit", zap.String("username", username), zap.Error(err))
	}

	return balance, tx, nil
}

// RequestWithdrawal validates the request against the current balance and
// records a Processing transaction. With a zero delay settlement happens
// inline; otherwise it runs on its own goroutine after the delay, the way
// the original simulated a processing backend.
func (w *Wallet) RequestWithdrawal(ctx context.Context, username string, req *models.WithdrawRequest) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}

	balance, err := w.ledger.Balance(ctx, username)
	if err != nil {
		return nil, err
	}
	if req.Amount > balance {
		return nil, ErrInsufficientFunds
	}

	tx, err := w.history.RecordTransaction(ctx, username, models.TransactionTypeWithdrawal, req.Amount, "To "+req.Details)
	if err != nil {
		return nil, err
	}

	if w.delay == 0 {
		w.settle(context.WithoutCancel(ctx), username, tx.ID, req.Amount)
	} else {
		go func() {
			time.Sleep(w.delay)
			w.settle(context.Background(), username, tx.ID, req.Amount)
		}()
	}

	return tx, nil
}

func (w *Wallet) settle(ctx context.Context, username, txID string, amount float64) {
	success := w.rng.Intn(100) < withdrawalSuccessPercent

	status := models.TransactionStatusFailed
	if success {
		if _, err := w.ledger.Debit(ctx, username, amount); err != nil {
			// Balance moved below the amount while processing; the
			// withdrawal fails and the ledger stays untouched.
			zap.L().Warn("withdrawal debit rejected at settlement",
				zap.String("username", username), zap.String("tx", txID), zap.Error(err))
		} else {
			status = models.TransactionStatusCompleted
		}
	}

	if err := w.history.UpdateTransactionStatus(ctx, username, txID, status); err != nil {
		zap.L().Error("failed to settle withdrawal",
			zap.String("username", username), zap.String("tx", txID), zap.Error(err))
	}
}
