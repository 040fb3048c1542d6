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

// Keep only the most recent entries per account.
const historyCap = 100

// History is the append-only transaction and bet log. It is informational
// only: nothing here feeds back into the ledger or the gates, and rebuilding
// it from scratch changes no balance.
type History struct {
	kv    store.KV
	clock Clock

	mu sync.Mutex
}

func NewHistory(kv store.KV, clock Clock) *History {
	return &History{kv: kv, clock: clock}
}

// RecordTransaction creates a history entry and returns it, id included, so
// the caller can later settle it. Deposits start Completed, withdrawals
// start Processing.
func (h *History) RecordTransaction(ctx context.Context, username string, txType models.TransactionType, amount float64, details string) (*models.Transaction, error) {
	status := models.TransactionStatusCompleted
	if txType == models.TransactionTypeWithdrawal {
		status = models.TransactionStatusProcessing
	}

	tx := &models.Transaction{
		ID:        models.GenerateTransactionID(),
		Type:      txType,
		Amount:    amount,
		Details:   details,
		Status:    status,
		CreatedAt: h.clock.Now().Unix(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	transactions, err := h.loadTransactions(ctx, username)
	if err != nil {
		return nil, err
	}

	transactions = append([]models.Transaction{*tx}, transactions...)
	if len(transactions) > historyCap {
		transactions = transactions[:historyCap]
	}

	if err := h.saveJSON(ctx, store.TransactionsKey(username), transactions); err != nil {
		return nil, err
	}

	return tx, nil
}

// UpdateTransactionStatus settles the entry matching id in place, keeping
// its id, amount and date. An unknown id is a silent no-op: by construction
// the caller holds an id returned from RecordTransaction.
func (h *History) UpdateTransactionStatus(ctx context.Context, username, id string, status models.TransactionStatus) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	transactions, err := h.loadTransactions(ctx, username)
	if err != nil {
		return err
	}

	updated := false
	for i := range transactions {
		if transactions[i].ID == id {
			transactions[i].Status = status
			updated = true
			break
		}
	}
	if !updated {
		return nil
	}

	return h.saveJSON(ctx, store.TransactionsKey(username), transactions)
}

// Transactions returns the log newest-first.
func (h *History) Transactions(ctx context.Context, username string) ([]models.Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadTransactions(ctx, username)
}

// RecordBet appends an immutable bet record.
func (h *History) RecordBet(ctx context.Context, username string, game models.GameType, betAmount float64, outcome models.BetOutcome, payout float64) (*models.Bet, error) {
	bet := &models.Bet{
		ID:        models.GenerateBetID(),
		Game:      game,
		BetAmount: betAmount,
		Outcome:   outcome,
		Payout:    payout,
		CreatedAt: h.clock.Now().Unix(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	bets, err := h.loadBets(ctx, username)
	if err != nil {
		return nil, err
	}

	bets = append([]models.Bet{*bet}, bets...)
	if len(bets) > historyCap {
		bets = bets[:historyCap]
	}

	if err := h.saveJSON(ctx, store.BetsKey(username), bets); err != nil {
		return nil, err
	}

	return bet, nil
}

// Bets returns the bet log newest-first.
func (h *History) Bets(ctx context.Context, username string) ([]models.Bet, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadBets(ctx, username)
}

func (h *History) loadTransactions(ctx context.Context, username string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := h.loadJSON(ctx, store.TransactionsKey(username), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (h *History) loadBets(ctx context.Context, username string) ([]models.Bet, error) {
	var bets []models.Bet
	if err := h.loadJSON(ctx, store.BetsKey(username), &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

func (h *History) loadJSON(ctx context.Context, key string, out any) error {
	data, err := h.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		// Malformed history is dropped, not propagated: the log is display
		// only and must never block an operation.
		zap.L().Warn("discarding malformed history", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (h *History) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return h.kv.Set(ctx, key, string(data))
}
