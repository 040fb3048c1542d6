package models

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

type TransactionStatus string

const (
	TransactionStatusCompleted  TransactionStatus = "Completed"
	TransactionStatusProcessing TransactionStatus = "Processing"
	TransactionStatusFailed     TransactionStatus = "Failed"
)

// Transaction records a deposit or withdrawal. A withdrawal starts
// Processing and transitions exactly once to Completed or Failed; the ID is
// stable across that transition.
type Transaction struct {
	ID        string            `json:"id"`
	Type      TransactionType   `json:"type"`
	Amount    float64           `json:"amount"`
	Details   string            `json:"details"`
	Status    TransactionStatus `json:"status"`
	CreatedAt int64             `json:"created_at"`
}

type BetOutcome string

const (
	BetOutcomeWin  BetOutcome = "Win"
	BetOutcomeLoss BetOutcome = "Loss"
)

// Bet is an immutable record of a single resolved game round.
type Bet struct {
	ID        string     `json:"id"`
	Game      GameType   `json:"game"`
	BetAmount float64    `json:"bet_amount"`
	Outcome   BetOutcome `json:"outcome"`
	Payout    float64    `json:"payout"`
	CreatedAt int64      `json:"created_at"`
}
