package models

import "fmt"

type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TossRequest struct {
	Choice      CoinSide `json:"choice"`
	Wager       float64  `json:"wager"`
	UseFreePlay bool     `json:"use_free_play"`
}

func (r *TossRequest) Validate() error {
	switch r.Choice {
	case SideHeads, SideTails:
	default:
		return fmt.Errorf("choice must be heads or tails")
	}
	if !r.UseFreePlay && r.Wager <= 0 {
		return fmt.Errorf("wager must be positive")
	}
	return nil
}

type DepositRequest struct {
	Amount float64 `json:"amount"`
}

type WithdrawRequest struct {
	Amount  float64 `json:"amount"`
	Details string  `json:"details"`
}

func (r *WithdrawRequest) Validate() error {
	if r.Amount < MinWithdrawal {
		return fmt.Errorf("minimum withdrawal is %.2f", MinWithdrawal)
	}
	if r.Amount > MaxWithdrawal {
		return fmt.Errorf("maximum withdrawal is %.2f", MaxWithdrawal)
	}
	if r.Details == "" {
		return fmt.Errorf("payout details are required")
	}
	return nil
}

const (
	MinWithdrawal = 1.0
	MaxWithdrawal = 5.0
)

type StakeRequest struct {
	Amount float64 `json:"amount"`
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

type MuteRequest struct {
	Muted bool `json:"muted"`
}
