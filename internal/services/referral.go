package services

import (
	"context"
	"errors"
	"strings"

	"tosssim-backend/internal/models"
)

var (
	ErrInvalidReferralCode     = errors.New("invalid referral code")
	ErrReferralAlreadyRedeemed = errors.New("referral already redeemed")
)

// Referrals hands out the per-account code and applies the signup reward:
// one free play per game for the redeemer. A code can be redeemed once per
// account and never against itself.
type Referrals struct {
	accounts *Accounts
}

func NewReferrals(accounts *Accounts) *Referrals {
	return &Referrals{accounts: accounts}
}

func (r *Referrals) Code(ctx context.Context, username string) (string, error) {
	acc, err := r.accounts.Get(ctx, username)
	if err != nil {
		return "", err
	}
	return acc.ReferralCode, nil
}

func (r *Referrals) Redeem(ctx context.Context, username, code string) error {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !strings.HasPrefix(code, "TOSS-") {
		return ErrInvalidReferralCode
	}

	_, err := r.accounts.Update(ctx, username, func(acc *models.Account) error {
		if code == acc.ReferralCode {
			return ErrInvalidReferralCode
		}
		if acc.RedeemedReferral {
			return ErrReferralAlreadyRedeemed
		}
		acc.RedeemedReferral = true
		acc.FreePlays[models.GameTypeToss]++
		acc.FreePlays[models.GameTypeSpin]++
		return nil
	})
	return err
}
