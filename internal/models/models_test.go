package models_test

import (
	"testing"
	"time"

	"tosssim-backend/internal/models"
)

func TestNewAccountDefaults(t *testing.T) {
	now := time.Now().Unix()
	acc := models.NewAccount("alice", now)

	if acc.Balance != models.DefaultBalance {
		t.Errorf("Expected starting balance %f, got %f", models.DefaultBalance, acc.Balance)
	}
	if acc.StakedBalance != 0 {
		t.Errorf("Expected zero staked balance, got %f", acc.StakedBalance)
	}
	if acc.FreePlays[models.GameTypeToss] != 1 || acc.FreePlays[models.GameTypeSpin] != 1 {
		t.Errorf("Expected one free play per game, got %v", acc.FreePlays)
	}
	if acc.ReferralCode == "" {
		t.Error("Account should have a referral code")
	}
	if acc.CreatedAt != now {
		t.Errorf("Expected created_at %d, got %d", now, acc.CreatedAt)
	}
}

func TestTossRequestValidate(t *testing.T) {
	valid := &models.TossRequest{Choice: models.SideHeads, Wager: 100}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid toss request failed validation: %v", err)
	}

	noChoice := &models.TossRequest{Wager: 100}
	if err := noChoice.Validate(); err == nil {
		t.Error("Toss request without a choice should fail validation")
	}

	zeroWager := &models.TossRequest{Choice: models.SideTails, Wager: 0}
	if err := zeroWager.Validate(); err == nil {
		t.Error("Zero wager without a free play should fail validation")
	}

	freePlay := &models.TossRequest{Choice: models.SideTails, UseFreePlay: true}
	if err := freePlay.Validate(); err != nil {
		t.Errorf("Free play with zero wager should pass validation: %v", err)
	}
}

func TestWithdrawRequestValidate(t *testing.T) {
	valid := &models.WithdrawRequest{Amount: 2.5, Details: "user@upi"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid withdraw request failed validation: %v", err)
	}

	tooSmall := &models.WithdrawRequest{Amount: 0.5, Details: "user@upi"}
	if err := tooSmall.Validate(); err == nil {
		t.Error("Withdrawal below the minimum should fail validation")
	}

	tooLarge := &models.WithdrawRequest{Amount: 10, Details: "user@upi"}
	if err := tooLarge.Validate(); err == nil {
		t.Error("Withdrawal above the maximum should fail validation")
	}

	noDetails := &models.WithdrawRequest{Amount: 2}
	if err := noDetails.Validate(); err == nil {
		t.Error("Withdrawal without payout details should fail validation")
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := models.GenerateTransactionID()
		if seen[id] {
			t.Fatalf("Duplicate transaction id generated: %s", id)
		}
		seen[id] = true
	}
}
