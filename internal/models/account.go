package models

type GameType string

const (
	GameTypeToss GameType = "toss"
	GameTypeSpin GameType = "spin"
)

type CoinSide string

const (
	SideHeads CoinSide = "heads"
	SideTails CoinSide = "tails"
)

// Account is the per-user aggregate the engine owns: spendable balance,
// staked balance, free-play entitlements and the claim markers for the
// time-gated bonuses. It is loaded from the store on first use and written
// back on every mutation.
type Account struct {
	Username string `json:"username"`

	Balance       float64 `json:"balance"`
	StakedBalance float64 `json:"staked_balance"`

	FreePlays map[GameType]int `json:"free_plays"`

	// Unix timestamp of the last successful hourly claim, 0 if never.
	LastHourlyClaim int64 `json:"last_hourly_claim"`
	// Local calendar date ("2006-01-02") of the last interest claim, empty
	// if never.
	LastInterestClaimDate string `json:"last_interest_claim_date"`

	ReferralCode     string `json:"referral_code"`
	RedeemedReferral bool   `json:"redeemed_referral,omitempty"`
	Muted            bool   `json:"muted"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

const (
	DefaultBalance         = 1000.0
	DefaultFreePlaysPerGame = 1
)

func NewAccount(username string, now int64) *Account {
	return &Account{
		Username: username,
		Balance:  DefaultBalance,
		FreePlays: map[GameType]int{
			GameTypeToss: DefaultFreePlaysPerGame,
			GameTypeSpin: DefaultFreePlaysPerGame,
		},
		ReferralCode: GenerateReferralCode(username),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
