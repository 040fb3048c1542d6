package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

type UserHandler struct {
	accounts  *services.Accounts
	staking   *services.Staking
	bonuses   *services.Bonuses
	referrals *services.Referrals
}

func NewUserHandler(accounts *services.Accounts, staking *services.Staking, bonuses *services.Bonuses, referrals *services.Referrals) *UserHandler {
	return &UserHandler{
		accounts:  accounts,
		staking:   staking,
		bonuses:   bonuses,
		referrals: referrals,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	username := c.GetString("username")

	acc, err := h.accounts.Get(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	hourlyRemaining, err := h.bonuses.HourlyRemaining(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bonus state", "details": err.Error()})
		return
	}

	canClaimInterest, err := h.staking.CanClaimInterestToday(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load staking state", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"username":      acc.Username,
			"referral_code": acc.ReferralCode,
			"muted":         acc.Muted,
			"created_at":    acc.CreatedAt,
		},
		"wallet": gin.H{
			"balance":        acc.Balance,
			"staked_balance": acc.StakedBalance,
			"free_plays":     acc.FreePlays,
		},
		"bonuses": gin.H{
			"hourly_remaining_seconds": hourlyRemaining.Seconds(),
			"can_claim_interest":       canClaimInterest,
			"zero_balance_available":   acc.Balance <= 0,
		},
	})
}

// Logout ends the session only; the stored ledger survives for the next
// login.
func (h *UserHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Successfully logged out"})
}

func (h *UserHandler) GetReferralCode(c *gin.Context) {
	username := c.GetString("username")

	code, err := h.referrals.Code(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load referral code", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "referral_code": code})
}

func (h *UserHandler) RedeemReferral(c *gin.Context) {
	username := c.GetString("username")

	var req models.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.referrals.Redeem(c.Request.Context(), username, req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Free plays added!"})
}

func (h *UserHandler) GetMute(c *gin.Context) {
	username := c.GetString("username")

	acc, err := h.accounts.Get(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"muted": acc.Muted})
}

func (h *UserHandler) SetMute(c *gin.Context) {
	username := c.GetString("username")

	var req models.MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.accounts.SetMuted(c.Request.Context(), username, req.Muted); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "muted": req.Muted})
}
