package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

type BonusHandler struct {
	bonuses *services.Bonuses
	staking *services.Staking
}

func NewBonusHandler(bonuses *services.Bonuses, staking *services.Staking) *BonusHandler {
	return &BonusHandler{
		bonuses: bonuses,
		staking: staking,
	}
}

func (h *BonusHandler) GetHourlyStatus(c *gin.Context) {
	username := c.GetString("username")

	remaining, err := h.bonuses.HourlyRemaining(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bonus state", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"claimable":         remaining == 0,
		"remaining_seconds": remaining.Seconds(),
		"amount":            services.HourlyBonusAmount,
	})
}

func (h *BonusHandler) ClaimHourly(c *gin.Context) {
	username := c.GetString("username")

	granted, err := h.bonuses.ClaimHourly(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "granted": granted})
}

func (h *BonusHandler) ClaimZeroBalance(c *gin.Context) {
	username := c.GetString("username")

	granted, err := h.bonuses.ClaimZeroBalance(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "granted": granted})
}

func (h *BonusHandler) GetStaking(c *gin.Context) {
	username := c.GetString("username")

	staked, err := h.staking.StakedBalance(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get staking state", "details": err.Error()})
		return
	}

	canClaim, err := h.staking.CanClaimInterestToday(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get staking state", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"staked_balance":     staked,
		"can_claim_interest": canClaim,
		"interest_rate":      services.InterestRate,
	})
}

func (h *BonusHandler) Stake(c *gin.Context) {
	h.move(c, h.staking.Stake)
}

func (h *BonusHandler) Unstake(c *gin.Context) {
	h.move(c, h.staking.Unstake)
}

func (h *BonusHandler) move(c *gin.Context, op func(ctx context.Context, username string, amount float64) (*models.Account, error)) {
	username := c.GetString("username")

	var req models.StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	acc, err := op(c.Request.Context(), username, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"balance":        acc.Balance,
		"staked_balance": acc.StakedBalance,
	})
}

func (h *BonusHandler) ClaimInterest(c *gin.Context) {
	username := c.GetString("username")

	granted, err := h.staking.ClaimInterest(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "granted": granted})
}
