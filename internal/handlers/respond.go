package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tosssim-backend/internal/services"
)

// respondError translates the engine's expected failures into transient
// user-visible messages. Nothing here is fatal; the account remains
// operable after any rejection.
func respondError(c *gin.Context, err error) {
	if remaining, ok := services.IsTooSoon(err); ok {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "Bonus not ready yet",
			"retry_after": remaining.Seconds(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You don't have enough balance", "details": err.Error()})
	case errors.Is(err, services.ErrInsufficientStake):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You don't have that much staked", "details": err.Error()})
	case errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid amount", "details": err.Error()})
	case errors.Is(err, services.ErrNoActiveChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choose heads or tails first", "details": err.Error()})
	case errors.Is(err, services.ErrNoFreePlaysRemaining):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No free plays left", "details": err.Error()})
	case errors.Is(err, services.ErrNothingStaked):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stake some coins first", "details": err.Error()})
	case errors.Is(err, services.ErrBonusUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bonus not available", "details": err.Error()})
	case errors.Is(err, services.ErrInvalidReferralCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral code", "details": err.Error()})
	case errors.Is(err, services.ErrReferralAlreadyRedeemed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already redeemed a referral code", "details": err.Error()})
	case errors.Is(err, services.ErrAlreadyClaimedToday):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Already claimed today", "details": err.Error()})
	case errors.Is(err, services.ErrOperationInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Another round is still resolving", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong", "details": err.Error()})
	}
}
