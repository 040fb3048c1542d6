package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

type AuthHandler struct {
	accounts   *services.Accounts
	jwtService *services.JWTService
}

func NewAuthHandler(accounts *services.Accounts, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
	}
}

// Login is a mock login: any non-empty credentials are accepted and the
// account is created on first sight with the default balance. No credential
// verification happens here.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	acc, err := h.accounts.Get(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	token, sessionID, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"session_id": sessionID,
		"user": gin.H{
			"username":      acc.Username,
			"balance":       acc.Balance,
			"free_plays":    acc.FreePlays,
			"referral_code": acc.ReferralCode,
		},
	})
}

// Register mirrors the original's mock registration: it logs the user in
// immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	h.Login(c)
}
