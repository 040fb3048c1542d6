package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

type WalletHandler struct {
	ledger  *services.Ledger
	wallet  *services.Wallet
	history *services.History
}

func NewWalletHandler(ledger *services.Ledger, wallet *services.Wallet, history *services.History) *WalletHandler {
	return &WalletHandler{
		ledger:  ledger,
		wallet:  wallet,
		history: history,
	}
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	username := c.GetString("username")

	balance, err := h.ledger.Balance(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get balance", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

func (h *WalletHandler) Deposit(c *gin.Context) {
	username := c.GetString("username")

	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	balance, tx, err := h.wallet.Deposit(c.Request.Context(), username, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"balance":     balance,
		"transaction": tx,
	})
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	username := c.GetString("username")

	var req models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tx, err := h.wallet.RequestWithdrawal(c.Request.Context(), username, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// The request is accepted Processing; settlement lands in history.
	c.JSON(http.StatusAccepted, gin.H{
		"success":     true,
		"transaction": tx,
	})
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	username := c.GetString("username")

	transactions, err := h.history.Transactions(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (h *WalletHandler) GetBets(c *gin.Context) {
	username := c.GetString("username")

	bets, err := h.history.Bets(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bets":    bets,
		"count":   len(bets),
	})
}
