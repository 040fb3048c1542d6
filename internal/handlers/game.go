package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

type GameHandler struct {
	engine    *services.Engine
	freePlays *services.FreePlays
}

func NewGameHandler(engine *services.Engine, freePlays *services.FreePlays) *GameHandler {
	return &GameHandler{
		engine:    engine,
		freePlays: freePlays,
	}
}

func (h *GameHandler) Toss(c *gin.Context) {
	username := c.GetString("username")

	var req models.TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := h.engine.ResolveToss(c.Request.Context(), username, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) Spin(c *gin.Context) {
	username := c.GetString("username")

	result, err := h.engine.ResolveSpin(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GetFreePlays(c *gin.Context) {
	username := c.GetString("username")

	plays := gin.H{}
	for _, game := range []models.GameType{models.GameTypeToss, models.GameTypeSpin} {
		remaining, err := h.freePlays.Remaining(c.Request.Context(), username, game)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get free plays", "details": err.Error()})
			return
		}
		plays[string(game)] = remaining
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "free_plays": plays})
}
