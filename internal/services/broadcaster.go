package services

import "tosssim-backend/internal/models"

// Broadcaster pushes engine events to whatever presentation is attached, so
// screens never poll for balance changes or results.
type Broadcaster interface {
	BroadcastBalance(username string, balance float64)
	BroadcastGameResult(username string, game models.GameType, result any)
}
