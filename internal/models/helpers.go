package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateBetID() string {
	return fmt.Sprintf("bet_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// GenerateReferralCode derives a stable-looking code from the username plus
// a short random suffix so two users with the same name never collide.
func GenerateReferralCode(username string) string {
	suffix := uuid.New().String()[:4]
	return fmt.Sprintf("TOSS-%s-%s", strings.ToUpper(username), strings.ToUpper(suffix))
}
