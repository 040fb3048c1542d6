package services

import (
	"math/rand"
	"time"
)

// Clock abstracts time so the calendar-day and rolling-window gates can be
// driven through simulated time in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }

// Rand is the single source of every game draw. One draw per resolution,
// never re-drawn once committed.
type Rand interface {
	Intn(n int) int
}

func newRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
