package services

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"tosssim-backend/internal/models"
)

const (
	// A toss win pays the wager less the 2% house edge.
	tossWinMultiplier = 0.98

	// A free-play win pays this fixed amount regardless of any wager; a
	// free-play loss costs nothing.
	FreePlayReward = 1.0

	SpinCost = 25.0
)

// SpinSlots is the fixed ordered prize wheel. The resolver's chosen index is
// the source of truth; the rotation handed to presentation is derived from
// it, never the reverse.
var SpinSlots = []float64{500, 50, 100, 0, 250, 25, 150, 10}

const slotAngle = 360.0 / 8

type TossResult struct {
	Choice       models.CoinSide `json:"choice"`
	Outcome      models.CoinSide `json:"outcome"`
	Win          bool            `json:"win"`
	Wager        float64         `json:"wager"`
	Payout       float64         `json:"payout"`
	FreePlayUsed bool            `json:"free_play_used"`
	NewBalance   float64         `json:"new_balance"`
}

type SpinResult struct {
	Index      int     `json:"index"`
	Prize      float64 `json:"prize"`
	Win        bool    `json:"win"`
	Rotation   float64 `json:"rotation"`
	NewBalance float64 `json:"new_balance"`
}

// Engine resolves toss and spin rounds. Each resolution is one synchronous
// run through accept, draw and settle; any presentation delay belongs to the
// caller, and calling with no delay at all produces identical results. One
// resolution per user may be in flight; a second is rejected, not queued.
type Engine struct {
	ledger      *Ledger
	history     *History
	rng         Rand
	broadcaster Broadcaster

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewEngine(ledger *Ledger, history *History, rng Rand) *Engine {
	if rng == nil {
		rng = newRand()
	}
	return &Engine{
		ledger:   ledger,
		history:  history,
		rng:      rng,
		inFlight: make(map[string]bool),
	}
}

// SetBroadcaster wires the push channel for resolved results. Optional.
func (e *Engine) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

func (e *Engine) begin(username string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[username] {
		return ErrOperationInProgress
	}
	e.inFlight[username] = true
	return nil
}

func (e *Engine) end(username string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, username)
}

// ResolveToss runs one coin toss. The wager is not touched at accept time;
// debit or credit happens at settlement together with the free-play
// consumption, so a rejected request leaves no trace.
func (e *Engine) ResolveToss(ctx context.Context, username string, req *models.TossRequest) (*TossResult, error) {
	if err := e.begin(username); err != nil {
		return nil, err
	}
	defer e.end(username)

	switch req.Choice {
	case models.SideHeads, models.SideTails:
	default:
		return nil, ErrNoActiveChoice
	}

	wager := req.Wager
	if req.UseFreePlay {
		wager = 0
	} else if wager <= 0 {
		return nil, ErrInvalidAmount
	}

	// One uniform draw, committed before settlement and never re-drawn.
	outcome := models.SideHeads
	if e.rng.Intn(2) == 1 {
		outcome = models.SideTails
	}
	win := req.Choice == outcome

	var payout float64
	acc, err := e.ledger.Apply(ctx, username, func(acc *models.Account) error {
		if req.UseFreePlay {
			if acc.FreePlays[models.GameTypeToss] <= 0 {
				return ErrNoFreePlaysRemaining
			}
		} else if wager > acc.Balance {
			return ErrInsufficientFunds
		}

		if win {
			payout = math.Round(wager * tossWinMultiplier)
			if req.UseFreePlay {
				payout = FreePlayReward
			}
			acc.Balance += payout
		} else {
			acc.Balance -= wager
		}

		// Entitlement is spent only once the outcome is settled.
		if req.UseFreePlay {
			acc.FreePlays[models.GameTypeToss]--
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	betOutcome := models.BetOutcomeLoss
	if win {
		betOutcome = models.BetOutcomeWin
	} else {
		payout = 0
	}
	if _, err := e.history.RecordBet(ctx, username, models.GameTypeToss, wager, betOutcome, payout); err != nil {
		zap.L().Error("failed to record toss bet", zap.String("username", username), zap.Error(err))
	}

	result := &TossResult{
		Choice:       req.Choice,
		Outcome:      outcome,
		Win:          win,
		Wager:        wager,
		Payout:       payout,
		FreePlayUsed: req.UseFreePlay,
		NewBalance:   acc.Balance,
	}

	if e.broadcaster != nil {
		e.broadcaster.BroadcastGameResult(username, models.GameTypeToss, result)
	}

	return result, nil
}

// ResolveSpin runs one wheel spin. The cost is debited at accept — that is
// the commit point — and the prize, if any, is credited at settlement.
func (e *Engine) ResolveSpin(ctx context.Context, username string) (*SpinResult, error) {
	if err := e.begin(username); err != nil {
		return nil, err
	}
	defer e.end(username)

	if _, err := e.ledger.Apply(ctx, username, func(acc *models.Account) error {
		if SpinCost > acc.Balance {
			return ErrInsufficientFunds
		}
		acc.Balance -= SpinCost
		return nil
	}); err != nil {
		return nil, err
	}

	index := e.rng.Intn(len(SpinSlots))
	prize := SpinSlots[index]
	win := prize > 0

	var balance float64
	if win {
		acc, err := e.ledger.Apply(ctx, username, func(acc *models.Account) error {
			acc.Balance += prize
			return nil
		})
		if err != nil {
			return nil, err
		}
		balance = acc.Balance
	} else {
		b, err := e.ledger.Balance(ctx, username)
		if err != nil {
			return nil, err
		}
		balance = b
	}

	betOutcome := models.BetOutcomeLoss
	if win {
		betOutcome = models.BetOutcomeWin
	}
	if _, err := e.history.RecordBet(ctx, username, models.GameTypeSpin, SpinCost, betOutcome, prize); err != nil {
		zap.L().Error("failed to record spin bet", zap.String("username", username), zap.Error(err))
	}

	result := &SpinResult{
		Index:      index,
		Prize:      prize,
		Win:        win,
		Rotation:   e.rotationFor(index),
		NewBalance: balance,
	}

	if e.broadcaster != nil {
		e.broadcaster.BroadcastGameResult(username, models.GameTypeSpin, result)
	}

	return result, nil
}

// rotationFor maps the chosen slot index to a presentation angle: the wheel
// stops with the slot's center under the pointer after a few cosmetic full
// turns. The extra turns are the only randomness here; the resting angle is
// a pure function of the index.
func (e *Engine) rotationFor(index int) float64 {
	fullSpins := 5 + e.rng.Intn(5)
	resting := 360 - (float64(index)*slotAngle + slotAngle/2)
	return float64(fullSpins)*360 + resting
}
