package main

import (
	"context"
	"sync"
	"sync/atomic"
)

// AIPlayer runs the search on a background worker so the game loop and the
// HTTP surface stay responsive while the engine thinks.
type AIPlayer struct {
	turnMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	turnReady  atomic.Bool
	cancelMu   sync.Mutex
	cancel     context.CancelFunc
	readyTurn  Turn
	readyDepth int
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseTurn searches synchronously; the background path goes through
// StartThinking/TakeTurn instead.
func (a *AIPlayer) ChooseTurn(state GameState, rules Rules) Turn {
	config := GetConfig()
	turn, _ := FindBestTurn(context.Background(), state, rules, SharedTT(config), config, nil)
	return turn
}

func (a *AIPlayer) StartThinking(state GameState, rules Rules, sink func(AnalysisEvent)) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.turnReady.Store(false)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelMu.Lock()
	a.cancel = cancel
	a.cancelMu.Unlock()

	stateCopy := state.Clone()
	rulesCopy := rules
	config := GetConfig()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		defer cancel()
		turn, stats := FindBestTurn(ctx, stateCopy, rulesCopy, SharedTT(config), config, sink)
		if ctx.Err() != nil {
			a.turnReady.Store(false)
			a.thinking.Store(false)
			return
		}
		a.turnMutex.Lock()
		a.readyTurn = turn
		a.readyDepth = stats.CompletedDepth
		a.turnMutex.Unlock()
		a.turnReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) StopThinking() {
	a.cancelMu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.cancelMu.Unlock()
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.turnReady.Store(false)
	a.thinking.Store(false)
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasTurnReady() bool {
	return a.turnReady.Load()
}

func (a *AIPlayer) TakeTurn() (Turn, int) {
	a.turnMutex.Lock()
	defer a.turnMutex.Unlock()
	a.turnReady.Store(false)
	return a.readyTurn, a.readyDepth
}
