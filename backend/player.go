package main

import "sync"

type IPlayer interface {
	IsHuman() bool
	ChooseTurn(state GameState, rules Rules) Turn
}

// HumanPlayer buffers the turn submitted over the API until the game loop
// picks it up.
type HumanPlayer struct {
	mu      sync.Mutex
	pending Turn
	hasTurn bool
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

// ChooseTurn never blocks; humans play through SetPendingTurn.
func (h *HumanPlayer) ChooseTurn(state GameState, rules Rules) Turn {
	return nil
}

func (h *HumanPlayer) SetPendingTurn(turn Turn) {
	h.mu.Lock()
	h.pending = turn.Clone()
	h.hasTurn = true
	h.mu.Unlock()
}

func (h *HumanPlayer) HasPendingTurn() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasTurn
}

func (h *HumanPlayer) TakePendingTurn() Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasTurn = false
	return h.pending
}
