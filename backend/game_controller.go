package main

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// GameController serializes access to the Game for the HTTP surface and the
// tick loop. Each started game gets its own session id so clients can detect
// a reset.
type GameController struct {
	mu                sync.Mutex
	game              Game
	sessionID         string
	analysisPublisher func(AnalysisEvent)
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{
		game:      NewGame(settings),
		sessionID: uuid.NewString(),
	}
}

func (gc *GameController) SetAnalysisPublisher(publisher func(AnalysisEvent)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.analysisPublisher = publisher
}

func (gc *GameController) SessionID() string {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.sessionID
}

func (gc *GameController) ApplyHumanTurn(turn Turn) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyTurn(turn, 0)
}

// SuggestTurn runs a search for the side to move without touching the game.
func (gc *GameController) SuggestTurn(ctx context.Context) (Turn, *SearchStats) {
	gc.mu.Lock()
	state := gc.game.State()
	rules := gc.game.Rules()
	gc.mu.Unlock()
	config := GetConfig()
	return FindBestTurn(ctx, state, rules, SharedTT(config), config, nil)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick(gc.analysisPublisher)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (TurnHistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return TurnHistoryEntry{}, false
	}
	entries := history.Entries()
	return entries[len(entries)-1], true
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.sessionID = uuid.NewString()
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
	gc.sessionID = uuid.NewString()
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		gc.sessionID = uuid.NewString()
		return
	}
	gc.game.settings = update
	gc.game.createPlayers()
}
