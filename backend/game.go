package main

import (
	"log"
	"time"
)

type Game struct {
	settings    GameSettings
	rules       Rules
	state       GameState
	history     MoveHistory
	blackPlayer IPlayer
	whitePlayer IPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopThinkers()
	settings.BoardSize = ClampBoardSize(settings.BoardSize)
	if settings.WinLength <= 0 {
		settings.WinLength = DefaultWinLength
	}
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) Stop() {
	g.stopThinkers()
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyTurn pushes a full turn through the rules. On success it records
// the history entry and resets the turn clock; on failure the state is
// untouched and the reason is returned.
func (g *Game) TryApplyTurn(turn Turn, depth int) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.currentPlayer()
	isAiTurn := player != nil && !player.IsHuman()
	mover := g.state.ToMove
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())

	ended, err := g.rules.ApplyTurn(&g.state, turn)
	if err != nil {
		return false, g.state.LastMessage
	}
	g.history.Push(TurnHistoryEntry{
		Moves:     turn,
		Player:    mover,
		ElapsedMs: elapsedMs,
		IsAi:      isAiTurn,
		Depth:     depth,
	})
	log.Printf("[backend] %s played %s in %.0fms (ai=%v stones=%d)",
		playerColorName(mover), turn.String(), elapsedMs, isAiTurn, g.history.StoneCount())
	if ended {
		g.logOutcome()
	}
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the game one step: deliver a pending human turn, collect a
// finished AI turn, or kick the AI off thinking. Returns whether a turn was
// applied.
func (g *Game) Tick(analysisSink func(AnalysisEvent)) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingTurn() {
			applied, _ := g.TryApplyTurn(human.TakePendingTurn(), 0)
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if !ok {
		turn := player.ChooseTurn(g.state.Clone(), g.rules)
		applied, _ := g.TryApplyTurn(turn, 0)
		return applied
	}
	if ai.HasTurnReady() {
		turn, depth := ai.TakeTurn()
		applied, _ := g.TryApplyTurn(turn, depth)
		return applied
	}
	if !ai.IsThinking() {
		var sink func(AnalysisEvent)
		if GetConfig().AnalysisMode && analysisSink != nil {
			sink = analysisSink
		}
		ai.StartThinking(g.state.Clone(), g.rules, sink)
	}
	return false
}

func (g *Game) SubmitHumanTurn(turn Turn) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingTurn(turn)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) createPlayers() {
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer()
	}
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer()
	}
}

func (g *Game) stopThinkers() {
	if ai, ok := g.blackPlayer.(*AIPlayer); ok {
		ai.StopThinking()
	}
	if ai, ok := g.whitePlayer.(*AIPlayer); ok {
		ai.StopThinking()
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	log.Printf("[backend] new game %dx%d, Black (%s) vs White (%s)",
		g.settings.BoardSize, g.settings.BoardSize,
		label(g.settings.BlackType), label(g.settings.WhiteType))
}

func (g *Game) logOutcome() {
	switch g.state.Status {
	case StatusBlackWon:
		log.Printf("[backend] Black wins")
	case StatusWhiteWon:
		log.Printf("[backend] White wins")
	case StatusDraw:
		log.Printf("[backend] game drawn")
	}
}
