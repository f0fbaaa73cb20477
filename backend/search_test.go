package main

import (
	"context"
	"testing"
)

func searchConfig() Config {
	config := DefaultConfig()
	config.AiDepth = 2
	config.AiTimeBudgetMs = 0
	return config
}

func findTurn(t *testing.T, state GameState, config Config) Turn {
	t.Helper()
	rules := NewRules(GameSettings{BoardSize: state.Board.Size(), WinLength: DefaultWinLength})
	tt := NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets)
	turn, _ := FindBestTurn(context.Background(), state, rules, tt, config, nil)
	return turn
}

func TestFindBestTurnTakesImmediateWin(t *testing.T) {
	state := midGameState(t, 19, row(5, 3, 7), row(12, 3, 7), PlayerBlack)
	turn := findTurn(t, state, searchConfig())
	if len(turn) != 2 {
		t.Fatalf("expected a two-stone turn, got %v", turn)
	}
	winsNow := turn.Contains(Move{X: 8, Y: 5}) || turn.Contains(Move{X: 2, Y: 5})
	if !winsNow {
		t.Fatalf("with a win in hand the engine must take it, got %v", turn)
	}
}

func TestFindBestTurnBlocksOpenFive(t *testing.T) {
	// 9x9 board, white holds an open five on row 4 (cols 3..7). Black must
	// block one of the completion cells (2,4) or (8,4).
	state := midGameState(t, 9,
		[]Move{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 8}},
		row(4, 3, 7),
		PlayerBlack)
	turn := findTurn(t, state, searchConfig())
	if len(turn) != 2 {
		t.Fatalf("expected a two-stone turn, got %v", turn)
	}
	if !turn.Contains(Move{X: 2, Y: 4}) && !turn.Contains(Move{X: 8, Y: 4}) {
		t.Fatalf("engine must block the open five, got %v", turn)
	}
}

func TestFindBestTurnBlocksBothCompletionCells(t *testing.T) {
	state := midGameState(t, 9,
		[]Move{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 8}},
		row(4, 3, 7),
		PlayerBlack)
	rules := NewRules(testSettings(9))
	config := searchConfig()

	turn, ok := rootShortcut(state, rules, config)
	if !ok {
		t.Fatalf("open five must trigger the shortcut")
	}
	if !turn.Contains(Move{X: 2, Y: 4}) || !turn.Contains(Move{X: 8, Y: 4}) {
		t.Fatalf("with two completion cells both must be blocked, got %v", turn)
	}
}

func TestFindBestTurnBlocksOpenFourPair(t *testing.T) {
	// White holds an open four on row 4 (cols 3..6): no single white stone
	// completes six, but (2,4)+(7,4) together would. Black must take the pair.
	state := midGameState(t, 9,
		[]Move{{X: 0, Y: 8}, {X: 1, Y: 8}},
		row(4, 3, 6),
		PlayerBlack)
	rules := NewRules(testSettings(9))

	turn, ok := rootShortcut(state, rules, searchConfig())
	if !ok {
		t.Fatalf("an opponent pair win must trigger the shortcut")
	}
	if !turn.Contains(Move{X: 2, Y: 4}) || !turn.Contains(Move{X: 7, Y: 4}) {
		t.Fatalf("both ends of the open four must be taken, got %v", turn)
	}
	if valid, reason := rules.ValidateTurn(state, turn); !valid {
		t.Fatalf("block turn must be legal: %s", reason)
	}
}

func TestFindBestTurnOwnWinBeatsBlocking(t *testing.T) {
	// Both sides have five in a row; the mover wins instead of blocking.
	state := midGameState(t, 19, row(5, 3, 7), row(12, 3, 7), PlayerBlack)
	rules := NewRules(testSettings(19))

	turn, ok := rootShortcut(state, rules, searchConfig())
	if !ok {
		t.Fatalf("expected the shortcut to fire")
	}
	state2 := state.Clone()
	ended, err := rules.ApplyTurn(&state2, turn)
	if err != nil {
		t.Fatalf("shortcut turn must be legal: %v", err)
	}
	if !ended || state2.Status != StatusBlackWon {
		t.Fatalf("the mover must convert its own win, got status %v", state2.Status)
	}
}

func TestFindBestTurnOpeningSingleStone(t *testing.T) {
	state := DefaultGameState(testSettings(19))
	state.Status = StatusRunning
	turn := findTurn(t, state, searchConfig())
	if len(turn) != 1 {
		t.Fatalf("opening turn must carry one stone, got %v", turn)
	}
	if chebyshev(turn[0], Move{X: 9, Y: 9}) > DefaultConfig().AiOpeningRadius {
		t.Fatalf("opening stone should stay near the center, got %v", turn)
	}
}

func TestFindBestTurnAlwaysLegal(t *testing.T) {
	state := midGameState(t, 9,
		[]Move{{X: 4, Y: 4}, {X: 5, Y: 5}},
		[]Move{{X: 3, Y: 3}, {X: 6, Y: 6}},
		PlayerWhite)
	rules := NewRules(testSettings(9))
	for depth := 1; depth <= 3; depth++ {
		config := searchConfig()
		config.AiDepth = depth
		turn := findTurn(t, state, config)
		if ok, reason := rules.ValidateTurn(state, turn); !ok {
			t.Fatalf("depth %d produced illegal turn %v: %s", depth, turn, reason)
		}
	}
}

func TestFindBestTurnMinimaxMatchesLegality(t *testing.T) {
	state := midGameState(t, 9, []Move{{X: 4, Y: 4}}, []Move{{X: 3, Y: 3}}, PlayerBlack)
	rules := NewRules(testSettings(9))
	config := searchConfig()
	config.AiUseAlphaBeta = false
	turn := findTurn(t, state, config)
	if ok, reason := rules.ValidateTurn(state, turn); !ok {
		t.Fatalf("plain minimax produced illegal turn %v: %s", turn, reason)
	}
}

func TestFindBestTurnTerminalStateReturnsNil(t *testing.T) {
	state := midGameState(t, 19, row(5, 3, 8), nil, PlayerWhite)
	state.Status = StatusBlackWon
	if turn := findTurn(t, state, searchConfig()); turn != nil {
		t.Fatalf("finished game must yield no turn, got %v", turn)
	}
}

func TestFindBestTurnDrawParityStateReturnsNil(t *testing.T) {
	state := DefaultGameState(testSettings(6))
	state.OpeningMove = false
	player := PlayerBlack
	for _, move := range state.EmptyMoves() {
		state.placeStone(move, player)
		player = otherPlayer(player)
	}
	state.Status = StatusDraw
	if turn := findTurn(t, state, searchConfig()); turn != nil {
		t.Fatalf("drawn game must yield no turn, got %v", turn)
	}
}

func TestFallbackTurnFillsFromEmpties(t *testing.T) {
	state := midGameState(t, 6, nil, nil, PlayerBlack)
	rules := NewRules(testSettings(6))
	config := searchConfig()

	turn := fallbackTurn(state, rules, config)
	if len(turn) != 2 {
		t.Fatalf("fallback must produce a full turn, got %v", turn)
	}
	if ok, reason := rules.ValidateTurn(state, turn); !ok {
		t.Fatalf("fallback turn must be legal: %s", reason)
	}
}

func TestSearchCacheChildStateReused(t *testing.T) {
	state := midGameState(t, 9, []Move{{X: 4, Y: 4}}, nil, PlayerWhite)
	rules := NewRules(testSettings(9))
	cache := NewSearchCache(nil, searchConfig())
	turn := Turn{{X: 3, Y: 3}, {X: 5, Y: 5}}

	first, _ := cache.childState(&state, turn, rules)
	second, _ := cache.childState(&state, turn, rules)
	if first == nil || first != second {
		t.Fatalf("child state must be simulated once and reused")
	}
	if cache.childCount() != 1 {
		t.Fatalf("expected one cached child, got %d", cache.childCount())
	}
	if state.Board.At(3, 3) != CellEmpty {
		t.Fatalf("simulating a child must not touch the parent")
	}
}

func TestSearchCacheEvalRoundTrip(t *testing.T) {
	cache := NewSearchCache(nil, searchConfig())
	cache.storeEval(0xabc, 12.5)
	score, ok := cache.lookupEval(0xabc)
	if !ok || score != 12.5 {
		t.Fatalf("eval cache round trip failed: %v %v", score, ok)
	}
	if _, ok := cache.lookupEval(0xdef); ok {
		t.Fatalf("unknown key must miss")
	}
}

func TestSearchStatsCollected(t *testing.T) {
	state := midGameState(t, 9, []Move{{X: 4, Y: 4}}, []Move{{X: 3, Y: 3}}, PlayerBlack)
	rules := NewRules(testSettings(9))
	config := searchConfig()
	tt := NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets)

	_, stats := FindBestTurn(context.Background(), state, rules, tt, config, nil)
	if stats.Nodes == 0 {
		t.Fatalf("search must count nodes")
	}
	if stats.CompletedDepth == 0 {
		t.Fatalf("at least one deepening level must complete")
	}
}

func TestAnalysisEventsEmitted(t *testing.T) {
	state := midGameState(t, 9, []Move{{X: 4, Y: 4}}, []Move{{X: 3, Y: 3}}, PlayerBlack)
	rules := NewRules(testSettings(9))
	config := searchConfig()
	tt := NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets)

	events := []AnalysisEvent{}
	FindBestTurn(context.Background(), state, rules, tt, config, func(event AnalysisEvent) {
		events = append(events, event)
	})
	if len(events) == 0 {
		t.Fatalf("expected analysis events")
	}
	last := events[len(events)-1]
	if !last.Final {
		t.Fatalf("the last event must be final")
	}
	if len(last.Turn) != state.TurnLength() {
		t.Fatalf("final event must carry a full turn, got %v", last.Turn)
	}
}

func TestFindBestTurnCancelledContextStillLegal(t *testing.T) {
	state := midGameState(t, 9, []Move{{X: 4, Y: 4}}, []Move{{X: 3, Y: 3}}, PlayerBlack)
	rules := NewRules(testSettings(9))
	config := searchConfig()
	tt := NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	turn, _ := FindBestTurn(ctx, state, rules, tt, config, nil)
	if ok, reason := rules.ValidateTurn(state, turn); !ok {
		t.Fatalf("cancelled search must still fall back to a legal turn: %s", reason)
	}
}
