package main

import "testing"

func TestCollectCandidatesEmptyBoardCentersWindow(t *testing.T) {
	state := DefaultGameState(testSettings(19))
	rules := NewRules(testSettings(19))
	config := DefaultConfig()

	candidates := CollectCandidates(state, rules, config)
	if len(candidates) == 0 {
		t.Fatalf("empty board must yield candidates")
	}
	if len(candidates) > config.AiCandidateLimit {
		t.Fatalf("candidate list exceeds limit: %d > %d", len(candidates), config.AiCandidateLimit)
	}
	center := Move{X: 9, Y: 9}
	if !candidates[0].Equals(center) {
		t.Fatalf("center must rank first on an empty board, got (%d,%d)", candidates[0].X, candidates[0].Y)
	}
	for _, move := range candidates {
		if chebyshev(move, center) > config.AiOpeningRadius {
			t.Fatalf("opening candidate (%d,%d) outside the center window", move.X, move.Y)
		}
	}
}

func TestCollectCandidatesStayNearStones(t *testing.T) {
	// Six stones down, past the early-window threshold.
	blacks := []Move{{X: 4, Y: 4}, {X: 4, Y: 5}, {X: 4, Y: 6}}
	whites := []Move{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	state := midGameState(t, 19, blacks, whites, PlayerBlack)
	rules := NewRules(testSettings(19))
	config := DefaultConfig()

	stones := append(append([]Move{}, blacks...), whites...)
	candidates := CollectCandidates(state, rules, config)
	if len(candidates) == 0 {
		t.Fatalf("expected candidates near the stones")
	}
	for _, move := range candidates {
		near := false
		for _, stone := range stones {
			if chebyshev(move, stone) <= config.AiProximityRadius {
				near = true
				break
			}
		}
		if !near {
			t.Fatalf("candidate (%d,%d) is outside the proximity radius", move.X, move.Y)
		}
		if !state.IsEmptyCell(move) {
			t.Fatalf("candidate (%d,%d) is not empty", move.X, move.Y)
		}
	}
}

func TestCollectCandidatesPreferLastTurnAnchor(t *testing.T) {
	blacks := []Move{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5}}
	whites := []Move{{X: 14, Y: 14}, {X: 15, Y: 14}, {X: 15, Y: 15}}
	state := midGameState(t, 19, blacks, whites, PlayerBlack)
	state.HasLastTurn = true
	state.LastTurn = Turn{{X: 14, Y: 14}, {X: 15, Y: 14}}
	rules := NewRules(testSettings(19))
	config := DefaultConfig()

	candidates := CollectCandidates(state, rules, config)
	if len(candidates) == 0 {
		t.Fatalf("expected candidates around the last turn")
	}
	for _, move := range candidates {
		near := chebyshev(move, Move{X: 14, Y: 14}) <= config.AiProximityRadius ||
			chebyshev(move, Move{X: 15, Y: 14}) <= config.AiProximityRadius
		if !near {
			t.Fatalf("candidate (%d,%d) strays from the last-turn anchor", move.X, move.Y)
		}
	}
}

func TestCollectCandidatesEarlyWindowThreshold(t *testing.T) {
	// Four stones (below the threshold of five) still draw the center window.
	state := midGameState(t, 19,
		[]Move{{X: 1, Y: 1}, {X: 2, Y: 1}},
		[]Move{{X: 16, Y: 16}, {X: 17, Y: 16}},
		PlayerBlack)
	rules := NewRules(testSettings(19))
	config := DefaultConfig()

	candidates := CollectCandidates(state, rules, config)
	if len(candidates) == 0 {
		t.Fatalf("expected center-window candidates")
	}
	center := Move{X: 9, Y: 9}
	for _, move := range candidates {
		if chebyshev(move, center) > config.AiOpeningRadius {
			t.Fatalf("early candidate (%d,%d) outside the center window", move.X, move.Y)
		}
	}
}

func TestCollectCandidatesOwnWinOutranksBlock(t *testing.T) {
	// Black to move: black can complete six at (8,5); white can complete six
	// at (8,12). The mover's completion must rank first.
	state := midGameState(t, 19,
		row(5, 3, 7),
		row(12, 3, 7),
		PlayerBlack)
	rules := NewRules(testSettings(19))
	config := DefaultConfig()

	candidates := CollectCandidates(state, rules, config)
	if len(candidates) == 0 {
		t.Fatalf("expected candidates")
	}
	first := candidates[0]
	ownWin := first.Equals(Move{X: 8, Y: 5}) || first.Equals(Move{X: 2, Y: 5})
	if !ownWin {
		t.Fatalf("mover's completion must rank first, got (%d,%d)", first.X, first.Y)
	}
}

func TestCollectCandidatesBlockFourOutranksOwnExtension(t *testing.T) {
	// Black has four on row 5, white has four on row 12; neither side can
	// finish with one stone. Denying white's four must outrank growing black's.
	state := midGameState(t, 19,
		row(5, 3, 6),
		row(12, 3, 6),
		PlayerBlack)
	rules := NewRules(testSettings(19))
	config := DefaultConfig()

	candidates := CollectCandidates(state, rules, config)
	if len(candidates) == 0 {
		t.Fatalf("expected candidates")
	}
	blockRank, extendRank := -1, -1
	for i, move := range candidates {
		if blockRank == -1 && (move.Equals(Move{X: 2, Y: 12}) || move.Equals(Move{X: 7, Y: 12})) {
			blockRank = i
		}
		if extendRank == -1 && (move.Equals(Move{X: 2, Y: 5}) || move.Equals(Move{X: 7, Y: 5})) {
			extendRank = i
		}
	}
	if blockRank == -1 {
		t.Fatalf("blocking cells missing from the candidate list")
	}
	if extendRank != -1 && blockRank > extendRank {
		t.Fatalf("blocking the four (rank %d) must outrank extending own four (rank %d)", blockRank, extendRank)
	}
}

func TestThreatAtPositionMeasuresAndReverts(t *testing.T) {
	state := midGameState(t, 19, row(5, 3, 7), nil, PlayerBlack)

	run := ThreatAtPosition(state.Board, Move{X: 8, Y: 5}, CellBlack, DefaultWinLength)
	if run != DefaultWinLength {
		t.Fatalf("completing cell must report the win length, got %d", run)
	}
	if state.Board.At(8, 5) != CellEmpty {
		t.Fatalf("measurement must revert the cell")
	}
	if ThreatAtPosition(state.Board, Move{X: 5, Y: 5}, CellBlack, DefaultWinLength) != 0 {
		t.Fatalf("occupied cell must report zero")
	}
}

func TestCollectCandidatesRespectsLimit(t *testing.T) {
	state := midGameState(t, 19, []Move{{X: 9, Y: 9}}, nil, PlayerWhite)
	rules := NewRules(testSettings(19))
	config := DefaultConfig()
	config.AiCandidateLimit = 4

	candidates := CollectCandidates(state, rules, config)
	if len(candidates) != 4 {
		t.Fatalf("expected exactly 4 candidates, got %d", len(candidates))
	}
}

func TestCollectCandidatesFullBoardEmpty(t *testing.T) {
	state := DefaultGameState(testSettings(6))
	state.OpeningMove = false
	player := PlayerBlack
	for _, move := range state.EmptyMoves() {
		state.placeStone(move, player)
		player = otherPlayer(player)
	}
	rules := NewRules(testSettings(6))
	if candidates := CollectCandidates(state, rules, DefaultConfig()); len(candidates) != 0 {
		t.Fatalf("full board must yield no candidates, got %d", len(candidates))
	}
}
