package main

import "testing"

func TestIncrementalHashMatchesRecompute(t *testing.T) {
	state := DefaultGameState(testSettings(9))
	moves := []Move{{X: 4, Y: 4}, {X: 3, Y: 3}, {X: 5, Y: 5}, {X: 2, Y: 6}}
	player := PlayerBlack
	for _, move := range moves {
		state.placeStone(move, player)
		player = otherPlayer(player)
	}
	if state.Hash != ComputeHash(state) {
		t.Fatalf("incremental hash %x diverged from recompute %x", state.Hash, ComputeHash(state))
	}
}

func TestUndoRestoresHash(t *testing.T) {
	state := DefaultGameState(testSettings(9))
	before := state.Hash
	state.placeStone(Move{X: 4, Y: 4}, PlayerBlack)
	state.undoStone(Move{X: 4, Y: 4}, PlayerBlack)
	if state.Hash != before {
		t.Fatalf("undo must restore the hash")
	}
	if !state.IsEmptyCell(Move{X: 4, Y: 4}) {
		t.Fatalf("undo must restore the empty set")
	}
}

func TestResetRecomputesHash(t *testing.T) {
	state := DefaultGameState(testSettings(9))
	state.placeStone(Move{X: 4, Y: 4}, PlayerBlack)
	state.Reset(testSettings(9))
	if state.Hash != ComputeHash(state) {
		t.Fatalf("reset must leave a freshly computed hash")
	}
	if state.Hash != 0 {
		t.Fatalf("an empty board hashes to zero, got %x", state.Hash)
	}
}

func TestStateKeyDependsOnSideAndOpening(t *testing.T) {
	state := DefaultGameState(testSettings(9))
	state.OpeningMove = false

	base := StateKey(state)
	state.ToMove = otherPlayer(state.ToMove)
	withSide := StateKey(state)
	if base == withSide {
		t.Fatalf("state key must depend on the side to move")
	}
	state.OpeningMove = true
	withOpening := StateKey(state)
	if withSide == withOpening {
		t.Fatalf("state key must depend on the opening flag")
	}
}

func TestStateKeyStonesOfDifferentColorsDiffer(t *testing.T) {
	black := DefaultGameState(testSettings(9))
	black.OpeningMove = false
	black.placeStone(Move{X: 4, Y: 4}, PlayerBlack)

	white := DefaultGameState(testSettings(9))
	white.OpeningMove = false
	white.placeStone(Move{X: 4, Y: 4}, PlayerWhite)

	if StateKey(black) == StateKey(white) {
		t.Fatalf("same cell with different colors must hash differently")
	}
}

func TestZobristTablesCachedPerSize(t *testing.T) {
	a := GetZobrist(9)
	b := GetZobrist(9)
	if a != b {
		t.Fatalf("tables for the same size must be shared")
	}
	c := GetZobrist(13)
	if a == c {
		t.Fatalf("tables for different sizes must differ")
	}
}
