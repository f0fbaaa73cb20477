package main

import "testing"

func TestEvaluateBoardDeterministic(t *testing.T) {
	state := midGameState(t, 9,
		[]Move{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4}},
		[]Move{{X: 2, Y: 2}, {X: 3, Y: 2}},
		PlayerBlack)
	config := DefaultConfig()

	first := EvaluateBoard(state.Board, PlayerBlack, DefaultWinLength, config)
	second := EvaluateBoard(state.Board, PlayerBlack, DefaultWinLength, config)
	if first != second {
		t.Fatalf("evaluation must be deterministic: %v vs %v", first, second)
	}
}

func TestEvaluateBoardSignNegation(t *testing.T) {
	state := midGameState(t, 9,
		[]Move{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4}},
		[]Move{{X: 2, Y: 2}, {X: 3, Y: 2}},
		PlayerBlack)
	config := DefaultConfig()

	forBlack := EvaluateBoard(state.Board, PlayerBlack, DefaultWinLength, config)
	forWhite := EvaluateBoard(state.Board, PlayerWhite, DefaultWinLength, config)
	if forBlack != -forWhite {
		t.Fatalf("evaluation must negate when the perspective flips: %v vs %v", forBlack, forWhite)
	}
}

func TestEvaluateBoardLongerRunsScoreHigher(t *testing.T) {
	config := DefaultConfig()
	// Same stone count, same cells shifted: a 4-run beats two detached 2-runs.
	fourRun := midGameState(t, 19, row(9, 5, 8), nil, PlayerBlack)
	twoRuns := midGameState(t, 19, append(row(9, 5, 6), row(9, 12, 13)...), nil, PlayerBlack)

	four := EvaluateBoard(fourRun.Board, PlayerBlack, DefaultWinLength, config)
	twos := EvaluateBoard(twoRuns.Board, PlayerBlack, DefaultWinLength, config)
	if four <= twos {
		t.Fatalf("a run of four (%v) must outscore two runs of two (%v)", four, twos)
	}
}

func TestEvaluateBoardOpenFiveThreatBonus(t *testing.T) {
	// Five black stones with both ends open on a 19x19 board. Integer weights
	// keep the arithmetic exact so the bonus shows up as a precise delta.
	state := midGameState(t, 19, row(9, 7, 11), nil, PlayerBlack)

	threatConfig := DefaultConfig()
	threatConfig.AiEvaluator = EvaluatorThreat
	threatConfig.Heuristics.CenterPerStep = 1
	runsConfig := threatConfig
	runsConfig.AiEvaluator = EvaluatorRuns

	withThreat := EvaluateBoard(state.Board, PlayerBlack, DefaultWinLength, threatConfig)
	withoutThreat := EvaluateBoard(state.Board, PlayerBlack, DefaultWinLength, runsConfig)
	diff := withThreat - withoutThreat
	if diff != threatConfig.Heuristics.OpenFiveThreat {
		t.Fatalf("open five must add the threat bonus once, got diff %v", diff)
	}
}

func TestEvaluateBoardRunCountedOnce(t *testing.T) {
	config := DefaultConfig()
	config.AiEvaluator = EvaluatorRuns
	config.Heuristics.CenterPerStep = 1 // integer weights keep sums exact

	// Three black stones at (5..7, 9) on a 19x19 board, center (9,9): center
	// bonuses are (19-4)+(19-3)+(19-2), plus one run-3 weight.
	state := midGameState(t, 19, row(9, 5, 7), nil, PlayerBlack)
	score := EvaluateBoard(state.Board, PlayerBlack, DefaultWinLength, config)
	want := config.Heuristics.Run3 + 48
	if score != want {
		t.Fatalf("a single 3-run must score the run-3 weight plus center bonuses (%v), got %v", want, score)
	}
}

func TestClampScoreBounds(t *testing.T) {
	if clampScore(maxHeuristicScore*10) != maxHeuristicScore {
		t.Fatalf("scores above the bound must clamp")
	}
	if clampScore(-maxHeuristicScore*10) != -maxHeuristicScore {
		t.Fatalf("scores below the bound must clamp")
	}
	if clampScore(42) != 42 {
		t.Fatalf("in-range scores must pass through")
	}
}
