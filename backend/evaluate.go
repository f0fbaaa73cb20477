package main

import "math"

const (
	// winScore dominates any heuristic value the evaluator can produce.
	winScore          = 1e9
	maxHeuristicScore = 1e8
)

// EvaluateBoard scores the position from maximizer's point of view: its own
// run tally minus the opponent's. Deterministic for a given board and config.
func EvaluateBoard(board Board, maximizer PlayerColor, winLength int, config Config) float64 {
	heuristics := resolvedHeuristicConfig(config)
	withThreats := config.AiEvaluator == EvaluatorThreat
	own := sideScore(board, CellFromPlayer(maximizer), winLength, heuristics, withThreats)
	opp := sideScore(board, CellFromPlayer(otherPlayer(maximizer)), winLength, heuristics, withThreats)
	return clampScore(own - opp)
}

// sideScore tallies the runs of one colour. A run is counted once, at the
// stone where it starts (the previous cell along the axis is not ours).
func sideScore(board Board, target Cell, winLength int, heuristics HeuristicConfig, withThreats bool) float64 {
	size := board.Size()
	center := size / 2
	score := 0.0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) != target {
				continue
			}
			score += heuristics.CenterPerStep * float64(size-(abs(x-center)+abs(y-center)))
			for _, dir := range directions {
				px, py := x-dir[0], y-dir[1]
				if board.InBounds(px, py) && board.At(px, py) == target {
					continue // not the start of the run
				}
				length := 1
				nx, ny := x+dir[0], y+dir[1]
				for board.InBounds(nx, ny) && board.At(nx, ny) == target {
					length++
					nx += dir[0]
					ny += dir[1]
				}
				score += runWeight(length, heuristics)
				if withThreats && length == winLength-1 {
					headOpen := board.InBounds(px, py) && board.At(px, py) == CellEmpty
					tailOpen := board.InBounds(nx, ny) && board.At(nx, ny) == CellEmpty
					if headOpen || tailOpen {
						score += heuristics.OpenFiveThreat
					}
				}
			}
		}
	}
	return score
}

func runWeight(length int, heuristics HeuristicConfig) float64 {
	switch {
	case length >= 5:
		return heuristics.Run5
	case length == 4:
		return heuristics.Run4
	case length == 3:
		return heuristics.Run3
	case length == 2:
		return heuristics.Run2
	default:
		return 0
	}
}

// clampScore keeps heuristic values strictly inside the win/loss sentinels,
// and maps non-finite values onto the clamp boundary.
func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	if score > maxHeuristicScore || math.IsInf(score, 1) {
		return maxHeuristicScore
	}
	if score < -maxHeuristicScore || math.IsInf(score, -1) {
		return -maxHeuristicScore
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
