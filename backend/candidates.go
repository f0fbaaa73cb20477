package main

import "sort"

// candidateMove carries the ordering metadata for one empty cell.
type candidateMove struct {
	move     Move
	priority int
	runLen   int
	dist     int
}

// CollectCandidates returns the empty cells worth considering from this
// position, strongest first, truncated to the configured limit.
func CollectCandidates(state GameState, rules Rules, config Config) []Move {
	candidates := collectScoredCandidates(state, rules, config)
	moves := make([]Move, len(candidates))
	for i, candidate := range candidates {
		moves[i] = candidate.move
	}
	return moves
}

// collectScoredCandidates is the scored form of CollectCandidates. While only
// a few stones are down it proposes a window around the center; otherwise it
// scans empties near the opponent's last stones (falling back to any stone,
// then every empty cell), scored by the longest run either side would obtain
// by playing there. The mover's own completion outranks blocking the
// opponent's; below that tier, denying an opponent run outranks growing one.
func collectScoredCandidates(state GameState, rules Rules, config Config) []candidateMove {
	if state.EmptyCount() == 0 {
		return nil
	}
	// Early play is locality-driven: with only a few stones down, the center
	// window dominates any proximity heuristic.
	if state.Board.CountStones() < config.AiOpeningStoneCount {
		if candidates := openingCandidates(state, config); len(candidates) > 0 {
			return candidates
		}
	}

	winLength := rules.WinLength()
	size := state.Board.Size()
	board := state.Board
	ownCell := CellFromPlayer(state.ToMove)
	oppCell := CellFromPlayer(otherPlayer(state.ToMove))

	// Anchor cascade: the opponent's last stones when known, then any stone,
	// then every empty cell.
	anchors := state.LastTurn
	if !state.HasLastTurn || len(anchors) == 0 {
		anchors = stonePositions(board)
	}

	scan := func(within []Move) []candidateMove {
		found := make([]candidateMove, 0, 64)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				move := Move{X: x, Y: y}
				if !state.IsEmptyCell(move) {
					continue
				}
				if within != nil && chebyshevToNearest(move, within) > config.AiProximityRadius {
					continue
				}
				ownRun := ThreatAtPosition(board, move, ownCell, winLength)
				oppRun := ThreatAtPosition(board, move, oppCell, winLength)
				found = append(found, candidateMove{
					move:     move,
					priority: candidatePriority(ownRun, oppRun, winLength),
					runLen:   ownRun,
					dist:     chebyshevToNearest(move, anchors),
				})
			}
		}
		return found
	}

	candidates := scan(anchors)
	if len(candidates) == 0 {
		candidates = scan(stonePositions(board))
	}
	if len(candidates) == 0 {
		candidates = scan(nil)
	}

	sortCandidates(candidates)
	return truncateCandidates(candidates, config.AiCandidateLimit)
}

// candidatePriority ranks a cell by what playing it settles, most urgent
// first: the mover's immediate win, denying the opponent's immediate win,
// denying an opponent four, then growing the mover's own runs.
func candidatePriority(ownRun, oppRun, winLength int) int {
	switch {
	case ownRun >= winLength:
		return 5
	case oppRun >= winLength:
		return 4
	case oppRun == winLength-1:
		return 3
	case ownRun == winLength-1:
		return 2
	case ownRun == winLength-2:
		return 1
	default:
		return 0
	}
}

func openingCandidates(state GameState, config Config) []candidateMove {
	size := state.Board.Size()
	center := Move{X: size / 2, Y: size / 2}
	candidates := []candidateMove{}
	radius := config.AiOpeningRadius
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			move := Move{X: x, Y: y}
			if !state.IsEmptyCell(move) {
				continue
			}
			candidates = append(candidates, candidateMove{
				move: move,
				dist: chebyshev(move, center),
			})
		}
	}
	sortCandidates(candidates)
	return truncateCandidates(candidates, config.AiCandidateLimit)
}

// ThreatAtPosition places a stone of the given colour on the cell, measures
// the longest run through it, reverts, and returns the length capped at
// winLength. Returns 0 for a non-empty cell.
func ThreatAtPosition(board Board, move Move, target Cell, winLength int) int {
	if !board.InBounds(move.X, move.Y) || board.At(move.X, move.Y) != CellEmpty {
		return 0
	}
	board.Set(move.X, move.Y, target)
	best := 1
	for _, dir := range directions {
		count := 1
		count += countDirection(board, move, dir[0], dir[1], target)
		count += countDirection(board, move, -dir[0], -dir[1], target)
		if count > best {
			best = count
		}
	}
	board.Set(move.X, move.Y, CellEmpty)
	if best > winLength {
		best = winLength
	}
	return best
}

func sortCandidates(candidates []candidateMove) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.runLen != b.runLen {
			return a.runLen > b.runLen
		}
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		if a.move.Y != b.move.Y {
			return a.move.Y < b.move.Y
		}
		return a.move.X < b.move.X
	})
}

func truncateCandidates(candidates []candidateMove, limit int) []candidateMove {
	if limit < len(candidates) {
		return candidates[:limit]
	}
	return candidates
}

func stonePositions(board Board) []Move {
	size := board.Size()
	stones := []Move{}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) != CellEmpty {
				stones = append(stones, Move{X: x, Y: y})
			}
		}
	}
	return stones
}

func chebyshev(a, b Move) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func chebyshevToNearest(move Move, anchors []Move) int {
	if len(anchors) == 0 {
		return 0
	}
	best := chebyshev(move, anchors[0])
	for _, anchor := range anchors[1:] {
		if d := chebyshev(move, anchor); d < best {
			best = d
		}
	}
	return best
}
