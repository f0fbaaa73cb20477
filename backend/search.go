package main

import (
	"context"
	"sort"
	"time"
)

// AnalysisEvent is emitted once per completed deepening level so observers
// can watch the principal variation evolve while the engine thinks.
type AnalysisEvent struct {
	Depth     int     `json:"depth"`
	Turn      Turn    `json:"turn"`
	Score     float64 `json:"score"`
	Nodes     int     `json:"nodes"`
	ElapsedMs int64   `json:"elapsed_ms"`
	Final     bool    `json:"final"`
}

type searchContext struct {
	ctx         context.Context
	rules       Rules
	config      Config
	cache       *SearchCache
	stats       *SearchStats
	maximizer   PlayerColor
	deadline    time.Time
	hasDeadline bool
	aborted     bool
	onExplore   func(AnalysisEvent)
}

func (sc *searchContext) expired() bool {
	if sc.aborted {
		return true
	}
	if sc.ctx != nil && sc.ctx.Err() != nil {
		sc.aborted = true
		return true
	}
	if sc.hasDeadline && time.Now().After(sc.deadline) {
		sc.aborted = true
		return true
	}
	return false
}

// FindBestTurn picks the turn the side to move should play. It always
// returns a turn that ValidateTurn accepts, unless the game is already over
// or the board is full, in which case it returns nil.
func FindBestTurn(ctx context.Context, state GameState, rules Rules, tt *TranspositionTable, config Config, onExplore func(AnalysisEvent)) (Turn, *SearchStats) {
	stats := newSearchStats()
	if gameOver(state.Status) || state.EmptyCount() == 0 {
		return nil, stats
	}

	if turn, ok := rootShortcut(state, rules, config); ok {
		if valid, _ := rules.ValidateTurn(state, turn); valid {
			return turn, stats
		}
	}

	sc := &searchContext{
		ctx:       ctx,
		rules:     rules,
		config:    config,
		cache:     NewSearchCache(tt, config),
		stats:     stats,
		maximizer: state.ToMove,
		onExplore: onExplore,
	}
	if config.AiTimeBudgetMs > 0 {
		sc.deadline = stats.Start.Add(time.Duration(config.AiTimeBudgetMs) * time.Millisecond)
		sc.hasDeadline = true
	}
	if tt != nil {
		tt.NextGeneration()
	}

	var best Turn
	var bestScore float64
	root := state.Clone()
	for depth := 1; depth <= config.AiDepth; depth++ {
		began := time.Now()
		score, turn := sc.searchTurn(&root, depth, -winScore*2, winScore*2)
		if sc.aborted {
			break
		}
		if len(turn) == state.TurnLength() {
			best = turn
			bestScore = score
			stats.markDepthDone(depth, began)
			sc.emit(AnalysisEvent{
				Depth:     depth,
				Turn:      best.Clone(),
				Score:     score,
				Nodes:     stats.Nodes,
				ElapsedMs: stats.Elapsed().Milliseconds(),
			})
		}
		if config.AiQuickWinExit && score >= winScore {
			break
		}
		if sc.expired() {
			break
		}
	}

	if best == nil {
		best = fallbackTurn(state, rules, config)
	}
	if valid, _ := rules.ValidateTurn(state, best); !valid {
		best = fallbackTurn(state, rules, config)
	}
	if config.AiLogSearchStats {
		stats.log("ai:search", best, bestScore)
	}
	sc.emit(AnalysisEvent{
		Depth:     stats.CompletedDepth,
		Turn:      best.Clone(),
		Score:     bestScore,
		Nodes:     stats.Nodes,
		ElapsedMs: stats.Elapsed().Milliseconds(),
		Final:     true,
	})
	return best, stats
}

func (sc *searchContext) emit(event AnalysisEvent) {
	if sc.onExplore != nil {
		sc.onExplore(event)
	}
}

// searchTurn is the recursive negamax-shaped minimax over whole turns. Scores
// are always from the root mover's point of view; winning sooner scores
// higher through the remaining-depth bonus.
func (sc *searchContext) searchTurn(state *GameState, depth int, alpha, beta float64) (float64, Turn) {
	sc.stats.Nodes++
	if score, done := terminalScore(*state, sc.maximizer, depth); done {
		return score, nil
	}
	if depth <= 0 || sc.expired() {
		return sc.leafEval(state), nil
	}

	key := StateKey(*state)
	alphaOrig := alpha
	var ttTurn Turn
	if sc.cache.tt != nil {
		sc.stats.TTProbes++
		if entry, ok := sc.cache.tt.Probe(key); ok {
			sc.stats.TTHits++
			ttTurn = entry.BestTurn
			if entry.Depth >= depth {
				switch entry.Flag {
				case TTExact:
					return entry.Score, entry.BestTurn.Clone()
				case TTLower:
					if entry.Score > alpha {
						alpha = entry.Score
					}
				case TTUpper:
					if entry.Score < beta {
						beta = entry.Score
					}
				}
				if sc.config.AiUseAlphaBeta && alpha >= beta {
					sc.stats.Cutoffs++
					return entry.Score, entry.BestTurn.Clone()
				}
			}
		}
	}

	turns := sc.orderedTurns(state, ttTurn)
	if len(turns) == 0 {
		return sc.leafEval(state), nil
	}

	maximizing := state.ToMove == sc.maximizer
	var best Turn
	bestScore := -2 * winScore
	if !maximizing {
		bestScore = 2 * winScore
	}
	for _, turn := range turns {
		child, _ := sc.cache.childState(state, turn, sc.rules)
		if child == nil {
			continue
		}
		score, _ := sc.searchTurn(child, depth-1, alpha, beta)
		if maximizing {
			if score > bestScore {
				bestScore = score
				best = turn
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < bestScore {
				bestScore = score
				best = turn
			}
			if score < beta {
				beta = score
			}
		}
		if sc.config.AiUseAlphaBeta && beta <= alpha {
			sc.stats.Cutoffs++
			break
		}
		if sc.expired() {
			break
		}
	}
	if best == nil {
		return sc.leafEval(state), nil
	}

	if sc.cache.tt != nil && !sc.aborted {
		flag := TTExact
		if bestScore <= alphaOrig {
			flag = TTUpper
		} else if bestScore >= beta {
			flag = TTLower
		}
		sc.cache.tt.Store(key, depth, bestScore, flag, best)
		sc.stats.TTStores++
	}
	return bestScore, best.Clone()
}

func (sc *searchContext) leafEval(state *GameState) float64 {
	sc.stats.EvalCacheProbes++
	if score, ok := sc.cache.lookupEval(state.Hash); ok {
		sc.stats.EvalCacheHits++
		return score
	}
	score := EvaluateBoard(state.Board, sc.maximizer, sc.rules.WinLength(), sc.config)
	sc.cache.storeEval(state.Hash, score)
	return score
}

// orderedTurns enumerates the turns to explore at this node: single-stone
// turns on the opening ply, otherwise unordered candidate pairs ranked by
// combined priority and truncated to the beam. A transposition-table best
// turn is hoisted to the front.
func (sc *searchContext) orderedTurns(state *GameState, ttTurn Turn) []Turn {
	candidates := collectScoredCandidates(*state, sc.rules, sc.config)
	if sc.stats.CandidateCount == 0 {
		sc.stats.CandidateCount = len(candidates)
	}
	if len(candidates) == 0 {
		return nil
	}

	var turns []Turn
	if state.TurnLength() == 1 {
		turns = make([]Turn, 0, len(candidates))
		for _, candidate := range candidates {
			turns = append(turns, Turn{candidate.move})
		}
	} else {
		type scoredPair struct {
			turn  Turn
			score int
		}
		pairs := make([]scoredPair, 0, len(candidates)*(len(candidates)-1)/2)
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				pairs = append(pairs, scoredPair{
					turn:  Turn{candidates[i].move, candidates[j].move},
					score: candidates[i].priority + candidates[j].priority,
				})
			}
		}
		sort.SliceStable(pairs, func(i, j int) bool {
			return pairs[i].score > pairs[j].score
		})
		if len(pairs) > sc.config.AiBeamLimit {
			pairs = pairs[:sc.config.AiBeamLimit]
		}
		turns = make([]Turn, 0, len(pairs))
		for _, pair := range pairs {
			turns = append(turns, pair.turn)
		}
		sc.stats.PairsExplored += len(turns)
	}

	if len(ttTurn) == state.TurnLength() {
		for i, turn := range turns {
			if sameTurn(turn, ttTurn) {
				turns[0], turns[i] = turns[i], turns[0]
				break
			}
		}
	}
	return turns
}

func sameTurn(a, b Turn) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 1 {
		return a[0].Equals(b[0])
	}
	return (a[0].Equals(b[0]) && a[1].Equals(b[1])) ||
		(a[0].Equals(b[1]) && a[1].Equals(b[0]))
}

// terminalScore maps a finished game onto the sentinel scale. The depth bonus
// makes a win found higher in the tree (more remaining depth) preferable.
func terminalScore(state GameState, maximizer PlayerColor, depth int) (float64, bool) {
	switch state.Status {
	case StatusDraw:
		return 0, true
	case StatusBlackWon:
		if maximizer == PlayerBlack {
			return winScore + float64(depth), true
		}
		return -(winScore + float64(depth)), true
	case StatusWhiteWon:
		if maximizer == PlayerWhite {
			return winScore + float64(depth), true
		}
		return -(winScore + float64(depth)), true
	default:
		return 0, false
	}
}

func gameOver(status GameStatus) bool {
	return status == StatusBlackWon || status == StatusWhiteWon || status == StatusDraw
}

// rootShortcut resolves the positions that need no search: finish a win this
// turn if one exists, otherwise block the cells or pairs through which the
// opponent would win next turn. The mover's own win is checked first.
func rootShortcut(state GameState, rules Rules, config Config) (Turn, bool) {
	winLength := rules.WinLength()
	required := state.TurnLength()
	board := state.Board
	ownCell := CellFromPlayer(state.ToMove)
	oppCell := CellFromPlayer(otherPlayer(state.ToMove))

	winCells := completionCells(state, ownCell, winLength)
	if len(winCells) > 0 {
		if required == 1 {
			return Turn{winCells[0]}, true
		}
		if second, ok := anotherEmpty(state, winCells[0], rules, config); ok {
			return Turn{winCells[0], second}, true
		}
	}

	var candidates []Move
	if required == 2 {
		// Two-stone wins that no single stone completes, over candidate pairs.
		candidates = CollectCandidates(state, rules, config)
		if turn, ok := pairCompletion(board, candidates, ownCell, winLength); ok {
			return turn, true
		}
	}

	threats := completionCells(state, oppCell, winLength)
	if len(threats) > 0 {
		if required == 1 {
			return Turn{threats[0]}, true
		}
		if len(threats) >= 2 {
			return Turn{threats[0], threats[1]}, true
		}
		if second, ok := anotherEmpty(state, threats[0], rules, config); ok {
			return Turn{threats[0], second}, true
		}
		return nil, false
	}

	if required == 2 {
		// An opponent pair win (an open four) has no single completion cell;
		// taking both ends denies it outright.
		if turn, ok := pairCompletion(board, candidates, oppCell, winLength); ok {
			return turn, true
		}
	}
	return nil, false
}

// pairCompletion reports a pair of empty cells that together reach winLength
// for the colour, trying candidate pairs on the live board and reverting.
func pairCompletion(board Board, cells []Move, target Cell, winLength int) (Turn, bool) {
	for i := 0; i < len(cells); i++ {
		first := cells[i]
		board.Set(first.X, first.Y, target)
		for j := 0; j < len(cells); j++ {
			if j == i {
				continue
			}
			if ThreatAtPosition(board, cells[j], target, winLength) >= winLength {
				board.Set(first.X, first.Y, CellEmpty)
				return Turn{first, cells[j]}, true
			}
		}
		board.Set(first.X, first.Y, CellEmpty)
	}
	return nil, false
}

// completionCells scans every empty cell for a placement that immediately
// reaches winLength for the given colour, in row-major order.
func completionCells(state GameState, target Cell, winLength int) []Move {
	size := state.Board.Size()
	cells := []Move{}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			move := Move{X: x, Y: y}
			if !state.IsEmptyCell(move) {
				continue
			}
			if ThreatAtPosition(state.Board, move, target, winLength) >= winLength {
				cells = append(cells, move)
			}
		}
	}
	return cells
}

// anotherEmpty picks a companion stone for a turn whose first stone is
// already decided: the strongest remaining candidate, or any other empty.
func anotherEmpty(state GameState, taken Move, rules Rules, config Config) (Move, bool) {
	for _, move := range CollectCandidates(state, rules, config) {
		if !move.Equals(taken) {
			return move, true
		}
	}
	for _, move := range state.EmptyMoves() {
		if !move.Equals(taken) {
			return move, true
		}
	}
	return Move{}, false
}

// fallbackTurn is the last resort: the first legal cells in candidate order,
// padded from the raw empty list.
func fallbackTurn(state GameState, rules Rules, config Config) Turn {
	required := state.TurnLength()
	turn := Turn{}
	for _, move := range CollectCandidates(state, rules, config) {
		if len(turn) == required {
			break
		}
		if !turn.Contains(move) {
			turn = append(turn, move)
		}
	}
	for _, move := range state.EmptyMoves() {
		if len(turn) == required {
			break
		}
		if !turn.Contains(move) {
			turn = append(turn, move)
		}
	}
	if len(turn) != required {
		return nil
	}
	return turn
}
