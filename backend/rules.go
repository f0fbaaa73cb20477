package main

import "fmt"

var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

func (r Rules) WinLength() int {
	if r.settings.WinLength <= 0 {
		return DefaultWinLength
	}
	return r.settings.WinLength
}

func (r Rules) BoardSize() int {
	return r.settings.BoardSize
}

// CheckWinner reports whether the stone at (x,y) closes a run of WinLength or
// more. It reads the occupant of the cell rather than trusting a tracked
// "current player", so it is safe on any simulated state.
func (r Rules) CheckWinner(board Board, move Move) bool {
	if !board.InBounds(move.X, move.Y) {
		return false
	}
	target := board.At(move.X, move.Y)
	if target == CellEmpty {
		return false
	}
	for _, dir := range directions {
		count := 1
		count += countDirection(board, move, dir[0], dir[1], target)
		count += countDirection(board, move, -dir[0], -dir[1], target)
		if count >= r.WinLength() {
			return true
		}
	}
	return false
}

// IsDraw is true when the board is full, or on even boards when a single empty
// cell is left but the side to move owes two stones: the turn cannot be legally
// completed, so the game is declared drawn instead of decided by default.
func (r Rules) IsDraw(state GameState) bool {
	empty := state.EmptyCount()
	if empty == 0 {
		return true
	}
	return state.Board.Size()%2 == 0 && empty == 1 && state.TurnLength() == 2
}

// ValidateTurn checks a prospective turn without touching the state: correct
// stone count for the opening flag, bounds, emptiness, and no duplicate
// coordinate inside the turn.
func (r Rules) ValidateTurn(state GameState, turn Turn) (bool, string) {
	required := state.TurnLength()
	if len(turn) != required {
		return false, fmt.Sprintf("turn must contain exactly %d move(s), got %d", required, len(turn))
	}
	for i, move := range turn {
		if !move.IsValid(state.Board.Size()) {
			return false, fmt.Sprintf("move (%d,%d) is out of bounds", move.X, move.Y)
		}
		if !state.IsEmptyCell(move) {
			return false, fmt.Sprintf("cell (%d,%d) is already occupied", move.X, move.Y)
		}
		for j := 0; j < i; j++ {
			if turn[j].Equals(move) {
				return false, fmt.Sprintf("duplicate move (%d,%d) in the same turn", move.X, move.Y)
			}
		}
	}
	return true, ""
}

// ApplyTurn applies a full turn atomically: it validates first (an invalid
// turn leaves the state untouched and is reported as an error), places the
// stones in order, checks for a win after each placement, then for a draw,
// and finally clears the opening flag and hands the turn to the opponent.
// The boolean reports whether the game ended.
func (r Rules) ApplyTurn(state *GameState, turn Turn) (bool, error) {
	ok, reason := r.ValidateTurn(*state, turn)
	if !ok {
		state.LastMessage = reason
		return false, fmt.Errorf("invalid turn: %s", reason)
	}
	player := state.ToMove
	state.LastMessage = ""
	for _, move := range turn {
		state.placeStone(move, player)
		if r.CheckWinner(state.Board, move) {
			if line, found := r.FindWinLine(state.Board, move); found {
				state.WinningLine = line
			}
			if player == PlayerBlack {
				state.Status = StatusBlackWon
			} else {
				state.Status = StatusWhiteWon
			}
			state.HasLastTurn = true
			state.LastTurn = turn.Clone()
			return true, nil
		}
	}
	state.HasLastTurn = true
	state.LastTurn = turn.Clone()
	state.OpeningMove = false
	state.ToMove = otherPlayer(player)
	if r.IsDraw(*state) {
		state.Status = StatusDraw
		return true, nil
	}
	state.Status = StatusRunning
	return false, nil
}

// FindWinLine collects the aligned stones through the given move, for
// reporting a finished game.
func (r Rules) FindWinLine(board Board, move Move) ([]Move, bool) {
	if !board.InBounds(move.X, move.Y) || board.At(move.X, move.Y) == CellEmpty {
		return nil, false
	}
	for _, dir := range directions {
		line := collectLine(board, move, dir[0], dir[1])
		if len(line) >= r.WinLength() {
			return line, true
		}
	}
	return nil, false
}

func countDirection(board Board, start Move, dx, dy int, target Cell) int {
	x := start.X + dx
	y := start.Y + dy
	count := 0
	for board.InBounds(x, y) && board.At(x, y) == target {
		count++
		x += dx
		y += dy
	}
	return count
}

func collectLine(board Board, start Move, dx, dy int) []Move {
	target := board.At(start.X, start.Y)
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	line := []Move{}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{size=%d, win=%d}", r.settings.BoardSize, r.WinLength())
}
