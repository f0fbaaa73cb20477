package main

type PlayerColor int

type GameStatus int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

// emptySet tracks the empty cells of a board with O(1) membership and
// swap-removal. positions[idx] is the slot of cell idx in list, or -1.
type emptySet struct {
	positions []int
	list      []Move
}

func newEmptySet(boardSize int) emptySet {
	set := emptySet{
		positions: make([]int, boardSize*boardSize),
		list:      make([]Move, 0, boardSize*boardSize),
	}
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			set.positions[y*boardSize+x] = len(set.list)
			set.list = append(set.list, Move{X: x, Y: y})
		}
	}
	return set
}

func (s emptySet) contains(idx int) bool {
	return idx >= 0 && idx < len(s.positions) && s.positions[idx] >= 0
}

func (s *emptySet) remove(idx, boardSize int) {
	pos := s.positions[idx]
	if pos < 0 {
		return
	}
	last := len(s.list) - 1
	moved := s.list[last]
	s.list[pos] = moved
	s.positions[moved.Y*boardSize+moved.X] = pos
	s.list = s.list[:last]
	s.positions[idx] = -1
}

func (s *emptySet) add(move Move, boardSize int) {
	idx := move.Y*boardSize + move.X
	if s.positions[idx] >= 0 {
		return
	}
	s.positions[idx] = len(s.list)
	s.list = append(s.list, move)
}

func (s emptySet) clone() emptySet {
	clone := emptySet{
		positions: make([]int, len(s.positions)),
		list:      make([]Move, len(s.list)),
	}
	copy(clone.positions, s.positions)
	copy(clone.list, s.list)
	return clone
}

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	OpeningMove bool
	HasLastTurn bool
	LastTurn    Turn
	Hash        uint64
	LastMessage string
	WinningLine []Move
	empties     emptySet
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.BoardSize)
	if settings.BlackStarts {
		s.ToMove = PlayerBlack
	} else {
		s.ToMove = PlayerWhite
	}
	s.Status = StatusNotStarted
	s.OpeningMove = true
	s.HasLastTurn = false
	s.LastTurn = nil
	s.LastMessage = ""
	s.WinningLine = nil
	s.empties = newEmptySet(settings.BoardSize)
	s.recomputeHash()
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.LastTurn = s.LastTurn.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	clone.empties = s.empties.clone()
	return clone
}

// TurnLength is 1 on the opening ply, 2 afterwards.
func (s GameState) TurnLength() int {
	if s.OpeningMove {
		return 1
	}
	return 2
}

// EmptyMoves returns a copy of the empty-cell set in insertion order.
func (s GameState) EmptyMoves() []Move {
	return append([]Move(nil), s.empties.list...)
}

func (s GameState) EmptyCount() int {
	return len(s.empties.list)
}

func (s GameState) IsEmptyCell(move Move) bool {
	if !move.IsValid(s.Board.Size()) {
		return false
	}
	return s.empties.contains(move.Y*s.Board.Size() + move.X)
}

// placeStone mutates the board, the empty-set and the hash together so the
// invariant "empties == board's empty cells" can never drift.
func (s *GameState) placeStone(move Move, player PlayerColor) bool {
	if !s.Board.Place(move.X, move.Y, CellFromPlayer(player)) {
		return false
	}
	s.empties.remove(move.Y*s.Board.Size()+move.X, s.Board.Size())
	s.Hash = UpdateHashAfterPlace(s.Hash, s.Board.Size(), move, player)
	return true
}

// undoStone reverses placeStone for the given move.
func (s *GameState) undoStone(move Move, player PlayerColor) bool {
	if !s.Board.Undo(move.X, move.Y) {
		return false
	}
	s.empties.add(move, s.Board.Size())
	s.Hash = UpdateHashAfterPlace(s.Hash, s.Board.Size(), move, player)
	return true
}

func (s *GameState) recomputeHash() {
	s.Hash = ComputeHash(*s)
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func playerColorName(p PlayerColor) string {
	if p == PlayerBlack {
		return "Black"
	}
	return "White"
}
