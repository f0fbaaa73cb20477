package main

import "sync"

type ZobristTable struct {
	size    int
	cells   []uint64
	side    uint64
	opening uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &ZobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	table.opening = rng.next()
	zobristTables.tables[size] = table
	return table
}

func (z *ZobristTable) stone(x, y int, player PlayerColor) uint64 {
	idx := (y*z.size + x) * 2
	if player == PlayerWhite {
		idx++
	}
	return z.cells[idx]
}

// ComputeHash covers the stones only; side-to-move and the opening flag are
// mixed in by StateKey so incremental stone updates stay a single XOR.
func ComputeHash(state GameState) uint64 {
	z := GetZobrist(state.Board.Size())
	var hash uint64
	size := state.Board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := state.Board.At(x, y)
			if cell == CellEmpty {
				continue
			}
			player := PlayerBlack
			if cell == CellWhite {
				player = PlayerWhite
			}
			hash ^= z.stone(x, y, player)
		}
	}
	return hash
}

func UpdateHashAfterPlace(hash uint64, boardSize int, move Move, player PlayerColor) uint64 {
	z := GetZobrist(boardSize)
	return hash ^ z.stone(move.X, move.Y, player)
}

// StateKey is the canonical cache key for a position: board contents plus the
// turn-context flags that change which turns are legal from here.
func StateKey(state GameState) uint64 {
	z := GetZobrist(state.Board.Size())
	key := state.Hash
	if state.ToMove == PlayerWhite {
		key ^= z.side
	}
	if state.OpeningMove {
		key ^= z.opening
	}
	return mixKey(key ^ uint64(state.Board.Size()))
}

func mixKey(v uint64) uint64 {
	v += 0x9e3779b97f4a7c15
	v = (v ^ (v >> 30)) * 0xbf58476d1ce4e5b9
	v = (v ^ (v >> 27)) * 0x94d049bb133111eb
	return v ^ (v >> 31)
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
