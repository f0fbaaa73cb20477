package main

import (
	"fmt"
	"strings"
)

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) IsValid(boardSize int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < boardSize && m.Y < boardSize
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}

// Turn is the ordered sequence of placements one player makes in a ply:
// a single stone on the opening move, two stones afterwards.
type Turn []Move

func (t Turn) Contains(move Move) bool {
	for _, m := range t {
		if m.Equals(move) {
			return true
		}
	}
	return false
}

func (t Turn) Clone() Turn {
	return append(Turn(nil), t...)
}

func (t Turn) String() string {
	parts := make([]string, 0, len(t))
	for _, m := range t {
		parts = append(parts, fmt.Sprintf("(%d,%d)", m.X, m.Y))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
