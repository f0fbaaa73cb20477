package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

const (
	MinBoardSize     = 6
	MaxBoardSize     = 19
	DefaultWinLength = 6
)

type GameSettings struct {
	BoardSize   int        `json:"board_size"`
	WinLength   int        `json:"win_length"`
	BlackType   PlayerType `json:"-"`
	WhiteType   PlayerType `json:"-"`
	BlackStarts bool       `json:"black_starts"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:   19,
		WinLength:   DefaultWinLength,
		BlackType:   PlayerHuman,
		WhiteType:   PlayerAI,
		BlackStarts: true,
	}
}

// ClampBoardSize keeps a requested size inside the supported 6..19 range.
func ClampBoardSize(size int) int {
	if size < MinBoardSize {
		return MinBoardSize
	}
	if size > MaxBoardSize {
		return MaxBoardSize
	}
	return size
}
