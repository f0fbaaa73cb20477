package main

type TurnHistoryEntry struct {
	Moves     Turn        `json:"moves"`
	Player    PlayerColor `json:"player"`
	ElapsedMs float64     `json:"elapsed_ms"`
	IsAi      bool        `json:"is_ai"`
	Depth     int         `json:"depth"`
}

type MoveHistory struct {
	entries []TurnHistoryEntry
}

func (h *MoveHistory) Push(entry TurnHistoryEntry) {
	entry.Moves = entry.Moves.Clone()
	h.entries = append(h.entries, entry)
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Size() int {
	return len(h.entries)
}

func (h *MoveHistory) Entries() []TurnHistoryEntry {
	out := make([]TurnHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// StoneCount is the number of stones placed so far, which differs from the
// entry count because turns carry one or two stones.
func (h *MoveHistory) StoneCount() int {
	count := 0
	for _, entry := range h.entries {
		count += len(entry.Moves)
	}
	return count
}
