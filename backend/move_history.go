package main

// HistoryEntry records a committed placement together with the full
// pre-move snapshot, so undo can restore the exact prior state.
type HistoryEntry struct {
	Placement  Placement
	Player     PlayerColor
	PrevBoard  Board
	PrevUsed   PieceSet
	PrevToMove PlayerColor
	ElapsedMs  float64
	IsAi       bool
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h *MoveHistory) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	entry := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return entry, true
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
