package main

// HumanPlayer buffers one fully specified placement submitted through
// the API until the tick loop applies it.
type HumanPlayer struct {
	pending    Placement
	hasPending bool
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) SetPendingPlacement(p Placement) {
	h.pending = p
	h.hasPending = true
}

func (h *HumanPlayer) HasPendingPlacement() bool {
	return h.hasPending
}

func (h *HumanPlayer) TakePendingPlacement() Placement {
	h.hasPending = false
	return h.pending
}
