package main

import "testing"

func TestIsEmptyTracksBoundsAndOccupancy(t *testing.T) {
	board := NewBoard()
	if !board.IsEmpty(3, 3) {
		t.Fatalf("fresh cell reported occupied")
	}
	for _, cell := range []Offset{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if board.IsEmpty(cell.X, cell.Y) {
			t.Fatalf("out-of-bounds cell (%d,%d) reported empty", cell.X, cell.Y)
		}
	}
	board.Set(3, 3, CellPlayer1, PieceT)
	if board.IsEmpty(3, 3) {
		t.Fatalf("occupied cell reported empty")
	}
}

func TestResetClearsCellsAndPieceIdentity(t *testing.T) {
	board := NewBoard()
	board.Set(2, 5, CellPlayer2, PieceW)
	board.Set(7, 7, CellPlayer1, PieceX)
	board.Reset()
	if board != NewBoard() {
		t.Fatalf("reset left residue on the board")
	}
	if _, ok := board.PieceAt(2, 5); ok {
		t.Fatalf("piece identity survived reset")
	}
}
