package main

import "testing"

func fullPieceSet() PieceSet {
	return PieceSetOf(allPieceIDs[:]...)
}

func fillBoard(board *Board) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			board.Set(x, y, CellPlayer1, PieceF)
		}
	}
}

func TestIsLegalRejectsOutOfBounds(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	// I spans rows 4..8 from row 4: last cell is off the board.
	if ok, reason := rules.IsLegal(board, NewPlacement(PieceI, Orientation{}, 4, 0)); ok {
		t.Fatalf("expected out-of-bounds rejection")
	} else if reason != "out of bounds" {
		t.Fatalf("unexpected reason %q", reason)
	}
	// F reaches x-1 from its anchor column.
	if ok, _ := rules.IsLegal(board, NewPlacement(PieceF, Orientation{}, 0, 0)); ok {
		t.Fatalf("expected F at column 0 to be out of bounds")
	}
}

func TestIsLegalRejectsOccupiedCells(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	board.Set(0, 2, CellPlayer2, PieceT)
	if ok, reason := rules.IsLegal(board, NewPlacement(PieceI, Orientation{}, 0, 0)); ok {
		t.Fatalf("expected occupied rejection")
	} else if reason != "occupied" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestIsLegalAcceptsOpenPlacement(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	if ok, reason := rules.IsLegal(board, NewPlacement(PieceI, Orientation{}, 0, 0)); !ok {
		t.Fatalf("expected legal placement, got %q", reason)
	}
}

func TestPlaceWritesOwnerAndPieceIdentity(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	placement := NewPlacement(PieceI, Orientation{}, 0, 3)
	rules.Place(&board, placement, Player2)
	for _, cell := range placement.Cells() {
		if board.At(cell.X, cell.Y) != CellPlayer2 {
			t.Fatalf("cell (%d,%d) not owned by player 2", cell.X, cell.Y)
		}
		if id, ok := board.PieceAt(cell.X, cell.Y); !ok || id != PieceI {
			t.Fatalf("cell (%d,%d) missing piece identity", cell.X, cell.Y)
		}
	}
	if board.CountEmpty() != BoardSize*BoardSize-5 {
		t.Fatalf("expected exactly 5 occupied cells, %d empty", board.CountEmpty())
	}
}

func TestEnumerateMovesOnEmptyBoard(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	moves := rules.EnumerateMoves(board, 0)
	if len(moves) == 0 {
		t.Fatalf("expected moves on an empty board")
	}
	want := NewPlacement(PieceI, Orientation{}, 0, 0)
	found := false
	for _, move := range moves {
		if move.Equals(want) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected the straight piece anchored at (0,0) among %d moves", len(moves))
	}
}

func TestEnumerateMovesSkipsUsedPieces(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	used := PieceSetOf(PieceI, PieceL, PieceX)
	for _, move := range rules.EnumerateMoves(board, used) {
		if used.Has(move.Piece) {
			t.Fatalf("enumerated a used piece %s", move.Piece)
		}
	}
}

func TestFullBoardHasNoMoves(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	fillBoard(&board)
	if moves := rules.EnumerateMoves(board, 0); len(moves) != 0 {
		t.Fatalf("expected no moves on a full board, got %d", len(moves))
	}
	if rules.HasAnyMove(board, 0) {
		t.Fatalf("expected HasAnyMove false on a full board")
	}
	if rules.HasAnyMove(board, fullPieceSet()) {
		t.Fatalf("expected HasAnyMove false with all pieces used")
	}
}

func TestHasAnyMoveAgreesWithEnumerateMoves(t *testing.T) {
	rules := NewRules()
	boards := []Board{NewBoard()}

	partial := NewBoard()
	rules.Place(&partial, NewPlacement(PieceI, Orientation{}, 0, 0), Player1)
	rules.Place(&partial, NewPlacement(PieceP, Orientation{}, 0, 4), Player2)
	boards = append(boards, partial)

	full := NewBoard()
	fillBoard(&full)
	boards = append(boards, full)

	for i, board := range boards {
		for _, used := range []PieceSet{0, PieceSetOf(PieceI, PieceP), fullPieceSet()} {
			want := len(rules.EnumerateMoves(board, used)) > 0
			if got := rules.HasAnyMove(board, used); got != want {
				t.Fatalf("board %d used=%v: HasAnyMove=%v, enumerate says %v", i, used.List(), got, want)
			}
		}
	}
}

func TestHasAnyMoveWithAllPiecesUsedOnEmptyBoard(t *testing.T) {
	rules := NewRules()
	if rules.HasAnyMove(NewBoard(), fullPieceSet()) {
		t.Fatalf("no pieces remain, so no move should exist")
	}
}
