package main

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	rules.Place(&board, NewPlacement(PieceI, Orientation{}, 0, 0), Player1)
	rules.Place(&board, NewPlacement(PieceP, Orientation{}, 2, 3), Player2)
	rules.Place(&board, NewPlacement(PieceU, Orientation{}, 5, 5), Player1)

	encoded := EncodeBoardState(board)
	if len(encoded) != 64 {
		t.Fatalf("encoded length %d, want 64", len(encoded))
	}
	decoded, err := DecodeBoardState(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := EncodeBoardState(decoded); got != encoded {
		t.Fatalf("round trip changed the encoding:\n%s\n%s", encoded, got)
	}
	if boardPieces(decoded) != PieceSetOf(PieceI, PieceP, PieceU) {
		t.Fatalf("decoded piece set %v", boardPieces(decoded).List())
	}
}

func TestEncodeEmptyBoard(t *testing.T) {
	want := strings.Repeat("G", 64)
	if got := EncodeBoardState(NewBoard()); got != want {
		t.Fatalf("empty board encodes to %q", got)
	}
}

func TestDecodeNormalizesLegacyAlias(t *testing.T) {
	state := "HHHHH" + strings.Repeat("G", 59)
	board, err := DecodeBoardState(state)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for x := 0; x < 5; x++ {
		if id, ok := board.PieceAt(x, 0); !ok || id != PieceY {
			t.Fatalf("cell (%d,0) should hold Y, got %v %v", x, id, ok)
		}
	}
	if encoded := EncodeBoardState(board); strings.ContainsRune(encoded, 'H') {
		t.Fatalf("encoder emitted the legacy alias: %q", encoded)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	if _, err := DecodeBoardState(strings.Repeat("G", 63)); !errors.Is(err, errBadBoardState) {
		t.Fatalf("63 characters accepted: %v", err)
	}
	if _, err := DecodeBoardState(strings.Repeat("G", 65)); !errors.Is(err, errBadBoardState) {
		t.Fatalf("65 characters accepted: %v", err)
	}
}

func TestDecodeRejectsUnknownLetter(t *testing.T) {
	state := "Q" + strings.Repeat("G", 63)
	if _, err := DecodeBoardState(state); !errors.Is(err, errBadBoardChar) {
		t.Fatalf("unknown letter accepted: %v", err)
	}
}

func TestValidatePuzzleAcceptsConsistentPuzzle(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	rules.Place(&board, NewPlacement(PieceI, Orientation{}, 0, 0), Player1)
	rules.Place(&board, NewPlacement(PieceL, Orientation{}, 0, 2), Player2)
	puzzle := NewPuzzle(board, PieceSetOf(PieceI, PieceL))
	if err := ValidatePuzzle(puzzle); err != nil {
		t.Fatalf("consistent puzzle rejected: %v", err)
	}
	if puzzle.MovesRemaining != 10 {
		t.Fatalf("movesRemaining %d, want 10", puzzle.MovesRemaining)
	}
}

func TestValidatePuzzleRejectsMismatchedUsedList(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	rules.Place(&board, NewPlacement(PieceI, Orientation{}, 0, 0), Player1)

	puzzle := NewPuzzle(board, PieceSetOf(PieceI))
	puzzle.UsedPieces = []PieceID{PieceI, PieceL}
	puzzle.MovesRemaining = 10
	if err := ValidatePuzzle(puzzle); !errors.Is(err, errPuzzleInconsistent) {
		t.Fatalf("expected inconsistency error, got %v", err)
	}
}

func TestValidatePuzzleRejectsWrongMovesRemaining(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	rules.Place(&board, NewPlacement(PieceI, Orientation{}, 0, 0), Player1)

	puzzle := NewPuzzle(board, PieceSetOf(PieceI))
	puzzle.MovesRemaining = 5
	if err := ValidatePuzzle(puzzle); !errors.Is(err, errPuzzleInconsistent) {
		t.Fatalf("expected inconsistency error, got %v", err)
	}
}

func TestDecodePuzzleSeedsBoardAndUsedSet(t *testing.T) {
	rules := NewRules()
	board := NewBoard()
	rules.Place(&board, NewPlacement(PieceT, Orientation{}, 3, 3), Player1)
	puzzle := NewPuzzle(board, PieceSetOf(PieceT))

	decoded, used, err := DecodePuzzle(puzzle)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if used != PieceSetOf(PieceT) {
		t.Fatalf("used set %v", used.List())
	}
	if EncodeBoardState(decoded) != puzzle.BoardState {
		t.Fatalf("decoded board does not match the wire state")
	}
}
