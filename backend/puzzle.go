package main

import (
	"errors"
	"fmt"
)

// Board-state wire format: 64 characters, row-major, 'G' for an empty
// cell, otherwise the letter of the pentomino covering the cell. 'H'
// is accepted on decode as a legacy alias of 'Y' and normalized; the
// encoder never emits it.
const (
	boardStateLen = BoardSize * BoardSize
	emptyCellChar = 'G'
	legacyYAlias  = 'H'
)

var (
	errBadBoardState      = errors.New("board state must be exactly 64 characters")
	errBadBoardChar       = errors.New("board state contains an unknown piece letter")
	errBadPieceID         = errors.New("piece id must be a single catalog letter")
	errPuzzleInconsistent = errors.New("puzzle used pieces do not match the board")
)

type Puzzle struct {
	ID             string    `json:"id,omitempty"`
	BoardState     string    `json:"boardState"`
	UsedPieces     []PieceID `json:"usedPieces"`
	MovesRemaining int       `json:"movesRemaining"`
}

func EncodeBoardState(board Board) string {
	encoded := make([]byte, 0, boardStateLen)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if id, ok := board.PieceAt(x, y); ok {
				encoded = append(encoded, byte(id))
			} else {
				encoded = append(encoded, emptyCellChar)
			}
		}
	}
	return string(encoded)
}

// DecodeBoardState rebuilds a board from its 64-character encoding.
// The encoding carries no ownership, so owners are assigned by
// alternating over the pieces in order of first appearance; legality
// and puzzle validation never look at owners.
func DecodeBoardState(state string) (Board, error) {
	if len(state) != boardStateLen {
		return Board{}, fmt.Errorf("%w: got %d", errBadBoardState, len(state))
	}
	board := NewBoard()
	owners := make(map[PieceID]Cell, PieceCount)
	nextOwner := CellPlayer1
	for i := 0; i < boardStateLen; i++ {
		c := state[i]
		if c == emptyCellChar {
			continue
		}
		if c == legacyYAlias {
			c = byte(PieceY)
		}
		id := PieceID(c)
		if !PieceExists(id) {
			return Board{}, fmt.Errorf("%w: %q at cell %d", errBadBoardChar, state[i], i)
		}
		owner, ok := owners[id]
		if !ok {
			owner = nextOwner
			owners[id] = owner
			if nextOwner == CellPlayer1 {
				nextOwner = CellPlayer2
			} else {
				nextOwner = CellPlayer1
			}
		}
		board.Set(i%BoardSize, i/BoardSize, owner, id)
	}
	return board, nil
}

// boardPieces returns the set of piece letters with at least one
// occupied cell.
func boardPieces(board Board) PieceSet {
	var set PieceSet
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if id, ok := board.PieceAt(x, y); ok {
				set.Add(id)
			}
		}
	}
	return set
}

func NewPuzzle(board Board, used PieceSet) Puzzle {
	return Puzzle{
		BoardState:     EncodeBoardState(board),
		UsedPieces:     used.List(),
		MovesRemaining: PieceCount - used.Count(),
	}
}

// ValidatePuzzle checks the wire-level invariants: board state shape,
// used set matching the occupied cells, and the declared remaining
// count. Solvability is the generator's concern, not the codec's.
func ValidatePuzzle(p Puzzle) error {
	board, err := DecodeBoardState(p.BoardState)
	if err != nil {
		return err
	}
	declared := PieceSetOf(p.UsedPieces...)
	if len(p.UsedPieces) != declared.Count() {
		return fmt.Errorf("%w: duplicate used piece", errPuzzleInconsistent)
	}
	if declared != boardPieces(board) {
		return errPuzzleInconsistent
	}
	if p.MovesRemaining != PieceCount-declared.Count() {
		return fmt.Errorf("%w: movesRemaining %d, want %d",
			errPuzzleInconsistent, p.MovesRemaining, PieceCount-declared.Count())
	}
	return nil
}

// DecodePuzzle validates and decodes a puzzle into a board and used
// set ready to seed a session.
func DecodePuzzle(p Puzzle) (Board, PieceSet, error) {
	if err := ValidatePuzzle(p); err != nil {
		return Board{}, 0, err
	}
	board, err := DecodeBoardState(p.BoardState)
	if err != nil {
		return Board{}, 0, err
	}
	return board, boardPieces(board), nil
}
