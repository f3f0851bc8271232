package main

type Cell int

const (
	CellEmpty Cell = iota
	CellPlayer1
	CellPlayer2
)

const BoardSize = 8

// Board is the 8x8 grid. cells holds ownership, pieces holds the
// letter of the pentomino covering each occupied cell (0 when empty);
// piece identity is display data only, legality never reads it.
// Board is a plain value: assignment copies it, so snapshots for undo
// and AI simulation are cheap.
type Board struct {
	cells  [BoardSize * BoardSize]Cell
	pieces [BoardSize * BoardSize]byte
}

func NewBoard() Board {
	return Board{}
}

func (b *Board) Reset() {
	*b = Board{}
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b Board) PieceAt(x, y int) (PieceID, bool) {
	raw := b.pieces[b.index(x, y)]
	if raw == 0 {
		return 0, false
	}
	return PieceID(raw), true
}

func (b *Board) Set(x, y int, value Cell, piece PieceID) {
	i := b.index(x, y)
	b.cells[i] = value
	b.pieces[i] = byte(piece)
}

func (b *Board) Remove(x, y int) {
	i := b.index(x, y)
	b.cells[i] = CellEmpty
	b.pieces[i] = 0
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Clone() Board {
	return b
}

func (b Board) index(x, y int) int {
	return y*BoardSize + x
}

func (c Cell) String() string {
	switch c {
	case CellPlayer1:
		return "Player1"
	case CellPlayer2:
		return "Player2"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == Player1 {
		return CellPlayer1
	}
	return CellPlayer2
}
