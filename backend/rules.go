package main

// Rules holds the placement logic shared by the session, the AI and
// the puzzle generator. It is stateless; the zero value is usable.
type Rules struct{}

func NewRules() Rules {
	return Rules{}
}

// IsLegal reports whether every cell the placement covers is in
// bounds and empty. It does not check piece availability; callers that
// care about the shared pool check PieceSet membership themselves.
func (r Rules) IsLegal(board Board, p Placement) (bool, string) {
	if !PieceExists(p.Piece) {
		return false, "unknown piece"
	}
	for _, cell := range p.Cells() {
		if !board.InBounds(cell.X, cell.Y) {
			return false, "out of bounds"
		}
		if !board.IsEmpty(cell.X, cell.Y) {
			return false, "occupied"
		}
	}
	return true, ""
}

// Place writes the placement onto the board. The placement must
// already have passed IsLegal; Place does not re-validate, and calling
// it with an illegal placement is a caller bug (cells outside the
// board would panic on the array index).
func (r Rules) Place(board *Board, p Placement, player PlayerColor) {
	cell := CellFromPlayer(player)
	for _, c := range p.Cells() {
		board.Set(c.X, c.Y, cell, p.Piece)
	}
}

// EnumerateMoves lists every legal placement for every piece not yet
// consumed: both flip states, all 4 rotations, all 64 anchors. The
// scan is bounded by fixed constants, so no pruning is needed.
func (r Rules) EnumerateMoves(board Board, used PieceSet) []Placement {
	moves := make([]Placement, 0, 128)
	for _, id := range allPieceIDs {
		if used.Has(id) {
			continue
		}
		moves = r.appendMovesForPiece(moves, board, id)
	}
	return moves
}

// MovesForPiece lists the legal placements of a single piece,
// ignoring the used set.
func (r Rules) MovesForPiece(board Board, id PieceID) []Placement {
	return r.appendMovesForPiece(nil, board, id)
}

func (r Rules) appendMovesForPiece(moves []Placement, board Board, id PieceID) []Placement {
	for _, flipped := range [2]bool{false, true} {
		for rotation := 0; rotation < 4; rotation++ {
			o := Orientation{Rotation: rotation, Flipped: flipped}
			for row := 0; row < BoardSize; row++ {
				for col := 0; col < BoardSize; col++ {
					p := NewPlacement(id, o, row, col)
					if ok, _ := r.IsLegal(board, p); ok {
						moves = append(moves, p)
					}
				}
			}
		}
	}
	return moves
}

// HasAnyMove reports whether any piece outside the used set still has
// a legal placement. It short-circuits on the first hit instead of
// building the full move list.
func (r Rules) HasAnyMove(board Board, used PieceSet) bool {
	for _, id := range allPieceIDs {
		if used.Has(id) {
			continue
		}
		for _, flipped := range [2]bool{false, true} {
			for rotation := 0; rotation < 4; rotation++ {
				o := Orientation{Rotation: rotation, Flipped: flipped}
				for row := 0; row < BoardSize; row++ {
					for col := 0; col < BoardSize; col++ {
						if ok, _ := r.IsLegal(board, NewPlacement(id, o, row, col)); ok {
							return true
						}
					}
				}
			}
		}
	}
	return false
}
