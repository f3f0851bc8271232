package main

// Placement is a fully specified piece position: which piece, its
// orientation, and the board cell its anchor offset lands on.
type Placement struct {
	Piece    PieceID `json:"piece"`
	Rotation int     `json:"rotation"`
	Flipped  bool    `json:"flipped"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
}

func NewPlacement(id PieceID, o Orientation, row, col int) Placement {
	return Placement{Piece: id, Rotation: o.Rotation, Flipped: o.Flipped, Row: row, Col: col}
}

func (p Placement) Orientation() Orientation {
	return Orientation{Rotation: p.Rotation, Flipped: p.Flipped}
}

// Cells returns the 5 absolute (x, y) board cells the placement covers.
func (p Placement) Cells() [5]Offset {
	offsets := OrientedOffsets(p.Piece, p.Orientation())
	for i := range offsets {
		offsets[i].X += p.Col
		offsets[i].Y += p.Row
	}
	return offsets
}

func (p Placement) Equals(other Placement) bool {
	return p == other
}
