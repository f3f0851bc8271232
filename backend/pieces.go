package main

// PieceID is the single-letter name of one of the 12 pentominoes.
type PieceID byte

const (
	PieceF PieceID = 'F'
	PieceI PieceID = 'I'
	PieceL PieceID = 'L'
	PieceN PieceID = 'N'
	PieceP PieceID = 'P'
	PieceT PieceID = 'T'
	PieceU PieceID = 'U'
	PieceV PieceID = 'V'
	PieceW PieceID = 'W'
	PieceX PieceID = 'X'
	PieceY PieceID = 'Y'
	PieceZ PieceID = 'Z'
)

const PieceCount = 12

// Offset is a cell position relative to a piece's anchor, with X the
// column delta and Y the row delta.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Orientation struct {
	Rotation int  `json:"rotation"`
	Flipped  bool `json:"flipped"`
}

// allPieceIDs fixes the catalog order; PieceSet bit positions and the
// puzzle codec both rely on it being stable.
var allPieceIDs = [PieceCount]PieceID{
	PieceF, PieceI, PieceL, PieceN, PieceP, PieceT,
	PieceU, PieceV, PieceW, PieceX, PieceY, PieceZ,
}

// Base shapes. Every shape contains the anchor (0,0).
var pieceCatalog = map[PieceID][5]Offset{
	PieceF: {{0, 0}, {1, 0}, {-1, 1}, {0, 1}, {0, 2}},
	PieceI: {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
	PieceL: {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 3}},
	PieceN: {{0, 0}, {0, 1}, {1, 1}, {1, 2}, {1, 3}},
	PieceP: {{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}},
	PieceT: {{0, 0}, {1, 0}, {2, 0}, {1, 1}, {1, 2}},
	PieceU: {{0, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}},
	PieceV: {{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}},
	PieceW: {{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}},
	PieceX: {{0, 0}, {-1, 1}, {0, 1}, {1, 1}, {0, 2}},
	PieceY: {{0, 0}, {-1, 1}, {0, 1}, {0, 2}, {0, 3}},
	PieceZ: {{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}},
}

func PieceExists(id PieceID) bool {
	_, ok := pieceCatalog[id]
	return ok
}

func BaseOffsets(id PieceID) [5]Offset {
	return pieceCatalog[id]
}

// OrientedOffsets applies an orientation to a piece's base shape: the
// flip (negating X) is applied first, then the rotation one 90-degree
// step at a time with (x,y) -> (-y,x). Offsets stay anchored at the
// base (0,0) point; no recentering happens.
func OrientedOffsets(id PieceID, o Orientation) [5]Offset {
	offsets := pieceCatalog[id]
	if o.Flipped {
		for i := range offsets {
			offsets[i].X = -offsets[i].X
		}
	}
	steps := ((o.Rotation % 4) + 4) % 4
	for s := 0; s < steps; s++ {
		for i := range offsets {
			offsets[i] = Offset{X: -offsets[i].Y, Y: offsets[i].X}
		}
	}
	return offsets
}

func (id PieceID) String() string {
	return string(rune(id))
}

func (id PieceID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *PieceID) UnmarshalJSON(data []byte) error {
	if len(data) == 3 && data[0] == '"' && data[2] == '"' {
		*id = PieceID(data[1])
		return nil
	}
	return errBadPieceID
}

// PieceSet tracks which of the 12 pieces have been consumed. It is a
// plain value; copying it copies the set.
type PieceSet uint16

var pieceBit = func() map[PieceID]PieceSet {
	bits := make(map[PieceID]PieceSet, PieceCount)
	for i, id := range allPieceIDs {
		bits[id] = 1 << i
	}
	return bits
}()

func (s PieceSet) Has(id PieceID) bool {
	return s&pieceBit[id] != 0
}

func (s *PieceSet) Add(id PieceID) {
	*s |= pieceBit[id]
}

func (s *PieceSet) Remove(id PieceID) {
	*s &^= pieceBit[id]
}

func (s PieceSet) Count() int {
	count := 0
	for _, id := range allPieceIDs {
		if s.Has(id) {
			count++
		}
	}
	return count
}

func (s PieceSet) List() []PieceID {
	ids := make([]PieceID, 0, PieceCount)
	for _, id := range allPieceIDs {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func PieceSetOf(ids ...PieceID) PieceSet {
	var s PieceSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}
