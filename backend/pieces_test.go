package main

import "testing"

func rotateOnce(offsets [5]Offset) [5]Offset {
	for i := range offsets {
		offsets[i] = Offset{X: -offsets[i].Y, Y: offsets[i].X}
	}
	return offsets
}

func flipOffsets(offsets [5]Offset) [5]Offset {
	for i := range offsets {
		offsets[i].X = -offsets[i].X
	}
	return offsets
}

func sameCells(a, b [5]Offset) bool {
	cells := make(map[Offset]int, 5)
	for _, o := range a {
		cells[o]++
	}
	for _, o := range b {
		cells[o]--
	}
	for _, n := range cells {
		if n != 0 {
			return false
		}
	}
	return true
}

func TestCatalogShapesContainAnchorAndFiveDistinctCells(t *testing.T) {
	for _, id := range allPieceIDs {
		offsets := BaseOffsets(id)
		seen := make(map[Offset]bool, 5)
		hasAnchor := false
		for _, o := range offsets {
			if seen[o] {
				t.Fatalf("piece %s repeats offset %+v", id, o)
			}
			seen[o] = true
			if o == (Offset{}) {
				hasAnchor = true
			}
		}
		if !hasAnchor {
			t.Fatalf("piece %s does not contain its anchor", id)
		}
	}
}

func TestRotatingFourTimesIsIdentity(t *testing.T) {
	for _, id := range allPieceIDs {
		for _, flipped := range []bool{false, true} {
			base := OrientedOffsets(id, Orientation{Flipped: flipped})
			rotated := base
			for i := 0; i < 4; i++ {
				rotated = rotateOnce(rotated)
			}
			if !sameCells(base, rotated) {
				t.Fatalf("piece %s flipped=%v: four rotations changed the shape", id, flipped)
			}
		}
	}
}

func TestFlippingTwiceIsIdentity(t *testing.T) {
	for _, id := range allPieceIDs {
		base := BaseOffsets(id)
		if !sameCells(base, flipOffsets(flipOffsets(base))) {
			t.Fatalf("piece %s: double flip changed the shape", id)
		}
	}
}

func TestOrientedOffsetsMatchesStepwiseRotation(t *testing.T) {
	for _, id := range allPieceIDs {
		for _, flipped := range []bool{false, true} {
			for rotation := 0; rotation < 3; rotation++ {
				stepped := rotateOnce(OrientedOffsets(id, Orientation{Rotation: rotation, Flipped: flipped}))
				direct := OrientedOffsets(id, Orientation{Rotation: rotation + 1, Flipped: flipped})
				if !sameCells(stepped, direct) {
					t.Fatalf("piece %s flipped=%v rotation=%d: stepwise and direct rotation disagree", id, flipped, rotation)
				}
			}
		}
	}
}

func TestPieceSetAddHasRemove(t *testing.T) {
	var set PieceSet
	if set.Count() != 0 {
		t.Fatalf("empty set has count %d", set.Count())
	}
	set.Add(PieceF)
	set.Add(PieceX)
	set.Add(PieceX)
	if !set.Has(PieceF) || !set.Has(PieceX) || set.Has(PieceI) {
		t.Fatalf("membership wrong after adds: %v", set.List())
	}
	if set.Count() != 2 {
		t.Fatalf("expected count 2, got %d", set.Count())
	}
	set.Remove(PieceF)
	if set.Has(PieceF) || set.Count() != 1 {
		t.Fatalf("remove did not take: %v", set.List())
	}
}
