package main

import (
	"math"
	"math/rand"
	"sort"
)

type AiDifficulty int

const (
	AiBeginner AiDifficulty = iota
	AiIntermediate
	AiExpert
)

// aiWinScore marks a move that leaves the opponent with no reply. It
// dwarfs every other scoring term on purpose.
const aiWinScore = 1e9

func (d AiDifficulty) String() string {
	switch d {
	case AiBeginner:
		return "beginner"
	case AiExpert:
		return "expert"
	default:
		return "intermediate"
	}
}

func AiDifficultyFromString(s string) (AiDifficulty, bool) {
	switch s {
	case "beginner":
		return AiBeginner, true
	case "intermediate":
		return AiIntermediate, true
	case "expert":
		return AiExpert, true
	}
	return AiIntermediate, false
}

type scoredMove struct {
	move  Placement
	score float64
}

// SelectMove picks a placement for the side to move with a single-ply
// heuristic: a move that strands the opponent wins outright, otherwise
// fewer opponent replies is better, with a positional term and random
// jitter on top. Returns false only when no legal move exists.
func SelectMove(board Board, used PieceSet, toMove PlayerColor, level AiDifficulty, rng *rand.Rand) (Placement, bool) {
	config := GetConfig()
	rules := NewRules()
	candidates := rules.EnumerateMoves(board, used)
	if len(candidates) == 0 {
		return Placement{}, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	earlyGame := used.Count() < config.AiEarlyGamePieces
	scored := make([]scoredMove, 0, len(candidates))
	best := math.Inf(-1)
	for _, move := range candidates {
		next := board.Clone()
		rules.Place(&next, move, toMove)
		nextUsed := used
		nextUsed.Add(move.Piece)

		var score float64
		if !rules.HasAnyMove(next, nextUsed) {
			score = aiWinScore
		} else {
			mobility := opponentMobility(rules, next, nextUsed, level, config)
			score = config.AiMobilityBase - float64(mobility)
			score += positionalBonus(move, config)
			score += (rng.Float64()*2 - 1) * jitterFor(level, config)
			if earlyGame {
				score += rng.Float64() * config.AiEarlyRandomBonus
			}
		}
		if score > best {
			best = score
		}
		scored = append(scored, scoredMove{move: move, score: score})
	}

	margin := config.AiLateMargin
	pool := config.AiLatePoolSize
	if earlyGame {
		margin = config.AiEarlyMargin
		pool = config.AiEarlyPoolSize
	}
	if pool < 1 {
		pool = 1
	}

	eligible := make([]scoredMove, 0, len(scored))
	for _, sm := range scored {
		if sm.score >= best-margin {
			eligible = append(eligible, sm)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].score > eligible[j].score
	})
	if len(eligible) > pool {
		eligible = eligible[:pool]
	}
	return eligible[rng.Intn(len(eligible))].move, true
}

// opponentMobility counts the replies left after a simulated
// placement. Expert and intermediate count exactly; beginner samples
// anchors on a stride, which under-counts but preserves ordering well
// enough for a weak level.
func opponentMobility(rules Rules, board Board, used PieceSet, level AiDifficulty, config Config) int {
	stride := 1
	if level == AiBeginner && config.AiBeginnerAnchorStride > 1 {
		stride = config.AiBeginnerAnchorStride
	}
	count := 0
	for _, id := range allPieceIDs {
		if used.Has(id) {
			continue
		}
		for _, flipped := range [2]bool{false, true} {
			for rotation := 0; rotation < 4; rotation++ {
				o := Orientation{Rotation: rotation, Flipped: flipped}
				for row := 0; row < BoardSize; row += stride {
					for col := 0; col < BoardSize; col += stride {
						if ok, _ := rules.IsLegal(board, NewPlacement(id, o, row, col)); ok {
							count++
						}
					}
				}
			}
		}
	}
	return count
}

// positionalBonus rewards covering central cells and penalizes cells
// on the outer ring, summed over the 5 covered cells.
func positionalBonus(move Placement, config Config) float64 {
	const center = (BoardSize - 1) / 2.0
	bonus := 0.0
	for _, cell := range move.Cells() {
		dist := math.Max(math.Abs(float64(cell.X)-center), math.Abs(float64(cell.Y)-center))
		bonus += config.AiCenterWeight * (center - dist)
		if cell.X == 0 || cell.X == BoardSize-1 || cell.Y == 0 || cell.Y == BoardSize-1 {
			bonus -= config.AiEdgePenalty
		}
	}
	return bonus
}

func jitterFor(level AiDifficulty, config Config) float64 {
	switch level {
	case AiBeginner:
		return config.AiJitterBeginner
	case AiExpert:
		return config.AiJitterExpert
	default:
		return config.AiJitterIntermediate
	}
}
