package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type PuzzleDifficulty int

const (
	PuzzleEasy PuzzleDifficulty = iota
	PuzzleMedium
	PuzzleHard
)

var ErrPuzzleExhausted = errors.New("puzzle generation attempts exhausted")

// MovesRemaining maps the difficulty tier to how many pieces are left
// to place when the puzzle is handed to the player.
func (d PuzzleDifficulty) MovesRemaining() int {
	switch d {
	case PuzzleEasy:
		return 3
	case PuzzleHard:
		return 7
	default:
		return 5
	}
}

func (d PuzzleDifficulty) String() string {
	switch d {
	case PuzzleEasy:
		return "easy"
	case PuzzleHard:
		return "hard"
	default:
		return "medium"
	}
}

func PuzzleDifficultyFromString(s string) (PuzzleDifficulty, bool) {
	switch s {
	case "easy":
		return PuzzleEasy, true
	case "medium":
		return PuzzleMedium, true
	case "hard":
		return PuzzleHard, true
	}
	return PuzzleMedium, false
}

// PuzzleGenerator builds guaranteed-solvable mid-game positions. An
// optional oracle may steer individual placements; every oracle
// failure falls back to a uniform random pick, so generation always
// makes progress locally.
type PuzzleGenerator struct {
	rules  Rules
	oracle MoveOracle
	rng    *rand.Rand
}

func NewPuzzleGenerator(oracle MoveOracle, seed int64) *PuzzleGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PuzzleGenerator{
		rules:  NewRules(),
		oracle: oracle,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate builds a puzzle with the requested number of moves
// remaining. Attempts that dead-end or produce an unsolvable final
// board are discarded and retried from scratch, up to the configured
// attempt budget; after that ErrPuzzleExhausted is returned and the
// caller decides whether to degrade difficulty.
func (g *PuzzleGenerator) Generate(ctx context.Context, difficulty PuzzleDifficulty) (Puzzle, error) {
	config := GetConfig()
	attempts := config.PuzzleMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	piecesToPlace := PieceCount - difficulty.MovesRemaining()
	for attempt := 0; attempt < attempts; attempt++ {
		board, used, ok := g.buildCandidate(ctx, piecesToPlace, config)
		if !ok {
			continue
		}
		if !g.rules.HasAnyMove(board, used) {
			// Filled position with no legal continuation; invalid.
			continue
		}
		puzzle := NewPuzzle(board, used)
		puzzle.ID = uuid.NewString()
		return puzzle, nil
	}
	return Puzzle{}, ErrPuzzleExhausted
}

// buildCandidate places piecesToPlace pieces one at a time. A step
// with no legal move aborts the whole attempt; partial boards are
// never returned.
func (g *PuzzleGenerator) buildCandidate(ctx context.Context, piecesToPlace int, config Config) (Board, PieceSet, bool) {
	board := NewBoard()
	var used PieceSet
	owner := Player1
	for placed := 0; placed < piecesToPlace; placed++ {
		moves := g.rules.EnumerateMoves(board, used)
		if len(moves) == 0 {
			return Board{}, 0, false
		}
		move := g.pickMove(ctx, board, used, moves, config)
		g.rules.Place(&board, move, owner)
		used.Add(move.Piece)
		owner = otherPlayer(owner)
	}
	return board, used, true
}

// pickMove asks the oracle first when one is configured; a timed-out,
// failed, or illegal suggestion is discarded in favor of a uniform
// random legal move.
func (g *PuzzleGenerator) pickMove(ctx context.Context, board Board, used PieceSet, moves []Placement, config Config) Placement {
	if g.oracle != nil {
		timeout := time.Duration(config.OracleTimeoutMs) * time.Millisecond
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		oracleCtx, cancel := context.WithTimeout(ctx, timeout)
		suggestion, err := g.oracle.SuggestMove(oracleCtx, EncodeBoardState(board), oracleSample(moves, config.OracleSamplePerPiece))
		cancel()
		if err == nil {
			if move, ok := g.usableSuggestion(board, used, suggestion); ok {
				return move
			}
			log.Printf("[puzzle] discarding unusable oracle suggestion %+v", suggestion)
		} else {
			log.Printf("[puzzle] oracle unavailable, using local random: %v", err)
		}
	}
	return moves[g.rng.Intn(len(moves))]
}

func (g *PuzzleGenerator) usableSuggestion(board Board, used PieceSet, suggestion OracleSuggestion) (Placement, bool) {
	move, ok := placementFromSuggestion(suggestion)
	if !ok {
		return Placement{}, false
	}
	if used.Has(move.Piece) {
		return Placement{}, false
	}
	if ok, _ := g.rules.IsLegal(board, move); !ok {
		return Placement{}, false
	}
	return move, true
}
