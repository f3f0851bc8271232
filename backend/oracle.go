package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// OracleSuggestion is a single proposed move as the external service
// phrases it. Nothing here is trusted until validated against the
// current board and used set.
type OracleSuggestion struct {
	Piece    string `json:"piece"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Rotation int    `json:"rotation"`
	Flip     bool   `json:"flip"`
}

// MoveOracle proposes one move for the given position. Implementations
// are slow and unreliable; callers always keep a local fallback.
type MoveOracle interface {
	SuggestMove(ctx context.Context, boardState string, sample map[string][]Placement) (OracleSuggestion, error)
}

type oracleRequest struct {
	Board        string                 `json:"board"`
	MovesByPiece map[string][]Placement `json:"moves_by_piece"`
}

var errOracleUnusable = errors.New("oracle returned an unusable suggestion")

// HTTPOracle talks to the external suggestion service over HTTP. The
// request carries the board display string plus a small sample of
// legal moves grouped by piece.
type HTTPOracle struct {
	client   *http.Client
	endpoint string
}

func NewHTTPOracle(endpoint string) *HTTPOracle {
	return &HTTPOracle{
		client:   &http.Client{},
		endpoint: endpoint,
	}
}

func (o *HTTPOracle) SuggestMove(ctx context.Context, boardState string, sample map[string][]Placement) (OracleSuggestion, error) {
	body, err := json.Marshal(oracleRequest{Board: boardState, MovesByPiece: sample})
	if err != nil {
		return OracleSuggestion{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return OracleSuggestion{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.client.Do(req)
	if err != nil {
		return OracleSuggestion{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return OracleSuggestion{}, fmt.Errorf("oracle status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return OracleSuggestion{}, err
	}
	var suggestion OracleSuggestion
	if err := json.Unmarshal(data, &suggestion); err != nil {
		return OracleSuggestion{}, fmt.Errorf("%w: %v", errOracleUnusable, err)
	}
	return suggestion, nil
}

// placementFromSuggestion converts an oracle suggestion into a
// Placement, rejecting anything malformed: unknown piece letter,
// rotation outside 0..3, or an anchor wildly off the board.
func placementFromSuggestion(s OracleSuggestion) (Placement, bool) {
	if len(s.Piece) != 1 {
		return Placement{}, false
	}
	id := PieceID(s.Piece[0])
	if id == PieceID(legacyYAlias) {
		id = PieceY
	}
	if !PieceExists(id) {
		return Placement{}, false
	}
	if s.Rotation < 0 || s.Rotation > 3 {
		return Placement{}, false
	}
	if s.Row < 0 || s.Row >= BoardSize || s.Col < 0 || s.Col >= BoardSize {
		return Placement{}, false
	}
	return Placement{Piece: id, Rotation: s.Rotation, Flipped: s.Flip, Row: s.Row, Col: s.Col}, true
}

// oracleSample groups a capped number of legal moves per piece for the
// oracle request context.
func oracleSample(moves []Placement, perPiece int) map[string][]Placement {
	sample := make(map[string][]Placement)
	for _, move := range moves {
		key := move.Piece.String()
		if perPiece > 0 && len(sample[key]) >= perPiece {
			continue
		}
		sample[key] = append(sample[key], move)
	}
	return sample
}
