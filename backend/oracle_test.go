package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPlacementFromSuggestion(t *testing.T) {
	move, ok := placementFromSuggestion(OracleSuggestion{Piece: "T", Row: 2, Col: 3, Rotation: 1, Flip: true})
	if !ok {
		t.Fatalf("well-formed suggestion rejected")
	}
	want := Placement{Piece: PieceT, Rotation: 1, Flipped: true, Row: 2, Col: 3}
	if move != want {
		t.Fatalf("got %+v, want %+v", move, want)
	}
}

func TestPlacementFromSuggestionNormalizesLegacyAlias(t *testing.T) {
	move, ok := placementFromSuggestion(OracleSuggestion{Piece: "H", Row: 1, Col: 1})
	if !ok || move.Piece != PieceY {
		t.Fatalf("H alias not normalized: ok=%v piece=%v", ok, move.Piece)
	}
}

func TestPlacementFromSuggestionRejectsMalformedInput(t *testing.T) {
	bad := []OracleSuggestion{
		{Piece: "", Row: 0, Col: 0},
		{Piece: "FF", Row: 0, Col: 0},
		{Piece: "Q", Row: 0, Col: 0},
		{Piece: "T", Row: 0, Col: 0, Rotation: 4},
		{Piece: "T", Row: 0, Col: 0, Rotation: -1},
		{Piece: "T", Row: -1, Col: 0},
		{Piece: "T", Row: 0, Col: 8},
	}
	for _, s := range bad {
		if _, ok := placementFromSuggestion(s); ok {
			t.Fatalf("malformed suggestion accepted: %+v", s)
		}
	}
}

func TestOracleSampleCapsPerPiece(t *testing.T) {
	rules := NewRules()
	moves := rules.EnumerateMoves(NewBoard(), 0)
	sample := oracleSample(moves, 4)
	if len(sample) != PieceCount {
		t.Fatalf("expected all %d pieces sampled, got %d", PieceCount, len(sample))
	}
	for key, group := range sample {
		if len(group) == 0 || len(group) > 4 {
			t.Fatalf("piece %s sampled %d moves", key, len(group))
		}
	}
	// Zero means uncapped.
	uncapped := oracleSample(moves, 0)
	total := 0
	for _, group := range uncapped {
		total += len(group)
	}
	if total != len(moves) {
		t.Fatalf("uncapped sample dropped moves: %d of %d", total, len(moves))
	}
}

func TestHTTPOracleSuggestMove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req oracleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Board) != 64 {
			t.Errorf("board length %d", len(req.Board))
		}
		json.NewEncoder(w).Encode(OracleSuggestion{Piece: "I", Row: 0, Col: 0})
	}))
	defer server.Close()

	oracle := NewHTTPOracle(server.URL)
	board := strings.Repeat("G", 64)
	suggestion, err := oracle.SuggestMove(context.Background(), board, nil)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if suggestion.Piece != "I" {
		t.Fatalf("got suggestion %+v", suggestion)
	}
}

func TestHTTPOracleErrorPaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	oracle := NewHTTPOracle(server.URL)
	if _, err := oracle.SuggestMove(context.Background(), strings.Repeat("G", 64), nil); err == nil {
		t.Fatalf("non-200 response should fail")
	}

	garbled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer garbled.Close()

	oracle = NewHTTPOracle(garbled.URL)
	if _, err := oracle.SuggestMove(context.Background(), strings.Repeat("G", 64), nil); err == nil {
		t.Fatalf("garbled response should fail")
	}
}
