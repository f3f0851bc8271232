package main

type PlayerColor int

type GameStatus int

const (
	Player1 PlayerColor = iota
	Player2
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusPlayer1Won
	StatusPlayer2Won
)

// PendingMove is the staged placement the active player is still
// positioning. It only touches the committed board on confirm.
type PendingMove struct {
	Piece     PieceID `json:"piece"`
	Rotation  int     `json:"rotation"`
	Flipped   bool    `json:"flipped"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	HasAnchor bool    `json:"has_anchor"`
}

func (p PendingMove) Placement() Placement {
	return Placement{Piece: p.Piece, Rotation: p.Rotation, Flipped: p.Flipped, Row: p.Row, Col: p.Col}
}

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Used        PieceSet
	Status      GameStatus
	Pending     *PendingMove
	HasLastMove bool
	LastMove    Placement
	LastMessage string
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board.Reset()
	if settings.Player1Starts {
		s.ToMove = Player1
	} else {
		s.ToMove = Player2
	}
	s.Used = 0
	s.Status = StatusNotStarted
	s.Pending = nil
	s.HasLastMove = false
	s.LastMove = Placement{}
	s.LastMessage = ""
}

func (s GameState) Clone() GameState {
	clone := s
	if s.Pending != nil {
		pending := *s.Pending
		clone.Pending = &pending
	}
	return clone
}

// Phase names the selection workflow state for API consumers.
func (s GameState) Phase() string {
	switch {
	case s.Status == StatusNotStarted:
		return "not_started"
	case s.Status != StatusRunning:
		return "game_over"
	case s.Pending != nil:
		return "piece_pending"
	default:
		return "awaiting_selection"
	}
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == Player1 {
		return Player2
	}
	return Player1
}
