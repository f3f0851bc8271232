package main

import (
	"log"
	"time"
)

// hintPayload is what the hint websocket streams: the AI's suggested
// placement for the human side to move.
type hintPayload struct {
	Mode       string     `json:"mode"`
	Move       *Placement `json:"move,omitempty"`
	ForPlayer  int        `json:"for_player"`
	HistoryLen int        `json:"history_len"`
	Active     bool       `json:"active"`
}

type Game struct {
	settings  GameSettings
	rules     Rules
	state     GameState
	history   MoveHistory
	player1   IPlayer
	player2   IPlayer
	hintAI    *AIPlayer
	hintKey   int
	turnStart time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopHint(nil)
	g.settings = settings
	g.rules = NewRules()
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

// StartFromPuzzle seeds a running session from a validated puzzle
// position. The invalid puzzle is rejected without touching the
// current state.
func (g *Game) StartFromPuzzle(puzzle Puzzle) (bool, string) {
	board, used, err := DecodePuzzle(puzzle)
	if err != nil {
		return false, err.Error()
	}
	if !g.rules.HasAnyMove(board, used) {
		// A dead position would leave the session running with no one
		// able to move.
		return false, "puzzle has no legal continuation"
	}
	g.stopHint(nil)
	g.state.Reset(g.settings)
	g.state.Board = board
	g.state.Used = used
	g.state.Status = StatusRunning
	g.history.Clear()
	g.turnStart = time.Now()
	return true, ""
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// SelectPiece begins staging a move for the active player.
func (g *Game) SelectPiece(id PieceID) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	if !PieceExists(id) {
		return false, "unknown piece"
	}
	if g.state.Used.Has(id) {
		return false, "piece already used"
	}
	g.state.Pending = &PendingMove{Piece: id}
	g.state.LastMessage = ""
	return true, ""
}

func (g *Game) RotatePending() (bool, string) {
	if g.state.Pending == nil {
		return false, "no piece selected"
	}
	g.state.Pending.Rotation = (g.state.Pending.Rotation + 1) % 4
	return true, ""
}

func (g *Game) FlipPending() (bool, string) {
	if g.state.Pending == nil {
		return false, "no piece selected"
	}
	g.state.Pending.Flipped = !g.state.Pending.Flipped
	return true, ""
}

func (g *Game) PositionPending(row, col int) (bool, string) {
	if g.state.Pending == nil {
		return false, "no piece selected"
	}
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return false, "anchor out of bounds"
	}
	g.state.Pending.Row = row
	g.state.Pending.Col = col
	g.state.Pending.HasAnchor = true
	return true, ""
}

func (g *Game) CancelPending() (bool, string) {
	if g.state.Pending == nil {
		return false, "no piece selected"
	}
	g.state.Pending = nil
	return true, ""
}

// ConfirmPending commits the staged move. An illegal pending move is
// refused and the staged state is left untouched; this is user-input
// rejection, not an error.
func (g *Game) ConfirmPending() (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	if g.state.Pending == nil {
		return false, "no piece selected"
	}
	if !g.state.Pending.HasAnchor {
		return false, "piece not positioned"
	}
	placement := g.state.Pending.Placement()
	if g.state.Used.Has(placement.Piece) {
		return false, "piece already used"
	}
	if ok, reason := g.rules.IsLegal(g.state.Board, placement); !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.commitPlacement(placement, false)
	return true, ""
}

// TryApplyPlacement validates and commits a fully specified placement
// in one step: AI moves and drag-drop submissions from the API.
func (g *Game) TryApplyPlacement(placement Placement, isAi bool) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	if g.state.Used.Has(placement.Piece) {
		return false, "piece already used"
	}
	if ok, reason := g.rules.IsLegal(g.state.Board, placement); !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.commitPlacement(placement, isAi)
	return true, ""
}

func (g *Game) commitPlacement(placement Placement, isAi bool) {
	mover := g.state.ToMove
	entry := HistoryEntry{
		Placement:  placement,
		Player:     mover,
		PrevBoard:  g.state.Board.Clone(),
		PrevUsed:   g.state.Used,
		PrevToMove: mover,
		ElapsedMs:  float64(time.Since(g.turnStart).Milliseconds()),
		IsAi:       isAi,
	}
	g.rules.Place(&g.state.Board, placement, mover)
	g.state.Used.Add(placement.Piece)
	g.state.Pending = nil
	g.state.HasLastMove = true
	g.state.LastMove = placement
	g.state.LastMessage = ""
	g.history.Push(entry)
	g.hintKey = -1

	g.state.ToMove = otherPlayer(mover)
	g.turnStart = time.Now()
	if !g.rules.HasAnyMove(g.state.Board, g.state.Used) {
		// Misere convention: the side left without a move loses.
		if mover == Player1 {
			g.state.Status = StatusPlayer1Won
		} else {
			g.state.Status = StatusPlayer2Won
		}
		g.logWin(mover)
	}
}

// Undo pops the last committed move and restores its snapshot
// exactly. Only available while the game is running.
func (g *Game) Undo() (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	entry, ok := g.history.Pop()
	if !ok {
		return false, "nothing to undo"
	}
	g.state.Board = entry.PrevBoard
	g.state.Used = entry.PrevUsed
	g.state.ToMove = entry.PrevToMove
	g.state.Pending = nil
	g.state.HasLastMove = g.history.Size() > 0
	if g.state.HasLastMove {
		entries := g.history.All()
		g.state.LastMove = entries[len(entries)-1].Placement
	} else {
		g.state.LastMove = Placement{}
	}
	g.state.LastMessage = ""
	g.hintKey = -1
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the session: applies queued human placements, starts
// and collects AI thinking, and feeds the hint stream while a human is
// to move. Returns true when a move was applied.
func (g *Game) Tick(hintEnabled bool, hintSink func(hintPayload)) bool {
	if g.state.Status != StatusRunning {
		g.stopHint(hintSink)
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		g.stopHint(hintSink)
		return false
	}
	if player.IsHuman() {
		if hintEnabled && hintSink != nil {
			g.updateHint(hintSink)
		} else {
			g.stopHint(hintSink)
		}
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingPlacement() {
			applied, _ := g.TryApplyPlacement(human.TakePendingPlacement(), false)
			return applied
		}
		return false
	}
	g.stopHint(hintSink)
	ai, ok := player.(*AIPlayer)
	if !ok {
		return false
	}
	if ai.HasMoveReady() {
		move, hasMove := ai.TakeMove()
		if !hasMove {
			return false
		}
		applied, _ := g.TryApplyPlacement(move, true)
		return applied
	}
	if !ai.IsThinking() {
		ai.StartThinking(g.state.Clone())
	}
	return false
}

func (g *Game) SubmitHumanPlacement(placement Placement) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingPlacement(placement)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == Player1 {
		return g.player1
	}
	return g.player2
}

func (g *Game) createPlayers() {
	if g.settings.Player1Type == PlayerHuman {
		g.player1 = NewHumanPlayer()
	} else {
		g.player1 = NewAIPlayer(g.settings.Player1Level)
	}
	if g.settings.Player2Type == PlayerHuman {
		g.player2 = NewHumanPlayer()
	} else {
		g.player2 = NewAIPlayer(g.settings.Player2Level)
	}
	if g.hintAI == nil {
		g.hintAI = NewAIPlayer(AiExpert)
	}
	g.hintKey = -1
}

// updateHint keeps one expert suggestion per position flowing to the
// hint stream. The key is the history length: a new committed move
// invalidates the previous suggestion.
func (g *Game) updateHint(hintSink func(hintPayload)) {
	key := g.history.Size()
	if g.hintKey == key {
		if g.hintAI.HasMoveReady() {
			move, ok := g.hintAI.TakeMove()
			if ok {
				// The worker may have been started against a stale
				// snapshot; never surface a suggestion that is no
				// longer playable.
				if legal, _ := g.rules.IsLegal(g.state.Board, move); !legal || g.state.Used.Has(move.Piece) {
					g.hintKey = -1
					return
				}
				hintSink(hintPayload{
					Mode:       "best_move",
					Move:       &move,
					ForPlayer:  playerToInt(g.state.ToMove),
					HistoryLen: key,
					Active:     true,
				})
			}
			// Mark delivered either way so we do not re-search.
			g.hintKey = -2 - key
		}
		return
	}
	if g.hintKey == -2-key {
		return
	}
	if !g.hintAI.IsThinking() {
		g.hintKey = key
		g.hintAI.StartThinking(g.state.Clone())
	}
}

func (g *Game) stopHint(hintSink func(hintPayload)) {
	if g.hintAI != nil {
		g.hintAI.StopThinking()
	}
	g.hintKey = -1
	if hintSink != nil {
		hintSink(hintPayload{Mode: "best_move", Active: false})
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	log.Printf("[game] Player1 (%s) vs Player2 (%s)", label(g.settings.Player1Type), label(g.settings.Player2Type))
}

func (g *Game) logWin(player PlayerColor) {
	log.Printf("[game] player %d wins: opponent has no legal move", playerToInt(player))
}
