package main

import (
	"sync"

	"github.com/google/uuid"
)

// GameController serializes access to the single session; every API
// handler and the tick loop goes through it.
type GameController struct {
	mu            sync.Mutex
	game          Game
	gameID        string
	hintEnabled   func() bool
	hintPublisher func(hintPayload)
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{
		game:   NewGame(settings),
		gameID: uuid.NewString(),
	}
}

func (gc *GameController) SetHintPublisher(enabled func() bool, publisher func(hintPayload)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.hintEnabled = enabled
	gc.hintPublisher = publisher
}

func (gc *GameController) GameID() string {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.gameID
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	hintEnabled := false
	if gc.hintEnabled != nil {
		hintEnabled = gc.hintEnabled()
	}
	return gc.game.Tick(hintEnabled, gc.hintPublisher)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
	gc.gameID = uuid.NewString()
}

func (gc *GameController) StartFromPuzzle(puzzle Puzzle) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	ok, reason := gc.game.StartFromPuzzle(puzzle)
	if ok {
		gc.gameID = uuid.NewString()
	}
	return ok, reason
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.gameID = uuid.NewString()
}

func (gc *GameController) UpdateSettings(update GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.settings = update
	gc.game.createPlayers()
}

func (gc *GameController) SelectPiece(id PieceID) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.SelectPiece(id)
}

func (gc *GameController) RotatePending() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.RotatePending()
}

func (gc *GameController) FlipPending() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.FlipPending()
}

func (gc *GameController) PositionPending(row, col int) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.PositionPending(row, col)
}

func (gc *GameController) ConfirmPending() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.ConfirmPending()
}

func (gc *GameController) CancelPending() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.CancelPending()
}

func (gc *GameController) Undo() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Undo()
}

func (gc *GameController) ApplyHumanPlacement(placement Placement) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyPlacement(placement, false)
}

func (gc *GameController) LegalMoves() []Placement {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	state := gc.game.State()
	return gc.game.rules.EnumerateMoves(state.Board, state.Used)
}
