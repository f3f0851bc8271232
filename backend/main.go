package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           string            `json:"board"`
	Owners          [][]int           `json:"owners"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	Phase           string            `json:"phase"`
	UsedPieces      []PieceID         `json:"used_pieces"`
	MovesRemaining  int               `json:"moves_remaining"`
	Pending         *PendingMove      `json:"pending,omitempty"`
	History         []historyEntryDTO `json:"history"`
	AiThinking      bool              `json:"ai_thinking"`
	LastMessage     string            `json:"last_message"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	AiLevel     string `json:"ai_level"`
}

type historyEntryDTO struct {
	Piece     string   `json:"piece"`
	Rotation  int      `json:"rotation"`
	Flipped   bool     `json:"flipped"`
	Row       int      `json:"row"`
	Col       int      `json:"col"`
	Player    int      `json:"player"`
	Cells     []Offset `json:"cells"`
	ElapsedMs float64  `json:"elapsed_ms"`
	IsAi      bool     `json:"is_ai"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	GameID         string            `json:"game_id"`
	Board          string            `json:"board"`
	NextPlayer     int               `json:"next_player"`
	Winner         int               `json:"winner"`
	Status         string            `json:"status"`
	UsedPieces     []PieceID         `json:"used_pieces"`
	MovesRemaining int               `json:"moves_remaining"`
	History        []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type movesResponse struct {
	MovesByPiece map[string][]Placement `json:"moves_by_piece"`
	Total        int                    `json:"total"`
}

func main() {
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	hintHub := NewHintHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller.SetHintPublisher(
		func() bool { return hintHub.HasClients() && GetConfig().HintMode },
		func(payload hintPayload) {
			hintHub.Publish(payload)
		},
	)

	go hub.Run(ctx.Done())
	go hintHub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			controller.UpdateSettings(settingsFromDTO(*payload.Settings, controller.Settings()))
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/select", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Piece string `json:"piece"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Piece) != 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		respondTransition(w, controller, hub)(controller.SelectPiece(PieceID(payload.Piece[0])))
	})

	r.Post("/api/pending", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Row int `json:"row"`
			Col int `json:"col"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		respondTransition(w, controller, hub)(controller.PositionPending(payload.Row, payload.Col))
	})

	r.Post("/api/pending/rotate", func(w http.ResponseWriter, r *http.Request) {
		respondTransition(w, controller, hub)(controller.RotatePending())
	})

	r.Post("/api/pending/flip", func(w http.ResponseWriter, r *http.Request) {
		respondTransition(w, controller, hub)(controller.FlipPending())
	})

	r.Post("/api/confirm", func(w http.ResponseWriter, r *http.Request) {
		applied, errMsg := controller.ConfirmPending()
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/cancel", func(w http.ResponseWriter, r *http.Request) {
		respondTransition(w, controller, hub)(controller.CancelPending())
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		applied, errMsg := controller.Undo()
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		hub.broadcastReset <- resetFromController(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var placement Placement
		if err := json.NewDecoder(r.Body).Decode(&placement); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanPlacement(placement)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/moves", func(w http.ResponseWriter, r *http.Request) {
		moves := controller.LegalMoves()
		writeJSON(w, http.StatusOK, movesResponse{
			MovesByPiece: oracleSample(moves, 0),
			Total:        len(moves),
		})
	})

	r.Get("/api/puzzle", func(w http.ResponseWriter, r *http.Request) {
		difficulty, ok := PuzzleDifficultyFromString(r.URL.Query().Get("difficulty"))
		if r.URL.Query().Get("difficulty") != "" && !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown difficulty"})
			return
		}
		config := GetConfig()
		var oracle MoveOracle
		if config.OracleEndpoint != "" {
			oracle = NewHTTPOracle(config.OracleEndpoint)
		}
		generator := NewPuzzleGenerator(oracle, 0)
		puzzle, err := generator.Generate(r.Context(), difficulty)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrPuzzleExhausted) {
				status = http.StatusServiceUnavailable
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, puzzle)
	})

	r.Post("/api/puzzle/load", func(w http.ResponseWriter, r *http.Request) {
		var puzzle Puzzle
		if err := json.NewDecoder(r.Body).Decode(&puzzle); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		ok, reason := controller.StartFromPuzzle(puzzle)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": reason})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/hint", func(w http.ResponseWriter, r *http.Request) {
		serveHintWS(hintHub, w, r)
	})

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[backend] listening on :8080")
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}
	cancel()
}

// respondTransition wraps the select/position/rotate/flip/cancel
// handlers: refused transitions come back as 400 with the reason,
// successes broadcast the fresh status.
func respondTransition(w http.ResponseWriter, controller *GameController, hub *Hub) func(bool, string) {
	return func(applied bool, errMsg string) {
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		GameID:          controller.GameID(),
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           EncodeBoardState(state.Board),
		Owners:          ownersFromBoard(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		Phase:           state.Phase(),
		UsedPieces:      state.Used.List(),
		MovesRemaining:  PieceCount - state.Used.Count(),
		Pending:         state.Pending,
		History:         historyToDTO(controller.History()),
		AiThinking:      controller.AiThinking(),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.Player1Type = PlayerAI
		settings.Player2Type = PlayerAI
	case "human_vs_human":
		settings.Player1Type = PlayerHuman
		settings.Player2Type = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.Player1Type = PlayerAI
			settings.Player2Type = PlayerHuman
		} else {
			settings.Player1Type = PlayerHuman
			settings.Player2Type = PlayerAI
		}
	}
	if level, ok := AiDifficultyFromString(dto.AiLevel); ok {
		settings.Player1Level = level
		settings.Player2Level = level
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.Player1Type == PlayerAI && settings.Player2Type == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.Player1Type == PlayerHuman && settings.Player2Type == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.Player1Type == PlayerHuman {
		humanPlayer = 1
	} else if settings.Player2Type == PlayerHuman {
		humanPlayer = 2
	}
	return GameSettingsDTO{
		Mode:        mode,
		HumanPlayer: humanPlayer,
		AiLevel:     settings.Player2Level.String(),
	}
}

func ownersFromBoard(board Board) [][]int {
	rows := make([][]int, BoardSize)
	for y := 0; y < BoardSize; y++ {
		rows[y] = make([]int, BoardSize)
		for x := 0; x < BoardSize; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellPlayer1:
		return 1
	case CellPlayer2:
		return 2
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == Player1 {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusPlayer1Won:
		return 1
	case StatusPlayer2Won:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusPlayer1Won:
		return "player1_won"
	case StatusPlayer2Won:
		return "player2_won"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	cells := entry.Placement.Cells()
	return historyEntryDTO{
		Piece:     entry.Placement.Piece.String(),
		Rotation:  entry.Placement.Rotation,
		Flipped:   entry.Placement.Flipped,
		Row:       entry.Placement.Row,
		Col:       entry.Placement.Col,
		Player:    playerToInt(entry.Player),
		Cells:     cells[:],
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		GameID:         controller.GameID(),
		Board:          EncodeBoardState(state.Board),
		NextPlayer:     playerToInt(state.ToMove),
		Winner:         winnerFromStatus(state.Status),
		Status:         statusToString(state.Status),
		UsedPieces:     state.Used.List(),
		MovesRemaining: PieceCount - state.Used.Count(),
		History:        historyToDTO(controller.History()),
	}
}

func jsonMarshalMessage(msgType string, payload any) ([]byte, error) {
	return json.Marshal(wsMessage{Type: msgType, Payload: mustMarshal(payload)})
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
