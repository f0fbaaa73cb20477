package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	SessionID       string            `json:"session_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Status          string            `json:"status"`
	OpeningMove     bool              `json:"opening_move"`
	TurnLength      int               `json:"turn_length"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []Move            `json:"winning_line"`
	LastMessage     string            `json:"last_message"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	BoardSize   int    `json:"board_size"`
}

type apiTurn struct {
	Moves []Move `json:"moves"`
}

type historyEntryDTO struct {
	Moves     []Move  `json:"moves"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	SessionID       string            `json:"session_id"`
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BoardSize       int               `json:"board_size"`
	OpeningMove     bool              `json:"opening_move"`
	WinningLine     []Move            `json:"winning_line"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type suggestResponse struct {
	Turn      []Move `json:"turn"`
	Depth     int    `json:"depth"`
	Nodes     int    `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type ttCacheStatusResponse struct {
	Count    int     `json:"count"`
	Capacity int     `json:"capacity"`
	Usage    float64 `json:"usage"`
	Full     bool    `json:"full"`
}

type ttCacheEntryDTO struct {
	Hash        string  `json:"hash"`
	Hits        uint32  `json:"hits"`
	Depth       int     `json:"depth"`
	Score       float64 `json:"score"`
	Flag        string  `json:"flag"`
	BestTurn    []Move  `json:"best_turn"`
	GenWritten  uint32  `json:"gen_written"`
	GenLastUsed uint32  `json:"gen_last_used"`
}

type ttCacheEntriesResponse struct {
	Items  []ttCacheEntryDTO `json:"items"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
	Total  int               `json:"total"`
}

func main() {
	var persistOnce sync.Once
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			log.Printf("[backend] persisting caches on %s", reason)
			persistTTPersistence(GetConfig())
		})
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[backend] panic recovered in main: %v", recovered)
			persistOnShutdown("panic")
		}
	}()

	controller := NewGameController(DefaultGameSettings())
	loadTTPersistence(GetConfig())
	defer persistOnShutdown("exit")
	hub := NewHub()
	analysisHub := NewAnalysisHub()
	controller.SetAnalysisPublisher(func(event AnalysisEvent) {
		if analysisHub.HasClients() {
			analysisHub.Publish(event)
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go analysisHub.Run(ctx.Done())
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
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiTurn
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanTurn(Turn(payload.Moves))
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

	r.Post("/api/suggest", func(w http.ResponseWriter, r *http.Request) {
		turn, stats := controller.SuggestTurn(r.Context())
		if turn == nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no turn available"})
			return
		}
		writeJSON(w, http.StatusOK, suggestResponse{
			Turn:      turn,
			Depth:     stats.CompletedDepth,
			Nodes:     stats.Nodes,
			ElapsedMs: stats.Elapsed().Milliseconds(),
		})
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ttCacheStatus())
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		SharedTT(GetConfig()).Clear()
		writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
	})
	r.Get("/api/cache/tt/entries", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
		if offset < 0 {
			offset = 0
		}
		writeJSON(w, http.StatusOK, ttCacheEntries(offset, limit))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/analysis", func(w http.ResponseWriter, r *http.Request) {
		serveAnalysisWS(analysisHub, w, r)
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

	log.Println("backend listening on :8080")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
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
	persistOnShutdown("shutdown")
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
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

	client.sendJSON(wsMessage{Type: "status", Payload: controllerStatus(controller)})

	go func() {
		defer conn.Close()
		_ = client.writePump(conn)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg struct {
			Type string `json:"type"`
		}
		if err := sonic.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: controllerStatus(controller)})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		SessionID:       controller.SessionID(),
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		BoardSize:       state.Board.Size(),
		Status:          statusToString(state.Status),
		OpeningMove:     state.OpeningMove,
		TurnLength:      state.TurnLength(),
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		WinningLine:     append([]Move(nil), state.WinningLine...),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	if dto.BoardSize > 0 {
		settings.BoardSize = ClampBoardSize(dto.BoardSize)
	}
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.BlackType == PlayerAI && settings.WhiteType == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.BlackType == PlayerHuman && settings.WhiteType != PlayerHuman {
		humanPlayer = 1
	} else if settings.WhiteType == PlayerHuman && settings.BlackType != PlayerHuman {
		humanPlayer = 2
	} else if settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman {
		humanPlayer = 1
	}
	return GameSettingsDTO{Mode: mode, HumanPlayer: humanPlayer, BoardSize: settings.BoardSize}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerBlack {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.Entries()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry TurnHistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Moves:     append([]Move(nil), entry.Moves...),
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
	}
}

func ttCacheStatus() ttCacheStatusResponse {
	tt := SharedTT(GetConfig())
	count := tt.Count()
	capacity := tt.Capacity()
	usage := 0.0
	full := false
	if capacity > 0 {
		usage = float64(count) / float64(capacity)
		full = count >= capacity
	}
	return ttCacheStatusResponse{Count: count, Capacity: capacity, Usage: usage, Full: full}
}

func ttCacheEntries(offset int, limit int) ttCacheEntriesResponse {
	tt := SharedTT(GetConfig())
	entries, total := tt.TopEntriesByHits(offset, limit)
	items := make([]ttCacheEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ttCacheEntryDTO{
			Hash:        fmt.Sprintf("0x%016x", entry.Key),
			Hits:        entry.Hits,
			Depth:       entry.Depth,
			Score:       entry.Score,
			Flag:        ttFlagString(entry.Flag),
			BestTurn:    append([]Move(nil), entry.BestTurn...),
			GenWritten:  entry.GenWritten,
			GenLastUsed: entry.GenLastUsed,
		})
	}
	return ttCacheEntriesResponse{Items: items, Offset: offset, Limit: limit, Total: total}
}

func ttFlagString(flag TTFlag) string {
	switch flag {
	case TTExact:
		return "EXACT"
	case TTLower:
		return "LOWER"
	case TTUpper:
		return "UPPER"
	default:
		return "UNKNOWN"
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		SessionID:       controller.SessionID(),
		History:         historyToDTO(controller.History()),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BoardSize:       state.Board.Size(),
		OpeningMove:     state.OpeningMove,
		WinningLine:     append([]Move(nil), state.WinningLine...),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func mustMarshal(v any) []byte {
	data, _ := sonic.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoded, err := sonic.Marshal(data)
	if err != nil {
		return
	}
	_, _ = w.Write(encoded)
}
