package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/schollz/progressbar/v3"
)

// trainer drives the backend over HTTP through self-play: it starts AI vs AI
// games, waits for each to finish, and reports outcomes while the shared
// transposition table warms up.
type trainer struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	games        int
	boardSize    int
	gameTimeout  time.Duration
}

type statusResponse struct {
	Status    string            `json:"status"`
	Winner    int               `json:"winner"`
	History   []json.RawMessage `json:"history"`
	BoardSize int               `json:"board_size"`
}

type ttCacheStatusResponse struct {
	Count    int     `json:"count"`
	Capacity int     `json:"capacity"`
	Usage    float64 `json:"usage"`
	Full     bool    `json:"full"`
}

type gameResult struct {
	winner int
	turns  int
	took   time.Duration
}

func main() {
	t := &trainer{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      getenv("BACKEND_URL", "http://backend:8080"),
		pollInterval: time.Duration(getenvInt("POLL_INTERVAL_MS", 500)) * time.Millisecond,
		games:        getenvInt("TRAINER_GAMES", 20),
		boardSize:    getenvInt("TRAINER_BOARD_SIZE", 19),
		gameTimeout:  time.Duration(getenvInt("TRAINER_GAME_TIMEOUT_SEC", 600)) * time.Second,
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[trainer] backend=%s games=%d board=%d", t.baseURL, t.games, t.boardSize)
	if err := t.waitBackendReady(sigCtx); err != nil {
		log.Fatalf("[trainer] backend not reachable: %v", err)
	}

	if err := t.run(sigCtx); err != nil && err != context.Canceled {
		log.Fatalf("[trainer] %v", err)
	}
}

func (t *trainer) run(ctx context.Context) error {
	bar := progressbar.NewOptions(t.games,
		progressbar.OptionSetDescription("self-play"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
	)

	results := make([]gameResult, 0, t.games)
	blackWins, whiteWins, draws := 0, 0, 0
	for i := 0; i < t.games; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ttStatus, err := t.ttStatus()
		if err != nil {
			return err
		}
		if ttStatus.Full {
			fmt.Println()
			log.Printf("[trainer] transposition table is full (%d/%d); stopping early",
				ttStatus.Count, ttStatus.Capacity)
			break
		}

		result, err := t.playGame(ctx)
		if err != nil {
			return err
		}
		results = append(results, result)
		switch result.winner {
		case 1:
			blackWins++
		case 2:
			whiteWins++
		default:
			draws++
		}
		_ = bar.Add(1)
	}
	fmt.Println()

	t.printSummary(results, blackWins, whiteWins, draws)
	return nil
}

func (t *trainer) playGame(ctx context.Context) (gameResult, error) {
	began := time.Now()
	if err := t.postJSON("/api/start", map[string]any{
		"settings": map[string]any{
			"mode":       "ai_vs_ai",
			"board_size": t.boardSize,
		},
	}, nil); err != nil {
		return gameResult{}, err
	}
	deadline := time.Now().Add(t.gameTimeout)
	for {
		if ctx.Err() != nil {
			return gameResult{}, ctx.Err()
		}
		status, err := t.fetchStatus()
		if err != nil {
			return gameResult{}, err
		}
		if status.Status != "running" && status.Status != "not_started" {
			return gameResult{
				winner: status.Winner,
				turns:  len(status.History),
				took:   time.Since(began),
			}, nil
		}
		if t.gameTimeout > 0 && time.Now().After(deadline) {
			_ = t.postJSON("/api/stop", map[string]any{}, nil)
			return gameResult{}, fmt.Errorf("game timeout after %s", t.gameTimeout)
		}
		if !sleepWithContext(ctx, t.pollInterval) {
			return gameResult{}, ctx.Err()
		}
	}
}

func (t *trainer) printSummary(results []gameResult, blackWins, whiteWins, draws int) {
	total := len(results)
	if total == 0 {
		fmt.Println(aurora.Yellow("no games completed"))
		return
	}
	totalTurns := 0
	var totalTime time.Duration
	for _, result := range results {
		totalTurns += result.turns
		totalTime += result.took
	}
	fmt.Printf("%s %d games, %s %d, %s %d, %s %d\n",
		aurora.Bold("completed"), total,
		aurora.Green("black"), blackWins,
		aurora.Cyan("white"), whiteWins,
		aurora.Yellow("draws"), draws)
	fmt.Printf("avg turns/game %.1f, avg time/game %s\n",
		float64(totalTurns)/float64(total),
		(totalTime / time.Duration(total)).Round(time.Millisecond))

	if ttStatus, err := t.ttStatus(); err == nil {
		fmt.Printf("tt usage %s (%d/%d entries)\n",
			aurora.Magenta(fmt.Sprintf("%.1f%%", ttStatus.Usage*100)),
			ttStatus.Count, ttStatus.Capacity)
	}
}

func (t *trainer) waitBackendReady(ctx context.Context) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := t.ping(); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, 1*time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("timeout after 60s")
}

func (t *trainer) ping() error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping status %d", resp.StatusCode)
	}
	return nil
}

func (t *trainer) fetchStatus() (statusResponse, error) {
	var status statusResponse
	if err := t.getJSON("/api/status", &status); err != nil {
		return statusResponse{}, err
	}
	return status, nil
}

func (t *trainer) ttStatus() (ttCacheStatusResponse, error) {
	var tt ttCacheStatusResponse
	if err := t.getJSON("/api/cache/tt", &tt); err != nil {
		return ttCacheStatusResponse{}, err
	}
	return tt, nil
}

func (t *trainer) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (t *trainer) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
