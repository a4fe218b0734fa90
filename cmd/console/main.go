package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
	// Viewer lists the houses this console controls when a choice is pending.
	Viewer []string
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
		Viewer:     splitList(getEnv("VIEWER_HOUSES", "")),
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	game, err := openGame(client, cfg.APIBaseURL, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	items, err := fetchLog(client, cfg.APIBaseURL, game.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game log: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, game, items),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// openGame follows the game id given as an argument or in GAME_ID, or
// creates a new game when neither is set.
func openGame(client *http.Client, baseURL string, args []string) (*GameResponse, error) {
	raw := getEnv("GAME_ID", "")
	if len(args) > 0 {
		raw = args[0]
	}
	if raw == "" {
		game, err := createGame(client, baseURL)
		if err != nil {
			return nil, err
		}
		return game, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid game id %q: %w", raw, err)
	}
	return getGame(client, baseURL, id)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
