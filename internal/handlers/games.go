package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/ravenlog/pkg/choice"
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/narrate"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
	"github.com/jwebster45206/ravenlog/pkg/session"
)

// maxRecordBytes caps one ingested record.
const maxRecordBytes = 1 << 20

type GameResponse struct {
	ID      uuid.UUID `json:"id"`
	Catalog string    `json:"catalog"`
	Entries int       `json:"entries"`
}

// LogItem is one entry as presented to readers.
type LogItem struct {
	Index int          `json:"index"`
	Time  time.Time    `json:"time"`
	Type  gamelog.Kind `json:"type"`
	View  resolve.View `json:"view,omitempty"`
	Text  string       `json:"text"`
	Error string       `json:"error,omitempty"`
}

// IngestResponse echoes an accepted record, resolved and narrated.
type IngestResponse struct {
	Time time.Time    `json:"time"`
	Type gamelog.Kind `json:"type"`
	View resolve.View `json:"view"`
	Text string       `json:"text"`
}

type OpenChoiceRequest struct {
	Claimants []entity.HouseID `json:"claimants"`
	Vassals   []entity.HouseID `json:"vassals"`
}

type ChooseRequest struct {
	Viewer []entity.HouseID `json:"viewer"`
	Target entity.HouseID   `json:"target"`
}

type GamesHandler struct {
	sessions *session.Manager
	feed     Feeder
	logger   *slog.Logger
}

func NewGamesHandler(sessions *session.Manager, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// ServeHTTP handles HTTP requests for game logs and choices
// Routes:
// POST /v1/games                  - Create a new game
// GET  /v1/games/{id}             - Game summary
// DELETE /v1/games/{id}           - Delete the game's log and queued records
// GET  /v1/games/{id}/log         - Resolved and narrated log
// POST /v1/games/{id}/log         - Ingest one record
// GET  /v1/games/{id}/log/raw     - Stored entries, for replay or export
// GET  /v1/games/{id}/choice      - Pending choice as seen by ?viewer=house,house
// PUT  /v1/games/{id}/choice      - Open a vassal claim
// POST /v1/games/{id}/choice      - Commit a choice
// POST /v1/games/{id}/feed        - Queue newline-delimited records
// GET  /v1/games/{id}/feed        - Queued record count
func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	gameID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid game ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game ID format")
		return
	}

	route := strings.Join(parts[1:], "/")
	if route == "feed" {
		h.serveFeed(w, r, gameID)
		return
	}
	if route == "" && r.Method == http.MethodDelete {
		h.handleDelete(w, r, gameID)
		return
	}
	switch route {
	case "", "log", "log/raw", "choice":
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
		return
	}

	s, err := h.sessions.Get(r.Context(), gameID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	switch {
	case route == "" && r.Method == http.MethodGet:
		h.handleSummary(w, s)
	case route == "":
		h.methodNotAllowed(w, r, "GET, DELETE")
	case route == "log" && r.Method == http.MethodGet:
		h.handleReadLog(w, s)
	case route == "log" && r.Method == http.MethodPost:
		h.handleIngest(w, r, s)
	case route == "log":
		h.methodNotAllowed(w, r, "GET, POST")
	case route == "log/raw" && r.Method == http.MethodGet:
		writeJSON(w, h.logger, http.StatusOK, s.Entries())
	case route == "log/raw":
		h.methodNotAllowed(w, r, "GET")
	case r.Method == http.MethodGet:
		h.handlePrompt(w, r, s)
	case r.Method == http.MethodPut:
		h.handleOpenChoice(w, r, s)
	case r.Method == http.MethodPost:
		h.handleChoose(w, r, s)
	default:
		h.methodNotAllowed(w, r, "GET, PUT, POST")
	}
}

func (h *GamesHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	h.logger.Warn("Method not allowed for games endpoint", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Allow", allowed)
	writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: "+allowed)
}

func (h *GamesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Create(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	h.logger.Info("Game created", "game_id", s.ID)
	writeJSON(w, h.logger, http.StatusCreated, GameResponse{ID: s.ID, Catalog: s.Catalog().Name})
}

func (h *GamesHandler) handleDelete(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if h.feed != nil {
		if err := h.feed.Clear(r.Context(), gameID); err != nil {
			h.logger.Error("Failed to clear feed", "game_id", gameID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game")
			return
		}
	}
	if err := h.sessions.Delete(r.Context(), gameID); err != nil {
		h.logger.Error("Failed to delete game", "game_id", gameID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game")
		return
	}
	h.logger.Info("Game deleted", "game_id", gameID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GamesHandler) handleSummary(w http.ResponseWriter, s *session.Session) {
	writeJSON(w, h.logger, http.StatusOK, GameResponse{
		ID:      s.ID,
		Catalog: s.Catalog().Name,
		Entries: len(s.Entries()),
	})
}

func (h *GamesHandler) handleReadLog(w http.ResponseWriter, s *session.Session) {
	resolved := s.Resolved()
	items := make([]LogItem, len(resolved))
	for i, re := range resolved {
		items[i] = LogItem{
			Index: i,
			Time:  re.Time,
			Type:  re.Kind,
			View:  re.View,
			Text:  narrate.Line(re),
		}
		if re.Err != nil {
			h.logger.Warn("Log entry did not resolve", "game_id", s.ID, "index", i, "error", re.Err)
			items[i].View = nil
			items[i].Error = re.Err.Error()
		}
	}
	writeJSON(w, h.logger, http.StatusOK, items)
}

func (h *GamesHandler) handleIngest(w http.ResponseWriter, r *http.Request, s *session.Session) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordBytes))
	if err != nil {
		writeError(w, h.logger, http.StatusRequestEntityTooLarge, "Record too large")
		return
	}

	entry, err := s.Ingest(r.Context(), body)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	re, err := s.Resolver().ResolveEntry(entry)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, IngestResponse{
		Time: re.Time,
		Type: re.Kind,
		View: re.View,
		Text: narrate.Line(re),
	})
}

func viewerFrom(r *http.Request) choice.Houses {
	var houses choice.Houses
	for _, raw := range r.URL.Query()["viewer"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				houses = append(houses, entity.HouseID(id))
			}
		}
	}
	return houses
}

func (h *GamesHandler) handlePrompt(w http.ResponseWriter, r *http.Request, s *session.Session) {
	claim := s.Choice()
	if claim == nil {
		writeDomainError(w, h.logger, session.ErrNoPendingChoice)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, choice.Prompt(claim, viewerFrom(r)))
}

func (h *GamesHandler) handleOpenChoice(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req OpenChoiceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBytes)).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Claimants) == 0 {
		writeError(w, h.logger, http.StatusBadRequest, "At least one claimant is required")
		return
	}

	claim, err := s.OpenVassalClaim(req.Claimants, req.Vassals)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, choice.Prompt(claim, viewerFrom(r)))
}

func (h *GamesHandler) handleChoose(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req ChooseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBytes)).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	viewer := choice.Houses(req.Viewer)
	if err := s.Choose(r.Context(), viewer, req.Target); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	h.logger.Info("Choice committed", "game_id", s.ID, "viewer", req.Viewer, "target", req.Target)
	writeJSON(w, h.logger, http.StatusOK, choice.Prompt(s.Choice(), viewer))
}
