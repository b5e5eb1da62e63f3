package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"card-duel-server/config"
	"card-duel-server/storage"
)

const defaultListLimit = 20

const maxListLimit = 100

// Handler holds dependencies for API handlers.
type Handler struct {
	Config       *config.Config
	HistoryStore storage.HistoryStore
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(cfg *config.Config, historyStore storage.HistoryStore) *Handler {
	return &Handler{
		Config:       cfg,
		HistoryStore: historyStore,
	}
}

// CORS sets CORS headers on the response. Call before writing body.
// Returns true when the request was a handled preflight.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// History serves GET /api/history: the most recent finished duels.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if h.HistoryStore == nil {
		http.Error(w, "history is not enabled", http.StatusNotFound)
		return
	}

	records, err := h.HistoryStore.ListRecent(r.Context(), listLimit(r))
	if err != nil {
		slog.Error("listing duel history", "tag", "api", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []storage.DuelRecord{}
	}
	writeJSON(w, records)
}

// Leaderboard serves GET /api/leaderboard: duelists ordered by wins.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if h.HistoryStore == nil {
		http.Error(w, "leaderboard is not enabled", http.StatusNotFound)
		return
	}

	entries, err := h.HistoryStore.ListLeaderboard(r.Context(), listLimit(r))
	if err != nil {
		slog.Error("listing leaderboard", "tag", "api", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}
	writeJSON(w, entries)
}

// listLimit reads the optional ?limit= query parameter.
func listLimit(r *http.Request) int {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "tag", "api", "err", err)
	}
}
