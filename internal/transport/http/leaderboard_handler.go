package http

import (
	"encoding/json"
	"log"
	"net/http"

	"cyberquiz-service/internal/app"
)

// LeaderboardHandler serves the ranked board as plain JSON for clients that
// do not hold a websocket open.
type LeaderboardHandler struct {
	service *app.QuizService
}

func NewLeaderboardHandler(service *app.QuizService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	topicID := r.URL.Query().Get("topicId")
	if topicID == "" {
		http.Error(w, "missing topicId", http.StatusBadRequest)
		return
	}

	board, err := h.service.Leaderboard(r.Context(), topicID)
	if err != nil {
		log.Printf("leaderboard for topic=%s failed: %v", topicID, err)
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(board); err != nil {
		log.Printf("encode leaderboard: %v", err)
	}
}
