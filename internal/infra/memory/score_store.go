package memory

import (
	"context"
	"sort"
	"sync"

	"cyberquiz-service/internal/domain"
)

// ScoreStore keeps per-topic best scores in memory. It implements both
// app.ScoreSink and app.LeaderboardSource, mirroring the shared-store
// shape of the redis and postgres implementations.
type ScoreStore struct {
	mu     sync.RWMutex
	boards map[string]map[string]domain.LeaderboardEntry
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{
		boards: make(map[string]map[string]domain.LeaderboardEntry),
	}
}

// SubmitScore records a completed session's score, keeping the user's best
// so a weaker retake never lowers their board position.
func (s *ScoreStore) SubmitScore(_ context.Context, report domain.ScoreReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[report.TopicID]
	if !ok {
		board = make(map[string]domain.LeaderboardEntry)
		s.boards[report.TopicID] = board
	}
	existing, ok := board[report.UserID]
	if ok && existing.Score >= report.Score {
		existing.Name = report.Name
		board[report.UserID] = existing
		return nil
	}
	board[report.UserID] = domain.LeaderboardEntry{
		UserID: report.UserID,
		Name:   report.Name,
		Score:  report.Score,
	}
	return nil
}

// TopicScores returns the topic's entries in a stable order; ranking is the
// caller's concern.
func (s *ScoreStore) TopicScores(_ context.Context, topicID string) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board := s.boards[topicID]
	entries := make([]domain.LeaderboardEntry, 0, len(board))
	for _, entry := range board {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID < entries[j].UserID
	})
	return entries, nil
}
