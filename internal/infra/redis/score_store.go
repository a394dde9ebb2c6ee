package redis

import (
	"context"
	"fmt"
	"time"

	"cyberquiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ScoreStore keeps per-topic best scores in Redis and serves them back as
// leaderboard entries. Layout:
//
//	ZADD topic:{topicID}:board  {score} {userID}
//	HSET topic:{topicID}:names  {userID} {displayName}
//
// A sorted set holds the scores so GT semantics ("keep the best") come from
// Redis itself rather than a read-modify-write.
type ScoreStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreStore(client *redis.Client, ttl time.Duration) *ScoreStore {
	return &ScoreStore{client: client, ttl: ttl}
}

// SubmitScore records a completed session's score; a weaker retake never
// lowers the stored score (ZADD GT).
func (s *ScoreStore) SubmitScore(ctx context.Context, report domain.ScoreReport) error {
	boardKey := s.boardKey(report.TopicID)
	namesKey := s.namesKey(report.TopicID)

	pipe := s.client.Pipeline()
	pipe.ZAddGT(ctx, boardKey, redis.Z{Score: float64(report.Score), Member: report.UserID})
	pipe.HSet(ctx, namesKey, report.UserID, report.Name)
	if s.ttl > 0 {
		pipe.Expire(ctx, boardKey, s.ttl)
		pipe.Expire(ctx, namesKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	return nil
}

// TopicScores returns the topic's entries unordered; ranking is the caller's concern.
func (s *ScoreStore) TopicScores(ctx context.Context, topicID string) ([]domain.LeaderboardEntry, error) {
	scores, err := s.client.ZRangeWithScores(ctx, s.boardKey(topicID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	if len(scores) == 0 {
		return nil, nil
	}

	names, err := s.client.HGetAll(ctx, s.namesKey(topicID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(scores))
	for _, z := range scores {
		userID, _ := z.Member.(string)
		name, ok := names[userID]
		if !ok {
			// names hash expired independently; fall back to the ID so the
			// board stays renderable instead of failing validation
			name = userID
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID: userID,
			Name:   name,
			Score:  int(z.Score),
		})
	}
	return entries, nil
}

func (s *ScoreStore) boardKey(topicID string) string {
	return "topic:" + topicID + ":board"
}

func (s *ScoreStore) namesKey(topicID string) string {
	return "topic:" + topicID + ":names"
}
