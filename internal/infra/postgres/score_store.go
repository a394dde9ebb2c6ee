package postgres

import (
	"context"
	"fmt"

	"cyberquiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreStore persists per-topic best scores in the scores table and serves
// them back as leaderboard entries.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

// SubmitScore upserts a completed session's score, keeping the user's best.
func (s *ScoreStore) SubmitScore(ctx context.Context, report domain.ScoreReport) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scores (topic_id, user_id, name, score, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (topic_id, user_id) DO UPDATE
		SET score = GREATEST(scores.score, EXCLUDED.score),
		    name = EXCLUDED.name,
		    updated_at = now()`,
		report.TopicID, report.UserID, report.Name, report.Score)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	return nil
}

// TopicScores returns the topic's entries unordered; ranking is the caller's concern.
func (s *ScoreStore) TopicScores(ctx context.Context, topicID string) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id, name, score FROM scores WHERE topic_id=$1`, topicID)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.Score); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	return entries, nil
}
