package app

import (
	"context"
	"log"
	"time"

	"cyberquiz-service/internal/domain"
	"cyberquiz-service/internal/leaderboard"
	"cyberquiz-service/internal/quiz"
)

// SessionStore abstracts where in-flight quiz sessions live. Each session is
// keyed by (user, topic); a user has at most one active attempt per topic.
type SessionStore interface {
	Put(userID, topicID string, session *quiz.Session)
	Get(userID, topicID string) (*quiz.Session, bool)
	Delete(userID, topicID string)
}

// TopicRepository loads topic content (from cache/backing store).
type TopicRepository interface {
	GetTopic(ctx context.Context, topicID string) (domain.Topic, error)
}

// ScoreSink receives the one-shot report for a completed session.
type ScoreSink interface {
	SubmitScore(ctx context.Context, report domain.ScoreReport) error
}

// LeaderboardSource returns the unordered score records for a topic.
type LeaderboardSource interface {
	TopicScores(ctx context.Context, topicID string) ([]domain.LeaderboardEntry, error)
}

// QuizService contains the quiz-taking and leaderboard use cases.
type QuizService struct {
	sessions SessionStore
	topics   TopicRepository
	sink     ScoreSink
	board    LeaderboardSource
	now      func() time.Time
}

func NewQuizService(sessions SessionStore, topics TopicRepository, sink ScoreSink, board LeaderboardSource) *QuizService {
	return &QuizService{
		sessions: sessions,
		topics:   topics,
		sink:     sink,
		board:    board,
		now:      time.Now,
	}
}

// NewQuizServiceWithClock is test-only for deterministic board timestamps.
func NewQuizServiceWithClock(sessions SessionStore, topics TopicRepository, sink ScoreSink, board LeaderboardSource, now func() time.Time) *QuizService {
	s := NewQuizService(sessions, topics, sink, board)
	s.now = now
	return s
}

// StartQuiz loads the topic's questions and begins a fresh attempt,
// replacing any abandoned attempt for the same (user, topic).
func (s *QuizService) StartQuiz(ctx context.Context, userID, name, topicID string) (*quiz.Session, error) {
	topic, err := s.topics.GetTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	session, err := quiz.Start(userID, name, topicID, topic.Questions)
	if err != nil {
		return nil, err
	}
	s.sessions.Put(userID, topicID, session)
	return session, nil
}

// SelectAnswer records a pending choice on the user's active session.
func (s *QuizService) SelectAnswer(userID, topicID string, option int) (*quiz.Session, error) {
	session, ok := s.sessions.Get(userID, topicID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if err := session.SelectAnswer(option); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmAndAdvance moves the user's session forward. When the terminal
// transition fires, the score report is dispatched to the sink and the
// session is removed from the store; a sink failure is logged and swallowed
// because the user's own result is already final (only the shared board
// goes stale, which is an acceptable degraded mode).
func (s *QuizService) ConfirmAndAdvance(ctx context.Context, userID, topicID string) (*quiz.Session, *domain.ScoreReport, error) {
	session, ok := s.sessions.Get(userID, topicID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	report, err := session.ConfirmAndAdvance()
	if err != nil {
		return nil, nil, err
	}
	if report != nil {
		if err := s.sink.SubmitScore(ctx, *report); err != nil {
			log.Printf("score report for user=%s topic=%s failed: %v", userID, topicID, err)
		}
		s.sessions.Delete(userID, topicID)
	}
	return session, report, nil
}

// GoToPrevious steps the user's session back one question.
func (s *QuizService) GoToPrevious(userID, topicID string) (*quiz.Session, error) {
	session, ok := s.sessions.Get(userID, topicID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if err := session.GoToPrevious(); err != nil {
		return nil, err
	}
	return session, nil
}

// Abandon drops an in-flight attempt without reporting anything.
func (s *QuizService) Abandon(userID, topicID string) {
	s.sessions.Delete(userID, topicID)
}

// Leaderboard fetches the topic's scores and produces the ranked board.
func (s *QuizService) Leaderboard(ctx context.Context, topicID string) (domain.Board, error) {
	entries, err := s.board.TopicScores(ctx, topicID)
	if err != nil {
		return domain.Board{}, err
	}
	ranked, err := leaderboard.Rank(entries)
	if err != nil {
		return domain.Board{}, err
	}
	top, rest := leaderboard.Split(ranked)
	return domain.Board{
		TopicID:   topicID,
		TopThree:  top,
		Rest:      rest,
		UpdatedAt: s.now(),
	}, nil
}
