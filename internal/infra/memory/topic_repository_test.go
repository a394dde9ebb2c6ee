package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"cyberquiz-service/internal/domain"
)

func TestTopicRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		TopicLoader: NewStaticTopicLoader(map[string]domain.Topic{
			"phishing-basics": sampleTopic(),
		}),
	}
	repo := NewTopicRepository(loader, time.Minute)

	if _, err := repo.GetTopic(context.Background(), "phishing-basics"); err != nil {
		t.Fatalf("get topic: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetTopic(context.Background(), "phishing-basics"); err != nil {
		t.Fatalf("get topic 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestTopicRepositoryPropagatesNotFound(t *testing.T) {
	repo := NewTopicRepository(NewStaticTopicLoader(nil), time.Minute)
	if _, err := repo.GetTopic(context.Background(), "missing"); !errors.Is(err, domain.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

type countingLoader struct {
	TopicLoader
	calls int
}

func (l *countingLoader) LoadTopic(ctx context.Context, topicID string) (domain.Topic, error) {
	l.calls++
	return l.TopicLoader.LoadTopic(ctx, topicID)
}

func sampleTopic() domain.Topic {
	return domain.Topic{
		ID:    "phishing-basics",
		Title: "Phishing Basics",
		Questions: []domain.Question{
			{
				ID:            "q1",
				Text:          "Which link is safe to click?",
				Options:       []string{"bank-login.example.ru", "www.yourbank.com"},
				CorrectOption: 1,
			},
		},
	}
}
