package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"cyberquiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// TopicLoader fetches topic content from a backing store (e.g., document DB).
type TopicLoader interface {
	LoadTopic(ctx context.Context, topicID string) (domain.Topic, error)
}

// TopicRepository caches the full topic document as JSON in Redis
// (SET topic:{topicID}:content) and falls back to a loader on cache miss.
// The whole document is cached because serving a session needs prompts,
// options, and explanations, not just the answer key.
type TopicRepository struct {
	client *redis.Client
	loader TopicLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewTopicRepository(client *redis.Client, loader TopicLoader, ttl time.Duration) *TopicRepository {
	return &TopicRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *TopicRepository) GetTopic(ctx context.Context, topicID string) (domain.Topic, error) {
	key := r.contentKey(topicID)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		return decodeTopic(raw)
	}

	result, err, _ := r.sf.Do(topicID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			return decodeTopic(raw)
		}

		topic, err := r.loader.LoadTopic(ctx, topicID)
		if err != nil {
			return domain.Topic{}, err
		}

		raw, err := json.Marshal(topic)
		if err != nil {
			return domain.Topic{}, fmt.Errorf("marshal topic: %w", err)
		}
		// best-effort cache fill; a failed SET only costs a reload
		_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()

		return topic, nil
	})
	if err != nil {
		return domain.Topic{}, err
	}
	return result.(domain.Topic), nil
}

func (r *TopicRepository) contentKey(topicID string) string {
	return "topic:" + topicID + ":content"
}

func (r *TopicRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func decodeTopic(raw []byte) (domain.Topic, error) {
	var topic domain.Topic
	if err := json.Unmarshal(raw, &topic); err != nil {
		return domain.Topic{}, fmt.Errorf("unmarshal cached topic: %w", err)
	}
	return topic, nil
}
