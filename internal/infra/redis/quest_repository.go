package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"quest-client/internal/domain"
)

// QuestLoader fetches quest definitions from a backing store (e.g., Postgres).
type QuestLoader interface {
	LoadQuests(ctx context.Context) ([]domain.Quest, error)
}

// QuestRepository caches the quest catalog in Redis and falls back to a loader on cache miss.
// Quests are stored as: HSET {prefix}quests:catalog {questID} {quest JSON}
type QuestRepository struct {
	client *redis.Client
	loader QuestLoader
	prefix string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestRepository(client *redis.Client, loader QuestLoader, prefix string, ttl time.Duration) *QuestRepository {
	return &QuestRepository{
		client: client,
		loader: loader,
		prefix: prefix,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestRepository) Quests(ctx context.Context) ([]domain.Quest, error) {
	key := r.catalogKey()

	cached, err := r.client.HGetAll(ctx, key).Result()
	if err == nil && len(cached) > 0 {
		if quests, err := buildCatalogFromCache(cached); err == nil {
			return quests, nil
		}
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := r.client.HGetAll(ctx, key).Result()
		if err == nil && len(cached) > 0 {
			if quests, err := buildCatalogFromCache(cached); err == nil {
				return quests, nil
			}
		}

		quests, err := r.loader.LoadQuests(ctx)
		if err != nil {
			return nil, err
		}
		if len(quests) == 0 {
			return nil, domain.ErrCatalogEmpty
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		pipe.Del(ctx, key)
		for _, q := range quests {
			data, err := json.Marshal(q)
			if err != nil {
				return nil, fmt.Errorf("encode quest %d: %w", q.ID, err)
			}
			pipe.HSet(ctx, key, strconv.Itoa(q.ID), data)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		sort.Slice(quests, func(i, j int) bool { return quests[i].ID < quests[j].ID })
		return quests, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Quest), nil
}

func (r *QuestRepository) catalogKey() string {
	return r.prefix + "quests:catalog"
}

func buildCatalogFromCache(cached map[string]string) ([]domain.Quest, error) {
	quests := make([]domain.Quest, 0, len(cached))
	for field, raw := range cached {
		var q domain.Quest
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("decode cached quest %s: %w", field, err)
		}
		quests = append(quests, q)
	}
	sort.Slice(quests, func(i, j int) bool { return quests[i].ID < quests[j].ID })
	return quests, nil
}

func (r *QuestRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
