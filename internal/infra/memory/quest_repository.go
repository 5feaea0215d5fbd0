package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"quest-client/internal/domain"
)

const catalogKey = "catalog"

// QuestLoader fetches quest definitions from a backing store (e.g., Postgres).
type QuestLoader interface {
	LoadQuests(ctx context.Context) ([]domain.Quest, error)
}

// QuestRepository caches the quest catalog with TTL to avoid repeated loads.
type QuestRepository struct {
	loader QuestLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	quests    []domain.Quest
	expiresAt time.Time
}

func NewQuestRepository(loader QuestLoader, ttl time.Duration) *QuestRepository {
	return &QuestRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestRepository) Quests(ctx context.Context) ([]domain.Quest, error) {
	if quests, ok := r.cached(r.clock()); ok {
		return quests, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		now := r.clock()
		if quests, ok := r.cached(now); ok {
			return quests, nil
		}

		quests, err := r.loader.LoadQuests(ctx)
		if err != nil {
			return nil, err
		}
		if len(quests) == 0 {
			return nil, domain.ErrCatalogEmpty
		}
		quests = sortedCopy(quests)

		r.mu.Lock()
		r.quests = quests
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return quests, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Quest), nil
}

func (r *QuestRepository) cached(now time.Time) ([]domain.Quest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.quests != nil && (r.ttl <= 0 || r.expiresAt.After(now)) {
		return r.quests, true
	}
	return nil, false
}

// StaticQuestLoader is a simple loader backed by an in-memory slice (useful for tests/offline use).
type StaticQuestLoader struct {
	quests []domain.Quest
}

func NewStaticQuestLoader(quests []domain.Quest) *StaticQuestLoader {
	return &StaticQuestLoader{quests: quests}
}

func (l *StaticQuestLoader) LoadQuests(_ context.Context) ([]domain.Quest, error) {
	if len(l.quests) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return sortedCopy(l.quests), nil
}

func sortedCopy(quests []domain.Quest) []domain.Quest {
	out := make([]domain.Quest, len(quests))
	copy(out, quests)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *QuestRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
