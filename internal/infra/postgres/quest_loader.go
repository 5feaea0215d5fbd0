package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"quest-client/internal/domain"
)

// QuestLoader loads quest JSONB documents from Postgres.
type QuestLoader struct {
	pool *pgxpool.Pool
}

func NewQuestLoader(pool *pgxpool.Pool) *QuestLoader {
	return &QuestLoader{pool: pool}
}

func (l *QuestLoader) LoadQuests(ctx context.Context) ([]domain.Quest, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, data FROM quests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		var (
			id  int
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		var quest domain.Quest
		if err := json.Unmarshal(raw, &quest); err != nil {
			return nil, fmt.Errorf("unmarshal quest %d: %w", id, err)
		}
		quest.ID = id
		quests = append(quests, quest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	if len(quests) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return quests, nil
}

// SeedQuests upserts the given quests, used to publish the built-in catalog.
func SeedQuests(ctx context.Context, pool *pgxpool.Pool, quests []domain.Quest) error {
	for _, q := range quests {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal quest %d: %w", q.ID, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO quests (id, data) VALUES ($1, $2::jsonb) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
			q.ID, string(data),
		); err != nil {
			return fmt.Errorf("upsert quest %d: %w", q.ID, err)
		}
	}
	return nil
}
