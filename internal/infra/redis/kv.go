package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KV is a Redis-backed store.Backend. Every persisted key is a plain string
// under an optional prefix so several clients can share one database.
type KV struct {
	client *redis.Client
	prefix string
}

func NewKV(client *redis.Client, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Write runs deletes then sets inside MULTI/EXEC.
func (s *KV) Write(ctx context.Context, set map[string]string, del []string) error {
	if len(set) == 0 && len(del) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(del) > 0 {
			keys := make([]string, 0, len(del))
			for _, key := range del {
				keys = append(keys, s.key(key))
			}
			pipe.Del(ctx, keys...)
		}
		for key, value := range set {
			pipe.Set(ctx, s.key(key), value, 0)
		}
		return nil
	})
	return err
}

func (s *KV) key(key string) string {
	return s.prefix + key
}
