package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"quest-client/internal/app"
	"quest-client/internal/config"
	"quest-client/internal/infra/memory"
	pgloader "quest-client/internal/infra/postgres"
	infraredis "quest-client/internal/infra/redis"
	"quest-client/internal/infra/sqlite"
	"quest-client/internal/infra/verifier"
	"quest-client/internal/store"
)

// runtime holds everything a command needs and the resources to release afterwards.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	service *app.QuestService
	closers []func()
}

func openRuntime(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: newLogger(cfg)}
	slog.SetDefault(rt.logger)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = redisClient.Close() })
	}

	var backend store.Backend
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		backend = infraredis.NewKV(redisClient, cfg.Redis.Prefix)
	case config.DriverMemory:
		backend = memory.NewKV()
	default:
		kv, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, func() { _ = kv.Close() })
		backend = kv
	}

	var loader memory.QuestLoader = memory.NewStaticQuestLoader(memory.DefaultQuests())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		loader = pgloader.NewQuestLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var quests app.QuestRepository
	if redisClient != nil {
		quests = infraredis.NewQuestRepository(redisClient, loader, cfg.Redis.Prefix, catalogTTL)
	} else {
		quests = memory.NewQuestRepository(loader, catalogTTL)
	}

	client := verifier.NewClient(
		cfg.Verifier.BaseURL,
		config.TTLDuration(cfg.Verifier.Timeout, time.Minute),
		verifier.WithLogger(rt.logger),
	)

	progressStore := store.NewProgressStore(backend)
	rt.service = app.NewQuestService(progressStore, progressStore, quests, client,
		app.WithLogger(rt.logger),
		app.WithProgressOptions(
			app.WithProgressInterval(config.TTLDuration(cfg.Progress.Interval, 500*time.Millisecond)),
			app.WithProgressCeiling(cfg.Progress.Ceiling),
			app.WithProgressStep(cfg.Progress.MaxStep),
		),
	)
	return rt, nil
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
