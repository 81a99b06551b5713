// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/matt-dz/recipehub/internal/broadcast"
	"github.com/matt-dz/recipehub/internal/config"
	"github.com/matt-dz/recipehub/internal/env"
	mHttp "github.com/matt-dz/recipehub/internal/http"
	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Closer releases a component created here. It is never nil.
type Closer func() error

func noop() error { return nil }

// Logger builds the application logger described by conf.
func Logger(conf *config.Config) (*slog.Logger, error) {
	level, err := log.ParseLevel(string(conf.Log.Level))
	if err != nil {
		return nil, err
	}
	return log.New(&log.Options{Level: level, File: conf.Log.File}), nil
}

// Redis connects to Redis when it is configured, and returns nil otherwise.
func Redis(ctx context.Context, conf *config.Config) (redis.UniversalClient, Closer, error) {
	if conf.Redis.Addr == "" {
		return nil, noop, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, noop, fmt.Errorf("pinging redis: %w", err)
	}
	return client, client.Close, nil
}

// Storage opens the configured backend, wrapped in a per-profile quota
// when one is set. rdb is only used by the redis backend.
func Storage(ctx context.Context, conf *config.Config, rdb redis.UniversalClient) (kv.Store, Closer, error) {
	store, closer, err := backend(ctx, conf, rdb)
	if err != nil {
		return nil, noop, err
	}
	if conf.Storage.QuotaBytes > 0 {
		store = kv.NewQuota(store, conf.Storage.QuotaBytes)
	}
	return store, closer, nil
}

func backend(ctx context.Context, conf *config.Config, rdb redis.UniversalClient) (kv.Store, Closer, error) {
	switch conf.Storage.Backend {
	case config.StorageMemory:
		return kv.NewMemory(), noop, nil

	case config.StorageFile:
		dir, err := kv.NewDir(conf.Storage.Dir)
		if err != nil {
			return nil, noop, fmt.Errorf("opening storage dir: %w", err)
		}
		return dir, noop, nil

	case config.StorageSQLite:
		db, err := kv.NewSQLite(conf.Storage.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite: %w", err)
		}
		return db, db.Close, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, conf.Postgres.URL())
		if err != nil {
			return nil, noop, fmt.Errorf("creating database pool: %w", err)
		}
		db := kv.NewPostgres(pool)
		if err := db.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("initializing database: %w", err)
		}
		return db, func() error { pool.Close(); return nil }, nil

	case config.StorageRedis:
		if rdb == nil {
			return nil, noop, fmt.Errorf("redis storage: %w", config.ErrBackendNotConfigured)
		}
		return kv.NewRedis(rdb, conf.Redis.Keyspace), noop, nil

	case config.StorageS3:
		client, err := minio.New(conf.S3.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(conf.S3.AccessKey, conf.S3.SecretKey, ""),
			Secure: conf.S3.UseSSL,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("creating s3 client: %w", err)
		}
		bucket := kv.NewObject(client, conf.S3.Bucket)
		if err := bucket.EnsureBucket(ctx); err != nil {
			return nil, noop, err
		}
		return bucket, noop, nil
	}
	return nil, noop, fmt.Errorf("%w: storage %q", ErrUnknownBackend, conf.Storage.Backend)
}

// Notifier creates the change notifier. rdb is only used by the redis
// backend.
func Notifier(
	ctx context.Context,
	conf *config.Config,
	rdb redis.UniversalClient,
	logger *slog.Logger,
) (broadcast.Notifier, Closer, error) {
	switch conf.Sync.Backend {
	case config.SyncMemory:
		return broadcast.NewMemory(), noop, nil
	case config.SyncRedis:
		if rdb == nil {
			return nil, noop, fmt.Errorf("redis sync: %w", config.ErrBackendNotConfigured)
		}
		n, err := broadcast.NewRedis(ctx, rdb, conf.Sync.Channel, logger)
		if err != nil {
			return nil, noop, err
		}
		return n, n.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: sync %q", ErrUnknownBackend, conf.Sync.Backend)
}

// Spoonacular creates the recipe API client.
func Spoonacular(conf *config.Config, logger *slog.Logger) *spoonacular.Client {
	if conf.Spoonacular.APIKey == "" {
		logger.Warn("SPOONACULAR_API_KEY not set, recipe search will fail")
	}
	return spoonacular.New(spoonacular.Config{
		APIKey:  conf.Spoonacular.APIKey,
		BaseURL: conf.Spoonacular.BaseURL,
		HTTP: mHttp.New(mHttp.Config{
			Logger:   logger,
			RetryMax: conf.Spoonacular.RetryMax,
			Timeout:  conf.Spoonacular.Timeout,
		}),
		Logger: logger,
	})
}

// Env assembles every component described by conf. Close the returned
// Env to release them.
func Env(ctx context.Context, conf *config.Config, logger *slog.Logger) (*env.Env, error) {
	var closers []Closer
	fail := func(err error) (*env.Env, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	rdb, closeRedis, err := Redis(ctx, conf)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeRedis)

	store, closeStore, err := Storage(ctx, conf, rdb)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeStore)

	notifier, closeNotifier, err := Notifier(ctx, conf, rdb, logger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeNotifier)

	e := env.New(logger, conf, store, notifier, Spoonacular(conf, logger))
	for _, c := range closers {
		e.OnClose(c)
	}
	logger.Info("components ready",
		slog.String("storage", string(conf.Storage.Backend)),
		slog.String("sync", string(conf.Sync.Backend)),
		slog.Int64("quota_bytes", conf.Storage.QuotaBytes))
	return e, nil
}
