package setup

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matt-dz/recipehub/internal/broadcast"
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/config"
	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
)

func TestStorage(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		conf      config.Config
		wantQuota bool
		wantErr   error
	}{
		{
			name: "memory",
			conf: config.Config{Storage: config.Storage{Backend: config.StorageMemory}},
		},
		{
			name: "file with quota",
			conf: config.Config{Storage: config.Storage{
				Backend:    config.StorageFile,
				Dir:        filepath.Join(dir, "kv"),
				QuotaBytes: 1024,
			}},
			wantQuota: true,
		},
		{
			name: "sqlite",
			conf: config.Config{Storage: config.Storage{
				Backend:    config.StorageSQLite,
				SQLitePath: filepath.Join(dir, "recipehub.db"),
			}},
		},
		{
			name:    "redis without client",
			conf:    config.Config{Storage: config.Storage{Backend: config.StorageRedis}},
			wantErr: config.ErrBackendNotConfigured,
		},
		{
			name:    "unknown backend",
			conf:    config.Config{Storage: config.Storage{Backend: "floppy"}},
			wantErr: ErrUnknownBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closer, err := Storage(context.Background(), &tt.conf, nil)
			if closer == nil {
				t.Fatal("closer is nil")
			}
			defer func() { _ = closer() }()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Storage() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Storage() error = %v", err)
			}
			if _, ok := store.(*kv.Quota); ok != tt.wantQuota {
				t.Errorf("store is %T, want quota = %v", store, tt.wantQuota)
			}

			ctx := context.Background()
			if err := store.Set(ctx, "p1/favorites", []byte("[]")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := store.Get(ctx, "p1/favorites")
			if err != nil || string(got) != "[]" {
				t.Errorf("Get() = %q, %v", got, err)
			}
		})
	}
}

func TestNotifier(t *testing.T) {
	n, closer, err := Notifier(context.Background(),
		&config.Config{Sync: config.Sync{Backend: config.SyncMemory}}, nil, log.NullLogger())
	if err != nil {
		t.Fatalf("Notifier() error = %v", err)
	}
	defer func() { _ = closer() }()
	if _, ok := n.(*broadcast.Memory); !ok {
		t.Errorf("notifier is %T, want *broadcast.Memory", n)
	}

	_, _, err = Notifier(context.Background(),
		&config.Config{Sync: config.Sync{Backend: config.SyncRedis}}, nil, log.NullLogger())
	if !errors.Is(err, config.ErrBackendNotConfigured) {
		t.Errorf("redis without client error = %v", err)
	}
}

func TestLogger(t *testing.T) {
	if _, err := Logger(&config.Config{Log: config.Log{Level: "debug"}}); err != nil {
		t.Errorf("Logger(debug) error = %v", err)
	}
	if _, err := Logger(&config.Config{Log: config.Log{Level: "chatty"}}); err == nil {
		t.Error("Logger(chatty) expected error")
	}
}

func TestEnv(t *testing.T) {
	conf := &config.Config{
		Storage: config.Storage{Backend: config.StorageMemory, QuotaBytes: 1 << 20},
		Sync:    config.Sync{Backend: config.SyncMemory},
	}
	e, err := Env(context.Background(), conf, log.NullLogger())
	if err != nil {
		t.Fatalf("Env() error = %v", err)
	}
	defer func() {
		if err := e.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	store := e.Collections.WithProfile("p1", "tab-a")
	c, err := store.Toggle(context.Background(), collection.Favorites, recipe.Record{ID: 1, Title: "Soup"})
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !c.Contains(1) {
		t.Errorf("favorites = %v", c.IDs())
	}
	if e.API == nil {
		t.Error("API client not set")
	}
}
