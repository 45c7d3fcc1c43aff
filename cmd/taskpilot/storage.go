package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskpilot/internal/config"
	"taskpilot/internal/storage"
	"taskpilot/internal/todo"
)

// openKV opens the backend named in cfg.Storage.
func openKV(ctx context.Context, cfg config.Config) (storage.KV, error) {
	switch strings.ToLower(cfg.Storage) {
	case "", config.StorageSQLite:
		return storage.Open(cfg.DBPath)
	case config.StorageRedis:
		return storage.OpenRedis(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "taskpilot:",
		})
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// withStore loads the config and task list for one scripted command.
func withStore(cmd *cobra.Command, fn func(*todo.Store) error) error {
	cfg, err := config.LoadOrCreate(configPathFlag(cmd))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	kv, err := openKV(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer kv.Close()

	store, err := todo.Open(todo.NewBlobPersister(kv))
	if err != nil {
		return err
	}
	return fn(store)
}
