package app

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/config"
	"github.com/coopstore/coopstore/internal/persist"
)

func openSnapshotStore(cfg config.StorageConfig) (persist.SnapshotStore, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		store, err := persist.OpenPostgres(cfg.Dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageBolt, "":
		store, err := persist.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, errors.Errorf("unknown storage type %q", cfg.Type)
}

// loadSnapshot restores the last saved state; an empty storage starts an
// empty store.
func (a *Application) loadSnapshot(ctx context.Context) error {
	snap, err := a.snapshots.Load(ctx)
	switch {
	case errors.Is(err, persist.ErrNoSnapshot):
		zap.L().Info("no snapshot found, starting empty", zap.String("namespace", "persist"))
		return nil
	case err != nil:
		return errors.Wrap(err, "load snapshot")
	}
	if err := a.store.Restore(snap); err != nil {
		return errors.Wrap(err, "restore snapshot")
	}
	zap.L().Info("snapshot loaded",
		zap.String("namespace", "persist"),
		zap.Time("saved_at", snap.SavedAt))
	return nil
}
