package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/coopstore/coopstore/config"
	"github.com/coopstore/coopstore/internal/grocery"
)

// StoreProvider provides the grocery store
type StoreProvider interface {
	Store() *grocery.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SnapshotProvider saves the store on demand
type SnapshotProvider interface {
	SaveNow(ctx context.Context) error
	LastSaved(ctx context.Context) (time.Time, error)
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	StoreProvider
	ConfigProvider
	SnapshotProvider
	SchedulerProvider

	// Release stops jobs, saves if configured and closes storage
	Release()
}
