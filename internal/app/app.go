package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/coopstore/coopstore/config"
	"github.com/coopstore/coopstore/internal/grocery"
	"github.com/coopstore/coopstore/internal/persist"
)

type Application struct {
	appConfig *config.AppConfig
	store     *grocery.Store
	snapshots persist.SnapshotStore
	bus       EventBus.Bus
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SnapshotProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *grocery.Store {
	return a.store
}

// Bus is the event bus the store publishes to
func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// OverrideSnapshots replaces the snapshot backend (used in tests).
func (a *Application) OverrideSnapshots(s persist.SnapshotStore) {
	a.snapshots = s
}

func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	zap.ReplaceGlobals(logger)

	a.bus = EventBus.New()
	a.store, err = grocery.New(grocery.Options{
		Publisher: a.bus,
		Logger:    logger,
		NodeID:    cfg.System.NodeID,
	})
	if err != nil {
		return errors.Wrap(err, "init store")
	}
	a.subscribeEvents()

	if a.snapshots == nil {
		a.snapshots, err = openSnapshotStore(cfg.Storage)
		if err != nil {
			return err
		}
	}
	zap.S().Infof("Snapshot storage ready, type: %s", cfg.Storage.Type)

	if err := a.loadSnapshot(context.Background()); err != nil {
		return err
	}

	return a.initJob()
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if !cfg.FileEnable {
		return zapConfig.Build(zap.AddCaller())
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// subscribeEvents logs every store event under the events namespace
func (a *Application) subscribeEvents() {
	for _, topic := range grocery.Topics {
		topic := topic
		err := a.bus.Subscribe(topic, func(payload interface{}) {
			zap.L().Debug("store event",
				zap.String("namespace", "events"),
				zap.String("topic", topic),
				zap.Any("payload", payload))
		})
		if err != nil {
			zap.L().Error("event subscribe failed", zap.String("topic", topic), zap.Error(err))
		}
	}
	err := a.bus.Subscribe(grocery.TopicOrderPlaced, func(payload interface{}) {
		if o, ok := payload.(grocery.OrderFields); ok {
			zap.L().Info("vendor order placed",
				zap.String("namespace", "events"),
				zap.String("order_id", o.ID),
				zap.String("product", o.ProductName),
				zap.Int("quantity", o.Quantity))
		}
	})
	if err != nil {
		zap.L().Error("event subscribe failed", zap.String("topic", grocery.TopicOrderPlaced), zap.Error(err))
	}
}

// SaveNow writes a snapshot of the committed store state
func (a *Application) SaveNow(ctx context.Context) error {
	if a.snapshots == nil {
		return errors.New("snapshot storage not initialized")
	}
	snap := a.store.Snapshot()
	if err := a.snapshots.Save(ctx, snap); err != nil {
		return err
	}
	zap.L().Info("snapshot saved",
		zap.String("namespace", "persist"),
		zap.Int("members", len(snap.Members)),
		zap.Int("products", len(snap.Products)),
		zap.Int("orders", len(snap.Orders)))
	return nil
}

func (a *Application) LastSaved(ctx context.Context) (time.Time, error) {
	if a.snapshots == nil {
		return time.Time{}, nil
	}
	return a.snapshots.LastSaved(ctx)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}

	if a.snapshots != nil {
		if a.appConfig.Storage.SaveOnExit && a.store != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := a.SaveNow(ctx); err != nil {
				zap.L().Error("save on exit failed", zap.Error(err))
			}
			cancel()
		}
		if err := a.snapshots.Close(); err != nil {
			zap.L().Error("close snapshot storage", zap.Error(err))
		}
		a.snapshots = nil
	}
	_ = zap.L().Sync()
}
