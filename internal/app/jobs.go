package app

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() error {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if spec := a.appConfig.Storage.Autosave; spec != "" {
		if _, err := a.sched.AddFunc(spec, a.SchedAutosaveTask); err != nil {
			return errors.Wrapf(err, "invalid autosave spec %q", spec)
		}
	}

	_, err = a.sched.AddFunc("@hourly", a.SchedStockReportTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
	return nil
}

// SchedAutosaveTask periodic snapshot
func (a *Application) SchedAutosaveTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := a.SaveNow(ctx); err != nil {
		zap.L().Error("autosave failed", zap.String("namespace", "persist"), zap.Error(err))
	}
}

// SchedStockReportTask logs stock levels and the open vendor orders
func (a *Application) SchedStockReportTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	low := 0
	for _, p := range a.store.Products() {
		if p.StockOnHand <= p.ReorderLevel {
			low++
		}
	}
	fields := []zap.Field{
		zap.String("namespace", "jobs"),
		zap.Int("products", len(a.store.Products())),
		zap.Int("at_or_below_level", low),
		zap.Int("outstanding_orders", len(a.store.OutstandingOrders())),
		zap.Int("open_checkouts", a.store.OpenCheckouts()),
	}
	if usage, err := sampleProcess(); err == nil {
		fields = append(fields, zap.Uint64("rss_mb", usage.rssMB), zap.Float64("cpu_percent", usage.cpuPercent))
	}
	zap.L().Info("stock report", fields...)
}

type processUsage struct {
	rssMB      uint64
	cpuPercent float64
}

func sampleProcess() (processUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return processUsage{}, err
	}
	meminfo, err := p.MemoryInfo()
	if err != nil {
		return processUsage{}, err
	}
	cpuuse, err := p.CPUPercent()
	if err != nil {
		return processUsage{}, err
	}
	return processUsage{rssMB: meminfo.RSS / 1024 / 1024, cpuPercent: cpuuse}, nil
}
