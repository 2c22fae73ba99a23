package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coopstore/coopstore/config"
	"github.com/coopstore/coopstore/internal/adminapi"
	"github.com/coopstore/coopstore/internal/app"
	"github.com/coopstore/coopstore/internal/console"
)

var (
	version  = "develop"
	cfile    = flag.String("c", "", "config file")
	useTerm  = flag.Bool("console", false, "run the interactive clerk console")
	showVer  = flag.Bool("version", false, "show version")
	printCfg = flag.Bool("printcfg", false, "print the effective config and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}

	cfg, err := config.LoadConfig(*cfile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if *printCfg {
		fmt.Print(cfg.String())
		return
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}
	defer application.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, application, cfg); err != nil {
		zap.S().Error(err)
	}
}

func run(ctx context.Context, stop context.CancelFunc, application *app.Application, cfg *config.AppConfig) error {
	if *useTerm || !cfg.Web.Enabled {
		// stdin reads do not unblock on cancel, so the console is not waited for
		go func() {
			defer stop()
			term := console.New(application.Store(), application, os.Stdin, os.Stdout)
			if err := term.Run(ctx); err != nil {
				zap.S().Errorf("console stopped: %v", err)
			}
		}()
	}
	if !cfg.Web.Enabled {
		<-ctx.Done()
		return nil
	}

	server := adminapi.NewServer(application)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port))
	})
	g.Go(func() error {
		<-gctx.Done()
		return server.Shutdown(context.Background())
	})
	return g.Wait()
}
