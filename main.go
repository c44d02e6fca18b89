package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/Ne02ptzero/pistache/internal/bootstrap"
	"github.com/Ne02ptzero/pistache/internal/config"
	"github.com/Ne02ptzero/pistache/internal/health"
	"github.com/Ne02ptzero/pistache/internal/logger"
	"github.com/Ne02ptzero/pistache/internal/version"

	"go.uber.org/zap"
)

const healthcheckTimeout = 3 * time.Second

var errHealthDisabled = fmt.Errorf("health server is disabled")

func main() {
	healthcheckMode := flag.Bool("healthcheck", false, "query the local health server and exit")
	flag.Parse()

	conf, err := config.MustLoad()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}

	if *healthcheckMode {
		ctx, cancel := context.WithTimeout(context.Background(), healthcheckTimeout)
		err = healthcheck(ctx, conf)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	zl, err := logger.New(conf.LogLevel(), conf.LogDevelopment())
	if err != nil {
		log.Fatalf("Failed to build logger: %s", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("starting", zap.String("version", version.GetVersion()))

	app, err := bootstrap.New(conf, zl)
	if err != nil {
		zl.Fatal("failed to initialize", zap.Error(err))
	}
	if err = app.Run(context.Background()); err != nil {
		zl.Fatal("application error", zap.Error(err))
	}
}

// healthcheck asks the health server of a running instance on this host
// whether it is serving.
func healthcheck(ctx context.Context, conf config.Config) error {
	if !conf.HealthEnabled() {
		return errHealthDisabled
	}
	return health.Check(ctx, net.JoinHostPort("localhost", conf.HealthPort()))
}
