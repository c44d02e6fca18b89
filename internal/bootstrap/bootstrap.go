package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ne02ptzero/pistache/internal/config"
	"github.com/Ne02ptzero/pistache/internal/health"
	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/stream"
	"github.com/Ne02ptzero/pistache/internal/middleware"
	"github.com/Ne02ptzero/pistache/internal/random"
	"github.com/Ne02ptzero/pistache/internal/router"
	"github.com/Ne02ptzero/pistache/internal/transport"
	"github.com/Ne02ptzero/pistache/internal/version"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Bootstrap struct {
	Config     config.Config
	Logger     *zap.Logger
	Registry   header.Registry
	Router     *router.Router
	HTTP       transport.Transport
	Health     health.Server
	SignalChan chan os.Signal
}

func New(conf config.Config, logger *zap.Logger) (*Bootstrap, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, w := range conf.Warnings() {
		logger.Warn(w)
	}

	registry := header.NewRegistry()
	if err := registerHeaders(registry); err != nil {
		return nil, fmt.Errorf("register headers: %w", err)
	}

	r := router.New()
	r.HandleDefaults()

	opts := transport.Options{
		Stream: stream.Options{
			WriteBufferSize: conf.WriteBufferSize(),
			MaxHeaderBytes:  conf.HeaderSize(),
			MaxBodyBytes:    conf.MaxBodySize(),
		},
		ReadBufferSize: conf.BufferSize(),
		IdleTimeout:    conf.IdleTimeout(),
		RequestMiddlewares: []middleware.RequestMiddleware{
			middleware.NewRequireHost(),
			middleware.NewRequestID(random.New()),
		},
		ResponseMiddlewares: []middleware.ResponseMiddleware{
			middleware.NewServerName(version.ServerToken(conf.ServerName())),
		},
	}

	b := &Bootstrap{
		Config:     conf,
		Logger:     logger,
		Registry:   registry,
		Router:     r,
		HTTP:       transport.NewHTTPServer(conf.HTTPPort(), registry, r, opts, logger),
		SignalChan: make(chan os.Signal, 1),
	}
	if conf.HealthEnabled() {
		b.Health = health.NewServer(conf.HealthPort(), logger)
	}
	return b, nil
}

// registerHeaders adds the typed headers beyond the built-ins. It runs once,
// before any connection is accepted.
func registerHeaders(registry header.Registry) error {
	if err := registry.Register(header.NameContentType, func() header.Header { return &header.ContentType{} }); err != nil {
		return err
	}
	if err := registry.Register(header.NameUserAgent, func() header.Header { return &header.UserAgent{} }); err != nil {
		return err
	}
	return nil
}

func newPprofServer(pprofPort string) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("localhost:%s", pprofPort),
		Handler:           http.DefaultServeMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run starts every service and blocks until a signal arrives, ctx is done or
// one of the services fails.
func (b *Bootstrap) Run(ctx context.Context) error {
	signal.Notify(b.SignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(b.SignalChan)

	httpListener, err := b.HTTP.Listen()
	if err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}
	closers := []func(){func() { _ = httpListener.Close() }}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := b.HTTP.Serve(httpListener); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("error when serving http server: %w", err)
		}
		return nil
	})

	if b.Health != nil {
		healthListener, err := b.Health.Listen()
		if err != nil {
			_ = httpListener.Close()
			_ = g.Wait()
			return fmt.Errorf("failed to start health server: %w", err)
		}
		g.Go(func() error {
			if err := b.Health.Serve(healthListener); err != nil {
				return fmt.Errorf("error when serving health server: %w", err)
			}
			return nil
		})
		b.Health.SetServing(true)
		closers = append(closers, b.Health.Stop)
	}

	if b.Config.PprofEnabled() {
		pprofServer := newPprofServer(b.Config.PprofPort())
		b.Logger.Info("starting pprof server", zap.String("addr", "http://"+pprofServer.Addr+"/debug/pprof/"))
		g.Go(func() error {
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server error: %w", err)
			}
			return nil
		})
		closers = append(closers, func() { _ = pprofServer.Close() })
	}

	b.Logger.Info("all services started successfully", zap.String("version", version.GetVersion()))

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case sig := <-b.SignalChan:
			b.Logger.Info("received signal, initiating graceful shutdown", zap.Stringer("signal", sig))
		}
		for _, closeFn := range closers {
			closeFn()
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("service error: %w", err)
	}
	return nil
}
