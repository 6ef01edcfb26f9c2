package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"glamstore/internal/bootstrap"
	"glamstore/internal/config"
	"glamstore/internal/logging"
	"glamstore/internal/ws"
	"glamstore/pkg/jwt"
	"glamstore/pkg/pinata"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("invalid logging configuration")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
	log.Info("server exited")
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			log.WithError(err).Error("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// 3. Setup Database
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := bootstrap.OpenStore(connectCtx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.WithError(err).Error("failed to close store")
		}
	}()

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)

	deps := bootstrap.Deps{Config: cfg, Log: log, Store: store, Hub: wsHub}
	if cfg.PinataEnabled() {
		deps.Images = pinata.NewClient(pinata.Config{
			JWT:       cfg.PinataJWT,
			Gateway:   cfg.PinataGateway,
			UploadURL: cfg.PinataUploadURL,
			APIURL:    cfg.PinataAPIURL,
		}, &http.Client{Timeout: 60 * time.Second})
	} else {
		log.Warn("PINATA_JWT not set, image uploads disabled")
	}
	if cfg.AuthJWKSURL != "" {
		deps.Verifier = jwt.NewJWKSVerifier(cfg.AuthJWKSURL, cfg.AuthIssuer)
	}

	app := bootstrap.NewApp(deps)

	// 5. Serve until a signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.WithFields(logrus.Fields{"port": cfg.Port, "backend": store.Name()}).Info("server starting")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	return g.Wait()
}
