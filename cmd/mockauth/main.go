package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mkrupp/gys-mockauth/internal/infra/config"
	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
	"github.com/mkrupp/gys-mockauth/internal/infra/transport/http"
	"github.com/mkrupp/gys-mockauth/internal/svc/authsvc"
)

const (
	appName = "gys"
	svcName = "mockauth"
)

// version is set at link time with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals
var version = authsvc.DefaultVersion

type Config struct {
	config.EnvConfig

	Log  logging.LoggerConfig        `envPrefix:"LOG_"`
	Auth authsvc.AuthConfig          `envPrefix:"AUTH_"`
	HTTP authsvc.HTTPTransportConfig `envPrefix:"HTTP_"`
}

func main() {
	var (
		cfg Config

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	cfg.HTTP.Version = version

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	log := logging.GetLogger("cmd.mockauth")

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)

			return
		}

		log.InfoContext(ctx, "shutdown")
	}()

	authSvc, err := authsvc.NewAuthService(ctx, cfg.Auth)
	if err != nil {
		return fmt.Errorf("new auth service: %w", err)
	}

	httpTransport := authsvc.NewHTTPTransport(authSvc, cfg.HTTP)

	log.InfoContext(ctx, "starting", "version", version)

	if err := http.ListenAndServe(ctx, httpTransport, cfg.HTTP.HTTPTransportConfig); err != nil {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}
