package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
)

// HTTPTransportConfig contains configuration parameters for HTTP servers.
type HTTPTransportConfig struct {
	// ServerAddr is the network address to listen on
	ServerAddr string `env:"SERVER_ADDR" default:":8080"`
	// ReadHeaderTimeout is the timeout in seconds for reading request headers
	ReadHeaderTimeout int64 `env:"READ_HEADER_TIMEOUT" default:"5"`

	ReadTimeout  int64 `env:"READ_TIMEOUT" default:"5"`
	WriteTimeout int64 `env:"WRITE_TIMEOUT" default:"5"`

	// ShutdownTimeout bounds the graceful shutdown in seconds
	ShutdownTimeout int64 `env:"SHUTDOWN_TIMEOUT" default:"10"`

	// CORSAllowedOrigins enables CORS for the listed origins ("*" for any).
	// CORS handling is off when empty.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:""`

	// MetricsEnabled exposes Prometheus request metrics on MetricsPath
	MetricsEnabled bool   `env:"METRICS_ENABLED" default:"false"`
	MetricsPath    string `env:"METRICS_PATH" default:"/metrics"`
}

// HTTPTransport defines the interface for HTTP handlers that can serve requests.
type HTTPTransport interface {
	http.Handler
}

func seconds(n int64) time.Duration {
	return time.Duration(n * int64(time.Second))
}

// NewHandler wraps handler in the standard middleware chain:
// tracing, CORS, metrics, logging and panic recovery, outermost first.
func NewHandler(handler HTTPTransport, cfg HTTPTransportConfig, log logging.Logger) http.Handler {
	var next http.Handler = handler

	next = RescueingMiddleware(next, log)
	next = LoggingMiddleware(next, log)

	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		//nolint:exhaustruct
		metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			ErrorLog: logging.GetLogLogger(log, logging.LevelError),
		})

		next = MetricsMiddleware(next, NewMetrics(registry))
		next = metricsEndpoint(next, cfg.MetricsPath, metricsHandler)
	}

	next = CORSMiddleware(next, cfg.CORSAllowedOrigins)
	next = TracingMiddleware(next)

	return next
}

func metricsEndpoint(next http.Handler, path string, metrics http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == path {
			metrics.ServeHTTP(w, r)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// ListenAndServe listens on cfg.ServerAddr and serves handler until ctx is cancelled.
// See Serve.
func ListenAndServe(ctx context.Context, handler HTTPTransport, cfg HTTPTransportConfig) error {
	sock, err := net.Listen("tcp", cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return Serve(ctx, sock, handler, cfg)
}

// Serve serves handler on sock behind the standard middleware chain.
// When ctx is cancelled the server shuts down gracefully, waiting at most
// cfg.ShutdownTimeout for in-flight requests. A clean shutdown returns nil.
func Serve(ctx context.Context, sock net.Listener, handler HTTPTransport, cfg HTTPTransportConfig) error {
	log := logging.GetLogger("infra.transport.http")

	//nolint:exhaustruct
	server := &http.Server{
		Handler:           NewHandler(handler, cfg, log),
		ErrorLog:          logging.GetLogLogger(log, logging.LevelError),
		ReadHeaderTimeout: seconds(cfg.ReadHeaderTimeout),
		ReadTimeout:       seconds(cfg.ReadTimeout),
		WriteTimeout:      seconds(cfg.WriteTimeout),
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Serve(sock)
	}()

	log.InfoContext(ctx, "listening", "addr", sock.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), seconds(cfg.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
