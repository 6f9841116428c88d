package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	context_ "github.com/mkrupp/gys-mockauth/internal/infra/context"
	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
)

func configureBuffer(t *testing.T, cfg logging.LoggerConfig) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	cfg.OutputHandle = &buf
	logging.Configure(context.Background(), cfg, "test")

	t.Cleanup(func() {
		logging.Configure(context.Background(), logging.LoggerConfig{Output: "discard"}, "")
	})

	return &buf
}

//nolint:paralleltest
func TestGetLogger_Filter(t *testing.T) {
	buf := configureBuffer(t, logging.LoggerConfig{
		Level:  "info",
		Filter: "svc:debug, infra:error",
	})

	ctx := context.Background()

	logging.GetLogger("svc.authsvc").DebugContext(ctx, "svc-debug")
	logging.GetLogger("other").DebugContext(ctx, "other-debug")
	logging.GetLogger("other").InfoContext(ctx, "other-info")
	logging.GetLogger("infra.transport.http").WarnContext(ctx, "infra-warn")
	logging.GetLogger("infra.transport.http").ErrorContext(ctx, "infra-error")

	out := buf.String()

	for _, want := range []string{"svc-debug", "other-info", "infra-error"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	for _, unwanted := range []string{"other-debug", "infra-warn"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains filtered %q:\n%s", unwanted, out)
		}
	}
}

//nolint:paralleltest
func TestGetLogger_JSONWithTraceID(t *testing.T) {
	buf := configureBuffer(t, logging.LoggerConfig{
		Level: "info",
		JSON:  true,
	})

	ctx := context_.WithTraceID(context.Background(), "trace-1")

	logging.GetLogger("svc.authsvc").InfoContext(ctx, "hello", "key", "value")

	out := buf.String()

	for _, want := range []string{
		`"msg":"hello"`,
		`"logger":"svc.authsvc"`,
		`"app":"test"`,
		`"key":"value"`,
		`"trace":{"id":"trace-1"}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

//nolint:paralleltest
func TestGetLogger_Discard(t *testing.T) {
	logging.Configure(context.Background(), logging.LoggerConfig{Output: "discard"}, "")

	log := logging.GetLogger("svc")
	if log.Enabled(context.Background(), logging.LevelError) {
		t.Error("discarding logger reports error level enabled")
	}
}
