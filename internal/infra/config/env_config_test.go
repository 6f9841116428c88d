package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	. "github.com/mkrupp/gys-mockauth/internal/infra/config"
)

type testConfig struct {
	EnvConfig

	StringValue string   `env:"STRING_VALUE" default:"default"`
	IntValue    int      `env:"INT_VALUE" default:"42"`
	BoolValue   bool     `env:"BOOL_VALUE" default:"true"`
	ListValue   []string `env:"LIST_VALUE" default:"a,b"`
	NoEnvTag    string
	Nested      testNestedConfig `envPrefix:"NESTED_"`
}

type testNestedConfig struct {
	NestedString string `env:"STRING" default:"nested-default"`
}

func defaultTestConfig() testConfig {
	return testConfig{
		StringValue: "default",
		IntValue:    42,
		BoolValue:   true,
		ListValue:   []string{"a", "b"},
		Nested: testNestedConfig{
			NestedString: "nested-default",
		},
	}
}

func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	for k, v := range envVars {
		t.Setenv(k, v)
	}
}

//nolint:paralleltest,funlen
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		envVars map[string]string
		want    func(cfg *testConfig)
		wantErr bool
	}{
		{
			name:    "uses default values when env vars not set",
			envVars: map[string]string{},
			want:    func(*testConfig) {},
		},
		{
			name: "reads environment variables",
			envVars: map[string]string{
				"STRING_VALUE":  "env-value",
				"INT_VALUE":     "123",
				"BOOL_VALUE":    "false",
				"LIST_VALUE":    "x, y ,,z",
				"NESTED_STRING": "env-nested",
			},
			want: func(cfg *testConfig) {
				cfg.StringValue = "env-value"
				cfg.IntValue = 123
				cfg.BoolValue = false
				cfg.ListValue = []string{"x", "y", "z"}
				cfg.Nested.NestedString = "env-nested"
			},
		},
		{
			name:   "handles prefix correctly",
			prefix: "APP",
			envVars: map[string]string{
				"APP_STRING_VALUE":  "prefixed-value",
				"APP_NESTED_STRING": "prefixed-nested",
			},
			want: func(cfg *testConfig) {
				cfg.StringValue = "prefixed-value"
				cfg.Nested.NestedString = "prefixed-nested"
			},
		},
		{
			name:   "prefers more specific prefix",
			prefix: "APP_SERVICE",
			envVars: map[string]string{
				"APP_STRING_VALUE":         "less-specific",
				"APP_SERVICE_STRING_VALUE": "more-specific",
				"APP_INT_VALUE":            "7",
				"BOOL_VALUE":               "false",
			},
			want: func(cfg *testConfig) {
				cfg.StringValue = "more-specific"
				cfg.IntValue = 7
			},
		},
		{
			name: "handles empty values",
			envVars: map[string]string{
				"STRING_VALUE": "",
				"LIST_VALUE":   "",
			},
			want: func(cfg *testConfig) {
				cfg.StringValue = ""
				cfg.ListValue = []string{}
			},
		},
		{
			name: "fails on invalid int value",
			envVars: map[string]string{
				"INT_VALUE": "not-a-number",
			},
			wantErr: true,
		},
		{
			name: "fails on invalid bool value",
			envVars: map[string]string{
				"BOOL_VALUE": "not-a-bool",
			},
			wantErr: true,
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, tt.envVars)

			cfg := &testConfig{}
			err := Parse(ctx, cfg, tt.prefix)

			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				return
			}

			want := defaultTestConfig()
			tt.want(&want)

			if cfg.Namespace() != tt.prefix {
				t.Errorf("Namespace() = %q, want %q", cfg.Namespace(), tt.prefix)
			}

			cfg.EnvConfig = EnvConfig{}
			if !reflect.DeepEqual(*cfg, want) {
				t.Errorf("Parse() = %+v, want %+v", *cfg, want)
			}
		})
	}
}

func TestParseRequired(t *testing.T) {
	t.Parallel()

	cfg := &struct {
		EnvConfig

		Required string `env:"MOCKAUTH_TEST_SURELY_UNSET_VAR"`
	}{}

	err := Parse(context.Background(), cfg, "")
	if !errors.Is(err, ErrVarNotSet) {
		t.Errorf("Parse() error = %v, want %v", err, ErrVarNotSet)
	}
}

func TestParseUnsupportedType(t *testing.T) {
	t.Parallel()

	cfg := &struct {
		EnvConfig

		Ratio float64 `env:"RATIO" default:"0.5"`
	}{}

	err := Parse(context.Background(), cfg, "")
	if !errors.Is(err, ErrUnsupportedVarType) {
		t.Errorf("Parse() error = %v, want %v", err, ErrUnsupportedVarType)
	}
}

func TestParseInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     any
		wantErr error
	}{
		{
			name:    "non-pointer config",
			cfg:     testConfig{},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "non-struct pointer",
			cfg:     new(string),
			wantErr: ErrInvalidConfig,
		},
		{
			name: "missing EnvConfig embedding",
			cfg: &struct {
				Value string `env:"VALUE"`
			}{},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Parse(context.Background(), tt.cfg, "")
			if err == nil {
				t.Error("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

//nolint:paralleltest
func TestLoadDotEnv(t *testing.T) {
	const (
		fromFile = "MOCKAUTH_TEST_DOTENV_FROM_FILE"
		fromEnv  = "MOCKAUTH_TEST_DOTENV_FROM_ENV"
	)

	// register cleanup for the variable the file will set
	t.Setenv(fromFile, "")
	os.Unsetenv(fromFile)
	t.Setenv(fromEnv, "env")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(fromFile+"=file\n"+fromEnv+"=file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv(fromFile); got != "file" {
		t.Errorf("%s = %q, want %q", fromFile, got, "file")
	}

	if got := os.Getenv(fromEnv); got != "env" {
		t.Errorf("%s = %q, want %q", fromEnv, got, "env")
	}
}
