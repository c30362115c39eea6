package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Endpoint      string        `yaml:"endpoint" mapstructure:"endpoint"`
	HTTP          httpSection   `yaml:"http" mapstructure:"http"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type httpSection struct {
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

func (c *testConfig) ApplyDefaults() { c.ServiceConfig.ApplyDefaults() }
func (c *testConfig) Validate() error {
	return c.ServiceConfig.Validate()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "abiquo"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("expected development with debug, got %+v", cfg)
	}
	if cfg.Logging.ServiceName != "abiquo" {
		t.Errorf("logging service name = %q", cfg.Logging.ServiceName)
	}

	prod := ServiceConfig{Name: "abiquo", Environment: "production"}
	prod.ApplyDefaults()
	if prod.Debug {
		t.Error("expected debug=false for production")
	}
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		c := ServiceConfig{Name: "svc"}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"bad environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"bad log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestLoadConfigYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "abiquo.yml", `
name: abiquo
environment: staging
endpoint: http://localhost/api
timeout: 5s
http:
  max_idle_conns: 10
`)
	envPath := writeFile(t, dir, ".env", "RWTEST_HTTP_MAX_IDLE_CONNS=42\n")
	t.Setenv("RWTEST_ENDPOINT", "http://override/api")
	t.Cleanup(func() { os.Unsetenv("RWTEST_HTTP_MAX_IDLE_CONNS") })

	var cfg testConfig
	err := LoadConfig("abiquo", &cfg,
		WithConfigFile(path),
		WithEnvFile(envPath),
		WithEnvPrefix("rwtest"),
	)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "abiquo" || cfg.Environment != "staging" {
		t.Errorf("service section not squashed: %+v", cfg.ServiceConfig)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	if cfg.Endpoint != "http://override/api" {
		t.Errorf("environment should override file, endpoint = %q", cfg.Endpoint)
	}
	if cfg.HTTP.MaxIdleConns != 42 {
		t.Errorf(".env value should bind nested key, got %d", cfg.HTTP.MaxIdleConns)
	}
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yml", "name: abiquo\n")
	bad := writeFile(t, dir, "bad.yml", "environment: qa\n")

	cfg, err := Load[testConfig]("abiquo", WithConfigFile(good), WithEnvPrefix("RWTEST_NONE"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "development" || cfg.Logging.Level != "info" {
		t.Errorf("defaults not applied: %+v", cfg.ServiceConfig)
	}

	if _, err := Load[testConfig]("abiquo", WithConfigFile(bad), WithEnvPrefix("RWTEST_NONE")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	if err := LoadConfig("nobody", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvPrefix("RWTEST_NONE")); err != nil {
		t.Fatalf("missing file should yield empty config, got %v", err)
	}
}

func TestLoadConfigBrokenYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yml", "name: [unterminated\n")
	var cfg testConfig
	if err := LoadConfig("abiquo", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected parse error")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/abiquo.yml": true,
		"./config.yml":        true,
		"./.env":              true,
		"./config/.env":       true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("abiquo", LoaderConfig{})
	if files.ConfigFile != "./config/abiquo.yml" {
		t.Errorf("config file = %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("env file = %q", files.EnvFile)
	}

	explicit := (&Resolver{FileSystem: fs}).ResolveFiles("abiquo", LoaderConfig{ConfigFile: "x.yml"})
	if explicit.ConfigFile != "x.yml" {
		t.Errorf("explicit path should win, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("HTTP_RETRY_MAX_ATTEMPTS")
	for _, want := range []string{"http_retry_max_attempts", "http.retry.max.attempts", "http.retry_max_attempts", "http.retry.max_attempts", "http_retry.max_attempts"} {
		if !slices.Contains(got, want) {
			t.Errorf("missing variant %q in %v", want, got)
		}
	}
	if single := envKeyVariants("ENDPOINT"); len(single) != 1 || single[0] != "endpoint" {
		t.Errorf("single-part key variants = %v", single)
	}
}

func TestOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/c.yml")(&lc)
	WithEnvFile("/.env")(&lc)
	WithEnvPrefix("abiquo_")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/c.yml" || lc.EnvFile != "/.env" || lc.EnvPrefix != "ABIQUO" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
