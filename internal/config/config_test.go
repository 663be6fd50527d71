package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.SettleDelay != time.Second || cfg.Session.RetryDelay != 100*time.Millisecond {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.Analysis.Provider != ProviderService || cfg.Analysis.Endpoint != "http://127.0.0.1:8000/api/analyze" {
		t.Fatalf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Server.Addr != ":8080" || cfg.Output.Redis.Channel != "jobfit:postings" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	yaml := `session:
  settle-delay: 3s
analysis:
  provider: gemini
  gemini:
    model: gemini-test
output:
  telegram:
    chat-id: "99"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBFIT_ANALYSIS_GEMINI_API_KEY", "secret")
	t.Setenv("JOBFIT_SESSION_RETRY_DELAY", "250ms")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.SettleDelay != 3*time.Second {
		t.Fatalf("settle delay = %v", cfg.Session.SettleDelay)
	}
	if cfg.Session.RetryDelay != 250*time.Millisecond {
		t.Fatalf("retry delay = %v", cfg.Session.RetryDelay)
	}
	if cfg.Analysis.Gemini.APIKey != "secret" || cfg.Analysis.Gemini.Model != "gemini-test" {
		t.Fatalf("gemini = %+v", cfg.Analysis.Gemini)
	}
	if cfg.Output.Telegram.ChatID != "99" {
		t.Fatalf("chat id = %q", cfg.Output.Telegram.ChatID)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"service ok", func(c *Config) {}, false},
		{"service without endpoint", func(c *Config) { c.Analysis.Endpoint = "" }, true},
		{"gemini without key", func(c *Config) { c.Analysis.Provider = ProviderGemini }, true},
		{"gemini with key", func(c *Config) {
			c.Analysis.Provider = ProviderGemini
			c.Analysis.Gemini.APIKey = "k"
		}, false},
		{"unknown provider", func(c *Config) { c.Analysis.Provider = "openai" }, true},
		{"negative delay", func(c *Config) { c.Session.RetryDelay = -time.Second }, true},
		{"zero retries", func(c *Config) { c.HTTP.MaxRetries = 0 }, true},
		{"negative retries", func(c *Config) { c.HTTP.MaxRetries = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{
				Analysis: AnalysisConfig{Provider: ProviderService, Endpoint: "http://localhost/api"},
				HTTP:     HTTPConfig{MaxRetries: 3},
			}
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nJOBFIT_TEST_NEW=\"fresh\"\nJOBFIT_TEST_SET=from-file\nnot a pair\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBFIT_TEST_SET", "from-env")
	t.Setenv("JOBFIT_TEST_NEW", "")
	os.Unsetenv("JOBFIT_TEST_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("JOBFIT_TEST_NEW"); got != "fresh" {
		t.Fatalf("JOBFIT_TEST_NEW = %q", got)
	}
	if got := os.Getenv("JOBFIT_TEST_SET"); got != "from-env" {
		t.Fatalf("JOBFIT_TEST_SET = %q, existing value overridden", got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}
