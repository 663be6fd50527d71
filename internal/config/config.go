// Package config loads jobfit settings from a YAML file, JOBFIT_* environment
// variables and command flags.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	App       = "jobfit"
	EnvPrefix = "JOBFIT"
)

const (
	ProviderService = "service"
	ProviderGemini  = "gemini"
)

type Config struct {
	Debug    bool           `mapstructure:"debug"`
	JSON     bool           `mapstructure:"json"`
	Session  SessionConfig  `mapstructure:"session"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
	Server   ServerConfig   `mapstructure:"server"`
}

type SessionConfig struct {
	SettleDelay time.Duration `mapstructure:"settle-delay"`
	RetryDelay  time.Duration `mapstructure:"retry-delay"`
}

type HTTPConfig struct {
	ProxyURL   string        `mapstructure:"proxy-url"`
	Interval   time.Duration `mapstructure:"interval"`
	Burst      int           `mapstructure:"burst"`
	MaxRetries int           `mapstructure:"max-retries"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user-agent"`
}

type AnalysisConfig struct {
	Provider string       `mapstructure:"provider"`
	Endpoint string       `mapstructure:"endpoint"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api-key"`
	Model  string `mapstructure:"model"`
}

type OutputConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID string `mapstructure:"chat-id"`
}

type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook-url"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed-origins"`
}

// SetDefaults registers every key so environment variables can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("json", false)

	v.SetDefault("session.settle-delay", time.Second)
	v.SetDefault("session.retry-delay", 100*time.Millisecond)

	v.SetDefault("http.proxy-url", "")
	v.SetDefault("http.interval", 2*time.Second)
	v.SetDefault("http.burst", 1)
	v.SetDefault("http.max-retries", 3)
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user-agent", "")

	v.SetDefault("analysis.provider", ProviderService)
	v.SetDefault("analysis.endpoint", "http://127.0.0.1:8000/api/analyze")
	v.SetDefault("analysis.gemini.api-key", "")
	v.SetDefault("analysis.gemini.model", "")

	v.SetDefault("output.telegram.token", "")
	v.SetDefault("output.telegram.chat-id", "")
	v.SetDefault("output.discord.webhook-url", "")
	v.SetDefault("output.redis.url", "")
	v.SetDefault("output.redis.channel", "jobfit:postings")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed-origins", []string{"*"})
}

// Load reads file, or jobfit.yaml in the working directory when file is
// empty. A missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(App)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Analysis.Provider {
	case ProviderService:
		if c.Analysis.Endpoint == "" {
			return errors.New("config: analysis.endpoint is required for the service provider")
		}
	case ProviderGemini:
		if strings.TrimSpace(c.Analysis.Gemini.APIKey) == "" {
			return errors.New("config: analysis.gemini.api-key is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config: unknown analysis provider %q", c.Analysis.Provider)
	}
	if c.Session.SettleDelay < 0 || c.Session.RetryDelay < 0 {
		return errors.New("config: session delays must not be negative")
	}
	if c.HTTP.MaxRetries < 1 {
		return errors.New("config: http.max-retries must be at least 1")
	}
	return nil
}

// LoadDotEnv exports KEY=VALUE lines from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if _, set := os.LookupEnv(key); !set {
			if err := os.Setenv(key, val); err != nil {
				return fmt.Errorf("config: setting %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
