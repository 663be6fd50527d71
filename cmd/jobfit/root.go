package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/analysis"
	"github.com/rsilvagit/jobfit/internal/config"
	"github.com/rsilvagit/jobfit/internal/extractor"
	"github.com/rsilvagit/jobfit/internal/httpclient"
	"github.com/rsilvagit/jobfit/internal/logger"
	"github.com/rsilvagit/jobfit/internal/output"
)

var (
	// Used for flags.
	cfgFile string

	cfg *config.Config
	log *zap.Logger

	rootCmd = &cobra.Command{
		Use:          config.App,
		Short:        "jobfit extracts LinkedIn job postings and scores your resume against them",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setup() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	log, err = logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	log.Debug("configuration loaded", zap.String("config", viper.ConfigFileUsed()))
	return nil
}

func newExtractor() *extractor.Extractor {
	return extractor.New(extractor.Options{Logger: log})
}

func newHTTPClient() (*httpclient.Client, error) {
	return httpclient.New(httpclient.Options{
		ProxyURL:   cfg.HTTP.ProxyURL,
		Interval:   cfg.HTTP.Interval,
		Burst:      cfg.HTTP.Burst,
		MaxRetries: cfg.HTTP.MaxRetries,
		Timeout:    cfg.HTTP.Timeout,
		UserAgent:  cfg.HTTP.UserAgent,
		Logger:     log,
	})
}

// publishers returns the configured onward destinations. The returned func
// releases their connections.
func publishers(ctx context.Context) (output.Multi, func(), error) {
	var out output.Multi
	closers := []func() error{}
	release := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	oc := cfg.Output
	if oc.Telegram.Token != "" && oc.Telegram.ChatID != "" {
		out = append(out, output.NewTelegramWriter(oc.Telegram.Token, oc.Telegram.ChatID))
	}
	if oc.Discord.WebhookURL != "" {
		out = append(out, output.NewDiscordWriter(oc.Discord.WebhookURL))
	}
	if oc.Redis.URL != "" {
		rp, err := output.NewRedisPublisher(ctx, oc.Redis.URL, oc.Redis.Channel)
		if err != nil {
			return nil, release, err
		}
		out = append(out, rp)
		closers = append(closers, rp.Close)
	}
	return out, release, nil
}

func newAnalyzer(ctx context.Context) (analysis.Analyzer, error) {
	switch cfg.Analysis.Provider {
	case config.ProviderGemini:
		return analysis.NewGemini(ctx, cfg.Analysis.Gemini.APIKey, cfg.Analysis.Gemini.Model)
	default:
		return analysis.NewClient(analysis.ClientOptions{Endpoint: cfg.Analysis.Endpoint, Logger: log}), nil
	}
}
