package bootstrap

import (
	"fmt"
	"os"
	"strings"

	docmark "github.com/goliatone/go-docmark"
	"github.com/goliatone/go-docmark/internal/di"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

// Options captures configuration for exporter CLI bootstraps.
type Options struct {
	BaseURL            string
	AccessToken        string
	OutputDir          string
	TimestampSuffix    *bool
	IncludeFrontmatter *bool
	Overwrite          bool
	History            bool
	HistoryDSN         string
	LogLevel           string
	LogFormat          string
	Preview            bool
	LoggerProvider     interfaces.LoggerProvider
}

// Module wraps the docmark module and the configured export service/logger.
type Module struct {
	Module  *docmark.Module
	Service docmark.ExportService
	Logger  interfaces.Logger
}

// BuildModule constructs a docmark module configured for CLI export runs.
func BuildModule(opts Options) (*Module, error) {
	cfg := docmark.DefaultConfig()
	cfg.Features.Fetch = true
	cfg.Features.Logger = true
	cfg.Fetch.Enabled = true
	cfg.Fetch.BaseURL = EnvOr(opts.BaseURL, "FEISHU_BASE_URL")
	cfg.Fetch.AccessToken = EnvOr(opts.AccessToken, "FEISHU_ACCESS_TOKEN")

	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Exporter.OutputDir = dir
	}
	if opts.TimestampSuffix != nil {
		cfg.Exporter.TimestampSuffix = *opts.TimestampSuffix
	}
	if opts.IncludeFrontmatter != nil {
		cfg.Exporter.IncludeFrontmatter = *opts.IncludeFrontmatter
	}
	cfg.Exporter.Overwrite = opts.Overwrite

	if opts.History {
		cfg.Features.History = true
		cfg.History.Enabled = true
		if dsn := strings.TrimSpace(opts.HistoryDSN); dsn != "" {
			cfg.History.DSN = dsn
		}
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}
	cfg.Features.Preview = opts.Preview

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docmark.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docmark module: %w", err)
	}

	service := module.Exporter()
	if service == nil {
		_ = module.Close()
		return nil, fmt.Errorf("export service not configured; ensure the fetch feature is enabled")
	}

	logger := logging.ExporterLogger(module.Container().LoggerProvider())

	return &Module{
		Module:  module,
		Service: service,
		Logger:  logger,
	}, nil
}

// EnvOr returns the trimmed value, falling back to the named environment
// variable when the value is empty.
func EnvOr(value, envKey string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(os.Getenv(envKey))
}

// SplitIDs parses a comma separated document id list into a trimmed slice.
func SplitIDs(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
