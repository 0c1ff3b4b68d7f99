package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrFetchBaseURLRequired = errors.New("docmark config: fetch base URL is required when fetch is enabled")
var ErrFetchTokenRequired = errors.New("docmark config: fetch access token is required when fetch is enabled")
var ErrFetchPageSizeInvalid = errors.New("docmark config: fetch page size must be between 1 and 500")
var ErrFetchRetriesInvalid = errors.New("docmark config: fetch retry count must be zero or positive")
var ErrExportOutputDirRequired = errors.New("docmark config: export output directory is required")
var ErrHistoryDSNRequired = errors.New("docmark config: history DSN is required when history is enabled")
var ErrHistoryRetentionInvalid = errors.New("docmark config: history retention must be zero or positive")
var ErrRenderIndentInvalid = errors.New("docmark config: list indent width must be positive")
var ErrRenderUnknownPolicyInvalid = errors.New("docmark config: unknown block policy is invalid")
var ErrRenderUnderlineInvalid = errors.New("docmark config: underline rendering is invalid")
var ErrLoggingProviderRequired = errors.New("docmark config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("docmark config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docmark config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docmark config: logging format is invalid")

// Config aggregates feature flags and collaborator bindings for the exporter
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled  bool
	Render   RenderConfig
	Fetch    FetchConfig
	Exporter ExporterConfig
	History  HistoryConfig
	Logging  LoggingConfig
	Features Features
}

// RenderConfig captures per-conversion rendering behaviour.
type RenderConfig struct {
	UnknownBlockPolicy string
	UnderlineRendering string
	ListIndentWidth    int
	LanguageOverrides  map[int]string
}

// FetchConfig captures document service connectivity.
type FetchConfig struct {
	Enabled     bool
	BaseURL     string
	AccessToken string
	PageSize    int
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// ExporterConfig captures filesystem behaviour for written documents.
type ExporterConfig struct {
	OutputDir          string
	TimestampSuffix    bool
	IncludeFrontmatter bool
	Overwrite          bool
}

// HistoryConfig captures the export history store behaviour.
type HistoryConfig struct {
	Enabled   bool
	DSN       string
	Retention int
}

// Features toggles module functionality.
type Features struct {
	Fetch   bool
	History bool
	Preview bool
	Logger  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a local export run.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Render: RenderConfig{
			UnknownBlockPolicy: "skip",
			UnderlineRendering: "html_tag",
			ListIndentWidth:    4,
			LanguageOverrides:  map[int]string{},
		},
		Fetch: FetchConfig{
			PageSize:   500,
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
		Exporter: ExporterConfig{
			OutputDir:          "exports",
			TimestampSuffix:    true,
			IncludeFrontmatter: true,
		},
		History: HistoryConfig{
			DSN:       "file:docmark.db?cache=shared",
			Retention: 100,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if policy := strings.TrimSpace(cfg.Render.UnknownBlockPolicy); policy != "" && !isSupportedPolicy(policy) {
		return fmt.Errorf("%w: %s", ErrRenderUnknownPolicyInvalid, policy)
	}
	if underline := strings.TrimSpace(cfg.Render.UnderlineRendering); underline != "" && !isSupportedUnderline(underline) {
		return fmt.Errorf("%w: %s", ErrRenderUnderlineInvalid, underline)
	}
	if cfg.Render.ListIndentWidth < 0 {
		return ErrRenderIndentInvalid
	}
	if cfg.Features.Fetch {
		if strings.TrimSpace(cfg.Fetch.BaseURL) == "" {
			return ErrFetchBaseURLRequired
		}
		if strings.TrimSpace(cfg.Fetch.AccessToken) == "" {
			return ErrFetchTokenRequired
		}
		if cfg.Fetch.PageSize < 1 || cfg.Fetch.PageSize > 500 {
			return fmt.Errorf("%w: %d", ErrFetchPageSizeInvalid, cfg.Fetch.PageSize)
		}
		if cfg.Fetch.MaxRetries < 0 {
			return ErrFetchRetriesInvalid
		}
	}
	if strings.TrimSpace(cfg.Exporter.OutputDir) == "" {
		return ErrExportOutputDirRequired
	}
	if cfg.Features.History {
		if strings.TrimSpace(cfg.History.DSN) == "" {
			return ErrHistoryDSNRequired
		}
		if cfg.History.Retention < 0 {
			return ErrHistoryRetentionInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func isSupportedPolicy(policy string) bool {
	switch strings.ToLower(policy) {
	case "skip", "placeholder":
		return true
	default:
		return false
	}
}

func isSupportedUnderline(mode string) bool {
	switch strings.ToLower(mode) {
	case "html_tag", "drop":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
