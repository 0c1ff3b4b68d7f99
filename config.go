package docmark

import "github.com/goliatone/go-docmark/internal/runtimeconfig"

var (
	ErrFetchBaseURLRequired       = runtimeconfig.ErrFetchBaseURLRequired
	ErrFetchTokenRequired         = runtimeconfig.ErrFetchTokenRequired
	ErrFetchPageSizeInvalid       = runtimeconfig.ErrFetchPageSizeInvalid
	ErrFetchRetriesInvalid        = runtimeconfig.ErrFetchRetriesInvalid
	ErrExportOutputDirRequired    = runtimeconfig.ErrExportOutputDirRequired
	ErrHistoryDSNRequired         = runtimeconfig.ErrHistoryDSNRequired
	ErrHistoryRetentionInvalid    = runtimeconfig.ErrHistoryRetentionInvalid
	ErrRenderIndentInvalid        = runtimeconfig.ErrRenderIndentInvalid
	ErrRenderUnknownPolicyInvalid = runtimeconfig.ErrRenderUnknownPolicyInvalid
	ErrRenderUnderlineInvalid     = runtimeconfig.ErrRenderUnderlineInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	RenderConfig   = runtimeconfig.RenderConfig
	FetchConfig    = runtimeconfig.FetchConfig
	ExporterConfig = runtimeconfig.ExporterConfig
	HistoryConfig  = runtimeconfig.HistoryConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
