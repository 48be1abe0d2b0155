package welcome

import "github.com/goliatone/go-welcome/internal/runtimeconfig"

var (
	ErrRootDirectoryRequired    = runtimeconfig.ErrRootDirectoryRequired
	ErrAddressRequired          = runtimeconfig.ErrAddressRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
