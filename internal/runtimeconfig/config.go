package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-welcome/internal/markdown"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// ErrRootDirectoryRequired reports a blank RootDirectory.
var ErrRootDirectoryRequired = errors.New("welcome config: root directory is not configured")

// ErrAddressRequired reports a blank listen address.
var ErrAddressRequired = errors.New("welcome config: listen address is required")

// ErrLoggingProviderUnknown reports a logging provider other than console or gologger.
var ErrLoggingProviderUnknown = errors.New("welcome config: logging provider is invalid")

// ErrLoggingLevelInvalid reports a level name no provider understands.
var ErrLoggingLevelInvalid = errors.New("welcome config: logging level is invalid")

// ErrLoggingFormatInvalid reports a go-logger format other than json, console or pretty.
var ErrLoggingFormatInvalid = errors.New("welcome config: logging format is invalid")

// ErrMarkdownExtensionUnknown reports a Markdown extension name goldmark is not wired for.
var ErrMarkdownExtensionUnknown = errors.New("welcome config: markdown extension is not supported")

// TextCodeConfigInvalid tags every configuration failure returned by Validate.
const TextCodeConfigInvalid = "CONFIG_INVALID"

// Config holds everything the server reads at startup. It is immutable once
// validated.
type Config struct {
	// RootDirectory is the directory holding the <Id>.md files.
	RootDirectory string         `yaml:"root_directory"`
	Address       string         `yaml:"address"`
	Markdown      MarkdownConfig `yaml:"markdown"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// ParseOptions converts the configuration into parser options.
func (m MarkdownConfig) ParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), m.Extensions...),
		HardWraps:  m.HardWraps,
		SafeMode:   m.SafeMode,
	}
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
	Color     bool     `yaml:"color"`
	// AccessLog adds a combined-format access log on stdout.
	AccessLog bool `yaml:"access_log"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
// RootDirectory has no default.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile decodes a YAML file over DefaultConfig. Keys absent from the file
// keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("welcome config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("welcome config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration once at startup. Failures are go-errors
// validation errors wrapping one of the sentinel errors above.
func (cfg Config) Validate() error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.RootDirectory, validation.By(requireText(ErrRootDirectoryRequired))),
		validation.Field(&cfg.Address, validation.By(requireText(ErrAddressRequired))),
	)
	if err == nil {
		err = cfg.validateLogging()
	}
	if err == nil {
		err = cfg.validateMarkdown()
	}
	if err == nil {
		return nil
	}
	return goerrors.Wrap(unwrapFieldError(err), goerrors.CategoryValidation, "invalid configuration").
		WithTextCode(TextCodeConfigInvalid)
}

func requireText(sentinel error) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return sentinel
		}
		return nil
	}
}

// unwrapFieldError surfaces the sentinel error of the first failing field so
// callers can match it with errors.Is.
func unwrapFieldError(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, key := range []string{"RootDirectory", "Address"} {
		if fieldErr, ok := fieldErrs[key]; ok && fieldErr != nil {
			return fieldErr
		}
	}
	return err
}

func (cfg Config) validateLogging() error {
	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	switch provider {
	case "", "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func (cfg Config) validateMarkdown() error {
	for _, name := range cfg.Markdown.Extensions {
		if !markdown.SupportedExtension(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}
	return nil
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
