// Package config loads facadegen settings from environment variables.
// Command-line flags take precedence; see cmd/facadegen.
package config

// Config holds the generator settings that do not belong to a single export table.
type Config struct {
	Logging  LoggingConfig
	Generate GenerateConfig
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `env:"FACADEGEN_LOG_LEVEL" default:"info"`

	// Format is text or json (default: text)
	Format string `env:"FACADEGEN_LOG_FORMAT" default:"text"`
}

// GenerateConfig holds defaults applied to every generated facade.
type GenerateConfig struct {
	// Runtime is the import path of the lazy runtime package referenced by generated code.
	Runtime string `env:"FACADEGEN_RUNTIME_IMPORT" default:"github.com/sghaida/lazyfacade/lazy"`

	// Check makes -check the default mode, useful in CI (default: false)
	Check bool `env:"FACADEGEN_CHECK" default:"false"`
}
