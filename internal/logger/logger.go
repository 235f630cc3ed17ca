// Package logger builds the process-wide zerolog logger from configuration.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const debugLogPath = "logs/debug.log"

type LoggerConfig struct {
	Level          string         `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format         string         `mapstructure:"format" validate:"oneof=json console"`
	OutputTarget   string         `mapstructure:"output_target" validate:"oneof=stdout stderr"`
	TimeField      string         `mapstructure:"time_field"`
	TimeFormat     string         `mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string         `mapstructure:"service_name"`
	ServiceVersion string         `mapstructure:"service_version"`
	Env            string         `mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller     bool           `mapstructure:"with_caller"`
	Stacktrace     bool           `mapstructure:"stacktrace"`
	DebugFile      bool           `mapstructure:"debug_file"`
	Fields         map[string]any `mapstructure:"fields"`
}

// New validates cfg (after filling defaults) and returns a logger tagged with service, version and env.
//
// Writers: prod and staging always emit JSON; dev honors Format, and dev+debug with DebugFile
// also appends everything to logs/debug.log. A debug file that cannot be opened is skipped, not fatal.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	return NewWithWriter(cfg, nil)
}

// NewWithWriter is New with the output stream replaced, used by tests to capture lines.
func NewWithWriter(cfg *LoggerConfig, out io.Writer) (zerolog.Logger, error) {
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFieldFormat(cfg.TimeFormat)

	if out == nil {
		out = os.Stdout
		if cfg.OutputTarget == "stderr" {
			out = os.Stderr
		}
	}
	writer := cfg.writer(out)

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if cfg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(cfg.Fields) > 0 {
		logger = logger.With().Fields(cfg.Fields).Logger()
	}

	zerolog.SetGlobalLevel(level)
	return logger, nil
}

func (c *LoggerConfig) writer(out io.Writer) io.Writer {
	if c.Env != "dev" || c.Format == "json" {
		return out
	}
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	if c.Level != "debug" || !c.DebugFile {
		return console
	}
	if err := os.MkdirAll(filepath.Dir(debugLogPath), 0o755); err != nil {
		return console
	}
	file, err := os.OpenFile(debugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return console
	}
	return zerolog.MultiLevelWriter(console, file)
}

func timeFieldFormat(name string) string {
	switch name {
	case "rfc3339":
		return time.RFC3339
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	default:
		return time.RFC3339Nano
	}
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	// caller is on in dev, stack traces everywhere else
	if c.Env == "dev" {
		c.WithCaller = true
	} else {
		c.Stacktrace = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "boxscore-tracker"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if c.Fields == nil {
		c.Fields = make(map[string]any)
	}
}
