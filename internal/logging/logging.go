// Package logging builds the zap logger shared by commands and servers.
package logging

import (
	"github.com/nishad/drugrake/internal/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a logger at level writing format to stderr. json uses the
// production encoder config, console the development one.
func New(level, format string) (*zap.Logger, error) {
	const op errors.Op = "logging.New"

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.E(op, errors.KindConfig, err)
	}

	var cfg zap.Config
	switch format {
	case FormatJSON, "":
		cfg = zap.NewProductionConfig()
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, errors.E(op, errors.KindConfig, "unknown log format "+format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.E(op, errors.KindConfig, err)
	}
	return logger, nil
}
