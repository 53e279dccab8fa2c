// Package logging configures the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup builds the logger and installs it as the zap global so packages can
// log through zap.L(). Verbose switches to the development config at debug
// level; otherwise only warnings and errors reach stderr.
func Setup(verbose bool, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.DisableStacktrace = true
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    "launchgen",
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
		zap.ReplaceGlobals(logger)
		return logger, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
