package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is replaced by setupLogger at the start of each run.
var logger = zap.NewNop()

// setupLogger installs a console logger on stderr at debug level when
// verbose is set, and a no-op logger otherwise.
func setupLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		logger = zap.NewNop()
		return logger, nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	logger = l.Named("stealenv")
	return logger, nil
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}
