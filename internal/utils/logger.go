package utils

import (
	"strings"

	"go.uber.org/zap"
)

// InitLogger builds the process logger and installs it as zap's global.
// Release mode gets JSON output; anything else gets the console encoder.
func InitLogger(mode string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.EqualFold(strings.TrimSpace(mode), "release") {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// LogEvent writes a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	zap.L().Info(message,
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	)
}

// LogFailure is LogEvent for errors that are reported but not fatal.
func LogFailure(requestID, module, action string, err error) {
	zap.L().Warn(action+" failed",
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
		zap.Error(err),
	)
}
