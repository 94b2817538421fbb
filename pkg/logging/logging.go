package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Setup builds the application logger and installs it as the zap global.
// Debug mode switches to the human-readable development encoder.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
