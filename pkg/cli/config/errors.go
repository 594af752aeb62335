package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrScenarioNotFound   = goerr.New("scenario file not found")
	ErrUnsupportedFormat  = goerr.New("unsupported scenario file format")
	ErrInvalidScenario    = goerr.New("failed to parse scenario file")
	ErrInvalidLogLevel    = goerr.New("invalid log level")
	ErrInvalidLogFormat   = goerr.New("invalid log format")
	ErrInvalidImpactShape = goerr.New("invalid impact shape")
)

// Context keys for error values
const (
	ScenarioPathKey = "scenario_path"
	LogLevelKey     = "log_level"
	LogFormatKey    = "log_format"
)
