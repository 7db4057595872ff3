package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrValidation is returned when a parsed config violates its validate tags.
	ErrValidation = errors.New("config validation failed")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadEnvFile is returned when an explicitly requested env file cannot be read.
	ErrLoadEnvFile = errors.New("failed to load env file")
)
