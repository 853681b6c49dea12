package config

import "github.com/rshade/recbatch/internal/logging"

// outputTypeFile is the logging output selector for file destinations.
const outputTypeFile = "file"

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is console or json.
	Format string `yaml:"format"`

	// File, when set, sends log output to this path instead of stderr.
	File string `yaml:"file"`
}

// ToLoggingConfig bridges the config section into the internal/logging
// package's Config.
//
// The conversion applies these rules:
//   - Level and Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
