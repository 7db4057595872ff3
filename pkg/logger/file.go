package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig describes an optional size-rotated log file. Records go to the
// file in addition to the regular output.
type FileConfig struct {
	Path       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"14"`
	Compress   bool   `env:"LOG_FILE_COMPRESS" envDefault:"true"`
}

// WithRotatingFile tees log output into the file described by fc.
// An empty path is a no-op.
func WithRotatingFile(fc FileConfig) Option {
	return func(c *config) {
		if fc.Path == "" {
			return
		}
		c.file = &lumberjack.Logger{
			Filename:   fc.Path,
			MaxSize:    fc.MaxSizeMB,
			MaxBackups: fc.MaxBackups,
			MaxAge:     fc.MaxAgeDays,
			Compress:   fc.Compress,
		}
	}
}

func (c *config) writer() io.Writer {
	if c.file == nil {
		return c.output
	}
	return io.MultiWriter(c.output, c.file)
}
