// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string
	Format string // "json" or "console"
	File   string // optional rotating log file
}

// Setup installs the global logger described by opts. The returned closer
// releases the log file, if any, and is safe to call when none is configured.
func Setup(opts Options) (io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	writer, closer := newWriter(os.Stdout, opts)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	return closer, nil
}

func newWriter(stdout io.Writer, opts Options) (io.Writer, io.Closer) {
	var out io.Writer = stdout
	if opts.Format == "console" {
		out = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.RFC3339}
	}

	if opts.File == "" {
		return out, nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	// The file always receives JSON so it stays machine readable.
	return zerolog.MultiLevelWriter(out, file), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
