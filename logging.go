package chord

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger builds a zerolog.Logger that writes to both stderr and
// a size-rotated log file. The core never owns the file's lifecycle
// beyond this constructor call.
func NewFileLogger(path string, maxSizeMB int) zerolog.Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}
	writer := io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stderr}, rotator)
	return zerolog.New(writer).With().Timestamp().Logger()
}
