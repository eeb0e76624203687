package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// InitLogger builds the process logger once. Logs go to stdout and to a
// rotated file at filepath; an empty filepath disables the file output.
func InitLogger(filepath string, env string) zerolog.Logger {
	once.Do(func() {
		zerolog.DurationFieldUnit = time.Microsecond
		zerolog.ErrorFieldName = "error"
		zerolog.ErrorStackFieldName = "stack-trace"
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.LevelFieldName = "level"
		zerolog.MessageFieldName = "message"
		zerolog.TimestampFieldName = "timestamp"

		logLevel := zerolog.InfoLevel
		if env == "development" {
			logLevel = zerolog.TraceLevel
		}

		writers := []io.Writer{os.Stdout}
		if filepath != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   filepath,
				MaxSize:    50,
				MaxBackups: 3,
				Compress:   true,
			})
		}
		output := zerolog.MultiLevelWriter(writers...)

		logger = zerolog.New(output).
			Level(logLevel).
			Hook(AttachTraceIdFromContext()).
			With().
			Timestamp().
			Caller().
			Stack().
			Int("pid", os.Getpid()).
			Logger()

		logger.Info().
			Str(KeyTag, "InitLogger").
			Str(KeyProcess, "InitLogger").
			Msg("finish initiating logging")
	})
	return logger
}
