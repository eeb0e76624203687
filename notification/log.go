package notification

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Svynct/ignite-rocketshoes/internal/log"
)

// Log writes notices to the context logger at a level matching the notice.
type Log struct{}

func (Log) Notify(c context.Context, n Notice) {
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "notification Log").
		Str(log.KeyNoticeLevel, string(n.Level)).
		Logger()

	switch n.Level {
	case LevelError:
		logger.Error().Msg(n.Message)
	case LevelWarning:
		logger.Warn().Msg(n.Message)
	default:
		logger.Info().Msg(n.Message)
	}
}

// Writer prints one line per notice, for terminals.
type Writer struct {
	Out io.Writer
}

func (w Writer) Notify(_ context.Context, n Notice) {
	fmt.Fprintf(w.Out, "[%s] %s\n", n.Level, n.Message)
}
