// Package notification is the transient user-facing surface the cart
// reports outcomes to, the server side counterpart of a toast.
package notification

import (
	"context"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

func (l Level) severity() int {
	switch l {
	case LevelWarning:
		return 1
	case LevelError:
		return 2
	}
	return 0
}

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (n Notice) MarshalZerologObject(e *zerolog.Event) {
	e.Str("level", string(n.Level)).Str("message", n.Message)
}

func Success(message string) Notice { return Notice{Level: LevelSuccess, Message: message} }
func Warning(message string) Notice { return Notice{Level: LevelWarning, Message: message} }
func Error(message string) Notice   { return Notice{Level: LevelError, Message: message} }

type Notifier interface {
	Notify(c context.Context, n Notice)
}

type NotifierFunc func(c context.Context, n Notice)

func (f NotifierFunc) Notify(c context.Context, n Notice) { f(c, n) }

// Chain fans a notice out to every notifier in order.
func Chain(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(c context.Context, n Notice) {
		for _, notifier := range notifiers {
			notifier.Notify(c, n)
		}
	})
}

// Worst returns the most severe level among notices, LevelSuccess when empty.
func Worst(notices []Notice) Level {
	worst := LevelSuccess
	for _, n := range notices {
		if n.Level.severity() > worst.severity() {
			worst = n.Level
		}
	}
	return worst
}
