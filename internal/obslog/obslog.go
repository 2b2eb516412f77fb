// Package obslog wires github.com/joeycumines/logiface as the structured
// logging facade for session lifecycle, DAP request/response tracing, and
// breakpoint catalog changes, with a backend selected at startup per
// internal/config.Logging.Backend.
package obslog

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/logiface/logrus"
	"github.com/joeycumines/logiface/stumpy"
	"github.com/joeycumines/logiface/zerolog"
	rszerolog "github.com/rs/zerolog"
	sirupsenlogrus "github.com/sirupsen/logrus"

	"github.com/wayfinder-dap/wayfinder/internal/config"
)

// Logger is the common logging handle passed to L2/L4 components; it is
// the type-erased form of whichever backend-specific *logiface.Logger[E]
// was constructed at startup, via that logger's own Logger() method.
type Logger = logiface.Logger[logiface.Event]

// New constructs a Logger bound to the backend named by cfg, writing to w
// (stderr in normal operation; a test buffer in unit tests).
func New(cfg config.Logging, w io.Writer) *Logger {
	switch cfg.Backend {
	case config.LoggingStumpy:
		return newStumpy(cfg, w)
	case config.LoggingLogrus:
		return newLogrus(cfg, w)
	default:
		return newZerolog(cfg, w)
	}
}

func minLevel(cfg config.Logging) logiface.Level {
	if cfg.Trace {
		return logiface.LevelTrace
	}
	return logiface.LevelInformational
}

// newZerolog builds the default human/JSON dual-mode stderr logger, used
// for session lifecycle, DAP request/response, and breakpoint catalog
// changes (low-to-medium frequency events).
func newZerolog(cfg config.Logging, w io.Writer) *Logger {
	backend := rszerolog.New(w).With().Timestamp().Logger()
	l := logiface.New[*zerolog.Event](
		zerolog.WithZerolog(backend),
		logiface.WithLevel[*zerolog.Event](minLevel(cfg)),
	)
	return l.Logger()
}

// newStumpy builds the pre-encoded, allocation-light stumpy writer. Like the
// other backends it is selected through Logging.Backend for all logging; the
// line hook itself emits no per-line trace events.
func newStumpy(cfg config.Logging, w io.Writer) *Logger {
	l := logiface.New[*stumpy.Event](
		stumpy.WithStumpy(stumpy.WithWriter(w)),
		logiface.WithLevel[*stumpy.Event](minLevel(cfg)),
	)
	return l.Logger()
}

// newLogrus builds a compatibility backend for operators standardized on
// logrus elsewhere in their stack.
func newLogrus(cfg config.Logging, w io.Writer) *Logger {
	backend := sirupsenlogrus.New()
	backend.SetOutput(w)
	l := logiface.New[*logrus.Event](
		logrus.WithLogrus(backend),
		logiface.WithLevel[*logrus.Event](minLevel(cfg)),
	)
	return l.Logger()
}
