package control

import (
	"context"
	"strings"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/go-microbatch"

	"github.com/wayfinder-dap/wayfinder/internal/obslog"
)

// LogMessage is an "output" event payload produced by a logpoint firing,
// queued for delivery to the DAP session layer.
type LogMessage struct {
	Source string
	Line   int
	Text   string
}

// renderLogTemplate interpolates `{expression}` placeholders in a logpoint's
// message template (spec §4.3.5: "Text outside braces is emitted literally;
// each `{expr}` is evaluated and its rendered value substituted; evaluation
// errors leave the placeholder literal and log a warning"). Braces are not
// nestable; an unterminated `{` is emitted literally along with its
// contents. log may be nil, in which case evaluation errors are left
// silent (the literal substitution still happens).
func renderLogTemplate(eval Evaluator, frameID int, template string, render func(v interface{}) string, log *obslog.Logger) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		b.WriteString(template[i:open])

		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template[open:])
			break
		}
		close += open

		expr := template[open+1 : close]
		v, err := eval.Evaluate(frameID, expr)
		if err != nil {
			b.WriteString(template[open : close+1])
			if log != nil {
				log.Warning().Str("expression", expr).Str("error", err.Error()).Log("failed to evaluate logpoint expression")
			}
		} else {
			b.WriteString(render(v))
		}
		i = close + 1
	}
	return b.String()
}

// LogpointEmitter throttles and batches logpoint "output" events before they
// reach the DAP session, so a logpoint on a hot loop cannot flood the client
// with one event per hit. Rate limiting is per-breakpoint-ID (catrate
// category), batching is global (one microbatch.Batcher per session).
type LogpointEmitter struct {
	limiter *catrate.Limiter
	batcher *microbatch.Batcher[LogMessage]
	log     *obslog.Logger
}

// LogpointEmitterConfig configures throttling and batching windows.
type LogpointEmitterConfig struct {
	// RateWindow/RateLimit bound how often a single logpoint ID may emit,
	// e.g. 100 events per second, to protect the client from a hot loop.
	RateWindow time.Duration
	RateLimit  int

	// BatchMaxSize/BatchFlushInterval control how many log messages are
	// coalesced into one outbound flush.
	BatchMaxSize       int
	BatchFlushInterval time.Duration

	// Sink receives each flushed batch of log messages, in order.
	Sink func(ctx context.Context, batch []LogMessage) error

	// Log receives a warning for every logpoint expression that fails to
	// evaluate (spec §4.3.5 step 3). May be left nil, in which case those
	// warnings are silently dropped.
	Log *obslog.Logger
}

// NewLogpointEmitter constructs an emitter. Sink must be non-nil.
func NewLogpointEmitter(cfg LogpointEmitterConfig) *LogpointEmitter {
	rateWindow := cfg.RateWindow
	if rateWindow <= 0 {
		rateWindow = time.Second
	}
	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 50
	}

	limiter := catrate.NewLimiter(map[time.Duration]int{rateWindow: rateLimit})

	batcher := microbatch.NewBatcher[LogMessage](&microbatch.BatcherConfig{
		MaxSize:       cfg.BatchMaxSize,
		FlushInterval: cfg.BatchFlushInterval,
	}, cfg.Sink)

	return &LogpointEmitter{limiter: limiter, batcher: batcher, log: cfg.Log}
}

// Emit renders a logpoint's template and, unless the breakpoint's rate
// budget is exhausted, submits the rendered message for batched delivery.
// It never blocks the script thread on Sink I/O; Submit only blocks until
// the job is queued onto the batcher.
func (e *LogpointEmitter) Emit(ctx context.Context, eval Evaluator, frameID int, bp *LineBreakpoint, source string, render func(v interface{}) string) error {
	if _, ok := e.limiter.Allow(bp.ID); !ok {
		return nil
	}
	text := renderLogTemplate(eval, frameID, bp.LogMessage, render, e.log)
	_, err := e.batcher.Submit(ctx, LogMessage{Source: source, Line: bp.Line, Text: text})
	return err
}

// Close stops the underlying batcher, flushing any pending batch.
func (e *LogpointEmitter) Close() error { return e.batcher.Close() }
