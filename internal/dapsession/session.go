package dapsession

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/wayfinder-dap/wayfinder/internal/config"
	"github.com/wayfinder-dap/wayfinder/internal/control"
	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
	"github.com/wayfinder-dap/wayfinder/internal/luastate"
	"github.com/wayfinder-dap/wayfinder/internal/obslog"
	"github.com/wayfinder-dap/wayfinder/internal/sourcemap"
	"github.com/wayfinder-dap/wayfinder/internal/value"
	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// lifecycleState is the session dispatch loop's own small state machine,
// grounded on the teacher's eventloop.LoopState/FastState: a loop transitions
// Awake->Running once via CAS, and disconnect/terminate requests then store
// Terminating and Terminated in turn (plain stores, no CAS), mirroring
// FastState's "no validation on the hot path" shape generalized to the four
// states this loop actually needs.
type lifecycleState int32

const (
	stateAwake lifecycleState = iota
	stateRunning
	stateTerminating
	stateTerminated
)

// Transport is the minimal duplex message channel a Session drives;
// internal/transport's ReadMessage/WriteMessage are adapted to it by
// cmd/wayfinder, keeping this package transport-agnostic per spec §6.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(body []byte) error
}

// pollInterval is the pause-polling cadence, per spec §5 ("polls `paused`
// at a 10ms cadence").
const pollInterval = 10 * time.Millisecond

// Session is the DAP orchestrator (L4): it owns the optional active debug
// target (interpreter state, execution state, breakpoint catalogs) and
// dispatches incoming requests by method name, per spec §4.5.
type Session struct {
	cfg    config.Config
	log    *obslog.Logger
	id     string
	lifecy atomic.Int32

	binding *luaabi.Binding
	state   *luastate.State

	exec    *control.ExecutionState
	bp      *control.BreakpointManager
	metrics *control.Metrics
	hook    *control.Hook
	threads *control.CoroutineRegistry
	logpts  *control.LogpointEmitter

	translator *sourcemap.Translator

	unregisterHook func()
	configured     bool
	stepBaseline   int
	generatedPath  string
	expandTarget   value.Value
	hasExpandTarget bool

	// pending holds events produced outside the dispatch goroutine's own
	// call stack (logpoint flushes, script-thread completion) until the
	// next drain. Spec §5 runs the script thread and the session thread
	// concurrently on distinct goroutines, so appends from one and the
	// drain on the other need their own lock — unlike exec's fields, an
	// event queue has no natural atomic representation to fall back on.
	pendingMu sync.Mutex
	pending   []Event
}

// New constructs a Session bound to an already-open interpreter state.
// binding/state may be nil until launch/attach installs them, in which case
// request handlers that require an active target return
// wferr.NoDebugSessionError.
func New(cfg config.Config, log *obslog.Logger) *Session {
	s := &Session{
		cfg:        cfg,
		log:        log,
		id:         uuid.NewString(),
		exec:       control.NewExecutionState(),
		bp:         control.NewBreakpointManager(),
		metrics:    &control.Metrics{},
		threads:    control.NewCoroutineRegistry(),
		translator: sourcemap.NewTranslator(),
	}
	s.hook = control.NewHook(s.exec, s.metrics)
	s.logpts = control.NewLogpointEmitter(control.LogpointEmitterConfig{
		BatchMaxSize:       1,
		BatchFlushInterval: 50 * time.Millisecond,
		Sink:               s.flushLogMessages,
		Log:                log,
	})
	return s
}

// AttachInterpreter installs an opened interpreter binding/state as the
// session's active debug target (spec §4.5.2's launch/attach actions) and
// wires the line hook.
func (s *Session) AttachInterpreter(binding *luaabi.Binding, state *luastate.State) {
	s.binding = binding
	s.state = state
	s.unregisterHook = s.state.Binding().SetLineHook(s.state.Handle(), func(luaabi.LuaState, []byte) {
		s.onLineEvent()
	})
}

// hasTarget reports whether an interpreter state is currently attached.
func (s *Session) hasTarget() bool { return s.state != nil }

// onLineEvent runs on the script thread for every instrumented line: it
// delegates position/step bookkeeping to control.Hook, then evaluates the
// line-breakpoint catalog (condition, hit count, logpoint) since spec
// §4.3.2's Hook is deliberately ignorant of the breakpoint catalogs it
// shares no dependency with (it is unit-testable without one).
func (s *Session) onLineEvent() {
	s.hook.Tick(s.state)

	if s.exec.Paused() {
		// A step already fired this tick; a breakpoint hit at the same line
		// is still reported as a breakpoint per spec §4.3.3's precedence,
		// which pause resolution (not this hook) applies.
		return
	}

	line, source := s.exec.CurrentPosition()
	bp, ok := s.bp.LineBreakpointAt(source, line)
	if ok {
		if bp.IsLogpoint() {
			_ = s.logpts.Emit(context.Background(), s.state, 0, bp, source, renderEvaluated)
			return
		}

		result := control.EvaluateHit(s.state, 0, bp, s.metrics)
		s.logHitEvalErrors(bp, result)
		if result.ShouldBreak {
			s.exec.SetPaused(true)
			return
		}
	}

	s.sampleWatchpoints()
}

// sampleWatchpoints re-evaluates every installed data breakpoint's
// expression and pauses on the first observed change, per spec §4.3.4.
// A data breakpoint stop surfaces to the IDE as an ordinary "pause" reason
// rather than a dedicated DAP stop reason: ResolvePause's three-way
// breakpoint/step/pause precedence is shared, tested control-package logic,
// and a watchpoint hit fits its "explicit pause, no line breakpoint here"
// case exactly.
func (s *Session) sampleWatchpoints() {
	watches := s.bp.DataBreakpoints()
	if len(watches) == 0 {
		return
	}

	samples := make([]control.WatchSample, 0, len(watches))
	for _, w := range watches {
		v, err := s.state.Evaluate(0, w.Path)
		if err != nil {
			samples = append(samples, control.WatchSample{ID: w.ID, Err: err})
			continue
		}
		samples = append(samples, control.WatchSample{ID: w.ID, Value: v.Render()})
	}

	for _, change := range control.SampleWatchpoints(s.bp, samples) {
		stop, err := control.ShouldStopOnChange(s.state, 0, change)
		if err != nil || stop {
			s.exec.SetPaused(true)
			return
		}
	}
}

// logHitEvalErrors logs a breakpoint's condition/hit-condition evaluation
// errors, per spec §4.3.5 step 1's "evaluation errors are logged"
// requirement: control.EvaluateHit only reports them on ShouldBreakResult,
// it never logs them itself.
func (s *Session) logHitEvalErrors(bp *control.LineBreakpoint, result control.ShouldBreakResult) {
	if result.ConditionErr != nil {
		s.log.Warning().Int("breakpointId", bp.ID).Str("error", result.ConditionErr.Error()).Log("breakpoint condition evaluation failed")
	}
	if result.HitCondErr != nil {
		s.log.Warning().Int("breakpointId", bp.ID).Str("error", result.HitCondErr.Error()).Log("breakpoint hit condition evaluation failed")
	}
}

func renderEvaluated(v interface{}) string {
	rv, ok := v.(interface{ Render() string })
	if !ok {
		return ""
	}
	return rv.Render()
}

// flushLogMessages is the LogpointEmitter sink: it converts a batch of
// logpoint firings into "output" events for delivery to the IDE.
func (s *Session) flushLogMessages(_ context.Context, batch []control.LogMessage) error {
	for _, msg := range batch {
		s.pushEvent(Event{
			Event: "output",
			Body: map[string]interface{}{
				"category": "console",
				"output":   msg.Text + "\n",
				"source":   map[string]string{"path": msg.Source},
				"line":     msg.Line,
			},
		})
	}
	return nil
}

// pushEvent enqueues ev for delivery on the next drainEvents call. Its
// callers (flushLogMessages, NotifyTerminated) run off the session thread;
// Run only drains the queue and writes "stopped" events directly. pendingMu
// guards every access to the queue.
func (s *Session) pushEvent(ev Event) {
	s.pendingMu.Lock()
	s.pending = append(s.pending, ev)
	s.pendingMu.Unlock()
}

// NotifyTerminated enqueues a "terminated" event, and an "output" event
// carrying runErr's message if non-nil, for a caller outside this package
// (cmd/wayfinder, which owns the goroutine actually invoking the script's
// protected call per spec §5's "distinct native thread") to report that
// the script thread's top-level call has returned.
func (s *Session) NotifyTerminated(runErr error) {
	if runErr != nil {
		s.pushEvent(Event{
			Event: "output",
			Body: map[string]interface{}{
				"category": "stderr",
				"output":   runErr.Error() + "\n",
			},
		})
	}
	s.pushEvent(Event{Event: "terminated", Body: map[string]interface{}{"restart": false}})
}

// Close releases the interpreter state and stops the logpoint emitter.
func (s *Session) Close() {
	if s.unregisterHook != nil {
		s.unregisterHook()
	}
	if s.state != nil {
		s.state.Close()
	}
	_ = s.logpts.Close()
}

// Run drives the dispatch loop: Awake->Running once, then alternates
// between draining inbound requests and polling for a pause to report,
// until disconnect/terminate moves it to Terminating->Terminated.
func (s *Session) Run(ctx context.Context, t Transport) error {
	if !s.lifecy.CompareAndSwap(int32(stateAwake), int32(stateRunning)) {
		return &wferr.ProtocolError{Code: -32000, Message: "session already running"}
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	requests := make(chan []byte)
	readErrs := make(chan error, 1)
	go func() {
		for {
			body, err := t.ReadMessage()
			if err != nil {
				readErrs <- err
				return
			}
			requests <- body
		}
	}()

	wasPaused := false

	for s.lifecycle() != stateTerminated {
		select {
		case <-ctx.Done():
			s.lifecy.Store(int32(stateTerminated))
			return ctx.Err()

		case err := <-readErrs:
			s.lifecy.Store(int32(stateTerminated))
			return err

		case body := <-requests:
			resp, terminate := s.dispatch(body)
			if out, merr := Marshal(resp); merr == nil {
				_ = t.WriteMessage(out)
			}
			s.drainEvents(t)
			if terminate {
				s.lifecy.Store(int32(stateTerminating))
				s.Close()
				s.lifecy.Store(int32(stateTerminated))
				return nil
			}

		case <-ticker.C:
			s.drainEvents(t)
			if s.hasTarget() {
				paused := s.exec.Paused()
				if paused && !wasPaused {
					s.emitStopped(t)
				}
				wasPaused = paused
			}
		}
	}
	return nil
}

func (s *Session) lifecycle() lifecycleState { return lifecycleState(s.lifecy.Load()) }

func (s *Session) drainEvents(t Transport) {
	for {
		s.pendingMu.Lock()
		if len(s.pending) == 0 {
			s.pendingMu.Unlock()
			return
		}
		ev := s.pending[0]
		s.pending = s.pending[1:]
		s.pendingMu.Unlock()

		if out, err := Marshal(ev); err == nil {
			_ = t.WriteMessage(out)
		}
	}
}

func (s *Session) emitStopped(t Transport) {
	stop := control.ResolvePause(s.exec, s.bp, control.MainThreadID)
	s.exec.ClearStepTriggered()
	s.exec.DisarmStep()

	path, line := s.translateOutbound(stop.Source, stop.Line)

	body := map[string]interface{}{
		"reason":            string(stop.Reason),
		"threadId":          stop.ThreadID,
		"allThreadsStopped": true,
		"source":            map[string]string{"path": path},
		"line":              line,
	}
	if out, err := Marshal(Event{Event: "stopped", Body: body}); err == nil {
		_ = t.WriteMessage(out)
	}
}
