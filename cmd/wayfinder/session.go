package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/wayfinder-dap/wayfinder/internal/config"
	"github.com/wayfinder-dap/wayfinder/internal/dapsession"
	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
	"github.com/wayfinder-dap/wayfinder/internal/luastate"
	"github.com/wayfinder-dap/wayfinder/internal/obslog"
	"github.com/wayfinder-dap/wayfinder/internal/transport"
)

// loadConfig reads sharedFlags.configFile over config.Default and applies
// the CLI overrides every subcommand accepts, the same "file baseline,
// flags win" precedence dfsctl's cmdutil.Flags gives server/token/output.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if sharedFlags.configFile != "" {
		loaded, err := config.Load(sharedFlags.configFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if sharedFlags.runtime != "" {
		cfg.Runtime = sharedFlags.runtime
	}
	if sharedFlags.program != "" {
		cfg.Program = sharedFlags.program
	}
	if sharedFlags.stopOnEntry {
		cfg.StopOnEntry = true
	}
	return cfg, nil
}

// hostVersion resolves cfg.Runtime (a "luaN.N" alias, per spec §6) to the
// luaabi.HostVersion ParseHostVersion expects.
func hostVersion(cfg config.Config) (luaabi.HostVersion, error) {
	alias := strings.TrimPrefix(cfg.Runtime, "lua")
	v, ok := luaabi.ParseHostVersion(alias)
	if !ok {
		return 0, fmt.Errorf("unrecognized runtime %q (want one of lua5.1..lua5.4)", cfg.Runtime)
	}
	return v, nil
}

// openInterpreter loads the configured host interpreter version and wraps
// it in an L1 state, ready for AttachInterpreter. log receives the state's
// ABI shim fallback warnings (spec §4.1); it may be nil.
func openInterpreter(cfg config.Config, log *obslog.Logger) (*luaabi.Binding, *luastate.State, error) {
	version, err := hostVersion(cfg)
	if err != nil {
		return nil, nil, err
	}
	binding, err := luaabi.Open(version)
	if err != nil {
		return nil, nil, fmt.Errorf("open interpreter: %w", err)
	}
	state, err := luastate.New(binding)
	if err != nil {
		return nil, nil, fmt.Errorf("init interpreter state: %w", err)
	}
	state.SetLogger(log)
	return binding, state, nil
}

// buildSession wires config, logging, and (if a program is configured) an
// attached interpreter into a ready-to-run Session, per SPEC_FULL.md
// §4.5's "each subcommand's RunE constructs a Config, a Binding/State
// pair, and a Session" sequence.
func buildSession(cfg config.Config) (*dapsession.Session, func(), error) {
	logger := obslog.New(cfg.Logging, os.Stderr)
	sess := dapsession.New(cfg, logger)

	if cfg.Program == "" {
		return sess, func() { sess.Close() }, nil
	}

	binding, state, err := openInterpreter(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := loadProgram(state, cfg.Program); err != nil {
		return nil, nil, fmt.Errorf("load program %s: %w", cfg.Program, err)
	}
	sess.AttachInterpreter(binding, state)

	// The script runs on its own goroutine/OS thread (spec §5: "the
	// interpreter script is executed on a distinct native thread"), so the
	// dispatch loop in Run stays free to service pause/continue/step
	// requests while CallProtected blocks here for the program's lifetime.
	go func() {
		sess.NotifyTerminated(state.CallProtected(0, 0))
	}()

	return sess, func() { sess.Close() }, nil
}

// loadProgram reads cfg.Program from disk and loads (but does not yet
// call) it as the interpreter's top-level chunk; buildSession starts
// executing it on the script goroutine right after attaching the session.
func loadProgram(state *luastate.State, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return state.LoadString(string(source), "@"+path)
}

// streamTransport adapts internal/transport's message-in/message-out
// functions to dapsession.Transport, the stateful reader/writer pairing
// that spec §6 keeps out of internal/dapsession entirely.
type streamTransport struct {
	r *bufio.Reader
	w *bufio.Writer
}

func newStreamTransport(r *bufio.Reader, w *bufio.Writer) *streamTransport {
	return &streamTransport{r: r, w: w}
}

func (t *streamTransport) ReadMessage() ([]byte, error) {
	return transport.ReadMessage(t.r)
}

func (t *streamTransport) WriteMessage(body []byte) error {
	if err := transport.WriteMessage(t.w, body); err != nil {
		return err
	}
	return t.w.Flush()
}

// dialTransport opens the configured transport: stdio when addr is empty,
// or a single accepted TCP connection on addr otherwise (spec §6: "single
// port per listener", loopback-only).
func dialTransport(addr string) (dapsession.Transport, func() error, error) {
	if addr == "" {
		return newStreamTransport(bufio.NewReader(os.Stdin), bufio.NewWriter(os.Stdout)), func() error { return nil }, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, nil, fmt.Errorf("accept on %s: %w", addr, err)
	}
	ln.Close() // spec §6: single connection per listener.

	t := newStreamTransport(bufio.NewReader(conn), bufio.NewWriter(conn))
	return t, conn.Close, nil
}
