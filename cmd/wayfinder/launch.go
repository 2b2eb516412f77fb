package main

import (
	"context"

	"github.com/spf13/cobra"
)

// launchCmd wires the same Config/Binding/State/Session chain as dapCmd and
// serves the DAP loop identically; the IDE's subsequent `launch` request
// over that transport is handled exactly as it would be for `dap` (step-in
// is armed when stopOnEntry is set). What a "launch" subcommand would add
// beyond that — starting the
// debuggee as a fresh child process rather than the interpreter already
// embedded in this one — is explicitly out of scope (spec §1: "Child
// process spawning for 'launch' mode").
//
// TODO: spawn --program as a child process via os/exec and attach to its
// embedded interpreter over an IPC channel, instead of loading it directly
// into this process's own interpreter state.
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch the configured program and serve a DAP session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sess, cleanup, err := buildSession(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		t, closeTransport, err := dialTransport(sharedFlags.addr)
		if err != nil {
			return err
		}
		defer closeTransport()

		return sess.Run(context.Background(), t)
	},
}
