package main

import (
	"context"

	"github.com/spf13/cobra"
)

// attachCmd wires the same chain as dapCmd; the IDE's subsequent `attach`
// request is a plain acknowledgement per spec §4.5.2, since this process
// already owns the interpreter state there is nothing further to
// coordinate. True "attach to an already-running external process" has no
// portable primitive in Go (no cross-platform ptrace-equivalent) and is
// deliberately unimplemented, per spec §1's explicit exclusion of "PID
// lookup for attach".
//
// TODO: accept a --pid flag and attach to an already-running host
// interpreter process once a platform-specific debug API is chosen.
var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach to the configured program and serve a DAP session",
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
