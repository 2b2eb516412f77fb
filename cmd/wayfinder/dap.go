package main

import (
	"context"

	"github.com/spf13/cobra"
)

// dapCmd is the canonical entrypoint an IDE spawns: it opens the
// configured transport and serves the DAP session loop, waiting for the
// client's own `launch`/`attach` request to decide how execution starts
// (spec §4.5.2).
var dapCmd = &cobra.Command{
	Use:   "dap",
	Short: "Serve a DAP session over stdio or TCP",
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
