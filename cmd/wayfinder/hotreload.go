package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfinder-dap/wayfinder/internal/control"
	"github.com/wayfinder-dap/wayfinder/internal/obslog"
)

// hotReloadCmd is a standalone, non-serving exercise of §4.3.7's
// capture/compile/execute/restore sequence: it runs --program once to
// establish a baseline global table, then performs the same PerformReload
// the DAP `hotReload` request drives, against the replacement chunk named
// as its single argument. Useful for scripting hot-reload behavior without
// a DAP client attached.
var hotReloadCmd = &cobra.Command{
	Use:   "hot-reload <replacement-file>",
	Short: "Run --program, then hot-reload it with a replacement chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Program == "" {
			return fmt.Errorf("--program is required")
		}

		logger := obslog.New(cfg.Logging, os.Stderr)
		_, state, err := openInterpreter(cfg, logger)
		if err != nil {
			return err
		}
		defer state.Close()

		if err := loadProgram(state, cfg.Program); err != nil {
			return fmt.Errorf("load program %s: %w", cfg.Program, err)
		}
		if err := state.CallProtected(0, 0); err != nil {
			return fmt.Errorf("run program %s: %w", cfg.Program, err)
		}

		replacementPath := args[0]
		source, err := os.ReadFile(replacementPath)
		if err != nil {
			return fmt.Errorf("read replacement %s: %w", replacementPath, err)
		}

		result := control.PerformReload(state, state, func() error {
			if err := state.LoadString(string(source), "@"+replacementPath); err != nil {
				return err
			}
			return state.CallProtected(0, 1)
		})

		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stdout, "[%s] %s\n", d.Severity, d.Message)
		}
		if !result.Success() {
			if result.LoadErr != nil {
				return fmt.Errorf("hot reload: %w", result.LoadErr)
			}
			if result.RunErr != nil {
				return fmt.Errorf("hot reload: %w", result.RunErr)
			}
			return fmt.Errorf("hot reload: %w", result.RestoreErr)
		}
		fmt.Fprintf(os.Stdout, "hot reload succeeded: %d globals restored\n", result.RestoredCount)
		return nil
	},
}
