package main

import (
	"github.com/spf13/cobra"
)

// Flags shared by every subcommand: where the YAML config lives and which
// of its values a command-line flag overrides, mirroring dfsctl's rootCmd
// pattern of persistent flags synced into a package-level struct rather
// than threaded explicitly through every RunE.
var sharedFlags struct {
	configFile  string
	runtime     string
	program     string
	stopOnEntry bool
	addr        string // empty => stdio transport; "host:port" => TCP
}

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "DAP front-end for the host scripting interpreter",
	Long: `wayfinder mediates between a Debug Adapter Protocol client and a running
instance of the host interpreter (versions 5.1 through 5.4), translating
breakpoint, step, evaluate, and hot-reload commands into interpreter
control operations.

Use "wayfinder [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sharedFlags.configFile, "config", "", "Path to config file (YAML, spec §6 keys)")
	rootCmd.PersistentFlags().StringVar(&sharedFlags.runtime, "runtime", "", "Host interpreter version alias (e.g. lua5.4), overrides config")
	rootCmd.PersistentFlags().StringVar(&sharedFlags.program, "program", "", "Path to the script to debug, overrides config")
	rootCmd.PersistentFlags().BoolVar(&sharedFlags.stopOnEntry, "stop-on-entry", false, "Arm step-in before the first line runs")
	rootCmd.PersistentFlags().StringVar(&sharedFlags.addr, "addr", "", "Serve DAP over TCP at host:port instead of stdio")

	rootCmd.AddCommand(dapCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(hotReloadCmd)
}
