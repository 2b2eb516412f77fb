// Command wayfinder is the DAP front-end binary: a thin cobra dispatcher
// over internal/dapsession, internal/luastate, and internal/luaabi. All
// protocol and control-flow logic lives in internal/; this package only
// wires stdio/TCP transports and process lifecycle around it.
package main

import (
	"fmt"
	"os"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wayfinder: %v\n", err)
		os.Exit(1)
	}
}
