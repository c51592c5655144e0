// Command transitrepair runs the route-repair engine: "serve" exposes it
// over a WebSocket gateway, "repair" runs one relation through the
// pipeline from the command line and prints the resulting osmChange.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
