// Command pondctl is a small inspection/demo CLI over a pond.Pool[string],
// backed by a pondstore.SnapshotStore so state survives between
// invocations. Flags/config follow the teacher's spf13/cobra +
// spf13/viper conventions (alex60217101990-opa/go.mod).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
