// Command xtrace checks trace destination configuration and emits records
// through it, for trying templates and listener setups from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/trickstertwo/xtrace/config"
)

func main() {
	if err := newRootCmd(config.Loader{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
