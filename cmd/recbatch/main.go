// Command recbatch groups text records into size- and count-bounded batches.
package main

import (
	"os"

	"github.com/rshade/recbatch/internal/cli"
	"github.com/rshade/recbatch/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to a process exit code.
// Cobra prints the error itself; run only translates it.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
