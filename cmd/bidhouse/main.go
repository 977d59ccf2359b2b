package main

import (
	"fmt"
	"os"

	"github.com/celiakwan/bidhouse/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands that already printed their rejection return an
		// empty-message exit error; everything else is printed here.
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
