// Command sitecalc converts construction units and runs calculator pages.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sitecalc/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.Reported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
