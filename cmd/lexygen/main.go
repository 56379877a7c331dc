// Command lexygen compiles a .lexy token specification into a generated
// Go scanner.
package main

import (
	"os"

	"github.com/dfalang/lexygen/internal/cli"
)

func main() {
	opts := cli.ParseFlags()
	os.Exit(cli.Run(opts))
}
