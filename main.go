// Command repotidy reports file-size and file-type statistics for a directory tree.
package main

import (
	"os"

	"github.com/idelchi/repotidy/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}
