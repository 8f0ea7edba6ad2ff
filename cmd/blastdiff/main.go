// Command blastdiff compares two snapshots of tabular BLAST results
// and classifies every hit's fate between them.
package main

import (
	"os"

	"github.com/blastwatch/blastdiff/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
