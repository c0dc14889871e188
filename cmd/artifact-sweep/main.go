// artifact-sweep deletes the artifacts of the current CI workflow run.
package main

import (
	"os"

	"github.com/randalmurphal/artifactsweep/cli"
)

func main() {
	os.Exit(cli.Execute())
}
