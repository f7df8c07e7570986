// Command stockroom manages a local inventory catalog.
package main

import (
	"os"

	"github.com/mesh-intelligence/stockroom/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
