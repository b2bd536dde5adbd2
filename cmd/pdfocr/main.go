// Command pdfocr extracts, cleans up and summarises text from PDF documents.
package main

import (
	"os"

	"github.com/custodia-labs/pdfocr/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
