package main

import (
	"os"

	"github.com/sitecheck/sitecheck/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.Main(os.Stderr))
}
