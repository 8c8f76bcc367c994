package main

import (
	"os"

	"github.com/openfunnel/intentd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
