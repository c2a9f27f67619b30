package main

import (
	"os"

	"github.com/athena-mem/athena/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
