package main

import (
	"os"

	"github.com/solagent-io/solagent/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
