package main

import (
	"os"

	"github.com/tkingovr/pfilter/cmd/pfilter/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
