package main

import (
	"os"

	"github.com/kibitz-bridge/kibitz/cmd/kibitz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
