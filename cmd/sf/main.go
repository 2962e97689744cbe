package main

import (
	"os"

	"github.com/lioncurt/shopfront-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
