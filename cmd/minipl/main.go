package main

import (
	"os"

	"github.com/msto63/minipl/cmd/minipl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
