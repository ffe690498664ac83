package main

import (
	"os"

	"github.com/abhisek/nudge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
