package main

import (
	"os"

	"github.com/future-self-ai/backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
