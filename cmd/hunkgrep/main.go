package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/hunkgrep"
)

func main() {
	if err := hunkgrep.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
