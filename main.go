package main

import (
	"fmt"
	"os"

	"github.com/scenekit/editlink/cmd/editlink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
