package main

import (
	"fmt"
	"os"

	scaffold "github.com/arthur-debert/scaffold/cmd/scaffold"
)

func main() {
	rootCmd := scaffold.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
