// Command argtex translates argument notation into a LaTeX document.
package main

import (
	"fmt"
	"os"
)

const (
	Version = "0.1.0"
	appName = "argtex"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
