// Command calsyncctl administers a calsync database from the command line.
// It shares configuration, store, and services with the server but never
// starts the HTTP listener.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
