package main

import (
	"fmt"
	"os"

	"rainrunoff/internal/log"
)

func main() {
	defer log.Sync()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
