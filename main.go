// Package main provides the entrypoint for trailpipe.
package main

import (
	"os"

	"github.com/vigilix/trailpipe/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
