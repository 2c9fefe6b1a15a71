// Package main provides acetrace, which plays node tree scenarios on a
// manual clock and prints what the tree, the render contexts and the geometry
// transitions did on every frame.
//
// Usage:
//
//	acetrace run [--config ace.yaml] scenario.yaml...
//	acetrace version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
