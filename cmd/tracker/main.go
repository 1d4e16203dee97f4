// Package main is the entry point for the tracker CLI
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), newApp(os.Stdout, os.Stderr), os.Args[1:]))
}
