// Package main is the entry point for the qembed CLI tool.
package main

import (
	"github.com/hargabyte/qembed/internal/cmd"
)

func main() {
	cmd.Execute()
}
