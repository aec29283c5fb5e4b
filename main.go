// Package main is the entry point for the dataweb CLI application.
package main

import (
	"dataweb/cli/cmd"
)

func main() {
	cmd.Execute()
}
