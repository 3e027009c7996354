// Package main is the entry point for the asksql CLI application.
package main

import (
	"asksql/cli/cmd"
)

func main() {
	cmd.Execute()
}
