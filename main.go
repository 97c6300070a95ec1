// main is the entry point for the failsight CLI.
package main

import (
	"github.com/failsight/failsight/cmd"
	"github.com/failsight/failsight/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("command failed", err)
	}
}
