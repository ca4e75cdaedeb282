// Package main provides the entry point for the dod CLI.
package main

import (
	"fmt"
	"os"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.ExitCode(err))
}
