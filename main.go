package main

import (
	"fmt"
	"os"

	"github.com/xapi-project/xenops-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "xenops-cli: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
