package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version, git revision, and build timestamp",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Print(version.String())
		},
	}
}
