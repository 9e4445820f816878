package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
)

func newListCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered VMs",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, conf)
		},
	}
}

func runList(cmd *cobra.Command, conf *config.Config) error {
	ctx := commandContext(cmd)
	vms, err := client.New(conf).List(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if len(vms) == 0 {
		fmt.Println("No VMs found.")
		return nil
	}
	printVMTable(vms)
	return nil
}
