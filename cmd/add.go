package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
)

func newAddCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add [FILE]",
		Short: "Register a VM from a metadata file",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args, conf)
		},
	}
}

func runAdd(cmd *cobra.Command, args []string, conf *config.Config) error {
	if len(args) == 0 {
		return usageErrorf("missing VM metadata file")
	}
	metadata, err := os.ReadFile(args[0])
	if err != nil {
		return usageErrorf("read metadata file: %v", err)
	}

	ctx := commandContext(cmd)
	vm, err := client.New(conf).Register(ctx, metadata)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	fmt.Printf("registered VM %s (%s)\n", vm.Name, vm.ID)
	return nil
}
