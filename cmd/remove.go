package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
)

func newRemoveCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [VM]",
		Aliases: []string{"rm"},
		Short:   "Unregister a VM (must be halted; the daemon enforces this)",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args, conf)
		},
	}
}

func runRemove(cmd *cobra.Command, args []string, conf *config.Config) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	if err := client.New(conf).Unregister(ctx, ref); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	fmt.Printf("unregistered VM %s\n", ref)
	return nil
}
