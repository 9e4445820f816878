package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

func newRebootCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reboot [VM]",
		Short: "Reboot a VM, cleanly if --timeout allows, forced otherwise",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
	}
	cmd.Flags().Int("timeout", 0, "seconds to wait for a clean guest shutdown before forcing the reboot")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runHaltingTransition(c, args, conf, types.ActionReboot, types.PowerStateRunning)
	}
	return cmd
}
