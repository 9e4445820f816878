package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

func newResumeCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume [VM]",
		Short: "Resume a suspended VM from its memory image",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
	}
	cmd.Flags().String("block-device", "", "device holding the memory image (daemon default if unset)")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runDiskTransition(c, args, conf, types.ActionResume, types.PowerStateRunning)
	}
	return cmd
}
