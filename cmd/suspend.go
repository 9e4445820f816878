package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

func newSuspendCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suspend [VM]",
		Short: "Suspend a VM's memory image to disk",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
	}
	cmd.Flags().String("block-device", "", "device to write the memory image to (daemon default if unset)")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runDiskTransition(c, args, conf, types.ActionSuspend, types.PowerStateSuspended)
	}
	return cmd
}

// runDiskTransition is shared by suspend and resume. The block device is
// optional; when given it must already exist, when absent the daemon picks
// its own target and the client does not invent one.
func runDiskTransition(cmd *cobra.Command, args []string, conf *config.Config, action types.Action, expected types.PowerState) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	device, _ := cmd.Flags().GetString("block-device")
	if device != "" {
		if _, err := os.Stat(device); err != nil {
			return usageErrorf("--block-device: %v", err)
		}
	}

	req := &types.TransitionRequest{Ref: ref, Action: action, BlockDevice: device}
	ctx := commandContext(cmd)
	state, err := client.New(conf).Transition(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	reportState(ref, state, expected)
	return nil
}
