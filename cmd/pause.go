package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

func newPauseCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "pause [VM]",
		Short: "Freeze a running VM's vCPUs",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBareTransition(cmd, args, conf, types.ActionPause, types.PowerStatePaused)
		},
	}
}

func newUnpauseCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "unpause [VM]",
		Short: "Unfreeze a paused VM",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBareTransition(cmd, args, conf, types.ActionUnpause, types.PowerStateRunning)
		},
	}
}

// runBareTransition handles actions with no policy parameters at all.
func runBareTransition(cmd *cobra.Command, args []string, conf *config.Config, action types.Action, expected types.PowerState) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	state, err := client.New(conf).Transition(ctx, &types.TransitionRequest{Ref: ref, Action: action})
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	reportState(ref, state, expected)
	return nil
}
