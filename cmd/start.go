package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

func newStartCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [VM]",
		Short: "Start a VM (blocks until Running, or Paused with --paused)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
	}
	cmd.Flags().Bool("paused", false, "leave the VM paused instead of running it")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runStart(c, args, conf)
	}
	return cmd
}

func runStart(cmd *cobra.Command, args []string, conf *config.Config) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	paused, _ := cmd.Flags().GetBool("paused")

	// One request; the daemon blocks it until the target state is reached.
	req := &types.TransitionRequest{
		Ref:    ref,
		Action: types.ActionStart,
		Paused: paused,
	}
	ctx := commandContext(cmd)
	state, err := client.New(conf).Transition(ctx, req)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	expected := types.PowerStateRunning
	if paused {
		expected = types.PowerStatePaused
	}
	reportState(ref, state, expected)
	return nil
}

// reportState prints the post-transition state, falling back to the expected
// state for daemons that reply with a bare acknowledgement.
func reportState(ref types.VMRef, state, fallback types.PowerState) {
	if state == "" {
		state = fallback
	}
	fmt.Printf("VM %s is now %s\n", ref, state)
}
