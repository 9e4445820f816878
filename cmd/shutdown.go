package cmd

import (
	"fmt"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

func newShutdownCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shutdown [VM]",
		Short: "Shut down a VM, cleanly if --timeout allows, forced otherwise",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
	}
	cmd.Flags().Int("timeout", 0, "seconds to wait for a clean guest shutdown before forcing power-off")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runHaltingTransition(c, args, conf, types.ActionShutdown, types.PowerStateHalted)
	}
	return cmd
}

// runHaltingTransition is shared by shutdown and reboot: both carry the same
// graceful-timeout policy in a single request. The daemon waits out the
// graceful phase and escalates to a forced power-off itself; the client never
// issues a second "force" call.
func runHaltingTransition(cmd *cobra.Command, args []string, conf *config.Config, action types.Action, expected types.PowerState) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	req := &types.TransitionRequest{Ref: ref, Action: action}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetInt("timeout")
		if timeout < 0 {
			return usageErrorf("--timeout must be non-negative, got %d", timeout)
		}
		req.TimeoutSeconds = &timeout
	}

	ctx := commandContext(cmd)
	if req.TimeoutSeconds == nil {
		log.WithFunc("cmd."+string(action)).Infof(ctx, "no timeout given, %s will be forced", action)
	}
	state, err := client.New(conf).Transition(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	reportState(ref, state, expected)
	return nil
}
