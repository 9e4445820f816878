package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
)

func newInspectCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [VM]",
		Short: "Show the daemon's full record of a VM (JSON)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, conf)
		},
	}
}

func runInspect(cmd *cobra.Command, args []string, conf *config.Config) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	vm, err := client.New(conf).Get(ctx, ref)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(vm)
	return nil
}
