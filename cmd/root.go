package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xapi-project/xenops-cli/config"
)

// NewRootCmd builds the root command with all subcommands attached. The
// config is allocated here, populated once in PersistentPreRunE, and handed
// to every subcommand by reference — there is no package-level option state.
// Tests build fresh trees so flag state never leaks between invocations.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	conf := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "xenops-cli",
		Short:         "Control client for the xenops VM lifecycle daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile, conf)
		},
		// A bare positional on the root is a mistyped subcommand and an
		// argument error, not a runtime failure. The root must be runnable
		// for this validator to fire; without RunE cobra short-circuits
		// into help before validating args.
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], "xenops-cli")
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().String("socket", "", "path to the daemon control socket")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	_ = viper.BindPFlag("socket_path", cmd.PersistentFlags().Lookup("socket"))
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{msg: err.Error()}
	})

	cmd.AddCommand(
		newAddCmd(conf),
		newListCmd(conf),
		newRemoveCmd(conf),
		newStartCmd(conf),
		newShutdownCmd(conf),
		newRebootCmd(conf),
		newSuspendCmd(conf),
		newResumeCmd(conf),
		newPauseCmd(conf),
		newUnpauseCmd(conf),
		newInspectCmd(conf),
		newConsoleCmd(conf),
		newVersionCmd(),
	)

	return cmd
}

// usageArgs converts cobra positional-arity failures into argument errors so
// they exit with the argument-error code, like every other usage mistake.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{msg: err.Error()}
		}
		return nil
	}
}

func initConfig(cfgFile string, conf *config.Config) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	_ = viper.ReadInConfig() // optional; missing file is OK

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	conf.ApplyDefaults()

	return log.SetupLog(context.Background(), &conf.Log, "")
}

// Execute runs the CLI with a context canceled by SIGINT/SIGTERM. Called
// from main.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return NewRootCmd().ExecuteContext(ctx)
}
