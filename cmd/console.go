package cmd

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xapi-project/xenops-cli/client"
	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/console"
)

func newConsoleCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console [VM]",
		Short: "Attach an interactive console to a running VM",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
	}
	cmd.Flags().String("escape-char", "^]", "escape character (single char or ^X caret notation)")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runConsole(c, args, conf)
	}
	return cmd
}

func runConsole(cmd *cobra.Command, args []string, conf *config.Config) error {
	ref, err := refArg(args)
	if err != nil {
		return err
	}
	escapeStr, _ := cmd.Flags().GetString("escape-char")
	escapeChar, err := console.ParseEscapeChar(escapeStr)
	if err != nil {
		return usageErrorf("--escape-char: %v", err)
	}

	ctx := commandContext(cmd)
	endpoint, err := client.New(conf).ConsolePath(ctx, ref)
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	remote, err := openConsoleEndpoint(conf, endpoint)
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	defer remote.Close() //nolint:errcheck

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "\r\nDisconnected from %s.\r\n", ref)
	}()

	fmt.Fprintf(os.Stderr, "Connected to %s (detach sequence: %s.)\r\n", ref, console.FormatEscapeChar(escapeChar))
	if err := console.Relay(ctx, os.Stdin, os.Stdout, remote, escapeChar); err != nil {
		fmt.Fprintf(os.Stderr, "\r\nrelay error: %v\r\n", err)
	}
	return nil
}

// openConsoleEndpoint opens the daemon-reported console: a Unix socket or a
// PTY device path.
func openConsoleEndpoint(conf *config.Config, path string) (io.ReadWriteCloser, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("console endpoint %s: %w", path, err)
	}
	if fi.Mode()&os.ModeSocket != 0 {
		conn, err := net.DialTimeout("unix", path, conf.ConnectTimeout())
		if err != nil {
			return nil, fmt.Errorf("dial console socket: %w", err)
		}
		return conn, nil
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("open console device: %w", err)
	}
	return f, nil
}
