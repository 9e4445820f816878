// Package console relays a local terminal to a VM console endpoint reported
// by the daemon (a PTY device or a Unix socket), with an SSH-style escape
// sequence to detach.
package console

import (
	"context"
	"errors"
	"io"
	"syscall"
)

// Relay copies remote output to out and input from in to the remote, running
// the detach filter over the input stream. It returns nil on a clean
// disconnect: detach sequence, input EOF, or the remote PTY going away.
func Relay(ctx context.Context, in io.Reader, out io.Writer, remote io.ReadWriter, escape byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)

	// remote → out: guest output to the user.
	go func() {
		_, err := io.Copy(out, remote)
		errCh <- err
		cancel()
	}()

	// in → remote: user input to the guest, watching for the escape sequence.
	go func() {
		errCh <- relayInput(ctx, in, remote, escape)
		cancel()
	}()

	err := <-errCh
	if err == nil || isCleanExit(err) {
		return nil
	}
	return err
}

func relayInput(ctx context.Context, in io.Reader, remote io.Writer, escape byte) error {
	filter := newEscapeFilter(escape)
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, readErr := in.Read(buf)
		if n > 0 {
			fwd, detach := filter.Feed(buf[:n])
			if len(fwd) > 0 {
				if _, err := remote.Write(fwd); err != nil {
					return err
				}
			}
			if detach {
				return nil
			}
		}
		if readErr != nil {
			return readErr
		}
	}
}

// isCleanExit reports errors that mean a normal disconnect rather than a
// relay failure. EIO is what reading a PTY returns once the other side exits.
func isCleanExit(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) || errors.Is(err, context.Canceled)
}
