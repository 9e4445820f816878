package cmd

import (
	"errors"
	"fmt"
)

// Exit codes: 0 success, 1 daemon/transport failure, 2 argument error.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError is an argument-level failure: a missing required positional, a
// bad flag value, anything resolved before the RPC layer is touched.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, a ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, a...)}
}

// ExitCode maps an Execute error onto the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}
