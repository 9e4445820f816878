package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for daemon responses that carry no extra payload.
var (
	ErrNotFound     = errors.New("VM not found")
	ErrAmbiguousRef = errors.New("VM reference matches more than one VM")
)

// ConflictError is a power-state conflict: the requested transition is not
// legal for the VM's current state. The reason is the daemon's own text,
// passed through verbatim.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "power state conflict: " + e.Reason }

// ResourceError means the daemon could not satisfy the transition due to a
// resource limit (memory, disk, ...).
type ResourceError struct {
	Reason string
}

func (e *ResourceError) Error() string { return "resource constraint: " + e.Reason }

// MetadataError means the daemon rejected a registration payload.
type MetadataError struct {
	Reason string
}

func (e *MetadataError) Error() string { return "invalid VM metadata: " + e.Reason }

// UnreachableError wraps a transport-level failure on the control channel.
// It is terminal for the invocation: the client never reconnects or retries.
type UnreachableError struct {
	SocketPath string
	Err        error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("daemon unreachable at %s: %v", e.SocketPath, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// failureEnvelope is the daemon's error body: {"kind": "...", "error": "..."}.
type failureEnvelope struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// daemonError maps a non-2xx response to the client error taxonomy. The kind
// field wins when present; the HTTP status is the fallback for daemons that
// send a bare body.
func daemonError(status int, body []byte) error {
	var env failureEnvelope
	_ = json.Unmarshal(body, &env)
	reason := env.Error
	if reason == "" {
		reason = string(body)
	}

	switch env.Kind {
	case "not_found":
		return ErrNotFound
	case "ambiguous_ref":
		return ErrAmbiguousRef
	case "power_state_conflict":
		return &ConflictError{Reason: reason}
	case "resource_constraint":
		return &ResourceError{Reason: reason}
	case "invalid_metadata":
		return &MetadataError{Reason: reason}
	}

	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return &ConflictError{Reason: reason}
	case http.StatusInsufficientStorage:
		return &ResourceError{Reason: reason}
	case http.StatusBadRequest:
		return &MetadataError{Reason: reason}
	}
	return fmt.Errorf("daemon returned %d: %s", status, reason)
}
