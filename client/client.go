// Package client is the RPC stub for the xenops daemon: one blocking call
// per daemon capability, JSON over HTTP on the control socket. All VM state
// and transition legality live daemon-side; this package only serializes
// requests and maps responses onto the error taxonomy in errors.go.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

const apiPrefix = "/api/v1"

// Client talks to the daemon over its control socket. It holds no VM state
// and is safe to construct per invocation.
type Client struct {
	hc         *http.Client
	socketPath string
}

// New creates a client for the control socket named in conf.
func New(conf *config.Config) *Client {
	return &Client{
		hc:         newSocketHTTPClient(conf.SocketPath, conf.ConnectTimeout()),
		socketPath: conf.SocketPath,
	}
}

// Register submits a VM metadata document and returns the daemon's record of
// the newly registered VM. The metadata bytes are opaque to the client; the
// daemon owns the format and rejects bad payloads with invalid_metadata.
func (c *Client) Register(ctx context.Context, metadata []byte) (*types.VM, error) {
	rb, err := c.call(ctx, http.MethodPut, apiPrefix+"/vm.add", metadata, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var vm types.VM
	if err := json.Unmarshal(rb, &vm); err != nil {
		return nil, fmt.Errorf("decode vm.add response: %w", err)
	}
	return &vm, nil
}

// List enumerates registered VMs in the order the daemon reports them.
func (c *Client) List(ctx context.Context) ([]*types.VM, error) {
	rb, err := c.call(ctx, http.MethodGet, apiPrefix+"/vm.list", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var vms []*types.VM
	if err := json.Unmarshal(rb, &vms); err != nil {
		return nil, fmt.Errorf("decode vm.list response: %w", err)
	}
	return vms, nil
}

// Unregister removes a VM's registration record. The daemon rejects the call
// with a power-state conflict unless the VM is Halted.
func (c *Client) Unregister(ctx context.Context, ref types.VMRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("encode ref: %w", err)
	}
	_, err = c.call(ctx, http.MethodPut, apiPrefix+"/vm.remove", body, http.StatusNoContent)
	return err
}

// Transition requests one power-state change and blocks until the daemon
// resolves it. Returns the resulting power state when the daemon reports one,
// or "" for a bare acknowledgement.
func (c *Client) Transition(ctx context.Context, req *types.TransitionRequest) (types.PowerState, error) {
	if err := req.Ref.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode transition request: %w", err)
	}
	rb, err := c.call(ctx, http.MethodPut, apiPrefix+"/vm."+string(req.Action), body, http.StatusOK)
	if err != nil {
		return "", err
	}
	if len(rb) == 0 {
		return "", nil
	}
	var resp struct {
		PowerState types.PowerState `json:"power_state"`
	}
	if err := json.Unmarshal(rb, &resp); err != nil {
		return "", fmt.Errorf("decode vm.%s response: %w", req.Action, err)
	}
	return resp.PowerState, nil
}

// Get fetches the full record for one VM.
func (c *Client) Get(ctx context.Context, ref types.VMRef) (*types.VM, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	rb, err := c.call(ctx, http.MethodGet, apiPrefix+"/vm.get?ref="+url.QueryEscape(ref.String()), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var vm types.VM
	if err := json.Unmarshal(rb, &vm); err != nil {
		return nil, fmt.Errorf("decode vm.get response: %w", err)
	}
	return &vm, nil
}

// ConsolePath asks the daemon for the VM's console endpoint (a PTY device or
// a Unix socket path).
func (c *Client) ConsolePath(ctx context.Context, ref types.VMRef) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}
	rb, err := c.call(ctx, http.MethodGet, apiPrefix+"/vm.console?ref="+url.QueryEscape(ref.String()), nil, http.StatusOK)
	if err != nil {
		return "", err
	}
	var resp struct {
		ConsolePath string `json:"console_path"`
	}
	if err := json.Unmarshal(rb, &resp); err != nil {
		return "", fmt.Errorf("decode vm.console response: %w", err)
	}
	if resp.ConsolePath == "" {
		return "", fmt.Errorf("daemon reported no console for %s", ref)
	}
	return resp.ConsolePath, nil
}
