package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// newSocketHTTPClient creates an HTTP client that dials a Unix socket.
// Only the dial is bounded: once connected, a call blocks for as long as the
// daemon takes to complete the transition (a graceful shutdown may wait its
// whole timeout daemon-side before responding).
func newSocketHTTPClient(socketPath string, connectTimeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				d := net.Dialer{Timeout: connectTimeout}
				return d.DialContext(ctx, "unix", socketPath)
			},
		},
	}
}

// call sends one request over the control channel and validates the status.
// path is daemon-relative (e.g. "/api/v1/vm.list"). Exactly one attempt is
// made; any transport failure surfaces as *UnreachableError.
func (c *Client) call(ctx context.Context, method, path string, body []byte, expectedStatus int) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, "http://localhost"+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &UnreachableError{SocketPath: c.socketPath, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck
	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{SocketPath: c.socketPath, Err: err}
	}
	if resp.StatusCode != expectedStatus {
		return nil, daemonError(resp.StatusCode, rb)
	}
	return rb, nil
}
