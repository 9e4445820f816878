package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/xapi-project/xenops-cli/config"
	"github.com/xapi-project/xenops-cli/types"
)

var sockSeq atomic.Int64

// stubDaemon serves a handler on a real Unix socket and counts requests.
// Sockets live under /tmp because t.TempDir() paths can exceed the 104-char
// sun_path limit.
type stubDaemon struct {
	socketPath string

	mu       sync.Mutex
	calls    int
	lastPath string
	lastBody []byte
}

func newStubDaemon(t *testing.T, handler http.HandlerFunc) *stubDaemon {
	t.Helper()
	sd := &stubDaemon{
		socketPath: fmt.Sprintf("/tmp/xenops-cli-test-%d-%d.sock", os.Getpid(), sockSeq.Add(1)),
	}
	ln, err := net.Listen("unix", sd.socketPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sd.mu.Lock()
		sd.calls++
		sd.lastPath = r.URL.Path
		sd.lastBody = body
		sd.mu.Unlock()
		if handler != nil {
			handler(w, r)
		}
	})}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() {
		_ = srv.Close()
		_ = os.Remove(sd.socketPath)
	})
	return sd
}

func (sd *stubDaemon) callCount() int {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.calls
}

func (sd *stubDaemon) last() (string, []byte) {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.lastPath, sd.lastBody
}

func (sd *stubDaemon) client() *Client {
	return New(&config.Config{SocketPath: sd.socketPath, ConnectTimeoutSeconds: 2})
}

func writeFailure(w http.ResponseWriter, status int, kind, reason string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"kind": kind, "error": reason})
}

func TestList_PreservesDaemonOrder(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"a","name":"A","power_state":"running"},
			{"id":"b","name":"B","power_state":"halted"}
		]`))
	})
	vms, err := sd.client().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(vms) != 2 {
		t.Fatalf("expected 2 VMs, got %d", len(vms))
	}
	if vms[0].Name != "A" || vms[1].Name != "B" {
		t.Errorf("daemon order not preserved: %s, %s", vms[0].Name, vms[1].Name)
	}
	if vms[0].PowerState != types.PowerStateRunning || vms[1].PowerState != types.PowerStateHalted {
		t.Errorf("power states mangled: %s, %s", vms[0].PowerState, vms[1].PowerState)
	}
}

func TestUnregister_ConflictPassedThroughVerbatim(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusConflict, "power_state_conflict", "VM is Running, expected Halted")
	})
	err := sd.client().Unregister(context.Background(), types.ByName("web"))
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Reason != "VM is Running, expected Halted" {
		t.Errorf("daemon reason not passed through: %q", ce.Reason)
	}
}

func TestUnregister_NotFoundIsIdempotent(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "not_found", "no such VM")
	})
	c := sd.client()
	for i := 0; i < 2; i++ {
		if err := c.Unregister(context.Background(), types.ByName("gone")); !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: expected ErrNotFound, got %v", i+1, err)
		}
	}
	if sd.callCount() != 2 {
		t.Errorf("expected 2 calls, got %d", sd.callCount())
	}
}

func TestTransition_ShutdownCarriesTimeoutInOneRequest(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"power_state":"halted"}`))
	})
	timeout := 30
	state, err := sd.client().Transition(context.Background(), &types.TransitionRequest{
		Ref:            types.ByName("web"),
		Action:         types.ActionShutdown,
		TimeoutSeconds: &timeout,
	})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if state != types.PowerStateHalted {
		t.Errorf("expected halted, got %s", state)
	}
	if sd.callCount() != 1 {
		t.Fatalf("expected exactly 1 request, got %d", sd.callCount())
	}
	path, body := sd.last()
	if path != "/api/v1/vm.shutdown" {
		t.Errorf("expected vm.shutdown path, got %s", path)
	}
	var decoded types.TransitionRequest
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if decoded.TimeoutSeconds == nil || *decoded.TimeoutSeconds != 30 {
		t.Errorf("timeout not carried: %+v", decoded.TimeoutSeconds)
	}
}

func TestTransition_ResourceConstraint(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusInsufficientStorage, "resource_constraint", "not enough host memory")
	})
	_, err := sd.client().Transition(context.Background(), &types.TransitionRequest{
		Ref:    types.ByName("big"),
		Action: types.ActionStart,
	})
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResourceError, got %v", err)
	}
	if re.Reason != "not enough host memory" {
		t.Errorf("reason not passed through: %q", re.Reason)
	}
}

func TestTransition_EmptyRefRejectedLocally(t *testing.T) {
	sd := newStubDaemon(t, nil)
	_, err := sd.client().Transition(context.Background(), &types.TransitionRequest{Action: types.ActionStart})
	if !errors.Is(err, types.ErrEmptyRef) {
		t.Fatalf("expected ErrEmptyRef, got %v", err)
	}
	if sd.callCount() != 0 {
		t.Errorf("no RPC may be issued for an empty ref, got %d calls", sd.callCount())
	}
}

func TestRegister_InvalidMetadata(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusBadRequest, "invalid_metadata", "missing name field")
	})
	_, err := sd.client().Register(context.Background(), []byte(`{}`))
	var me *MetadataError
	if !errors.As(err, &me) {
		t.Fatalf("expected MetadataError, got %v", err)
	}
}

func TestRegister_ReturnsVM(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"1234","name":"web","power_state":"halted"}`))
	})
	vm, err := sd.client().Register(context.Background(), []byte(`{"name":"web"}`))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if vm.ID != "1234" || vm.Name != "web" {
		t.Errorf("unexpected VM: %+v", vm)
	}
}

func TestUnreachableDaemon_EveryOperation(t *testing.T) {
	c := New(&config.Config{SocketPath: "/tmp/xenops-cli-no-such.sock", ConnectTimeoutSeconds: 1})
	ctx := context.Background()
	ops := map[string]func() error{
		"register":   func() error { _, err := c.Register(ctx, []byte(`{}`)); return err },
		"list":       func() error { _, err := c.List(ctx); return err },
		"unregister": func() error { return c.Unregister(ctx, types.ByName("x")) },
		"transition": func() error {
			_, err := c.Transition(ctx, &types.TransitionRequest{Ref: types.ByName("x"), Action: types.ActionStart})
			return err
		},
		"get":     func() error { _, err := c.Get(ctx, types.ByName("x")); return err },
		"console": func() error { _, err := c.ConsolePath(ctx, types.ByName("x")); return err },
	}
	for name, op := range ops {
		var ue *UnreachableError
		if err := op(); !errors.As(err, &ue) {
			t.Errorf("%s: expected UnreachableError, got %v", name, err)
		}
	}
}

func TestGet_QueryEscapesRef(t *testing.T) {
	sd := newStubDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ref") != "my vm" {
			writeFailure(w, http.StatusNotFound, "not_found", "no such VM")
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","name":"my vm","power_state":"paused"}`))
	})
	vm, err := sd.client().Get(context.Background(), types.ByName("my vm"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if vm.PowerState != types.PowerStatePaused {
		t.Errorf("expected paused, got %s", vm.PowerState)
	}
}
