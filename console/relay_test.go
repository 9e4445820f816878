package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// syncBuffer guards a bytes.Buffer against the relay's writer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRelay_DetachSequenceEndsSession(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Fatalf("pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	in := strings.NewReader("ls\r\x1d.")
	var out syncBuffer

	done := make(chan error, 1)
	go func() {
		done <- Relay(context.Background(), in, &out, tty, DefaultEscapeChar)
	}()

	// The guest side should receive everything before the detach sequence.
	buf := make([]byte, 16)
	var got []byte
	for !bytes.Contains(got, []byte("ls\r")) {
		n, err := ptmx.Read(buf)
		if err != nil {
			t.Fatalf("read guest side: %v", err)
		}
		got = append(got, buf[:n]...)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("relay: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not return after detach sequence")
	}
}

func TestRelay_RemoteOutputCopied(t *testing.T) {
	remoteOut, remoteIn := io.Pipe()
	rw := struct {
		io.Reader
		io.Writer
	}{remoteOut, io.Discard}

	inR, inW := io.Pipe()
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- Relay(context.Background(), inR, &out, rw, DefaultEscapeChar)
	}()

	if _, err := remoteIn.Write([]byte("login: ")); err != nil {
		t.Fatalf("write remote: %v", err)
	}
	// Wait for the output to be relayed before detaching.
	deadline := time.Now().Add(5 * time.Second)
	for out.String() != "login: " {
		if time.Now().After(deadline) {
			t.Fatalf("remote output not relayed, got %q", out.String())
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := inW.Write([]byte{DefaultEscapeChar, '.'}); err != nil {
		t.Fatalf("write input: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("relay: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not return after detach")
	}
}

func TestRelay_InputEOFIsClean(t *testing.T) {
	remoteOut, _ := io.Pipe()
	rw := struct {
		io.Reader
		io.Writer
	}{remoteOut, io.Discard}

	done := make(chan error, 1)
	go func() {
		done <- Relay(context.Background(), strings.NewReader("abc"), &syncBuffer{}, rw, DefaultEscapeChar)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit on input EOF, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not return on input EOF")
	}
}
