package workerchan

import (
	"context"
	"errors"
	"testing"
	"time"
)

type supervisorEchoRequest struct {
	Value string `json:"value"`
}

type supervisorEchoReply struct {
	Value string `json:"value"`
}

func newCatSupervisor(t *testing.T, opts Options) *Supervisor {
	t.Helper()
	opts.Command = "cat"
	if opts.ID == "" {
		opts.ID = "test-worker"
	}
	if opts.Kind == "" {
		opts.Kind = "echo"
	}
	sup := New(opts)
	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return sup
}

func TestSupervisor_StartAndCall(t *testing.T) {
	sup := newCatSupervisor(t, Options{})
	defer sup.Drain(time.Second)

	var reply supervisorEchoReply
	err := sup.Call(context.Background(), time.Second, supervisorEchoRequest{Value: "hi"}, &reply)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if reply.Value != "hi" {
		t.Fatalf("expected echoed value, got %q", reply.Value)
	}
	if sup.State() != StateReady {
		t.Fatalf("expected StateReady after a successful call, got %s", sup.State())
	}
}

func TestSupervisor_QueueFullWhenSaturated(t *testing.T) {
	sup := New(Options{Command: "sh", Args: []string{"-c", "sleep 1"}, QueueDepth: 1, ID: "slow", Kind: "echo"})
	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sup.Drain(time.Second)

	go func() {
		var reply supervisorEchoReply
		_ = sup.Call(context.Background(), 3*time.Second, supervisorEchoRequest{Value: "a"}, &reply)
	}()
	time.Sleep(100 * time.Millisecond)

	var reply supervisorEchoReply
	err := sup.Call(context.Background(), time.Second, supervisorEchoRequest{Value: "b"}, &reply)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestSupervisor_CrashTriggersRestart(t *testing.T) {
	sup := New(Options{
		Command:            "sh",
		Args:               []string{"-c", "exit 0"},
		ID:                 "crashy",
		Kind:               "echo",
		RestartBackoffBase: 10 * time.Millisecond,
		RestartBackoffCap:  20 * time.Millisecond,
		ReadyTimeout:       2 * time.Second,
	})
	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sup.Drain(time.Second)

	time.Sleep(150 * time.Millisecond) // let the child actually exit

	var reply supervisorEchoReply
	err := sup.Call(context.Background(), time.Second, supervisorEchoRequest{Value: "a"}, &reply)
	if !errors.Is(err, ErrWorkerCrashed) {
		t.Fatalf("expected ErrWorkerCrashed, got %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sup.Status().Restarts >= 1 && sup.State() == StateReady {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected the crash to trigger a completed restart back to Ready, got state %s with %d restarts", sup.State(), sup.Status().Restarts)
}

func TestSupervisor_ManualRestart(t *testing.T) {
	sup := newCatSupervisor(t, Options{})
	defer sup.Drain(time.Second)

	if err := sup.Restart(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if sup.State() != StateReady {
		t.Fatalf("expected StateReady after restart, got %s", sup.State())
	}
	if sup.Status().Restarts != 1 {
		t.Fatalf("expected restarts=1, got %d", sup.Status().Restarts)
	}
}

func TestSupervisor_DrainRejectsFurtherCalls(t *testing.T) {
	sup := newCatSupervisor(t, Options{})
	sup.Drain(time.Second)

	var reply supervisorEchoReply
	err := sup.Call(context.Background(), time.Second, supervisorEchoRequest{Value: "a"}, &reply)
	if !errors.Is(err, ErrDraining) {
		t.Fatalf("expected ErrDraining after Drain, got %v", err)
	}
}
