// Package workerchan implements the Worker Channel (spec.md §4.1): a
// reliable request/reply RPC over a child process's standard input and
// standard output, framed as one JSON object per line, plus the restart
// policy and state machine that sit on top of it.
package workerchan

import "errors"

// Error taxonomy (spec.md §7). Stage-local, except ErrQueueFull, which the
// Orchestrator turns into a terminal TurnEnqueueFailed.
var (
	ErrWorkerTimeout     = errors.New("worker_timeout")
	ErrWorkerProtocol    = errors.New("worker_protocol")
	ErrWorkerCrashed     = errors.New("worker_crashed")
	ErrWorkerUnavailable = errors.New("worker_unavailable")
	ErrQueueFull         = errors.New("worker_queue_full")
	ErrNotReady          = errors.New("worker_not_ready")
	ErrDraining          = errors.New("worker_draining")
)
