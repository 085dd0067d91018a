package workerchan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/antoniostano/turncore/internal/reliability"
)

// metricsSink is the minimal observability surface the supervisor needs;
// satisfied by *observability.Metrics without importing it directly,
// mirroring internal/httpapi's Orchestrator interface boundary.
type metricsSink interface {
	ObserveWorkerRestart(worker, reason string)
	SetWorkerState(worker, state string, active bool)
}

// Options configures a Supervisor.
type Options struct {
	ID      string
	Kind    string
	Command string
	Args    []string
	Env     []string

	ReadyTimeout        time.Duration
	RestartWindow       time.Duration
	MaxRestartsInWindow int
	QueueDepth          int
	RestartBackoffBase  time.Duration
	RestartBackoffCap   time.Duration

	// Warmup performs a cheap request/reply round trip to confirm the
	// worker is actually serving, the way startKokoroWorker's warmup
	// request does. Required for eager readiness confirmation.
	Warmup func(ctx context.Context, ch *Channel) error

	Metrics metricsSink
}

// Supervisor owns one worker process's full lifecycle: spawning,
// health-checking, restart backoff, the 5-failures-in-5-minutes
// unavailable window, and a bounded per-worker request queue
// (spec.md §4.1, §5).
type Supervisor struct {
	opts Options

	mu                  sync.Mutex
	ch                  *Channel
	state               State
	restarts            int
	consecutiveTimeouts int
	consecutiveFailures int
	lastError           string
	restarting          bool

	failures *failureWindow
	sem      chan struct{}
}

func New(opts Options) *Supervisor {
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 90 * time.Second
	}
	if opts.RestartWindow <= 0 {
		opts.RestartWindow = 5 * time.Minute
	}
	if opts.MaxRestartsInWindow <= 0 {
		opts.MaxRestartsInWindow = 5
	}
	if opts.QueueDepth <= 0 {
		opts.QueueDepth = 8
	}
	if opts.RestartBackoffBase <= 0 {
		opts.RestartBackoffBase = 1 * time.Second
	}
	if opts.RestartBackoffCap <= 0 {
		opts.RestartBackoffCap = 30 * time.Second
	}
	return &Supervisor{
		opts:     opts,
		state:    StateStopped,
		failures: newFailureWindow(opts.RestartWindow),
		sem:      make(chan struct{}, opts.QueueDepth),
	}
}

// Start performs the initial spawn for eager startup. A worker that fails
// to start here is left Stopped (or Unavailable if the failure window is
// already exhausted). Call does not start it again (a Call on a Stopped
// worker returns ErrDraining); only an explicit Restart spawns it anew.
func (s *Supervisor) Start(ctx context.Context) error {
	s.setState(StateLoading)
	ch, err := s.attemptSpawn(ctx)
	if err != nil {
		s.recordStartFailure(err)
		return err
	}
	s.mu.Lock()
	s.ch = ch
	s.consecutiveFailures = 0
	s.lastError = ""
	s.mu.Unlock()
	s.setState(StateReady)
	return nil
}

func (s *Supervisor) attemptSpawn(ctx context.Context) (*Channel, error) {
	ch, err := Start(ctx, s.opts.Command, s.opts.Args, s.opts.Env)
	if err != nil {
		return nil, fmt.Errorf("spawn worker %s: %w", s.opts.ID, err)
	}
	if s.opts.Warmup != nil {
		wctx, cancel := context.WithTimeout(ctx, s.opts.ReadyTimeout)
		defer cancel()
		if err := s.opts.Warmup(wctx, ch); err != nil {
			_ = ch.Stop(1 * time.Second)
			stderr := ch.StderrTail()
			if stderr != "" {
				return nil, fmt.Errorf("worker %s warmup failed: %w (stderr: %s)", s.opts.ID, err, stderr)
			}
			return nil, fmt.Errorf("worker %s warmup failed: %w", s.opts.ID, err)
		}
	}
	return ch, nil
}

func (s *Supervisor) recordStartFailure(err error) {
	now := time.Now()
	s.failures.Record(now)
	count := s.failures.Count(now)

	s.mu.Lock()
	s.consecutiveFailures++
	s.lastError = err.Error()
	s.mu.Unlock()

	if count >= s.opts.MaxRestartsInWindow {
		s.setState(StateUnavailable)
		return
	}
	s.setState(StateStopped)
}

// Call runs req/reply through the worker under a bounded queue and the
// spec's per-call timeout, translating Channel errors into restart-policy
// decisions (spec.md §4.1's error conditions).
func (s *Supervisor) Call(ctx context.Context, timeout time.Duration, req, reply any) error {
	select {
	case s.sem <- struct{}{}:
	default:
		return ErrQueueFull
	}
	defer func() { <-s.sem }()

	s.mu.Lock()
	ch := s.ch
	state := s.state
	s.mu.Unlock()

	switch state {
	case StateUnavailable:
		return ErrWorkerUnavailable
	case StateDraining, StateStopped:
		return ErrDraining
	case StateLoading:
		return ErrNotReady
	}
	if ch == nil {
		return ErrWorkerUnavailable
	}

	s.setState(StateServing)

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := ch.Call(cctx, req, reply)
	if err == nil {
		s.mu.Lock()
		s.consecutiveTimeouts = 0
		s.mu.Unlock()
		s.setState(StateReady)
		return nil
	}

	switch {
	case errors.Is(err, ErrWorkerTimeout):
		s.mu.Lock()
		s.consecutiveTimeouts++
		repeated := s.consecutiveTimeouts >= 2
		s.lastError = err.Error()
		s.mu.Unlock()
		s.setState(StateDegraded)
		if repeated {
			s.triggerRestart("timeout_repeat")
		}
	case errors.Is(err, ErrWorkerProtocol):
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.triggerRestart("protocol")
	case errors.Is(err, ErrWorkerCrashed):
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.triggerRestart("crashed")
	}
	return err
}

// triggerRestart kicks off an asynchronous restart with exponential backoff
// if one isn't already underway, and only for reasons the restart policy
// recognizes (spec.md §4.1's reliability.IsRestartTriggering).
func (s *Supervisor) triggerRestart(reason string) {
	if !reliability.IsRestartTriggering(reason) {
		return
	}
	s.mu.Lock()
	if s.restarting {
		s.mu.Unlock()
		return
	}
	s.restarting = true
	s.mu.Unlock()

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveWorkerRestart(s.opts.ID, reason)
	}

	go s.restartLoop(reason)
}

func (s *Supervisor) restartLoop(reason string) {
	defer func() {
		s.mu.Lock()
		s.restarting = false
		s.mu.Unlock()
	}()

	s.setState(StateLoading)

	old := s.swapChannel(nil)
	if old != nil {
		_ = old.Stop(1 * time.Second)
	}

	backoff := reliability.ExponentialBackoff(0, s.opts.RestartBackoffBase, s.opts.RestartBackoffCap)
	time.Sleep(backoff)

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ReadyTimeout)
	defer cancel()

	ch, err := s.attemptSpawn(ctx)
	if err != nil {
		s.recordStartFailure(err)
		return
	}

	s.mu.Lock()
	s.ch = ch
	s.restarts++
	s.consecutiveFailures = 0
	s.consecutiveTimeouts = 0
	s.lastError = ""
	s.mu.Unlock()
	s.setState(StateReady)
}

func (s *Supervisor) swapChannel(next *Channel) *Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.ch
	s.ch = next
	return old
}

// Restart forces an immediate restart attempt, resetting the failure
// window (spec.md §8: "restart(workerId) on an unavailable worker resets
// its failure window and attempts an immediate start").
func (s *Supervisor) Restart(ctx context.Context) error {
	s.failures.Reset()
	s.mu.Lock()
	s.consecutiveFailures = 0
	s.consecutiveTimeouts = 0
	s.mu.Unlock()

	s.setState(StateLoading)
	old := s.swapChannel(nil)
	if old != nil {
		_ = old.Stop(1 * time.Second)
	}

	ch, err := s.attemptSpawn(ctx)
	if err != nil {
		s.recordStartFailure(err)
		return err
	}

	s.mu.Lock()
	s.ch = ch
	s.restarts++
	s.lastError = ""
	s.mu.Unlock()
	s.setState(StateReady)
	return nil
}

// Drain stops accepting new calls and stops the underlying process once
// any in-flight call completes (the bounded semaphore drains naturally).
func (s *Supervisor) Drain(grace time.Duration) {
	s.setState(StateDraining)
	// Acquire every queue slot to wait out in-flight calls.
	for i := 0; i < cap(s.sem); i++ {
		s.sem <- struct{}{}
	}
	ch := s.swapChannel(nil)
	if ch != nil {
		_ = ch.Stop(grace)
	}
	s.setState(StateStopped)
	// Release the slots so later Calls reach the state check and get
	// ErrDraining rather than ErrQueueFull.
	for i := 0; i < cap(s.sem); i++ {
		<-s.sem
	}
}

func (s *Supervisor) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	if s.opts.Metrics != nil {
		for _, candidate := range []State{StateLoading, StateReady, StateServing, StateDegraded, StateDraining, StateStopped, StateUnavailable} {
			s.opts.Metrics.SetWorkerState(s.opts.ID, string(candidate), candidate == st)
		}
	}
}

// Status returns a snapshot for the admin surface's workerStatus().
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	ch := s.ch
	state := s.state
	restarts := s.restarts
	consecutiveFailures := s.consecutiveFailures
	lastError := s.lastError
	s.mu.Unlock()

	health := Health{}
	if ch != nil {
		health = ch.Health()
	}

	return Status{
		ID:                  s.opts.ID,
		Kind:                s.opts.Kind,
		State:               state,
		Restarts:            restarts,
		LastLatencyMs:       health.LastLatencyMs,
		Inflight:            health.Inflight,
		ConsecutiveFailures: consecutiveFailures,
		LastError:           lastError,
	}
}

// State reports the supervisor's current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
