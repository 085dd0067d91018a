package reliability

import "time"

// restartTriggeringReasons are the Worker Channel failure reasons that
// should advance the restart policy (as opposed to being transient and
// survivable without restarting the child process).
var restartTriggeringReasons = map[string]bool{
	"timeout_repeat": true,
	"protocol":       true,
	"crashed":        true,
}

// IsRestartTriggering reports whether a worker-call failure reason should
// count toward the restart policy's failure window.
func IsRestartTriggering(reason string) bool {
	return restartTriggeringReasons[reason]
}

// ExponentialBackoff computes a deterministic capped backoff duration:
// base, 2*base, 4*base, ... until reaching cap.
func ExponentialBackoff(attempt int, base, cap time.Duration) time.Duration {
	if attempt <= 0 {
		return base
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	return d
}
