package orchestrator

import (
	"errors"
	"fmt"
)

// Terminal errors (spec.md §7): the only two outcomes other than a
// TurnResult that the Orchestrator may return.
var (
	ErrInputInvalid = errors.New("input_invalid")
)

// EnqueueFailedError carries a retry-after hint (spec.md §7:
// "TurnEnqueueFailed — queue full; surfaced to caller with retry-after hint").
type EnqueueFailedError struct {
	Worker     string
	RetryAfter string
}

func (e *EnqueueFailedError) Error() string {
	return fmt.Sprintf("turn_enqueue_failed: %s worker queue full, retry after %s", e.Worker, e.RetryAfter)
}
