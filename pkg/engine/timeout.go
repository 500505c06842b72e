package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/multiblock/pkg/edit"
)

// EvalTimeout is the default limit for evaluating one edit script.
const EvalTimeout = 5 * time.Second

// evalResult carries the outcome of one evaluation goroutine.
type evalResult struct {
	list   *edit.List
	errors []EvalError
	err    error
}

// waitWithTimeout waits up to timeout for the task list on ch. A result
// from generation gen is dropped when a later Evaluate call has bumped
// *currentGen in the meantime, so a slow script never hands back tasks
// after a newer script was submitted.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (*edit.List, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		stale := gen != *currentGen
		mu.Unlock()
		if stale {
			return nil, nil, fmt.Errorf("engine: edit script superseded by a newer evaluation")
		}
		return res.list, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("engine: edit script timed out after %s", timeout)
	}
}
