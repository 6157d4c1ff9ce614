package bootstrap

import (
	"context"
	"errors"
	"fmt"
)

// Hook is a lifecycle callback run at shutdown.
type Hook func(ctx context.Context) error

// OnStop registers hooks that run during Shutdown. Hooks run in reverse
// order of registration, so later services stop before the ones they use.
func (r *Runtime) OnStop(hooks ...Hook) {
	r.onStop = append(r.onStop, hooks...)
}

// runHooksReverse executes hooks last to first and joins their errors.
func runHooksReverse(ctx context.Context, hooks []Hook) error {
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("hook %d failed: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
