package chord

import (
	"context"
	"time"
)

// retry wraps a client-visible operation: on transient remote or
// null-reference failure it sleeps FixInterval and re-executes the
// whole operation from routing, up to conf.Retries attempts (the ring
// diameter in hops, m+1 by default). On exhaustion it surfaces a
// terminal NetworkHosedError carrying the last cause.
//
// Bounds/argument errors never reach here; checkBounds runs before
// retry is invoked.
func (n *Node) retry(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < n.conf.Retries; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		lastErr = err
		n.log.Debug().Err(err).Int("attempt", attempt+1).Msg("retrying after transient failure")

		if attempt == n.conf.Retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.conf.FixInterval):
		}
	}
	return &NetworkHosedError{Attempts: n.conf.Retries, Cause: lastErr}
}
