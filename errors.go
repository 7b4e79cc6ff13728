package chord

import "golang.org/x/xerrors"

// Error kinds per the peer protocol's failure model. Routing and
// maintenance absorb TransientPeerFailure and NodeDeparted silently;
// only NetworkHosed is ever surfaced to a client.
var (
	// ErrInvalidArgument means a key fell outside [0, 2^m), or a nodeKey
	// exceeded the configured keyspace at construction. Never retried.
	ErrInvalidArgument = xerrors.New("chord: invalid argument")

	// ErrTransientPeerFailure means a remote call failed or returned a
	// null handle. Consumed by the retry harness.
	ErrTransientPeerFailure = xerrors.New("chord: peer unreachable")

	// ErrNodeDeparted means the local node's has-left flag is set.
	// Treated as a TransientPeerFailure equivalent by callers.
	ErrNodeDeparted = xerrors.New("chord: node has left the ring")
)

// NetworkHosedError is the only client-visible failure mode for routed
// operations: the retry harness exhausted its attempts.
type NetworkHosedError struct {
	Attempts int
	Cause    error
}

func (e *NetworkHosedError) Error() string {
	return xerrors.Errorf("chord: network hosed after %d attempts: %w", e.Attempts, e.Cause).Error()
}

func (e *NetworkHosedError) Unwrap() error {
	return e.Cause
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return xerrors.Is(err, ErrTransientPeerFailure) || xerrors.Is(err, ErrNodeDeparted)
}

// xerrorsInvalidf builds an ErrInvalidArgument-chained error with context.
func xerrorsInvalidf(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

// xerrorsWrapTransient normalizes any remote-call error into
// ErrTransientPeerFailure (errors that are already transient pass
// through), preserving the original cause for NetworkHosed's eventual
// context.
func xerrorsWrapTransient(err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return err
	}
	return xerrors.Errorf("%w: %v", ErrTransientPeerFailure, err)
}
