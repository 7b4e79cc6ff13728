package chord

import "context"

// RemoteNode is the peer protocol: an opaque, network-callable
// reference to another node. Every method may fail with
// ErrTransientPeerFailure or ErrNodeDeparted; callers treat both as
// "peer unreachable" for routing purposes, and only the retry harness
// distinguishes them when it finally surfaces a failure.
//
// A Node implements RemoteNode directly so it can refer to itself (the
// "self" finger/successor case) without a network hop, and so tests can
// wire several Nodes together in-process without a transport.
type RemoteNode interface {
	// Addr is the peer's stable identity: sameNode compares handles by
	// it, which routing uses to tell self from a remote target. Ring
	// position comes from NodeKey.
	Addr() string

	// NodeKey is deliberately a round-trippable call (not a cached
	// getter): it doubles as a cheap liveness probe.
	NodeKey(ctx context.Context) (uint64, error)
	HashLength(ctx context.Context) (uint, error)

	FindSuccessor(ctx context.Context, id uint64) (RemoteNode, error)
	// Predecessor returns (nil, nil) when the peer's predecessor is
	// unknown; that is not a failure.
	Predecessor(ctx context.Context) (RemoteNode, error)
	CheckPredecessor(ctx context.Context, candidate RemoteNode) error

	Get(ctx context.Context, id uint64) ([]byte, bool, error)
	Put(ctx context.Context, id uint64, value []byte) error
	Delete(ctx context.Context, id uint64) error

	PutBackup(ctx context.Context, id uint64, value []byte) error
	RemoveBackup(ctx context.Context, id uint64) error
}

// sameNode reports whether two RemoteNode handles refer to the same
// peer, by address: the stable identity a handle carries without a
// round trip.
func sameNode(a, b RemoteNode) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Addr() == b.Addr()
}
