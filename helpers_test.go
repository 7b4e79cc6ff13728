package chord

import "context"

// fakeRemoteNode is a minimal, in-memory RemoteNode double for tests
// that only need identity (key/addr), not real routing behavior.
type fakeRemoteNode struct {
	key     uint64
	addr    string
	m       uint
	departed bool
}

func (f *fakeRemoteNode) Addr() string { return f.addr }

func (f *fakeRemoteNode) NodeKey(ctx context.Context) (uint64, error) {
	if f.departed {
		return 0, ErrNodeDeparted
	}
	return f.key, nil
}

func (f *fakeRemoteNode) HashLength(ctx context.Context) (uint, error) {
	if f.departed {
		return 0, ErrNodeDeparted
	}
	return f.m, nil
}

func (f *fakeRemoteNode) FindSuccessor(ctx context.Context, id uint64) (RemoteNode, error) {
	return nil, ErrTransientPeerFailure
}

func (f *fakeRemoteNode) Predecessor(ctx context.Context) (RemoteNode, error) {
	return nil, ErrTransientPeerFailure
}

func (f *fakeRemoteNode) CheckPredecessor(ctx context.Context, candidate RemoteNode) error {
	return ErrTransientPeerFailure
}

func (f *fakeRemoteNode) Get(ctx context.Context, id uint64) ([]byte, bool, error) {
	return nil, false, ErrTransientPeerFailure
}

func (f *fakeRemoteNode) Put(ctx context.Context, id uint64, value []byte) error {
	return ErrTransientPeerFailure
}

func (f *fakeRemoteNode) Delete(ctx context.Context, id uint64) error {
	return ErrTransientPeerFailure
}

func (f *fakeRemoteNode) PutBackup(ctx context.Context, id uint64, value []byte) error {
	return ErrTransientPeerFailure
}

func (f *fakeRemoteNode) RemoveBackup(ctx context.Context, id uint64) error {
	return ErrTransientPeerFailure
}

// newTestNode builds a ready-to-use Node with a fast maintainer tick,
// suitable for stabilize/fixFinger exercises without a real network.
func newTestNode(t interface {
	Fatalf(format string, args ...interface{})
}, m uint, key uint64, addr string) *Node {
	n, err := New(Config{M: m, NodeKey: key, Addr: addr})
	if err != nil {
		t.Fatalf("New(%d, %d, %s): %v", m, key, addr, err)
	}
	return n
}
